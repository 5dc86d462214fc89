package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// kappa is the distance of the control points used to approximate
// a quarter of circle of radius 1 with a cubic bezier curve.
const kappa = 0.5522847498307936

// AddRect adds a closed rectangle.
func (p *Path) AddRect(r Rect) {
	p.Start(Point{r.X, r.Y})
	p.Line(Point{r.X + r.W, r.Y})
	p.Line(Point{r.X + r.W, r.Y + r.H})
	p.Line(Point{r.X, r.Y + r.H})
	p.Stop(true)
}

// ClampRadii applies the SVG rules for rounded rectangles:
// a missing radius (negative value) takes the value of the other one,
// and each radius is limited to half the corresponding side.
func ClampRadii(r Rect, rx, ry float64) (float64, float64) {
	if rx < 0 {
		rx = ry
	}
	if ry < 0 {
		ry = rx
	}
	if rx < 0 { // both missing
		return 0, 0
	}
	rx = math.Min(rx, r.W/2)
	ry = math.Min(ry, r.H/2)
	return rx, ry
}

// AddRoundRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis. The radius should have been
// clamped with ClampRadii.
func (p *Path) AddRoundRect(r Rect, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(r)
		return
	}
	minX, minY := r.X, r.Y
	maxX, maxY := r.X+r.W, r.Y+r.H
	kx, ky := rx*kappa, ry*kappa

	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.CubeBezier(Point{maxX - rx + kx, minY}, Point{maxX, minY + ry - ky}, Point{maxX, minY + ry})
	p.Line(Point{maxX, maxY - ry})
	p.CubeBezier(Point{maxX, maxY - ry + ky}, Point{maxX - rx + kx, maxY}, Point{maxX - rx, maxY})
	p.Line(Point{minX + rx, maxY})
	p.CubeBezier(Point{minX + rx - kx, maxY}, Point{minX, maxY - ry + ky}, Point{minX, maxY - ry})
	p.Line(Point{minX, minY + ry})
	p.CubeBezier(Point{minX, minY + ry - ky}, Point{minX + rx - kx, minY}, Point{minX + rx, minY})
	p.Stop(true)
}

// AddEllipse adds the ellipse inscribed in `r`, made of four cubic curves.
func (p *Path) AddEllipse(r Rect) {
	rx, ry := r.W/2, r.H/2
	cx, cy := r.X+rx, r.Y+ry
	kx, ky := rx*kappa, ry*kappa
	p.Start(Point{cx + rx, cy})
	p.CubeBezier(Point{cx + rx, cy + ky}, Point{cx + kx, cy + ry}, Point{cx, cy + ry})
	p.CubeBezier(Point{cx - kx, cy + ry}, Point{cx - rx, cy + ky}, Point{cx - rx, cy})
	p.CubeBezier(Point{cx - rx, cy - ky}, Point{cx - kx, cy - ry}, Point{cx, cy - ry})
	p.CubeBezier(Point{cx + kx, cy - ry}, Point{cx + rx, cy - ky}, Point{cx + rx, cy})
	p.Stop(true)
}

// AddPolyline adds the segments joining `points`, closing
// the shape if `closeLoop` is true.
func (p *Path) AddPolyline(points []Point, closeLoop bool) {
	if len(points) == 0 {
		return
	}
	p.Start(points[0])
	for _, pt := range points[1:] {
		p.Line(pt)
	}
	p.Stop(closeLoop)
}

// ArcParams stores the arguments of an SVG elliptical arc command.
type ArcParams struct {
	Rx, Ry     float64
	Rotation   float64 // in degrees
	LargeArc   bool
	Sweep      bool
	EndX, EndY float64
}

// AddArc adds the arc starting at (px, py), approximated by cubic
// bezier curves, and returns the last point.
// Degenerate arcs (null radius) are replaced by a line.
func (p *Path) AddArc(arc ArcParams, px, py float64) (lx, ly float64) {
	if px == arc.EndX && py == arc.EndY {
		return px, py
	}
	if arc.Rx == 0 || arc.Ry == 0 {
		p.Line(Point{arc.EndX, arc.EndY})
		return arc.EndX, arc.EndY
	}
	ra, rb := math.Abs(arc.Rx), math.Abs(arc.Ry)
	rotX := arc.Rotation * math.Pi / 180 // Convert degress to radians
	cx, cy := FindEllipseCenter(&ra, &rb, rotX, px, py, arc.EndX, arc.EndY, arc.Sweep, !arc.LargeArc)

	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(arc.EndY-cy, arc.EndX-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// Approximate ellipse using cubic bezeir splines
	etaStart := math.Atan2(math.Sin(startAngle)/rb, math.Cos(startAngle)/ra)
	etaEnd := math.Atan2(math.Sin(endAngle)/rb, math.Cos(endAngle)/ra)
	deltaEta := etaEnd - etaStart
	if arcBig != arc.LargeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the elipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && arc.Sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !arc.Sweep {
		deltaEta -= math.Pi * 2
	}

	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly = px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(ra, rb, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = arc.EndX, arc.EndY // Just makes the end point exact; no roundoff error
		} else {
			px, py = ellipsePointAt(ra, rb, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(ra, rb, sinTheta, cosTheta, eta)
		p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{px - alpha*dx, py - alpha*dy}, Point{px, py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// FindEllipseCenter locates the center of the Ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the ra to rb ratio.  ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func FindEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	//Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
