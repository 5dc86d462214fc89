// Implements an abstract representation of
// svg paths and affine transforms, which can then be consumed
// by the rendering backends.
package svgpath

import (
	"fmt"
	"strings"
)

// Adder is implemented by types that can accumulate path commands,
// such as a rasterizer or a PDF content stream.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a Point)
	// Line adds a line segment to the path
	Line(b Point)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c Point)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d Point)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

// QuadTo stores the control point and the end point.
type QuadTo [2]Point

// CubicTo stores the two control points and the end point.
type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%g,%g", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%g,%g", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%g,%g,%g,%g", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%g,%g,%g,%g,%g,%g", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Union returns a new path made of the operations
// of `p` followed by the ones of `other`.
func (p Path) Union(other Path) Path {
	out := make(Path, 0, len(p)+len(other))
	out = append(out, p...)
	return append(out, other...)
}

// Transform returns a copy of the path, with `m` applied to every point.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			out[i] = LineTo(m.TransformPoint(Point(op)))
		case QuadTo:
			out[i] = QuadTo{m.TransformPoint(op[0]), m.TransformPoint(op[1])}
		case CubicTo:
			out[i] = CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}

// AddTo adds the Path p to q, applying the transform `m`.
func (p Path) AddTo(q Adder, m Matrix2D) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(m.TransformPoint(Point(op)))
		case LineTo:
			q.Line(m.TransformPoint(Point(op)))
		case QuadTo:
			q.QuadBezier(m.TransformPoint(op[0]), m.TransformPoint(op[1]))
		case CubicTo:
			q.CubeBezier(m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2]))
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// QuadToCubic returns the control points of the cubic curve
// equivalent to the quadratic one going from `start` to `end`
// with control point `ctl`.
func QuadToCubic(start, ctl, end Point) (c1, c2 Point) {
	c1 = start.Add(ctl.Sub(start).Scale(2. / 3))
	c2 = end.Add(ctl.Sub(end).Scale(2. / 3))
	return c1, c2
}
