package svgdraw

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/kpango/glg"
	"golang.org/x/image/math/fixed"
)

var _ Backend = (*Painter)(nil) // assert interface conformance

// defaultMiterLimit is the SVG initial value of stroke-miterlimit
const defaultMiterLimit = 4

// Painter implements Backend on top of a Driver: it tracks the
// graphic state, applies the transforms to the paths and resolves the
// stroking options before calling the driver.
type Painter struct {
	*States
	driver Driver

	// Width and Height are the size of the output. When positive,
	// the document view box is scaled to fit them.
	Width, Height float64

	current Shape
}

// NewPainter wraps `driver`, whose output has the given size.
func NewPainter(driver Driver, width, height float64) *Painter {
	return &Painter{States: NewStates(), driver: driver, Width: width, Height: height}
}

func fToFixed(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// fixedAdder feeds float points to a Drawer
type fixedAdder struct {
	d Drawer
}

func (a fixedAdder) Start(p svgpath.Point)         { a.d.Start(fToFixed(p)) }
func (a fixedAdder) Line(b svgpath.Point)          { a.d.Line(fToFixed(b)) }
func (a fixedAdder) QuadBezier(b, c svgpath.Point) { a.d.QuadBezier(fToFixed(b), fToFixed(c)) }
func (a fixedAdder) CubeBezier(b, c, d svgpath.Point) {
	a.d.CubeBezier(fToFixed(b), fToFixed(c), fToFixed(d))
}
func (a fixedAdder) Stop(closeLoop bool) { a.d.Stop(closeLoop) }

// StartDocument maps the view box onto the output size.
func (p *Painter) StartDocument(viewBox svgpath.Rect) {
	if p.Width <= 0 || p.Height <= 0 || viewBox.IsEmpty() {
		return
	}
	p.ConcatTransform(svgpath.Identity.
		Scale(p.Width/viewBox.W, p.Height/viewBox.H).
		Translate(-viewBox.X, -viewBox.Y))
}

func (p *Painter) StartGroup(string)   {}
func (p *Painter) StartElement(string) {}
func (p *Painter) EndElement()         {}

func (p *Painter) AddPath(shape Shape) { p.current = shape }

func (p *Painter) opacity() float64 {
	if a := p.Current().Style.Alpha; a != nil {
		return *a
	}
	return 1
}

func (p *Painter) DrawPath(mode DrawMode) {
	var fill, stroke Pattern
	if c := p.FillColor(); mode.HasFill() && c != nil {
		fill = PlainColor(*c)
	}
	if c := p.StrokeColor(); mode.HasStroke() && c != nil && c.A != 0 {
		stroke = PlainColor(*c)
	}
	p.drawTransformed(p.current.Path, fill, stroke, mode.EvenOdd())
}

// DrawLinearGradient resolves the gradient vector in the driver
// space and fills the shape with it.
func (p *Painter) DrawLinearGradient(gradient svgscene.BoundGradient, shape Shape) {
	start, end, ok := gradient.Line()
	if !ok {
		glg.Debugf("gradient vector out of the bounding box, skipping fill")
		return
	}
	ctm := p.Current().CTM
	start, end = ctm.TransformPoint(start), ctm.TransformPoint(end)
	pattern := LinearGradient{X1: start.X, Y1: start.Y, X2: end.X, Y2: end.Y, Stops: gradient.Gradient.Stops}
	p.drawTransformed(shape.Path, pattern, nil, false)
}

func (p *Painter) DrawText(text TextRun) {
	td, ok := p.driver.(TextDriver)
	if !ok {
		glg.Debugf("text drawing not supported, skipping %q", text.Text)
		return
	}
	td.DrawText(text, p.Current().CTM)
}

func (p *Painter) strokeOptions() StrokeOptions {
	st := p.Current()
	scale := st.CTM.ScaleFactor()
	out := StrokeOptions{
		LineWidth: fixed.Int26_6(p.LineWidth() * scale * 64),
		Join: JoinOptions{
			MiterLimit: fixed.Int26_6(defaultMiterLimit * 64),
			LineJoin:   Miter,
			LineCap:    ButtCap,
			LineGap:    FlatGap,
		},
	}
	if ml := st.Style.MiterLimit; ml != nil {
		out.Join.MiterLimit = fixed.Int26_6(*ml * 64)
	}
	if j := st.Style.LineJoin; j != nil {
		switch *j {
		case svgscene.JoinRound:
			out.Join.LineJoin = Round
			out.Join.LineGap = RoundGap
		case svgscene.JoinBevel:
			out.Join.LineJoin = Bevel
		}
	}
	if c := st.Style.LineCap; c != nil {
		switch *c {
		case svgscene.CapRound:
			out.Join.LineCap = RoundCap
		case svgscene.CapSquare:
			out.Join.LineCap = SquareCap
		}
	}
	if len(st.Style.Dash) != 0 {
		out.Dash.Dash = make([]float64, len(st.Style.Dash))
		for i, d := range st.Style.Dash {
			out.Dash.Dash[i] = d * scale
		}
		if ph := st.Style.DashPhase; ph != nil {
			out.Dash.DashOffset = *ph * scale
		}
	}
	return out
}

// drawTransformed draws the path into the driver while applying the current transform.
// A nil pattern disables the corresponding operation.
func (p *Painter) drawTransformed(path svgpath.Path, fill, stroke Pattern, evenOdd bool) {
	ctm := p.Current().CTM
	opacity := p.opacity()

	filler, stroker := p.driver.SetupDrawers(fill != nil, stroke != nil)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(!evenOdd)
		path.AddTo(fixedAdder{filler}, ctm)
		filler.Draw(fill, opacity)
		filler.SetWinding(true) // default is true
	}

	if stroker != nil {
		stroker.Clear()
		stroker.SetStrokeOptions(p.strokeOptions())
		path.AddTo(fixedAdder{stroker}, ctm)
		stroker.Draw(stroke, opacity)
	}
}

// ResolveColor returns the color with the opacity applied to its alpha.
func ResolveColor(c PlainColor, opacity float64) svgparse.Color {
	return svgparse.Color(c).WithAlpha(opacity)
}
