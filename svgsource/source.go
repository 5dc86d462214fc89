// Package svgsource implements a backend writing the drawing
// operations as a transcript of Core Graphics calls, one per line.
// It is mostly useful to debug the traversal, or as a starting
// point to hand write drawing code.
package svgsource

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

var _ svgdraw.Target = (*Backend)(nil)

func init() {
	svgdraw.Register("source", func(svgdraw.Config) (svgdraw.Target, error) {
		return NewBackend(), nil
	})
}

// Backend accumulates the transcript.
type Backend struct {
	*svgdraw.States
	source strings.Builder
}

func NewBackend() *Backend {
	return &Backend{States: svgdraw.NewStates()}
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func fmtFloats(fs ...float64) string {
	chunks := make([]string, len(fs))
	for i, f := range fs {
		chunks[i] = fmtFloat(f)
	}
	return strings.Join(chunks, ", ")
}

func (b *Backend) call(function string, args ...string) {
	b.source.WriteString(function)
	b.source.WriteString("(context")
	for _, arg := range args {
		b.source.WriteString(", ")
		b.source.WriteString(arg)
	}
	b.source.WriteString(")\n")
}

func (b *Backend) ConcatTransform(m svgpath.Matrix2D) {
	b.States.ConcatTransform(m)
	b.call("CGContextConcatCTM", fmt.Sprintf("CGAffineTransform(%s)", fmtFloats(m.A, m.B, m.C, m.D, m.E, m.F)))
}

func (b *Backend) PushState() {
	b.States.PushState()
	b.call("CGContextSaveGState")
}

func (b *Backend) PopState() {
	b.States.PopState()
	b.call("CGContextRestoreGState")
}

func (b *Backend) StartDocument(svgpath.Rect) {}
func (b *Backend) StartGroup(string)          {}
func (b *Backend) StartElement(string)        {}
func (b *Backend) EndElement()                {}

func pathData(shape svgdraw.Shape) string {
	if shape.SVGPath != "" {
		return shape.SVGPath
	}
	return shape.Path.ToSVGPath()
}

func (b *Backend) AddPath(shape svgdraw.Shape) {
	b.call("CGContextAddPath", strconv.Quote(pathData(shape)))
}

var drawModes = [...]string{
	svgdraw.Fill:         "kCGPathFill",
	svgdraw.EOFill:       "kCGPathEOFill",
	svgdraw.Stroke:       "kCGPathStroke",
	svgdraw.FillStroke:   "kCGPathFillStroke",
	svgdraw.EOFillStroke: "kCGPathEOFillStroke",
}

func (b *Backend) DrawPath(mode svgdraw.DrawMode) {
	b.call("CGContextDrawPath", drawModes[mode])
}

func (b *Backend) DrawText(text svgdraw.TextRun) {
	b.call("CGContextSelectFont", strconv.Quote(text.FontFamily), fmtFloat(text.FontSize))
	if text.Fill != nil {
		b.setColor("CGContextSetRGBFillColor", *text.Fill)
	}
	if text.Stroke != nil {
		b.setColor("CGContextSetRGBStrokeColor", *text.Stroke)
	}
	b.call("CGContextShowTextAtPoint", fmtFloats(text.Origin.X, text.Origin.Y), strconv.Quote(text.Text), strconv.Itoa(len(text.Text)))
}

func (b *Backend) DrawLinearGradient(gradient svgscene.BoundGradient, shape svgdraw.Shape) {
	start, end, ok := gradient.Line()
	if !ok {
		return
	}
	b.PushState()
	b.AddPath(shape)
	b.call("CGContextClip")
	colors := make([]string, len(gradient.Gradient.Stops))
	for i, c := range gradient.Colors() {
		colors[i] = fmt.Sprintf("CGColor(%s)", fmtFloats(c.R, c.G, c.B, c.A))
	}
	b.call("CGContextDrawLinearGradient",
		fmt.Sprintf("CGGradient([%s], [%s])", strings.Join(colors, ", "), fmtFloats(gradient.Locations()...)),
		fmt.Sprintf("CGPoint(%s)", fmtFloats(start.X, start.Y)),
		fmt.Sprintf("CGPoint(%s)", fmtFloats(end.X, end.Y)),
		"0")
	b.PopState()
}

func (b *Backend) setColor(function string, c svgparse.Color) {
	b.call(function, fmtFloats(c.R, c.G, c.B, c.A))
}

func (b *Backend) SetFillColor(c *svgparse.Color) {
	b.States.SetFillColor(c)
	if c != nil {
		b.setColor("CGContextSetRGBFillColor", *c)
	}
}

func (b *Backend) SetStrokeColor(c *svgparse.Color) {
	b.States.SetStrokeColor(c)
	if c != nil {
		b.setColor("CGContextSetRGBStrokeColor", *c)
	}
}

func (b *Backend) SetLineWidth(w float64) {
	b.States.SetLineWidth(w)
	b.call("CGContextSetLineWidth", fmtFloat(w))
}

var (
	lineCaps  = [...]string{svgscene.CapButt: "kCGLineCapButt", svgscene.CapRound: "kCGLineCapRound", svgscene.CapSquare: "kCGLineCapSquare"}
	lineJoins = [...]string{svgscene.JoinMiter: "kCGLineJoinMiter", svgscene.JoinRound: "kCGLineJoinRound", svgscene.JoinBevel: "kCGLineJoinBevel"}
)

func (b *Backend) SetStyle(style svgscene.Style) {
	b.States.SetStyle(style)
	if style.Fill != nil {
		b.setColor("CGContextSetRGBFillColor", *style.Fill)
	}
	if style.Stroke != nil {
		b.setColor("CGContextSetRGBStrokeColor", *style.Stroke)
	}
	if style.LineWidth != nil {
		b.call("CGContextSetLineWidth", fmtFloat(*style.LineWidth))
	}
	if style.LineCap != nil {
		b.call("CGContextSetLineCap", lineCaps[*style.LineCap])
	}
	if style.LineJoin != nil {
		b.call("CGContextSetLineJoin", lineJoins[*style.LineJoin])
	}
	if style.MiterLimit != nil {
		b.call("CGContextSetMiterLimit", fmtFloat(*style.MiterLimit))
	}
	if style.Alpha != nil {
		b.call("CGContextSetAlpha", fmtFloat(*style.Alpha))
	}
	if style.BlendMode != nil {
		b.call("CGContextSetBlendMode", "kCGBlendMode"+style.BlendMode.String())
	}
	if style.Dash != nil {
		var phase float64
		if style.DashPhase != nil {
			phase = *style.DashPhase
		}
		b.call("CGContextSetLineDash", fmtFloat(phase), "["+fmtFloats(style.Dash...)+"]", strconv.Itoa(len(style.Dash)))
	}
}

// Source returns the transcript so far.
func (b *Backend) Source() string { return b.source.String() }

func (b *Backend) WriteFile(path string) error {
	return os.WriteFile(path, []byte(b.source.String()), 0o644)
}

// Render returns the transcript of the drawing of the scene.
func Render(sc *svgscene.Scene) (string, error) {
	b := NewBackend()
	if err := svgdraw.NewRenderer(sc).Render(b); err != nil {
		return "", err
	}
	return b.Source(), nil
}
