// Given a scene graph built from an SVG document, implements how to
// draw it.
// The traversal is backend agnostic: the actual operations are
// performed by a Backend, such as a rasterizer to output .png images,
// a pdf writer or a JSON serializer.
package svgdraw

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

// DrawMode selects how the current path is painted.
type DrawMode uint8

const (
	Fill DrawMode = iota
	EOFill
	Stroke
	FillStroke
	EOFillStroke
)

// NewDrawMode returns the mode painting the fill and/or the stroke.
// `evenOdd` is only used when filling.
func NewDrawMode(hasStroke, hasFill, evenOdd bool) DrawMode {
	switch {
	case hasFill && hasStroke && evenOdd:
		return EOFillStroke
	case hasFill && hasStroke:
		return FillStroke
	case hasFill && evenOdd:
		return EOFill
	case hasFill:
		return Fill
	default:
		return Stroke
	}
}

func (m DrawMode) String() string {
	switch m {
	case Fill:
		return "Fill"
	case EOFill:
		return "EOFill"
	case Stroke:
		return "Stroke"
	case FillStroke:
		return "FillStroke"
	case EOFillStroke:
		return "EOFillStroke"
	default:
		return "<unknown DrawMode>"
	}
}

// HasFill returns true for the modes painting the interior.
func (m DrawMode) HasFill() bool { return m != Stroke }

// HasStroke returns true for the modes painting the outline.
func (m DrawMode) HasStroke() bool { return m == Stroke || m == FillStroke || m == EOFillStroke }

// EvenOdd returns true if the fill uses the even-odd rule.
func (m DrawMode) EvenOdd() bool { return m == EOFill || m == EOFillStroke }

// Shape is a path-bearing element, as sent to the backends.
type Shape struct {
	// Content is the scene content the shape comes from, so that
	// backends may use dedicated primitives (rectangles, ovals, lines).
	Content svgscene.Content
	// Path is the geometry, in the element user space.
	Path svgpath.Path
	// SVGPath is the original path data, only set for path elements
	// which have not been modified.
	SVGPath string

	// HasFill is false for gradient fills, which are
	// drawn separately.
	HasFill, HasStroke bool
}

// TextRun is a text span with its resolved styling.
type TextRun struct {
	Text       string
	Origin     svgpath.Point
	FontFamily string
	FontSize   float64
	Anchor     svgscene.TextAnchor
	Fill       *svgparse.Color // nil for no fill
	Stroke     *svgparse.Color // nil for no stroke
	// StrokeWidth is zero without stroke, and
	// negative when the text is also filled.
	StrokeWidth float64
}

// Backend performs the drawing operations requested by
// a Renderer. Most backends embed a *States to implement
// the graphics state methods.
type Backend interface {
	// ConcatTransform concatenates `m` onto the current transform.
	ConcatTransform(m svgpath.Matrix2D)
	PushState()
	PopState()

	// StartDocument is called when the root document has a view box.
	StartDocument(viewBox svgpath.Rect)
	// StartGroup and StartElement open a scope closed by EndElement.
	// `id` is the (optional) SVG id, for diagnostics.
	StartGroup(id string)
	StartElement(id string)
	EndElement()

	// AddPath sets the current path, later painted by DrawPath.
	AddPath(shape Shape)
	DrawPath(mode DrawMode)
	DrawText(text TextRun)
	// DrawLinearGradient fills the shape with the gradient,
	// whose owner is already bound.
	DrawLinearGradient(gradient svgscene.BoundGradient, shape Shape)

	FillColor() *svgparse.Color
	SetFillColor(c *svgparse.Color)
	StrokeColor() *svgparse.Color
	SetStrokeColor(c *svgparse.Color)
	LineWidth() float64
	SetLineWidth(w float64)
	Style() svgscene.Style
	// SetStyle applies the specified fields of `style`
	// onto the current graphics state.
	SetStyle(style svgscene.Style)
}
