package svgscene

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
)

// Kind identifies the variant of a node content.
type Kind uint8

const (
	KindDocument Kind = iota
	KindGroup
	KindPath
	KindLine
	KindRect
	KindEllipse
	KindCircle
	KindPolygon
	KindPolyline
	KindText
	KindLinearGradient
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindGroup:
		return "Group"
	case KindPath:
		return "Path"
	case KindLine:
		return "Line"
	case KindRect:
		return "Rect"
	case KindEllipse:
		return "Ellipse"
	case KindCircle:
		return "Circle"
	case KindPolygon:
		return "Polygon"
	case KindPolyline:
		return "Polyline"
	case KindText:
		return "Text"
	case KindLinearGradient:
		return "LinearGradient"
	default:
		return "<unknown Kind>"
	}
}

// Content is the kind specific payload of a node.
// The set of implementations is closed.
type Content interface {
	Kind() Kind
	isContent()
}

// Shape is implemented by the contents which may be
// reduced to a path.
type Shape interface {
	Content
	// Geometry returns the path equivalent to the shape,
	// in the node user space.
	Geometry() svgpath.Path
}

// Document is the content of the root `svg` element.
type Document struct {
	Profile     string // "full" for SVG 1.1 documents
	Version     string
	ViewBox     *svgpath.Rect
	ViewPort    *svgpath.Rect
	Title       string
	Description string
}

// Group is a container without geometry (`g`, `symbol`, wrappers of `use`).
type Group struct{}

// Path stores the compiled path data, and the source
// `d` attribute, which is cleared when the geometry is modified.
type Path struct {
	Data    svgpath.Path
	SVGPath string
}

type Line struct {
	Start, End svgpath.Point
}

// Rect is a rectangle, with optional rounded corners.
// Rx and Ry are already defaulted and clamped (zero for sharp corners).
type Rect struct {
	Rect   svgpath.Rect
	Rx, Ry float64
}

// Ellipse stores the bounding rectangle of the ellipse.
type Ellipse struct {
	Rect svgpath.Rect
}

type Circle struct {
	Center svgpath.Point
	Radius float64
}

type Polygon struct {
	Points []svgpath.Point
}

type Polyline struct {
	Points []svgpath.Point
}

// Text is a list of spans, each drawn at its own origin.
type Text struct {
	Spans []TextSpan
}

// TextSpan is a run of text sharing the same style.
type TextSpan struct {
	Text      string
	Origin    svgpath.Point
	Style     *Style
	TextStyle *TextStyle
	Transform *svgpath.Matrix2D
	NoFill    bool // fill="none" on the span
}

// GradientUnits defines the coordinate system of the gradient points.
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// GradientStop is a color at a given offset along the gradient vector.
type GradientStop struct {
	Offset float64
	Color  svgparse.Color // with the stop opacity applied
}

// LinearGradient is a paint server, referenced by the fill of other nodes.
// Nil (or empty) fields are inherited from the gradient referenced by `Inherited`.
type LinearGradient struct {
	Point1, Point2 *svgpath.Point
	Stops          []GradientStop
	Units          *GradientUnits
	Transform      *svgpath.Matrix2D
	Inherited      NodeID // NoNode if none
}

func (Document) Kind() Kind       { return KindDocument }
func (Group) Kind() Kind          { return KindGroup }
func (Path) Kind() Kind           { return KindPath }
func (Line) Kind() Kind           { return KindLine }
func (Rect) Kind() Kind           { return KindRect }
func (Ellipse) Kind() Kind        { return KindEllipse }
func (Circle) Kind() Kind         { return KindCircle }
func (Polygon) Kind() Kind        { return KindPolygon }
func (Polyline) Kind() Kind       { return KindPolyline }
func (Text) Kind() Kind           { return KindText }
func (LinearGradient) Kind() Kind { return KindLinearGradient }

func (Document) isContent()       {}
func (Group) isContent()          {}
func (Path) isContent()           {}
func (Line) isContent()           {}
func (Rect) isContent()           {}
func (Ellipse) isContent()        {}
func (Circle) isContent()         {}
func (Polygon) isContent()        {}
func (Polyline) isContent()       {}
func (Text) isContent()           {}
func (LinearGradient) isContent() {}

func (c Path) Geometry() svgpath.Path { return append(svgpath.Path(nil), c.Data...) }

func (c Line) Geometry() svgpath.Path {
	return svgpath.Path{svgpath.MoveTo(c.Start), svgpath.LineTo(c.End)}
}

func (c Rect) Geometry() svgpath.Path {
	var p svgpath.Path
	p.AddRoundRect(c.Rect, c.Rx, c.Ry)
	return p
}

func (c Ellipse) Geometry() svgpath.Path {
	var p svgpath.Path
	p.AddEllipse(c.Rect)
	return p
}

// Bounds returns the bounding rectangle of the circle.
func (c Circle) Bounds() svgpath.Rect {
	return svgpath.Rect{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
}

func (c Circle) Geometry() svgpath.Path {
	var p svgpath.Path
	p.AddEllipse(c.Bounds())
	return p
}

func (c Polygon) Geometry() svgpath.Path {
	var p svgpath.Path
	p.AddPolyline(c.Points, true)
	return p
}

func (c Polyline) Geometry() svgpath.Path {
	var p svgpath.Path
	p.AddPolyline(c.Points, false)
	return p
}
