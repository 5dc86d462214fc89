package svgdraw

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge.
// In particular, the transformation matrix is already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// Draw fills or strokes the accumulated path using the current settings
	// and the given color.
	Draw(color Pattern, opacity float64)
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

// Driver is the low level interface implemented by the raster
// and PDF outputs, wrapped into a Backend by Painter.
type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// TextDriver is implemented by drivers able to draw text.
type TextDriver interface {
	// DrawText draws the text run, whose origin
	// and font size are already transformed by `ctm`.
	DrawText(text TextRun, ctm svgpath.Matrix2D)
}

// Pattern is either a PlainColor or a LinearGradient
type Pattern interface {
	isPattern()
}

func (PlainColor) isPattern()     {}
func (LinearGradient) isPattern() {}

// PlainColor is a single color.
type PlainColor svgparse.Color

// LinearGradient is a gradient resolved in the driver space:
// its points are already transformed.
type LinearGradient struct {
	X1, Y1, X2, Y2 float64
	Stops          []svgscene.GradientStop
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	FlatGap GapMode = iota
	RoundGap
)

func (g GapMode) String() string {
	switch g {
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	default:
		return "<unknown GapMode>"
	}
}

type JoinOptions struct {
	MiterLimit fixed.Int26_6 // the miter cutoff value for the Miter join
	LineJoin   JoinMode
	LineCap    CapMode
	LineGap    GapMode // not an SVG property: determines how a gap on the convex side of two lines joining is filled
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}
