package svgscene

import (
	"github.com/benoitkugler/svgscene/svgparse"
)

// LineCap defines how to draw caps on the ends of lines
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "<unknown LineCap>"
	}
}

// LineJoin defines how stroke segments bridge the gap at a join
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "<unknown LineJoin>"
	}
}

// BlendMode is the compositing operator used when painting.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
)

var blendModeNames = [...]string{"Normal", "Multiply", "Screen", "Overlay", "Darken", "Lighten"}

// String returns the PDF name of the blend mode.
func (b BlendMode) String() string {
	if int(b) < len(blendModeNames) {
		return blendModeNames[b]
	}
	return "<unknown BlendMode>"
}

// ParseBlendMode accepts the CSS mix-blend-mode keywords.
func ParseBlendMode(s string) (BlendMode, bool) {
	switch s {
	case "normal":
		return BlendNormal, true
	case "multiply":
		return BlendMultiply, true
	case "screen":
		return BlendScreen, true
	case "overlay":
		return BlendOverlay, true
	case "darken":
		return BlendDarken, true
	case "lighten":
		return BlendLighten, true
	}
	return 0, false
}

// Ptr returns a pointer to a copy of `v`, handy to fill the optional fields
// of Style and TextStyle.
func Ptr[T any](v T) *T { return &v }

// Style is a set of optional drawing properties.
// A nil field is not specified and will be inherited.
// The pointed values are never modified once stored in a Style,
// so that styles may share them.
type Style struct {
	Fill       *svgparse.Color
	Stroke     *svgparse.Color
	LineWidth  *float64
	LineCap    *LineCap
	LineJoin   *LineJoin
	MiterLimit *float64
	Dash       []float64
	DashPhase  *float64
	Flatness   *float64
	Alpha      *float64
	BlendMode  *BlendMode
}

// IsEmpty returns true if no property is specified.
func (s *Style) IsEmpty() bool {
	return s == nil || s.Equal(&Style{})
}

// Inherit returns a copy of `s` where the unspecified fields are
// taken from `parent`. Both arguments may be nil.
func (s *Style) Inherit(parent *Style) Style {
	var out Style
	if s != nil {
		out = *s
	}
	if parent == nil {
		return out
	}
	if out.Fill == nil {
		out.Fill = parent.Fill
	}
	if out.Stroke == nil {
		out.Stroke = parent.Stroke
	}
	if out.LineWidth == nil {
		out.LineWidth = parent.LineWidth
	}
	if out.LineCap == nil {
		out.LineCap = parent.LineCap
	}
	if out.LineJoin == nil {
		out.LineJoin = parent.LineJoin
	}
	if out.MiterLimit == nil {
		out.MiterLimit = parent.MiterLimit
	}
	if out.Dash == nil {
		out.Dash = parent.Dash
	}
	if out.DashPhase == nil {
		out.DashPhase = parent.DashPhase
	}
	if out.Flatness == nil {
		out.Flatness = parent.Flatness
	}
	if out.Alpha == nil {
		out.Alpha = parent.Alpha
	}
	if out.BlendMode == nil {
		out.BlendMode = parent.BlendMode
	}
	return out
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloats(a, b []float64) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equal compares the specified properties of the two styles,
// a nil style being equal to an empty one.
func (s *Style) Equal(other *Style) bool {
	var a, b Style
	if s != nil {
		a = *s
	}
	if other != nil {
		b = *other
	}
	return eqPtr(a.Fill, b.Fill) &&
		eqPtr(a.Stroke, b.Stroke) &&
		eqPtr(a.LineWidth, b.LineWidth) &&
		eqPtr(a.LineCap, b.LineCap) &&
		eqPtr(a.LineJoin, b.LineJoin) &&
		eqPtr(a.MiterLimit, b.MiterLimit) &&
		eqFloats(a.Dash, b.Dash) &&
		eqPtr(a.DashPhase, b.DashPhase) &&
		eqPtr(a.Flatness, b.Flatness) &&
		eqPtr(a.Alpha, b.Alpha) &&
		eqPtr(a.BlendMode, b.BlendMode)
}

// TextAnchor is the horizontal alignment of a text span
// relative to its origin.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextStyle stores the optional font properties.
type TextStyle struct {
	FontFamily *string
	FontSize   *float64
	Anchor     *TextAnchor
}

// Inherit returns a copy of `s` completed by `parent`.
func (s *TextStyle) Inherit(parent *TextStyle) TextStyle {
	var out TextStyle
	if s != nil {
		out = *s
	}
	if parent == nil {
		return out
	}
	if out.FontFamily == nil {
		out.FontFamily = parent.FontFamily
	}
	if out.FontSize == nil {
		out.FontSize = parent.FontSize
	}
	if out.Anchor == nil {
		out.Anchor = parent.Anchor
	}
	return out
}

// Equal compares the specified properties.
func (s *TextStyle) Equal(other *TextStyle) bool {
	var a, b TextStyle
	if s != nil {
		a = *s
	}
	if other != nil {
		b = *other
	}
	return eqPtr(a.FontFamily, b.FontFamily) && eqPtr(a.FontSize, b.FontSize) && eqPtr(a.Anchor, b.Anchor)
}
