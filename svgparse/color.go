package svgparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a non premultiplied RGBA color, with components in [0, 1].
// It implements color.Color.
type Color struct {
	R, G, B, A float64
}

// Black is the default fill color.
var Black = Color{0, 0, 0, 1}

// NewColor255 builds an opaque color from 8 bit components.
func NewColor255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// WithAlpha returns a copy of the color with its alpha multiplied by `opacity`.
func (c Color) WithAlpha(opacity float64) Color {
	c.A *= opacity
	return c
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// RGBA implements color.Color, returning alpha-premultiplied values.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	r = uint32(clamp01(c.R)*alpha*0xffff + 0.5)
	g = uint32(clamp01(c.G)*alpha*0xffff + 0.5)
	b = uint32(clamp01(c.B)*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return
}

// To255 converts a component to its 8 bit value, rounding to nearest.
func To255(v float64) int {
	return int(255 * (clamp01(v) + 0.499/255))
}

// Hex returns the #RRGGBB notation of the color, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", To255(c.R), To255(c.G), To255(c.B))
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", To255(c.R), To255(c.G), To255(c.B), c.A)
}

// PaintKind distinguishes the values accepted by the fill and stroke properties.
type PaintKind uint8

const (
	PaintColor PaintKind = iota
	// PaintNone is the "none" keyword
	PaintNone
	// PaintURL is a url(#id) reference
	PaintURL
)

// Paint is the parsed value of a fill or stroke property.
type Paint struct {
	Kind  PaintKind
	Color Color  // for PaintColor
	URL   string // the target id (without '#') for PaintURL
}

// ParsePaint parses a fill or stroke value:
// "none", a url(#id) reference or a color.
func ParsePaint(s string) (Paint, error) {
	v := strings.TrimSpace(s)
	if v == "none" {
		return Paint{Kind: PaintNone}, nil
	}
	if strings.HasPrefix(v, "url(") {
		if !strings.HasSuffix(v, ")") {
			return Paint{}, NewError(ErrInvalidSVG, "paint", s)
		}
		ref := strings.TrimSpace(v[len("url(") : len(v)-1])
		ref = strings.Trim(ref, `"'`)
		if !strings.HasPrefix(ref, "#") || len(ref) == 1 {
			return Paint{}, NewError(ErrInvalidSVG, "paint", s)
		}
		return Paint{Kind: PaintURL, URL: ref[1:]}, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Kind: PaintColor, Color: c}, nil
}

// ParseColor parses a color name, a #rgb or #rrggbb hex value,
// or a rgb(r,g,b) or rgba(r,g,b,a) function, whose components
// may be integers in [0, 255] or percentages.
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(s)
	switch {
	case v == "":
		return Color{}, NewError(ErrInvalidSVG, "color", s)
	case v == "transparent":
		return Color{}, nil
	case v[0] == '#':
		return parseHexColor(v)
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunction(v)
	}
	named, ok := colornames.Map[strings.ToLower(v)]
	if !ok {
		return Color{}, NewError(ErrInvalidSVG, "color", s)
	}
	return NewColor255(named.R, named.G, named.B), nil
}

func parseHexColor(v string) (Color, error) {
	hex := v[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, NewError(ErrInvalidSVG, "color", v)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, &Error{Kind: ErrInvalidSVG, Op: "color", Value: v, Err: err}
	}
	return NewColor255(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)), nil
}

func parseRGBFunction(v string) (Color, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open == -1 || end < open {
		return Color{}, NewError(ErrInvalidSVG, "color", v)
	}
	name := strings.TrimSpace(v[:open])
	args := strings.Split(v[open+1:end], ",")
	switch {
	case name == "rgb" && len(args) == 3, name == "rgba" && len(args) == 4:
	default:
		return Color{}, NewError(ErrInvalidSVG, "color", v)
	}
	var comps [3]float64
	for i := range comps {
		arg := strings.TrimSpace(args[i])
		if strings.HasSuffix(arg, "%") {
			f, err := parseBasicFloat(strings.TrimSuffix(arg, "%"))
			if err != nil {
				return Color{}, &Error{Kind: ErrInvalidSVG, Op: "color", Value: v, Err: err}
			}
			comps[i] = clamp01(f / 100)
		} else {
			f, err := parseBasicFloat(arg)
			if err != nil {
				return Color{}, &Error{Kind: ErrInvalidSVG, Op: "color", Value: v, Err: err}
			}
			comps[i] = clamp01(f / 255)
		}
	}
	c := Color{comps[0], comps[1], comps[2], 1}
	if len(args) == 4 {
		a, err := ParseNumber(args[3])
		if err != nil {
			return Color{}, err
		}
		c.A = clamp01(a)
	}
	return c, nil
}
