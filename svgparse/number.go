package svgparse

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/svgscene/svgpath"
)

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ParseNumber parses a single number or length.
// Trailing lowercase unit suffixes are stripped without conversion
// ("12px" and "12pt" both give 12), and a trailing "%" scales by 0.01.
// An empty string is reported as ErrCorruptXML.
func ParseNumber(s string) (float64, error) {
	v := strings.TrimRightFunc(strings.TrimSpace(s), func(r rune) bool { return r < 128 && isLower(byte(r)) })
	if v == "" {
		return 0, NewError(ErrCorruptXML, "number", s)
	}
	scale := 1.
	if strings.HasSuffix(v, "%") {
		scale = 0.01
		v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	}
	f, err := parseBasicFloat(v)
	if err != nil {
		return 0, &Error{Kind: ErrInvalidSVG, Op: "number", Value: s, Err: err}
	}
	return f * scale, nil
}

// ParseClamped parses a number and limits it to [min, max].
// A min greater than max is reported as ErrInvalidFunctionParameters.
func ParseClamped(s string, min, max float64) (float64, error) {
	if min > max {
		return 0, NewError(ErrInvalidFunctionParameters, "clamped number", s)
	}
	f, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if f < min {
		f = min
	} else if f > max {
		f = max
	}
	return f, nil
}

// ParseNumberList parses one or more numbers separated by white spaces
// and/or a comma. Each value may carry a lowercase unit or a percent sign.
func ParseNumberList(s string) ([]float64, error) {
	sc := scanner{src: s}
	var out []float64
	for {
		sc.skipSeparator()
		if sc.eof() {
			break
		}
		f, ok := sc.number()
		if !ok {
			return nil, NewError(ErrInvalidSVG, "number list", s)
		}
		for !sc.eof() && isLower(sc.peek()) {
			sc.pos++
		}
		if sc.peek() == '%' {
			sc.pos++
			f *= 0.01
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, NewError(ErrInvalidSVG, "number list", s)
	}
	return out, nil
}

// ParseDashArray parses a stroke-dasharray value.
// "none" returns a nil slice and no error.
func ParseDashArray(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "none" {
		return nil, nil
	}
	out, err := ParseNumberList(s)
	if err != nil {
		return nil, err
	}
	for _, v := range out {
		if v < 0 {
			return nil, NewError(ErrInvalidSVG, "stroke-dasharray", s)
		}
	}
	return out, nil
}

// ParsePoints parses the `points` attribute of polygons and polylines.
// An odd number of coordinates is an error.
func ParsePoints(s string) ([]svgpath.Point, error) {
	values, err := ParseNumberList(s)
	if err != nil {
		return nil, err
	}
	if len(values)%2 != 0 {
		return nil, NewError(ErrCorruptXML, "points", s)
	}
	out := make([]svgpath.Point, len(values)/2)
	for i := range out {
		out[i] = svgpath.Point{X: values[2*i], Y: values[2*i+1]}
	}
	return out, nil
}

// ParseViewBox parses exactly four numbers : min-x, min-y, width, height.
func ParseViewBox(s string) (svgpath.Rect, error) {
	values, err := ParseNumberList(s)
	if err != nil {
		return svgpath.Rect{}, err
	}
	if len(values) != 4 {
		return svgpath.Rect{}, NewError(ErrInvalidSVG, "viewBox", s)
	}
	return svgpath.Rect{X: values[0], Y: values[1], W: values[2], H: values[3]}, nil
}
