package svgparse

import (
	"errors"
	"math"
	"strconv"

	"github.com/benoitkugler/svgscene/svgpath"
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// ParseTransform parses a transform list such as
// "translate(10,20) rotate(45 5 5)". The functions are composed
// from left to right, so that the last one is applied first to the points.
// An empty list returns the identity.
func ParseTransform(s string) (svgpath.Matrix2D, error) {
	m := svgpath.Identity
	sc := scanner{src: s}
	for {
		sc.skipSeparator()
		if sc.eof() {
			return m, nil
		}
		start := sc.pos
		for !sc.eof() && (isLower(sc.peek()) || sc.peek() == 'X' || sc.peek() == 'Y') {
			sc.pos++
		}
		name := sc.src[start:sc.pos]
		sc.skipSpaces()
		if name == "" || sc.peek() != '(' {
			return m, NewError(ErrInvalidSVG, "transform", s)
		}
		sc.pos++
		var args []float64
		for {
			sc.skipSeparator()
			if sc.peek() == ')' {
				sc.pos++
				break
			}
			f, ok := sc.number()
			if !ok { // includes unterminated lists
				return m, NewError(ErrInvalidSVG, "transform", s)
			}
			args = append(args, f)
		}
		var err error
		m, err = applyTransformFunc(m, name, args)
		if err != nil {
			return m, &Error{Kind: ErrInvalidSVG, Op: "transform", Value: s, Err: err}
		}
	}
}

type paramMismatchError struct {
	name string
	got  int
}

func (e paramMismatchError) Error() string {
	return "wrong number of arguments for " + e.name + ": " + strconv.Itoa(e.got)
}

func applyTransformFunc(m svgpath.Matrix2D, name string, args []float64) (svgpath.Matrix2D, error) {
	ln := len(args)
	switch name {
	case "matrix":
		if ln != 6 {
			return m, paramMismatchError{name, ln}
		}
		return m.Mult(svgpath.Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), nil
	case "translate":
		switch ln {
		case 1:
			return m.Translate(args[0], 0), nil
		case 2:
			return m.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch ln {
		case 1:
			return m.Scale(args[0], args[0]), nil
		case 2:
			return m.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch ln {
		case 1:
			return m.Rotate(toRadians(args[0])), nil
		case 3:
			return m.Translate(args[1], args[2]).
				Rotate(toRadians(args[0])).
				Translate(-args[1], -args[2]), nil
		}
	case "skewX":
		if ln == 1 {
			return m.SkewX(toRadians(args[0])), nil
		}
	case "skewY":
		if ln == 1 {
			return m.SkewY(toRadians(args[0])), nil
		}
	default:
		return m, errors.New("unknown transform function " + name)
	}
	return m, paramMismatchError{name, ln}
}
