package svgpath

import (
	"fmt"
	"math"
)

// Matrix2D is an affine transformation, with the same layout
// as the SVG matrix(a b c d e f) function :
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transformation.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// NewTranslation returns the matrix of a translation by (x, y).
func NewTranslation(x, y float64) Matrix2D { return Matrix2D{1, 0, 0, 1, x, y} }

// Mult returns a * b, that is the transformation applying `b` first
// and then `a`.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate post-multiplies by a translation.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(NewTranslation(x, y))
}

// Scale post-multiplies by a scaling.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate post-multiplies by a rotation of `theta` radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// SkewX post-multiplies by a skew along the x axis (radians).
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY post-multiplies by a skew along the y axis (radians).
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Determinant returns A*D - B*C
func (a Matrix2D) Determinant() float64 { return a.A*a.D - a.B*a.C }

// Invert returns the inverse matrix, or `a` unchanged if
// it is not invertible.
func (a Matrix2D) Invert() Matrix2D {
	det := a.Determinant()
	if det == 0 {
		return a
	}
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}
}

// Transform applies the matrix to (x, y)
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TransformPoint applies the matrix to `p`.
func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

// IsIdentity returns true for the identity matrix.
func (a Matrix2D) IsIdentity() bool { return a == Identity }

// ScaleFactor returns an approximation of the uniform scaling
// applied by the matrix, used to convert lengths like line widths.
func (a Matrix2D) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(a.Determinant()))
}

func (a Matrix2D) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", a.A, a.B, a.C, a.D, a.E, a.F)
}
