package svgparse

import (
	"errors"
	"math"
	"testing"

	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected float64
	}{
		{"12", 12},
		{" 12.5 ", 12.5},
		{"12px", 12},
		{"3pt", 3},
		{"-1e2", -100},
		{"50%", 0.5},
		{".5", 0.5},
	} {
		f, err := ParseNumber(test.in)
		require.NoError(t, err, test.in)
		assert.InDelta(t, test.expected, f, 1e-12, test.in)
	}

	_, err := ParseNumber("")
	assert.True(t, errors.Is(err, ErrCorruptXML))
	_, err = ParseNumber("px")
	assert.True(t, errors.Is(err, ErrCorruptXML))
	_, err = ParseNumber("12PX")
	assert.True(t, errors.Is(err, ErrInvalidSVG))
}

func TestParseClamped(t *testing.T) {
	f, err := ParseClamped("1.5", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1., f)

	f, err = ParseClamped("-3", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0., f)

	_, err = ParseClamped("0.5", 1, 0)
	assert.True(t, errors.Is(err, ErrInvalidFunctionParameters))
}

func TestParseNumberList(t *testing.T) {
	l, err := ParseNumberList("1,2 3 , 4\n5-6")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, -6}, l)

	l, err = ParseNumberList("10px 50%")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 0.5}, l)

	_, err = ParseNumberList("1 a")
	assert.Error(t, err)
	_, err = ParseNumberList("  ")
	assert.Error(t, err)

	d, err := ParseDashArray("none")
	assert.NoError(t, err)
	assert.Nil(t, d)
	d, err = ParseDashArray("5, 2")
	assert.NoError(t, err)
	assert.Equal(t, []float64{5, 2}, d)
}

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints("0,0 10,0 10,10")
	require.NoError(t, err)
	assert.Equal(t, []svgpath.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, pts)

	_, err = ParsePoints("0,0 10")
	assert.True(t, errors.Is(err, ErrCorruptXML))

	vb, err := ParseViewBox("0 0 100 50")
	require.NoError(t, err)
	assert.Equal(t, svgpath.Rect{W: 100, H: 50}, vb)
	_, err = ParseViewBox("0 0 100")
	assert.True(t, errors.Is(err, ErrInvalidSVG))
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in      string
		r, g, b int
	}{
		{"red", 255, 0, 0},
		{"Red", 255, 0, 0},
		{"cornflowerblue", 100, 149, 237},
		{"#00ff00", 0, 255, 0},
		{"#00F", 0, 0, 255},
		{"rgb(255, 128, 0)", 255, 128, 0},
		{"rgb(100%, 0%, 50%)", 255, 0, 127},
	} {
		c, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.r, To255(c.R), test.in)
		assert.Equal(t, test.g, To255(c.G), test.in)
		assert.Equal(t, test.b, To255(c.B), test.in)
		assert.Equal(t, 1., c.A)
	}

	c, err := ParseColor("rgba(0,0,0,0.5)")
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.A)

	for _, invalid := range []string{"", "#12", "#gggggg", "rgb(1,2)", "notacolor"} {
		_, err := ParseColor(invalid)
		assert.True(t, errors.Is(err, ErrInvalidSVG), invalid)
	}

	assert.Equal(t, "#FF8000", NewColor255(255, 128, 0).Hex())
}

func TestParsePaint(t *testing.T) {
	p, err := ParsePaint("none")
	require.NoError(t, err)
	assert.Equal(t, PaintNone, p.Kind)

	p, err = ParsePaint("url(#grad1)")
	require.NoError(t, err)
	assert.Equal(t, PaintURL, p.Kind)
	assert.Equal(t, "grad1", p.URL)

	p, err = ParsePaint("blue")
	require.NoError(t, err)
	assert.Equal(t, PaintColor, p.Kind)
	assert.Equal(t, NewColor255(0, 0, 255), p.Color)

	_, err = ParsePaint("url(grad1)")
	assert.Error(t, err)
}

func assertMatrixInDelta(t *testing.T, expected, got svgpath.Matrix2D) {
	t.Helper()
	e := [6]float64{expected.A, expected.B, expected.C, expected.D, expected.E, expected.F}
	g := [6]float64{got.A, got.B, got.C, got.D, got.E, got.F}
	for i := range e {
		assert.InDelta(t, e[i], g[i], 1e-9)
	}
}

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("translate(10,0) scale(2)")
	require.NoError(t, err)
	assertMatrixInDelta(t, svgpath.Matrix2D{A: 2, D: 2, E: 10}, m)
	x, _ := m.Transform(0, 0)
	assert.Equal(t, 10., x)
	x, _ = m.Transform(1, 0)
	assert.Equal(t, 12., x)

	m, err = ParseTransform("translate(5)")
	require.NoError(t, err)
	assertMatrixInDelta(t, svgpath.NewTranslation(5, 0), m)

	m, err = ParseTransform("rotate(90 10 10)")
	require.NoError(t, err)
	x, y := m.Transform(20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	m, err = ParseTransform("matrix(1 0 0 1 3 4), skewX(0)")
	require.NoError(t, err)
	assertMatrixInDelta(t, svgpath.NewTranslation(3, 4), m)

	m, err = ParseTransform("skewY(45)")
	require.NoError(t, err)
	assert.InDelta(t, 1, m.B, 1e-9)

	m, err = ParseTransform("")
	require.NoError(t, err)
	assert.True(t, m.IsIdentity())

	for _, invalid := range []string{"translate(1,2", "rotate(1,2)", "foo(1)", "scale()", "matrix(1 2 3)"} {
		_, err = ParseTransform(invalid)
		assert.True(t, errors.Is(err, ErrInvalidSVG), invalid)
	}
}

func TestParsePathData(t *testing.T) {
	p, err := ParsePathData("M10 10 L20 10 l0 10 H10 v-10 Z")
	require.NoError(t, err)
	assert.Equal(t, svgpath.Path{
		svgpath.MoveTo{X: 10, Y: 10},
		svgpath.LineTo{X: 20, Y: 10},
		svgpath.LineTo{X: 20, Y: 20},
		svgpath.LineTo{X: 10, Y: 20},
		svgpath.LineTo{X: 10, Y: 10},
		svgpath.Close{},
	}, p)

	// implicit lineto after moveto, implicit repetition
	p, err = ParsePathData("m1,1 2,0 0,2")
	require.NoError(t, err)
	assert.Equal(t, svgpath.Path{
		svgpath.MoveTo{X: 1, Y: 1},
		svgpath.LineTo{X: 3, Y: 1},
		svgpath.LineTo{X: 3, Y: 3},
	}, p)

	// smooth curves reflect the previous control point
	p, err = ParsePathData("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, svgpath.CubicTo{{X: 10, Y: -10}, {X: 20, Y: -10}, {X: 20, Y: 0}}, p[2])

	p, err = ParsePathData("M0 0 Q5 5 10 0 T20 0")
	require.NoError(t, err)
	assert.Equal(t, svgpath.QuadTo{{X: 15, Y: -5}, {X: 20, Y: 0}}, p[2])

	// compact arc flags
	p, err = ParsePathData("M0 0 a5 5 0 0110 0")
	require.NoError(t, err)
	last, ok := p[len(p)-1].(svgpath.CubicTo)
	require.True(t, ok)
	assert.InDelta(t, 10, last[2].X, 1e-9)
	assert.True(t, math.Abs(last[2].Y) < 1e-9)

	// a drawing command after a closepath restarts at the subpath start
	p, err = ParsePathData("M1 1 L2 2 Z L3 3")
	require.NoError(t, err)
	assert.Equal(t, svgpath.MoveTo{X: 1, Y: 1}, p[3])

	for _, invalid := range []string{"L", "10 10", "M10", "M0 0 L1 x", "M0 0 A 1 1 0 2 1 3 3"} {
		_, err = ParsePathData(invalid)
		assert.True(t, errors.Is(err, ErrInvalidSVG), invalid)
	}
}

func TestParseStyle(t *testing.T) {
	decls, err := ParseStyle("fill:red; Stroke-Width : 2;")
	require.NoError(t, err)
	assert.Equal(t, []Declaration{{"fill", "red"}, {"stroke-width", "2"}}, decls)

	_, err = ParseStyle("fill")
	assert.True(t, errors.Is(err, ErrInvalidSVG))
	_, err = ParseStyle("fill:")
	assert.True(t, errors.Is(err, ErrInvalidSVG))
}
