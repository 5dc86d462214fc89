package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPointInDelta(t *testing.T, expected, got Point) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, 1e-9)
	assert.InDelta(t, expected.Y, got.Y, 1e-9)
}

func TestMatrixComposition(t *testing.T) {
	// translate(10,0) scale(2) : scale first, then translate
	m := Identity.Translate(10, 0).Scale(2, 2)
	assertPointInDelta(t, Point{10, 0}, m.TransformPoint(Point{0, 0}))
	assertPointInDelta(t, Point{12, 0}, m.TransformPoint(Point{1, 0}))

	rot := Identity.Rotate(math.Pi / 2)
	assertPointInDelta(t, Point{0, 1}, rot.TransformPoint(Point{1, 0}))

	inv := m.Invert()
	assertPointInDelta(t, Point{1, 0}, inv.TransformPoint(Point{12, 0}))
	assert.True(t, m.Mult(inv).IsIdentity())

	skew := Identity.SkewX(math.Pi / 4)
	assertPointInDelta(t, Point{1, 1}, skew.TransformPoint(Point{0, 1}))
}

func TestToSVGPath(t *testing.T) {
	var p Path
	p.Start(Point{1, 2})
	p.Line(Point{3, 4})
	p.QuadBezier(Point{5, 6}, Point{7, 8})
	p.CubeBezier(Point{1, 1}, Point{2, 2}, Point{3, 3})
	p.Stop(true)
	assert.Equal(t, "M1,2 L3,4 Q5,6,7,8 C1,1,2,2,3,3 Z", p.ToSVGPath())

	p.Clear()
	assert.Empty(t, p)
}

func TestPathUnion(t *testing.T) {
	var a, b Path
	a.AddRect(Rect{0, 0, 1, 1})
	b.AddRect(Rect{5, 5, 1, 1})
	u := a.Union(b)
	require.Len(t, u, len(a)+len(b))
	assert.Equal(t, Rect{0, 0, 6, 6}, u.Bounds())
	// the operands are not modified
	assert.Equal(t, Rect{0, 0, 1, 1}, a.Bounds())
}

func TestBounds(t *testing.T) {
	var p Path
	assert.Equal(t, Rect{}, p.Bounds())

	p.AddEllipse(Rect{X: 10, Y: 20, W: 40, H: 20})
	b := p.Bounds()
	assert.InDelta(t, 10, b.X, 1e-9)
	assert.InDelta(t, 20, b.Y, 1e-9)
	assert.InDelta(t, 40, b.W, 1e-9)
	assert.InDelta(t, 20, b.H, 1e-9)

	// the extremum of a curve is reached between its end points
	p = Path{MoveTo{0, 0}, QuadTo{{5, 10}, {10, 0}}}
	b = p.Bounds()
	assert.InDelta(t, 5, b.H, 1e-9)
	assert.InDelta(t, 10, b.W, 1e-9)
}

func TestClampRadii(t *testing.T) {
	r := Rect{0, 0, 10, 4}
	rx, ry := ClampRadii(r, 3, -1)
	assert.Equal(t, 3., rx)
	assert.Equal(t, 2., ry) // clamped to h/2

	rx, ry = ClampRadii(r, -1, 1)
	assert.Equal(t, 1., rx)
	assert.Equal(t, 1., ry)

	rx, ry = ClampRadii(r, -1, -1)
	assert.Zero(t, rx)
	assert.Zero(t, ry)
}

func TestRoundRect(t *testing.T) {
	var p Path
	p.AddRoundRect(Rect{0, 0, 10, 10}, 2, 2)
	assert.Equal(t, MoveTo{2, 0}, p[0])
	assert.Equal(t, Close{}, p[len(p)-1])
	b := p.Bounds()
	assert.InDelta(t, 10, b.W, 1e-9)

	p.Clear()
	p.AddRoundRect(Rect{0, 0, 10, 10}, 0, 0)
	assert.Len(t, p, 5)
}

func TestArc(t *testing.T) {
	var p Path
	p.Start(Point{0, 0})
	lx, ly := p.AddArc(ArcParams{Rx: 5, Ry: 5, EndX: 10, EndY: 0, Sweep: true}, 0, 0)
	assert.Equal(t, 10., lx)
	assert.Equal(t, 0., ly)
	last, ok := p[len(p)-1].(CubicTo)
	require.True(t, ok)
	assertPointInDelta(t, Point{10, 0}, last[2])
	b := p.Bounds()
	assert.InDelta(t, 5, b.H, 1e-6)

	// null radius degrades to a line
	p.Clear()
	p.Start(Point{0, 0})
	p.AddArc(ArcParams{Rx: 0, Ry: 5, EndX: 3, EndY: 4}, 0, 0)
	assert.Equal(t, LineTo{3, 4}, p[1])
}

type recorder struct{ calls []string }

func (r *recorder) Start(a Point)            { r.calls = append(r.calls, "start") }
func (r *recorder) Line(b Point)             { r.calls = append(r.calls, "line") }
func (r *recorder) QuadBezier(b, c Point)    { r.calls = append(r.calls, "quad") }
func (r *recorder) CubeBezier(b, c, d Point) { r.calls = append(r.calls, "cubic") }
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.calls = append(r.calls, "close")
	}
}

func TestAddTo(t *testing.T) {
	var p Path
	p.AddPolyline([]Point{{0, 0}, {1, 0}, {1, 1}}, true)
	var r recorder
	p.AddTo(&r, Identity)
	assert.Equal(t, []string{"start", "line", "line", "close"}, r.calls)
}
