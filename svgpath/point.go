package svgpath

import "math"

// Point is a location in user space.
type Point struct {
	X, Y float64
}

// Add returns p + q
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * s
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Rect defines a bounding box, such as a viewport
// or a path extent.
type Rect struct {
	X, Y, W, H float64
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Max returns the corner opposite to the origin.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Union returns the smallest rectangle containing r and s.
// A zero rectangle is treated as empty.
func (r Rect) Union(s Rect) Rect {
	if r == (Rect{}) {
		return s
	}
	if s == (Rect{}) {
		return r
	}
	minX, minY := math.Min(r.X, s.X), math.Min(r.Y, s.Y)
	maxX, maxY := math.Max(r.X+r.W, s.X+s.W), math.Max(r.Y+r.H, s.Y+s.H)
	return Rect{minX, minY, maxX - minX, maxY - minY}
}
