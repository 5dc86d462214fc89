package svgscene

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
)

// CoalesceGradient resolves the `href` chain of the gradient `id`:
// each unspecified field (points, stops, transform and the
// style properties) is taken from the nearest gradient specifying it.
// The units are inherited unless the gradient itself asks for userSpaceOnUse.
// The returned gradient has no inherited reference.
// Reference cycles are cut when a gradient is visited twice.
func (s *Scene) CoalesceGradient(id NodeID) (LinearGradient, Style) {
	return s.coalesceGradient(id, map[NodeID]bool{})
}

func (s *Scene) coalesceGradient(id NodeID, seen map[NodeID]bool) (LinearGradient, Style) {
	n := s.Node(id)
	if n == nil {
		return LinearGradient{Inherited: NoNode}, Style{}
	}
	g, _ := n.Content.(LinearGradient)
	style := n.Style.Inherit(nil)
	seen[id] = true
	if g.Inherited == NoNode || seen[g.Inherited] {
		g.Inherited = NoNode
		return g, style
	}
	if pn := s.Node(g.Inherited); pn == nil || pn.Content.Kind() != KindLinearGradient {
		g.Inherited = NoNode
		return g, style
	}

	parent, parentStyle := s.coalesceGradient(g.Inherited, seen)
	if g.Point1 == nil {
		g.Point1 = parent.Point1
	}
	if g.Point2 == nil {
		g.Point2 = parent.Point2
	}
	if len(g.Stops) == 0 {
		g.Stops = parent.Stops
	}
	// an explicit userSpaceOnUse is kept, anything else defers to the parent
	if (g.Units == nil || *g.Units != UserSpaceOnUse) && parent.Units != nil {
		g.Units = parent.Units
	}
	if g.Transform == nil {
		g.Transform = parent.Transform
	}
	g.Inherited = NoNode
	return g, style.Inherit(&parentStyle)
}

// BoundGradient is a coalesced gradient attached to the element it fills.
// It is built right before each use, so that the
// object bounding box always matches the current owner.
type BoundGradient struct {
	Gradient LinearGradient
	Style    Style
	Owner    NodeID
	Bounds   svgpath.Rect // bounding box of the owner geometry, in its user space
}

// BindGradient coalesces the gradient `id` and attaches it to `owner`.
func (s *Scene) BindGradient(id, owner NodeID) BoundGradient {
	g, st := s.CoalesceGradient(id)
	return BoundGradient{Gradient: g, Style: st, Owner: owner, Bounds: s.Geometry(owner).Bounds()}
}

// Units returns the coordinate system, defaulting to ObjectBoundingBox.
func (b BoundGradient) Units() GradientUnits {
	if b.Gradient.Units == nil {
		return ObjectBoundingBox
	}
	return *b.Gradient.Units
}

// ConvertPoint maps a gradient point into the owner user space.
// In user space units, the gradient transform is simply applied. In
// bounding box units, the point must lie in [0,1]x[0,1], and is scaled
// into the owner bounding box before applying the transform.
func (b BoundGradient) ConvertPoint(p svgpath.Point) (svgpath.Point, bool) {
	m := svgpath.Identity
	if b.Gradient.Transform != nil {
		m = *b.Gradient.Transform
	}
	if b.Units() == ObjectBoundingBox {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return svgpath.Point{}, false
		}
		p = svgpath.Point{X: b.Bounds.X + p.X*b.Bounds.W, Y: b.Bounds.Y + p.Y*b.Bounds.H}
	}
	return m.TransformPoint(p), true
}

// Line returns the gradient vector, converted in the owner user space.
// The default vector goes from (0,0) to (1,0).
func (b BoundGradient) Line() (start, end svgpath.Point, ok bool) {
	p1, p2 := svgpath.Point{}, svgpath.Point{X: 1}
	if b.Gradient.Point1 != nil {
		p1 = *b.Gradient.Point1
	}
	if b.Gradient.Point2 != nil {
		p2 = *b.Gradient.Point2
	}
	start, ok1 := b.ConvertPoint(p1)
	end, ok2 := b.ConvertPoint(p2)
	return start, end, ok1 && ok2
}

// Locations returns the offsets of the stops.
func (b BoundGradient) Locations() []float64 {
	out := make([]float64, len(b.Gradient.Stops))
	for i, stop := range b.Gradient.Stops {
		out[i] = stop.Offset
	}
	return out
}

// Colors returns the colors of the stops.
func (b BoundGradient) Colors() []svgparse.Color {
	out := make([]svgparse.Color, len(b.Gradient.Stops))
	for i, stop := range b.Gradient.Stops {
		out[i] = stop.Color
	}
	return out
}
