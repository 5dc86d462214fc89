package svgscene

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
)

// Default values used when a property is not specified
// anywhere in the ancestors.
const (
	DefaultFontFamily = "Helvetica"
	DefaultFontSize   = 12.
	DefaultLineWidth  = 1.
)

func (s *Scene) parentKind(id NodeID) (Kind, bool) {
	p := s.Parent(id)
	if p == NoNode {
		return 0, false
	}
	return s.Kind(p), true
}

// FillColor resolves the fill color of the node : none if fill is disabled,
// the explicit fill if any, the fill of the parent group otherwise.
// At the top of the tree, the explicit fill of the document is used,
// or black by default.
func (s *Scene) FillColor(id NodeID) (svgparse.Color, bool) {
	n := s.nodes[id]
	if !n.DrawFill {
		return svgparse.Color{}, false
	}
	if n.Style != nil && n.Style.Fill != nil {
		return *n.Style.Fill, true
	}
	kind, ok := s.parentKind(id)
	if !ok {
		return svgparse.Color{}, false
	}
	switch kind {
	case KindGroup:
		return s.FillColor(n.parent)
	case KindDocument:
		doc := s.nodes[n.parent]
		if !doc.DrawFill {
			return svgparse.Color{}, false
		}
		if doc.Style != nil && doc.Style.Fill != nil {
			return *doc.Style.Fill, true
		}
		return svgparse.Black, true
	}
	return svgparse.Color{}, false
}

// StrokeColor resolves the stroke color of the node, inherited
// through the groups (and the document). There is no stroke by default,
// and a fully transparent stroke (as stored for stroke="none") is not drawn.
func (s *Scene) StrokeColor(id NodeID) (svgparse.Color, bool) {
	for ; id != NoNode; id = s.nodes[id].parent {
		n := s.nodes[id]
		if n.Style != nil && n.Style.Stroke != nil {
			return *n.Style.Stroke, n.Style.Stroke.A != 0
		}
		if kind, ok := s.parentKind(id); !ok || (kind != KindGroup && kind != KindDocument) {
			break
		}
	}
	return svgparse.Color{}, false
}

// GradientFill returns the gradient used to fill the node, or NoNode.
// A node without explicit fill inherits the gradient of its parent group.
func (s *Scene) GradientFill(id NodeID) NodeID {
	for ; id != NoNode; id = s.nodes[id].parent {
		n := s.nodes[id]
		if n.Gradient != NoNode {
			return n.Gradient
		}
		if !n.DrawFill || (n.Style != nil && n.Style.Fill != nil) {
			return NoNode
		}
		if kind, ok := s.parentKind(id); !ok || kind != KindGroup {
			break
		}
	}
	return NoNode
}

// FontFamily returns the explicit font family of the node or of its
// parent groups, or "Helvetica".
func (s *Scene) FontFamily(id NodeID) string {
	for ; id != NoNode; id = s.nodes[id].parent {
		n := s.nodes[id]
		if n.TextStyle != nil && n.TextStyle.FontFamily != nil {
			return *n.TextStyle.FontFamily
		}
		if kind, ok := s.parentKind(id); !ok || kind != KindGroup {
			break
		}
	}
	return DefaultFontFamily
}

// FontSize returns the explicit font size of the node or of any ancestor, or 12.
func (s *Scene) FontSize(id NodeID) float64 {
	for ; id != NoNode; id = s.nodes[id].parent {
		if ts := s.nodes[id].TextStyle; ts != nil && ts.FontSize != nil {
			return *ts.FontSize
		}
	}
	return DefaultFontSize
}

// TextAnchor returns the explicit text anchor of the node or of any ancestor.
func (s *Scene) TextAnchor(id NodeID) TextAnchor {
	for ; id != NoNode; id = s.nodes[id].parent {
		if ts := s.nodes[id].TextStyle; ts != nil && ts.Anchor != nil {
			return *ts.Anchor
		}
	}
	return AnchorStart
}

// EffectiveStyle merges the explicit styles of the node and its ancestors,
// the nearest one winning.
func (s *Scene) EffectiveStyle(id NodeID) Style {
	var out Style
	for ; id != NoNode; id = s.nodes[id].parent {
		out = out.Inherit(s.nodes[id].Style)
	}
	return out
}

// CTM returns the transformation from the node user space
// to the root coordinates.
func (s *Scene) CTM(id NodeID) svgpath.Matrix2D {
	m := svgpath.Identity
	for ; id != NoNode; id = s.nodes[id].parent {
		if t := s.nodes[id].Transform; t != nil {
			m = t.Mult(m)
		}
	}
	return m
}

// SpanFillColor resolves the fill of a span of the text node `text`.
func (s *Scene) SpanFillColor(text NodeID, span TextSpan) (svgparse.Color, bool) {
	if span.NoFill {
		return svgparse.Color{}, false
	}
	if span.Style != nil && span.Style.Fill != nil {
		return *span.Style.Fill, true
	}
	return s.FillColor(text)
}

// SpanStrokeColor resolves the stroke of a span of the text node `text`.
func (s *Scene) SpanStrokeColor(text NodeID, span TextSpan) (svgparse.Color, bool) {
	if span.Style != nil && span.Style.Stroke != nil {
		return *span.Style.Stroke, span.Style.Stroke.A != 0
	}
	return s.StrokeColor(text)
}

// SpanStrokeWidth returns the width used to outline the span:
// the span line width, the text line width, or 1.
// Following the text drawing convention, a negative value
// means the glyphs are both filled and stroked.
func (s *Scene) SpanStrokeWidth(text NodeID, span TextSpan) float64 {
	w := DefaultLineWidth
	if span.Style != nil && span.Style.LineWidth != nil {
		w = *span.Style.LineWidth
	} else if st := s.EffectiveStyle(text); st.LineWidth != nil {
		w = *st.LineWidth
	}
	if _, hasFill := s.SpanFillColor(text, span); hasFill {
		w = -w
	}
	return w
}

// SpanFontFamily returns the font family of the span, defaulting to the text one.
func (s *Scene) SpanFontFamily(text NodeID, span TextSpan) string {
	if span.TextStyle != nil && span.TextStyle.FontFamily != nil {
		return *span.TextStyle.FontFamily
	}
	return s.FontFamily(text)
}

// SpanFontSize returns the font size of the span, defaulting to the text one.
func (s *Scene) SpanFontSize(text NodeID, span TextSpan) float64 {
	if span.TextStyle != nil && span.TextStyle.FontSize != nil {
		return *span.TextStyle.FontSize
	}
	return s.FontSize(text)
}

// SpanAnchor returns the anchor of the span, defaulting to the text one.
func (s *Scene) SpanAnchor(text NodeID, span TextSpan) TextAnchor {
	if span.TextStyle != nil && span.TextStyle.Anchor != nil {
		return *span.TextStyle.Anchor
	}
	return s.TextAnchor(text)
}

// Geometry returns the path of the node in its user space:
// the path of a shape, or the union of the children paths (with their
// transforms applied) for a container. Text has no geometry.
func (s *Scene) Geometry(id NodeID) svgpath.Path {
	n := s.nodes[id]
	if shape, ok := n.Content.(Shape); ok {
		return shape.Geometry()
	}
	if !s.IsContainer(id) {
		return nil
	}
	var out svgpath.Path
	for _, child := range n.children {
		p := s.Geometry(child)
		if t := s.nodes[child].Transform; t != nil {
			p = p.Transform(*t)
		}
		out = append(out, p...)
	}
	return out
}

// DocumentSize returns the view port of the document, or its
// view box when no view port is set. It returns false when
// the root is not a Document, or has no usable size.
func (s *Scene) DocumentSize() (svgpath.Rect, bool) {
	n := s.Node(s.root)
	if n == nil {
		return svgpath.Rect{}, false
	}
	doc, ok := n.Content.(Document)
	if !ok {
		return svgpath.Rect{}, false
	}
	if doc.ViewPort != nil && !doc.ViewPort.IsEmpty() {
		return *doc.ViewPort, true
	}
	if doc.ViewBox != nil && !doc.ViewBox.IsEmpty() {
		return *doc.ViewBox, true
	}
	return svgpath.Rect{}, false
}
