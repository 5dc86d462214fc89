package svgdraw

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

// Callbacks are optional hooks called during the traversal.
type Callbacks struct {
	// PreRender is called before drawing a node, inside its
	// graphic state scope. Returning false skips the node and its children.
	PreRender func(sc *svgscene.Scene, id svgscene.NodeID, b Backend) (bool, error)
	// PostRender is called after a node (and its children) has been drawn.
	PostRender func(sc *svgscene.Scene, id svgscene.NodeID, b Backend) error
	// StyleForElement may replace the style of a node. Returning nil
	// falls back to the node own style.
	StyleForElement func(sc *svgscene.Scene, id svgscene.NodeID) (*svgscene.Style, error)
}

// Renderer walks a scene and sends the drawing operations to a backend.
// A Renderer may be reused, but not for concurrent traversals.
type Renderer struct {
	Scene     *svgscene.Scene
	Callbacks Callbacks
}

// NewRenderer returns a renderer for `sc`, without callbacks.
func NewRenderer(sc *svgscene.Scene) *Renderer {
	return &Renderer{Scene: sc}
}

// Render draws the whole scene into `b`.
func (r *Renderer) Render(b Backend) error {
	if r.Scene.Node(r.Scene.Root()) == nil {
		return nil
	}
	return r.RenderNode(b, r.Scene.Root())
}

// PathForElement returns the union of the paths of the subtree
// rooted at `id`, ignoring styles. Text contributes no path.
func (r *Renderer) PathForElement(id svgscene.NodeID) svgpath.Path {
	return r.Scene.Geometry(id)
}

func (r *Renderer) styleForElement(id svgscene.NodeID) (*svgscene.Style, error) {
	if r.Callbacks.StyleForElement != nil {
		st, err := r.Callbacks.StyleForElement(r.Scene, id)
		if err != nil {
			return nil, err
		}
		if st != nil {
			return st, nil
		}
	}
	return r.Scene.Node(id).Style, nil
}

// RenderNode draws the subtree rooted at `id`.
func (r *Renderer) RenderNode(b Backend, id svgscene.NodeID) error {
	sc := r.Scene
	n := sc.Node(id)
	if !n.Display {
		return nil
	}

	_, hasStroke := sc.StrokeColor(id)
	gradient := sc.GradientFill(id)
	hasGradientFill := gradient != svgscene.NoNode
	hasFill := false
	if !hasGradientFill && n.DrawFill {
		_, hasFill = sc.FillColor(id)
	}

	kind := n.Content.Kind()
	shape, isShape := n.Content.(svgscene.Shape)
	switch {
	case sc.IsContainer(id):
		b.StartGroup(n.ID)
	case kind == svgscene.KindText:
		// text is a group of independently transformed spans
		b.StartGroup(n.ID)
	case !(hasStroke || hasFill || hasGradientFill):
		return nil
	case isShape:
		b.StartElement(n.ID)
	default:
		return nil
	}
	defer b.EndElement()

	b.PushState()
	defer b.PopState()

	if r.Callbacks.PreRender != nil {
		ok, err := r.Callbacks.PreRender(sc, id, b)
		if err != nil || !ok {
			return err
		}
	}

	if doc, isDoc := n.Content.(svgscene.Document); isDoc {
		if doc.ViewBox != nil {
			b.StartDocument(*doc.ViewBox)
		}
		black := svgparse.Black
		b.SetFillColor(&black)
		b.SetLineWidth(svgscene.DefaultLineWidth)
	}

	if kind != svgscene.KindText {
		style, err := r.styleForElement(id)
		if err != nil {
			return err
		}
		if style != nil {
			b.SetStyle(*style)
		}
	}
	if n.Transform != nil {
		b.ConcatTransform(*n.Transform)
	}

	switch content := n.Content.(type) {
	case svgscene.Document, svgscene.Group:
		for _, child := range sc.Children(id) {
			if err := r.RenderNode(b, child); err != nil {
				return err
			}
		}
	case svgscene.Text:
		r.renderText(b, id, content)
	default:
		if !isShape {
			break
		}
		s := Shape{Content: n.Content, Path: shape.Geometry(), HasFill: hasFill, HasStroke: hasStroke}
		if p, ok := n.Content.(svgscene.Path); ok {
			s.SVGPath = p.SVGPath
		}
		if hasGradientFill {
			b.DrawLinearGradient(sc.BindGradient(gradient, id), s)
		}
		if hasStroke || hasFill {
			b.AddPath(s)
			b.DrawPath(NewDrawMode(hasStroke, hasFill, hasFill && n.EvenOdd))
		}
	}

	if r.Callbacks.PostRender != nil {
		return r.Callbacks.PostRender(sc, id, b)
	}
	return nil
}

func (r *Renderer) renderText(b Backend, id svgscene.NodeID, text svgscene.Text) {
	sc := r.Scene
	for _, span := range text.Spans {
		run := TextRun{
			Text:       span.Text,
			Origin:     span.Origin,
			FontFamily: sc.SpanFontFamily(id, span),
			FontSize:   sc.SpanFontSize(id, span),
			Anchor:     sc.SpanAnchor(id, span),
		}
		if c, ok := sc.SpanFillColor(id, span); ok {
			run.Fill = &c
		}
		if c, ok := sc.SpanStrokeColor(id, span); ok {
			run.Stroke = &c
			run.StrokeWidth = sc.SpanStrokeWidth(id, span)
		}

		b.PushState()
		b.StartElement("")
		if span.Transform != nil {
			b.ConcatTransform(*span.Transform)
		}
		b.DrawText(run)
		b.PopState()
		b.EndElement()
	}
}
