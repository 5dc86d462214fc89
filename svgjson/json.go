// Package svgjson implements a backend serializing the drawing
// operations as a MovingImages JSON description: containers become
// element arrays, and drawing elements carry their style and geometry.
package svgjson

import (
	"os"

	json "github.com/goccy/go-json"
	"github.com/kpango/glg"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

var _ svgdraw.Target = (*Backend)(nil)

func init() {
	svgdraw.Register("json", func(svgdraw.Config) (svgdraw.Target, error) {
		return NewBackend(), nil
	})
}

type element struct {
	parent    *element
	container bool
	props     dict
	children  []*element
	gradient  dict // drawn before the path, if any
}

func (el *element) toDict() dict {
	out := make(dict, len(el.props)+2)
	for k, v := range el.props {
		out[k] = v
	}
	if el.container {
		children := make([]interface{}, len(el.children))
		for i, child := range el.children {
			children[i] = child.toDict()
		}
		out[keyElementType] = keyArrayOfElements
		out[keyArrayOfElements] = children
		return out
	}
	if el.gradient == nil {
		return out
	}
	if _, hasDrawing := out[keyElementType]; !hasDrawing {
		for k, v := range el.gradient {
			out[k] = v
		}
		return out
	}
	// both a gradient and a path: keep the element level
	// entries on a wrapper
	wrapper := dict{}
	for _, k := range [...]string{keyAffineTransform, keyElementDebugName, keyContextAlpha, keyBlendMode} {
		if v, ok := out[k]; ok {
			wrapper[k] = v
			delete(out, k)
		}
	}
	wrapper[keyElementType] = keyArrayOfElements
	wrapper[keyArrayOfElements] = []interface{}{el.gradient, out}
	return wrapper
}

// Backend accumulates the description of the drawing.
// Its zero value is not usable: use NewBackend.
type Backend struct {
	*svgdraw.States
	root, current *element
}

// NewBackend returns an empty description.
func NewBackend() *Backend {
	root := &element{container: true, props: dict{}}
	return &Backend{States: svgdraw.NewStates(), root: root, current: root}
}

func (b *Backend) ConcatTransform(m svgpath.Matrix2D) {
	b.States.ConcatTransform(m)
	b.current.props[keyAffineTransform] = transformDict(m)
}

func (b *Backend) StartDocument(viewBox svgpath.Rect) {
	b.current.props[keyViewBox] = rectDict(viewBox)
}

func (b *Backend) start(id string, container bool) {
	el := &element{parent: b.current, container: container, props: dict{}}
	if id != "" {
		el.props[keyElementDebugName] = id
	}
	if b.current.container {
		b.current.children = append(b.current.children, el)
	} else {
		// still tracked, so that the matching EndElement is balanced
		glg.Warnf("svgjson: element %q started inside a drawing element is dropped", id)
	}
	b.current = el
}

func (b *Backend) StartGroup(id string) { b.start(id, true) }

func (b *Backend) StartElement(id string) { b.start(id, false) }

func (b *Backend) EndElement() {
	if b.current.parent == nil {
		glg.Warnf("svgjson: can't end the root element")
		return
	}
	b.current = b.current.parent
}

func (b *Backend) AddPath(shape svgdraw.Shape) {
	for k, v := range shapeDict(shape) {
		b.current.props[k] = v
	}
}

func (b *Backend) DrawPath(mode svgdraw.DrawMode) {
	var drawing string
	switch mode {
	case svgdraw.Fill, svgdraw.EOFill:
		drawing = valueFillPath
	case svgdraw.Stroke:
		drawing = valueStrokePath
	case svgdraw.FillStroke, svgdraw.EOFillStroke:
		drawing = valueFillAndStrokePath
	}
	if mode.EvenOdd() {
		b.current.props[keyClippingRule] = valueEvenOddRule
	}
	if _, ok := b.current.props[keyElementType]; !ok {
		b.current.props[keyElementType] = drawing
	}
}

func (b *Backend) DrawText(text svgdraw.TextRun) {
	for k, v := range textDict(text) {
		b.current.props[k] = v
	}
}

func (b *Backend) DrawLinearGradient(gradient svgscene.BoundGradient, shape svgdraw.Shape) {
	d, ok := gradientDict(gradient, shape)
	if !ok {
		glg.Debugf("svgjson: gradient vector out of the bounding box, skipping fill")
		return
	}
	b.current.gradient = d
}

func (b *Backend) setColor(key string, c *svgparse.Color) {
	if c == nil {
		delete(b.current.props, key)
		return
	}
	b.current.props[key] = colorValue(*c)
}

func (b *Backend) SetFillColor(c *svgparse.Color) {
	b.States.SetFillColor(c)
	b.setColor(keyFillColor, c)
}

func (b *Backend) SetStrokeColor(c *svgparse.Color) {
	b.States.SetStrokeColor(c)
	b.setColor(keyStrokeColor, strokePaint(c))
}

// strokePaint returns nil for a transparent stroke ("none").
func strokePaint(c *svgparse.Color) *svgparse.Color {
	if c == nil || c.A == 0 {
		return nil
	}
	return c
}

func (b *Backend) SetLineWidth(w float64) {
	b.States.SetLineWidth(w)
	b.current.props[keyLineWidth] = w
}

// SetStyle records the specified properties on the current element.
func (b *Backend) SetStyle(style svgscene.Style) {
	b.States.SetStyle(style)
	props := b.current.props
	if style.Fill != nil {
		props[keyFillColor] = colorValue(*style.Fill)
	}
	if style.Stroke != nil {
		b.setColor(keyStrokeColor, strokePaint(style.Stroke))
	}
	if style.LineWidth != nil {
		props[keyLineWidth] = *style.LineWidth
	}
	if style.LineCap != nil {
		props[keyLineCap] = lineCapNames[*style.LineCap]
	}
	if style.LineJoin != nil {
		props[keyLineJoin] = lineJoinNames[*style.LineJoin]
	}
	if style.MiterLimit != nil {
		props[keyMiter] = *style.MiterLimit
	}
	if style.Alpha != nil {
		props[keyContextAlpha] = *style.Alpha
	}
	if style.BlendMode != nil {
		props[keyBlendMode] = "kCGBlendMode" + style.BlendMode.String()
	}
	if style.Dash != nil {
		props[keyDashArray] = style.Dash
		if style.DashPhase != nil {
			props[keyDashPhase] = *style.DashPhase
		}
	}
}

// Dict returns the description as nested maps.
func (b *Backend) Dict() map[string]interface{} { return b.root.toDict() }

// JSON returns the compact JSON description. Object keys are sorted,
// so that the output only depends on the drawing.
func (b *Backend) JSON() ([]byte, error) {
	return json.Marshal(b.root.toDict())
}

// WriteFile saves the indented JSON description.
func (b *Backend) WriteFile(path string) error {
	data, err := json.MarshalIndent(b.root.toDict(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Render returns the JSON description of the scene.
func Render(sc *svgscene.Scene) ([]byte, error) {
	b := NewBackend()
	if err := svgdraw.NewRenderer(sc).Render(b); err != nil {
		return nil, err
	}
	return b.JSON()
}
