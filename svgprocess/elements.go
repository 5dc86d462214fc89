package svgprocess

import (
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
)

func svgF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	if p.document != svgscene.NoNode {
		return nestedSvgF(p, el, attrs)
	}
	var doc svgscene.Document
	if v, ok := attrs.take("version"); ok {
		doc.Version = v
		if v == "1.1" {
			doc.Profile = "full"
		}
	}
	if v, ok := attrs.take("baseProfile"); ok {
		doc.Profile = v
	}
	if v, ok := attrs.take("viewBox"); ok {
		vb, err := svgparse.ParseViewBox(v)
		if err != nil {
			return svgscene.NoNode, err
		}
		doc.ViewBox = &vb
	}
	if attrs.has("width") && attrs.has("height") {
		var (
			vp  svgpath.Rect
			err error
		)
		if vp.X, err = attrs.floatOr("x", 0); err != nil {
			return svgscene.NoNode, err
		}
		if vp.Y, err = attrs.floatOr("y", 0); err != nil {
			return svgscene.NoNode, err
		}
		if vp.W, err = attrs.requiredFloat("width"); err != nil {
			return svgscene.NoNode, err
		}
		if vp.H, err = attrs.requiredFloat("height"); err != nil {
			return svgscene.NoNode, err
		}
		doc.ViewPort = &vp
		if doc.ViewBox == nil {
			vb := vp
			doc.ViewBox = &vb
		}
	}

	id := p.scene.NewNode(doc)
	p.document = id
	if err := p.processChildren(id, el); err != nil {
		return svgscene.NoNode, err
	}
	return id, nil
}

// nestedSvgF handles an inner `svg` element as a group positioned at (x, y).
func nestedSvgF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	x, err := attrs.floatOr("x", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	y, err := attrs.floatOr("y", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	for _, ignored := range [...]string{"width", "height", "viewBox", "version"} {
		if _, ok := attrs.take(ignored); ok {
			p.report(Debug, "Ignoring %s on nested <svg>", ignored)
		}
	}
	id := p.scene.NewNode(svgscene.Group{})
	if x != 0 || y != 0 {
		p.scene.Node(id).Transform = svgscene.Ptr(svgpath.NewTranslation(x, y))
	}
	if err := p.processChildren(id, el); err != nil {
		return svgscene.NoNode, err
	}
	return id, nil
}

func groupF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	id := p.scene.NewNode(svgscene.Group{})
	if err := p.processChildren(id, el); err != nil {
		return svgscene.NoNode, err
	}
	return id, nil
}

func pathF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	d, err := attrs.required("d")
	if err != nil {
		return svgscene.NoNode, err
	}
	path, err := svgparse.ParsePathData(d)
	if err != nil {
		return svgscene.NoNode, err
	}
	return p.scene.NewNode(svgscene.Path{Data: path, SVGPath: d}), nil
}

func lineF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	var coords [4]float64
	for i, name := range [...]string{"x1", "y1", "x2", "y2"} {
		f, err := attrs.requiredFloat(name)
		if err != nil {
			return svgscene.NoNode, err
		}
		coords[i] = f
	}
	return p.scene.NewNode(svgscene.Line{
		Start: svgpath.Point{X: coords[0], Y: coords[1]},
		End:   svgpath.Point{X: coords[2], Y: coords[3]},
	}), nil
}

func circleF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	cx, err := attrs.floatOr("cx", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	cy, err := attrs.floatOr("cy", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	r, err := attrs.requiredFloat("r")
	if err != nil {
		return svgscene.NoNode, err
	}
	return p.scene.NewNode(svgscene.Circle{Center: svgpath.Point{X: cx, Y: cy}, Radius: r}), nil
}

func ellipseF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	cx, err := attrs.floatOr("cx", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	cy, err := attrs.floatOr("cy", 0)
	if err != nil {
		return svgscene.NoNode, err
	}
	rx, err := attrs.requiredFloat("rx")
	if err != nil {
		return svgscene.NoNode, err
	}
	ry, err := attrs.requiredFloat("ry")
	if err != nil {
		return svgscene.NoNode, err
	}
	return p.scene.NewNode(svgscene.Ellipse{Rect: svgpath.Rect{X: cx - rx, Y: cy - ry, W: 2 * rx, H: 2 * ry}}), nil
}

func rectF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	var (
		r   svgpath.Rect
		err error
	)
	if r.X, err = attrs.floatOr("x", 0); err != nil {
		return svgscene.NoNode, err
	}
	if r.Y, err = attrs.floatOr("y", 0); err != nil {
		return svgscene.NoNode, err
	}
	if r.W, err = attrs.requiredFloat("width"); err != nil {
		return svgscene.NoNode, err
	}
	if r.H, err = attrs.requiredFloat("height"); err != nil {
		return svgscene.NoNode, err
	}
	// a missing radius is marked as negative
	rx, err := attrs.floatOr("rx", -1)
	if err != nil {
		return svgscene.NoNode, err
	}
	ry, err := attrs.floatOr("ry", -1)
	if err != nil {
		return svgscene.NoNode, err
	}
	rx, ry = svgpath.ClampRadii(r, rx, ry)
	return p.scene.NewNode(svgscene.Rect{Rect: r, Rx: rx, Ry: ry}), nil
}

func readPoints(attrs *attrSet) ([]svgpath.Point, error) {
	v, err := attrs.required("points")
	if err != nil {
		return nil, err
	}
	return svgparse.ParsePoints(v)
}

func polygonF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	points, err := readPoints(attrs)
	if err != nil {
		return svgscene.NoNode, err
	}
	return p.scene.NewNode(svgscene.Polygon{Points: points}), nil
}

func polylineF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	points, err := readPoints(attrs)
	if err != nil {
		return svgscene.NoNode, err
	}
	return p.scene.NewNode(svgscene.Polyline{Points: points}), nil
}

// normalizeSpace collapses the white spaces, as done
// by the default xml:space handling.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func textF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	var (
		origin svgpath.Point
		err    error
	)
	if origin.X, err = attrs.floatOr("x", 0); err != nil {
		return svgscene.NoNode, err
	}
	if origin.Y, err = attrs.floatOr("y", 0); err != nil {
		return svgscene.NoNode, err
	}

	var text svgscene.Text
	for _, child := range el.Children {
		switch child := child.(type) {
		case svgxml.CharData:
			if s := normalizeSpace(string(child)); s != "" {
				text.Spans = append(text.Spans, svgscene.TextSpan{Text: s, Origin: origin})
			}
		case *svgxml.Element:
			span, err := p.processSpan(child, origin)
			if err != nil {
				return svgscene.NoNode, err
			}
			text.Spans = append(text.Spans, span)
		}
	}
	return p.scene.NewNode(text), nil
}

// processSpan handles a child of a text element (usually a `tspan`),
// whose position defaults to the text origin.
func (p *processor) processSpan(el *svgxml.Element, textOrigin svgpath.Point) (svgscene.TextSpan, error) {
	if el.Name != "tspan" {
		p.report(Debug, "Handling <%s> as a text span", el.Name)
	}
	attrs := newAttrSet(el)
	span := svgscene.TextSpan{Text: normalizeSpace(el.Text()), Origin: textOrigin}
	var err error
	if span.Origin.X, err = attrs.floatOr("x", textOrigin.X); err != nil {
		return span, err
	}
	if span.Origin.Y, err = attrs.floatOr("y", textOrigin.Y); err != nil {
		return span, err
	}
	pres, err := p.processPresentation(attrs)
	if err != nil {
		return span, err
	}
	if !pres.style.IsEmpty() {
		span.Style = &pres.style
	}
	if !pres.text.Equal(nil) {
		span.TextStyle = &pres.text
	}
	span.NoFill = pres.noFill
	if v, ok := attrs.take("transform"); ok {
		m, err := svgparse.ParseTransform(v)
		if err != nil {
			return span, err
		}
		span.Transform = &m
	}
	attrs.take("id")
	if left := attrs.remaining(); len(left) != 0 {
		p.report(Warning, "Unhandled attributes on <%s>: %s", el.Name, strings.Join(left, ", "))
	}
	return span, nil
}

// useF clones the referenced element. When x and y are given, the clone
// is wrapped in a translated group.
func useF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	href, ok := attrs.take("xlink:href")
	if !ok {
		href, ok = attrs.take("href")
	}
	if !ok {
		return svgscene.NoNode, svgparse.NewError(svgparse.ErrExpectedElementNotFound, "xlink:href", "")
	}
	if !strings.HasPrefix(href, "#") {
		return svgscene.NoNode, svgparse.NewError(svgparse.ErrInvalidSVG, "xlink:href", href)
	}
	target, ok := p.ids[href[1:]]
	if !ok {
		p.report(Warning, "Could not find element with id %q", href[1:])
		return svgscene.NoNode, nil
	}

	clone := p.scene.Clone(target)
	if !(attrs.has("x") && attrs.has("y")) {
		return clone, nil
	}
	x, err := attrs.requiredFloat("x")
	if err != nil {
		return svgscene.NoNode, err
	}
	y, err := attrs.requiredFloat("y")
	if err != nil {
		return svgscene.NoNode, err
	}
	wrapper := p.scene.NewNode(svgscene.Group{})
	p.scene.Node(wrapper).Transform = svgscene.Ptr(svgpath.NewTranslation(x, y))
	if err := p.scene.AppendChild(wrapper, clone); err != nil {
		return svgscene.NoNode, err
	}
	return wrapper, nil
}

// defsF registers the ids of its content, without drawing it.
func defsF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	return svgscene.NoNode, p.processChildren(svgscene.NoNode, el)
}

func (p *processor) updateDocument(fn func(doc *svgscene.Document)) {
	n := p.scene.Node(p.document)
	if n == nil {
		return
	}
	doc := n.Content.(svgscene.Document)
	fn(&doc)
	n.Content = doc
}

func titleF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	p.updateDocument(func(doc *svgscene.Document) { doc.Title = el.Text() })
	return svgscene.NoNode, nil
}

func descF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	p.updateDocument(func(doc *svgscene.Document) { doc.Description = el.Text() })
	return svgscene.NoNode, nil
}
