package svgprocess

import (
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgscene"
)

// presentationProperties are accepted both in the style attribute
// and as attributes, which take precedence.
// The order is significant: opacities are read before the colors.
var presentationProperties = [...]string{
	"fill-opacity",
	"fill",
	"stroke-opacity",
	"stroke",
	"opacity",
	"fill-rule",
	"stroke-width",
	"stroke-linejoin",
	"stroke-linecap",
	"stroke-miterlimit",
	"display",
	"stroke-dasharray",
	"stroke-dashoffset",
	"mix-blend-mode",
	"font-family",
	"font-size",
	"text-anchor",
}

func isPresentationProperty(name string) bool {
	for _, p := range presentationProperties {
		if p == name {
			return true
		}
	}
	return false
}

// presentation is the styling information of one element.
type presentation struct {
	style    svgscene.Style
	text     svgscene.TextStyle
	noFill   bool
	gradient svgscene.NodeID // fill paint server
	evenOdd  bool
	hidden   bool
}

// collectProperties consumes the style attribute and the
// presentation attributes.
func (p *processor) collectProperties(attrs *attrSet) (map[string]string, error) {
	props := make(map[string]string)
	if v, ok := attrs.take("style"); ok {
		decls, err := svgparse.ParseStyle(v)
		if err != nil {
			return nil, err
		}
		for _, d := range decls {
			if !isPresentationProperty(d.Property) {
				p.report(Debug, "Ignoring style property %q", d.Property)
				continue
			}
			props[d.Property] = d.Value
		}
	}
	for _, name := range presentationProperties {
		if v, ok := attrs.take(name); ok {
			props[name] = v
		}
	}
	return props, nil
}

func (p *processor) processPresentation(attrs *attrSet) (presentation, error) {
	pres := presentation{gradient: svgscene.NoNode}
	props, err := p.collectProperties(attrs)
	if err != nil {
		return pres, err
	}

	// fill and stroke opacity are scratch values, only
	// applied to the colors of the same element
	var fillOpacity, strokeOpacity *float64
	for _, name := range presentationProperties {
		v, ok := props[name]
		if !ok {
			continue
		}
		if err := p.processProperty(&pres, name, v, &fillOpacity, &strokeOpacity); err != nil {
			return pres, withOp(err, name)
		}
	}
	if _, hasDash := props["stroke-dasharray"]; !hasDash {
		if _, hasOffset := props["stroke-dashoffset"]; hasOffset {
			pres.style.DashPhase = nil
			p.report(Debug, "Ignoring stroke-dashoffset without stroke-dasharray")
		}
	}
	return pres, nil
}

func (p *processor) processProperty(pres *presentation, name, v string, fillOpacity, strokeOpacity **float64) error {
	switch name {
	case "fill-opacity", "stroke-opacity", "opacity":
		f, err := svgparse.ParseClamped(v, 0, 1)
		if err != nil {
			return err
		}
		switch name {
		case "fill-opacity":
			*fillOpacity = &f
		case "stroke-opacity":
			*strokeOpacity = &f
		default:
			pres.style.Alpha = &f
		}
	case "fill":
		return p.processFill(pres, v, *fillOpacity)
	case "stroke":
		return p.processStroke(pres, v, *strokeOpacity)
	case "fill-rule":
		switch v {
		case "evenodd":
			pres.evenOdd = true
		case "nonzero":
		default:
			p.report(Warning, "Unsupported fill-rule %q", v)
		}
	case "stroke-width":
		f, err := svgparse.ParseNumber(v)
		if err != nil {
			return err
		}
		if f < 0 {
			return svgparse.NewError(svgparse.ErrInvalidSVG, name, v)
		}
		pres.style.LineWidth = &f
	case "stroke-miterlimit":
		f, err := svgparse.ParseNumber(v)
		if err != nil {
			return err
		}
		pres.style.MiterLimit = &f
	case "stroke-linejoin":
		var join svgscene.LineJoin
		switch v {
		case "miter":
			join = svgscene.JoinMiter
		case "round":
			join = svgscene.JoinRound
		case "bevel":
			join = svgscene.JoinBevel
		default:
			p.report(Warning, "Unsupported stroke-linejoin %q", v)
			return nil
		}
		pres.style.LineJoin = &join
	case "stroke-linecap":
		var lineCap svgscene.LineCap
		switch v {
		case "butt":
			lineCap = svgscene.CapButt
		case "round":
			lineCap = svgscene.CapRound
		case "square":
			lineCap = svgscene.CapSquare
		default:
			p.report(Warning, "Unsupported stroke-linecap %q", v)
			return nil
		}
		pres.style.LineCap = &lineCap
	case "display":
		if v == "none" {
			pres.hidden = true
		}
	case "stroke-dasharray":
		dash, err := svgparse.ParseDashArray(v)
		if err != nil {
			return err
		}
		if dash == nil { // explicit none
			dash = []float64{}
		}
		pres.style.Dash = dash
	case "stroke-dashoffset":
		f, err := svgparse.ParseNumber(v)
		if err != nil {
			return err
		}
		pres.style.DashPhase = &f
	case "mix-blend-mode":
		mode, ok := svgscene.ParseBlendMode(v)
		if !ok {
			p.report(Warning, "Unsupported mix-blend-mode %q", v)
			return nil
		}
		pres.style.BlendMode = &mode
	case "font-family":
		family := strings.TrimSpace(strings.Split(v, ",")[0])
		family = strings.Trim(family, `"'`)
		pres.text.FontFamily = &family
	case "font-size":
		f, err := svgparse.ParseNumber(v)
		if err != nil {
			return err
		}
		pres.text.FontSize = &f
	case "text-anchor":
		var anchor svgscene.TextAnchor
		switch v {
		case "start":
			anchor = svgscene.AnchorStart
		case "middle":
			anchor = svgscene.AnchorMiddle
		case "end":
			anchor = svgscene.AnchorEnd
		default:
			p.report(Warning, "Unsupported text-anchor %q", v)
			return nil
		}
		pres.text.Anchor = &anchor
	}
	return nil
}

func (p *processor) processFill(pres *presentation, v string, opacity *float64) error {
	paint, err := svgparse.ParsePaint(v)
	if err != nil {
		return err
	}
	switch paint.Kind {
	case svgparse.PaintNone:
		pres.noFill = true
	case svgparse.PaintURL:
		target, ok := p.ids[paint.URL]
		if !ok {
			p.report(Warning, "Could not find paint server with id %q", paint.URL)
			pres.style.Alpha = svgscene.Ptr(0.)
			return nil
		}
		if p.scene.Kind(target) != svgscene.KindLinearGradient {
			// not a paint server : nothing is visible
			pres.style.Alpha = svgscene.Ptr(0.)
			return nil
		}
		pres.gradient = target
	case svgparse.PaintColor:
		c := paint.Color
		if opacity != nil {
			c = c.WithAlpha(*opacity)
		}
		pres.style.Fill = &c
	}
	return nil
}

// processStroke stores the stroke color. "none" is stored
// as a transparent color, so that it overrides an inherited stroke.
func (p *processor) processStroke(pres *presentation, v string, opacity *float64) error {
	paint, err := svgparse.ParsePaint(v)
	if err != nil {
		return err
	}
	switch paint.Kind {
	case svgparse.PaintNone:
		pres.style.Stroke = &svgparse.Color{}
	case svgparse.PaintURL:
		p.report(Warning, "Paint server %q is not supported for strokes", paint.URL)
	case svgparse.PaintColor:
		c := paint.Color
		if opacity != nil {
			c = c.WithAlpha(*opacity)
		}
		pres.style.Stroke = &c
	}
	return nil
}

// applyPresentation stores the styling on the node. Properties already
// specified on the node (for instance on the target of a `use`) are kept.
func (p *processor) applyPresentation(n *svgscene.Node, pres presentation) {
	explicitFill := (n.Style != nil && n.Style.Fill != nil) || n.Gradient != svgscene.NoNode || !n.DrawFill
	if !explicitFill {
		if pres.noFill {
			n.DrawFill = false
		}
		if pres.gradient != svgscene.NoNode {
			n.Gradient = pres.gradient
		}
	}
	if pres.evenOdd {
		n.EvenOdd = true
	}
	if pres.hidden {
		n.Display = false
	}
	if !pres.style.IsEmpty() {
		merged := n.Style.Inherit(&pres.style)
		n.Style = &merged
	}
	if !pres.text.Equal(nil) {
		merged := n.TextStyle.Inherit(&pres.text)
		n.TextStyle = &merged
	}
}
