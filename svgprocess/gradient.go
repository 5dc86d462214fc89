package svgprocess

import (
	"strings"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
)

// readGradientPoint returns nil if none of the coordinates are given,
// so that the point may be inherited.
func readGradientPoint(attrs *attrSet, xName, yName string, def svgpath.Point) (*svgpath.Point, error) {
	x, hasX, err := attrs.float(xName)
	if err != nil {
		return nil, err
	}
	y, hasY, err := attrs.float(yName)
	if err != nil {
		return nil, err
	}
	if !hasX && !hasY {
		return nil, nil
	}
	pt := def
	if hasX {
		pt.X = x
	}
	if hasY {
		pt.Y = y
	}
	return &pt, nil
}

func linearGradientF(p *processor, el *svgxml.Element, attrs *attrSet) (svgscene.NodeID, error) {
	grad := svgscene.LinearGradient{Inherited: svgscene.NoNode}
	var err error
	grad.Point1, err = readGradientPoint(attrs, "x1", "y1", svgpath.Point{})
	if err != nil {
		return svgscene.NoNode, err
	}
	grad.Point2, err = readGradientPoint(attrs, "x2", "y2", svgpath.Point{X: 1})
	if err != nil {
		return svgscene.NoNode, err
	}

	if v, ok := attrs.take("gradientUnits"); ok {
		switch v {
		case "userSpaceOnUse":
			grad.Units = svgscene.Ptr(svgscene.UserSpaceOnUse)
		case "objectBoundingBox":
			grad.Units = svgscene.Ptr(svgscene.ObjectBoundingBox)
		default:
			return svgscene.NoNode, svgparse.NewError(svgparse.ErrInvalidSVG, "gradientUnits", v)
		}
	}
	if v, ok := attrs.take("gradientTransform"); ok {
		m, err := svgparse.ParseTransform(v)
		if err != nil {
			return svgscene.NoNode, withOp(err, "gradientTransform")
		}
		grad.Transform = &m
	}

	href, ok := attrs.take("xlink:href")
	if !ok {
		href, ok = attrs.take("href")
	}
	if ok {
		if target, found := p.ids[strings.TrimPrefix(href, "#")]; found && p.scene.Kind(target) == svgscene.KindLinearGradient {
			grad.Inherited = target
		} else {
			p.report(Warning, "Could not find gradient %q", href)
		}
	}

	for _, child := range el.ChildElements() {
		if child.Name != "stop" {
			p.report(Warning, "Unhandled element <%s> in <linearGradient>", child.Name)
			continue
		}
		stop, err := p.processStop(child)
		if err != nil {
			return svgscene.NoNode, err
		}
		grad.Stops = append(grad.Stops, stop)
	}

	return p.scene.NewNode(grad), nil
}

// processStop reads a gradient stop. The opacity is applied to the color.
func (p *processor) processStop(el *svgxml.Element) (svgscene.GradientStop, error) {
	attrs := newAttrSet(el)
	var stop svgscene.GradientStop
	v, err := attrs.required("offset")
	if err != nil {
		return stop, err
	}
	if stop.Offset, err = svgparse.ParseClamped(v, 0, 1); err != nil {
		return stop, withOp(err, "offset")
	}

	props := make(map[string]string)
	if v, ok := attrs.take("style"); ok {
		decls, err := svgparse.ParseStyle(v)
		if err != nil {
			return stop, err
		}
		for _, d := range decls {
			props[d.Property] = d.Value
		}
	}
	for _, name := range [...]string{"stop-color", "stop-opacity"} {
		if v, ok := attrs.take(name); ok {
			props[name] = v
		}
	}

	stop.Color = svgparse.Black
	if v, ok := props["stop-color"]; ok {
		if stop.Color, err = svgparse.ParseColor(v); err != nil {
			return stop, withOp(err, "stop-color")
		}
	}
	if v, ok := props["stop-opacity"]; ok {
		op, err := svgparse.ParseClamped(v, 0, 1)
		if err != nil {
			return stop, withOp(err, "stop-opacity")
		}
		stop.Color = stop.Color.WithAlpha(op)
	}

	attrs.take("id")
	if left := attrs.remaining(); len(left) != 0 {
		p.report(Warning, "Unhandled attributes on <stop>: %s", strings.Join(left, ", "))
	}
	return stop, nil
}
