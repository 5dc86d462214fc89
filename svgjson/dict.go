package svgjson

import (
	"strings"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

// dict is a JSON object. Keys are sorted when marshalled.
type dict = map[string]interface{}

func pointDict(p svgpath.Point) dict {
	return dict{keyX: p.X, keyY: p.Y}
}

func rectDict(r svgpath.Rect) dict {
	return dict{
		keySize:   dict{keyWidth: r.W, keyHeight: r.H},
		keyOrigin: dict{keyX: r.X, keyY: r.Y},
	}
}

func transformDict(m svgpath.Matrix2D) dict {
	return dict{keyM11: m.A, keyM12: m.B, keyM21: m.C, keyM22: m.D, keyTX: m.E, keyTY: m.F}
}

// colorValue returns a hex string for opaque colors,
// and a color dictionary otherwise.
func colorValue(c svgparse.Color) interface{} {
	if c.A < 0.998 {
		return dict{
			keyColorProfile: valueSRGB,
			keyRed:          c.R,
			keyGreen:        c.G,
			keyBlue:         c.B,
			keyAlpha:        c.A,
		}
	}
	return c.Hex()
}

var (
	lineCapNames = [...]string{
		svgscene.CapButt:   "kCGLineCapButt",
		svgscene.CapRound:  "kCGLineCapRound",
		svgscene.CapSquare: "kCGLineCapSquare",
	}
	lineJoinNames = [...]string{
		svgscene.JoinMiter: "kCGLineJoinMiter",
		svgscene.JoinRound: "kCGLineJoinRound",
		svgscene.JoinBevel: "kCGLineJoinBevel",
	}
)

func pathElement(kind string, end svgpath.Point) dict {
	return dict{keyElementType: kind, keyEndPoint: pointDict(end)}
}

// pathDict returns the start point and path elements describing `path`.
func pathDict(path svgpath.Path) dict {
	var (
		start    svgpath.Point
		elements = []interface{}{}
	)
	for i, op := range path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			if i == 0 {
				start = svgpath.Point(op)
				continue
			}
			elements = append(elements, pathElement(valuePathMoveTo, svgpath.Point(op)))
		case svgpath.LineTo:
			elements = append(elements, pathElement(valuePathLine, svgpath.Point(op)))
		case svgpath.QuadTo:
			el := pathElement(valuePathQuadratic, op[1])
			el[keyControlPoint1] = pointDict(op[0])
			elements = append(elements, el)
		case svgpath.CubicTo:
			el := pathElement(valuePathBezier, op[2])
			el[keyControlPoint1] = pointDict(op[0])
			el[keyControlPoint2] = pointDict(op[1])
			elements = append(elements, el)
		case svgpath.Close:
			elements = append(elements, dict{keyElementType: valueCloseSubPath})
		}
	}
	return dict{keyStartPoint: pointDict(start), keyArrayOfPathElement: elements}
}

// primitiveDict wraps a rectangle or an oval: filled and stroked primitives
// are expressed as a one element path.
func primitiveDict(r svgpath.Rect, pathValue, fillValue, strokeValue string, hasFill, hasStroke bool) dict {
	if hasFill && hasStroke {
		return dict{
			keyElementType: valueFillAndStrokePath,
			keyStartPoint:  pointDict(svgpath.Point{}),
			keyArrayOfPathElement: []interface{}{
				dict{keyElementType: pathValue, keyRect: rectDict(r)},
			},
		}
	}
	out := dict{keyRect: rectDict(r)}
	if hasFill {
		out[keyElementType] = fillValue
	} else if hasStroke {
		out[keyElementType] = strokeValue
	}
	return out
}

func pathElementType(hasFill, hasStroke bool) string {
	switch {
	case hasFill && hasStroke:
		return valueFillAndStrokePath
	case hasFill:
		return valueFillPath
	case hasStroke:
		return valueStrokePath
	default:
		return ""
	}
}

// roundedRectDict approximates the corners with quadratic curves.
func roundedRectDict(r svgpath.Rect, rx, ry float64, hasFill, hasStroke bool) dict {
	x0, y0, w, h := r.X, r.Y, r.W, r.H
	quad := func(end, ctrl svgpath.Point) dict {
		el := pathElement(valuePathQuadratic, end)
		el[keyControlPoint1] = pointDict(ctrl)
		return el
	}
	return dict{
		keyStartPoint:  pointDict(svgpath.Point{X: x0 + rx, Y: y0}),
		keyElementType: pathElementType(hasFill, hasStroke),
		keyArrayOfPathElement: []interface{}{
			pathElement(valuePathLine, svgpath.Point{X: x0 + w - rx, Y: y0}),
			quad(svgpath.Point{X: x0 + w, Y: y0 + ry}, svgpath.Point{X: x0 + w, Y: y0}),
			pathElement(valuePathLine, svgpath.Point{X: x0 + w, Y: y0 + h - ry}),
			quad(svgpath.Point{X: x0 + w - rx, Y: y0 + h}, svgpath.Point{X: x0 + w, Y: y0 + h}),
			pathElement(valuePathLine, svgpath.Point{X: x0 + rx, Y: y0 + h}),
			quad(svgpath.Point{X: x0, Y: y0 + h - ry}, svgpath.Point{X: x0, Y: y0 + h}),
			pathElement(valuePathLine, svgpath.Point{X: x0, Y: y0 + ry}),
			quad(svgpath.Point{X: x0 + rx, Y: y0}, svgpath.Point{X: x0, Y: y0}),
			dict{keyElementType: valueCloseSubPath},
		},
	}
}

func polyDict(points []svgpath.Point, closed bool) dict {
	elements := []interface{}{}
	for _, p := range points[1:] {
		elements = append(elements, pathElement(valuePathLine, p))
	}
	if closed {
		elements = append(elements, dict{keyElementType: valueCloseSubPath})
	}
	return dict{keyStartPoint: pointDict(points[0]), keyArrayOfPathElement: elements}
}

// shapeDict returns the geometry entries of `shape`, using the
// dedicated primitives when possible.
func shapeDict(shape svgdraw.Shape) dict {
	if shape.SVGPath != "" {
		return dict{keySVGPath: shape.SVGPath}
	}
	switch c := shape.Content.(type) {
	case svgscene.Line:
		return dict{
			keyLine:        dict{keyStartPoint: pointDict(c.Start), keyEndPoint: pointDict(c.End)},
			keyElementType: valueDrawLine,
		}
	case svgscene.Rect:
		if c.Rx == 0 && c.Ry == 0 {
			return primitiveDict(c.Rect, valuePathRectangle, valueFillRectangle, valueStrokeRectangle, shape.HasFill, shape.HasStroke)
		}
		return roundedRectDict(c.Rect, c.Rx, c.Ry, shape.HasFill, shape.HasStroke)
	case svgscene.Ellipse:
		return primitiveDict(c.Rect, valuePathOval, valueFillOval, valueStrokeOval, shape.HasFill, shape.HasStroke)
	case svgscene.Circle:
		r := svgpath.Rect{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
		return primitiveDict(r, valuePathOval, valueFillOval, valueStrokeOval, shape.HasFill, shape.HasStroke)
	case svgscene.Polygon:
		if len(c.Points) != 0 {
			return polyDict(c.Points, true)
		}
	case svgscene.Polyline:
		if len(c.Points) != 0 {
			return polyDict(c.Points, false)
		}
	}
	return pathDict(shape.Path)
}

var postscriptNames = map[string]string{
	"helvetica":       "Helvetica",
	"arial":           "ArialMT",
	"times":           "Times-Roman",
	"times new roman": "TimesNewRomanPSMT",
	"courier":         "Courier",
	"courier new":     "CourierNewPSMT",
	"georgia":         "Georgia",
	"verdana":         "Verdana",
	"sans-serif":      "Helvetica",
	"serif":           "Times-Roman",
	"monospace":       "Courier",
}

// postscriptName maps a font family to a PostScript font name,
// defaulting to the family without spaces.
func postscriptName(family string) string {
	family = strings.TrimSpace(family)
	if name, ok := postscriptNames[strings.ToLower(family)]; ok {
		return name
	}
	return strings.ReplaceAll(family, " ", "")
}

// textDict returns the wrapper element drawing the text run.
// The text is drawn in a flipped context at the baseline, so that
// the flip doesn't interfere with the element transforms.
func textDict(run svgdraw.TextRun) dict {
	text := dict{
		keyPostscriptFontName: postscriptName(run.FontFamily),
		keyElementType:        valueBasicString,
		keyStringText:         run.Text,
		keyPoint:              pointDict(svgpath.Point{X: run.Origin.X}),
		keyFontSize:           run.FontSize,
		keyContextTransformation: []interface{}{
			dict{
				keyTransformationType: valueTranslate,
				keyTranslation:        pointDict(svgpath.Point{Y: run.Origin.Y}),
			},
			dict{
				keyTransformationType: valueScale,
				keyScale:              pointDict(svgpath.Point{X: 1, Y: -1}),
			},
		},
	}
	// start is the default alignment
	switch run.Anchor {
	case svgscene.AnchorMiddle:
		text[keyTextAlignment] = valueAlignCenter
	case svgscene.AnchorEnd:
		text[keyTextAlignment] = valueAlignRight
	}
	if run.Fill != nil {
		text[keyFillColor] = colorValue(*run.Fill)
	}
	if run.Stroke != nil {
		text[keyStrokeColor] = colorValue(*run.Stroke)
		text[keyStringStrokeWidth] = run.StrokeWidth
	}
	return dict{
		keyElementType:     keyArrayOfElements,
		keyArrayOfElements: []interface{}{text},
	}
}

// gradientDict fills the gradient line, clipped by the shape.
func gradientDict(gradient svgscene.BoundGradient, shape svgdraw.Shape) (dict, bool) {
	start, end, ok := gradient.Line()
	if !ok {
		return nil, false
	}
	out := pathDict(shape.Path)
	out[keyElementType] = valueLinearGradient
	out[keyLine] = dict{keyStartPoint: pointDict(start), keyEndPoint: pointDict(end)}
	colors := make([]interface{}, 0, len(gradient.Gradient.Stops))
	for _, c := range gradient.Colors() {
		colors = append(colors, colorValue(c))
	}
	out[keyArrayOfColors] = colors
	out[keyArrayOfLocations] = gradient.Locations()
	return out, true
}
