package svgprocess

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func process(t *testing.T, src string, mode ErrorMode) *Result {
	t.Helper()
	res, err := ProcessReader(strings.NewReader(src), Options{ErrorMode: mode})
	require.NoError(t, err)
	return res
}

func warnings(res *Result) []string {
	var out []string
	for _, e := range res.Events.Filter(Warning) {
		out = append(out, e.Message)
	}
	return out
}

const basicDoc = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="200" height="100">
	<title>Basic</title>
	<desc>Some shapes</desc>
	<rect id="r" x="10" y="20" width="30" height="40" fill="red"/>
	<g transform="translate(5,5)" stroke="blue" stroke-width="2">
		<circle cx="50" cy="50" r="10"/>
		<line x1="0" y1="0" x2="10" y2="10"/>
	</g>
</svg>`

func TestProcessBasic(t *testing.T) {
	res := process(t, basicDoc, IgnoreErrorMode)
	sc := res.Scene
	assert.Empty(t, warnings(res))

	root := sc.Root()
	require.Equal(t, svgscene.KindDocument, sc.Kind(root))
	doc := sc.Node(root).Content.(svgscene.Document)
	assert.Equal(t, "1.1", doc.Version)
	assert.Equal(t, "full", doc.Profile)
	assert.Equal(t, "Basic", doc.Title)
	assert.Equal(t, "Some shapes", doc.Description)
	require.NotNil(t, doc.ViewPort)
	assert.Equal(t, svgpath.Rect{W: 200, H: 100}, *doc.ViewPort)
	require.NotNil(t, doc.ViewBox)
	assert.Equal(t, *doc.ViewPort, *doc.ViewBox)

	children := sc.Children(root)
	require.Len(t, children, 2)
	rect := children[0]
	assert.Equal(t, svgscene.Rect{Rect: svgpath.Rect{X: 10, Y: 20, W: 30, H: 40}}, sc.Node(rect).Content)
	assert.Equal(t, rect, res.ElementsByID["r"])
	fill, ok := sc.FillColor(rect)
	assert.True(t, ok)
	assert.Equal(t, svgparse.NewColor255(255, 0, 0), fill)

	group := children[1]
	assert.Equal(t, svgscene.KindGroup, sc.Kind(group))
	assert.Equal(t, svgpath.NewTranslation(5, 5), *sc.Node(group).Transform)
	shapes := sc.Children(group)
	require.Len(t, shapes, 2)
	assert.Equal(t, svgscene.Circle{Center: svgpath.Point{X: 50, Y: 50}, Radius: 10}, sc.Node(shapes[0]).Content)
	stroke, ok := sc.StrokeColor(shapes[1])
	assert.True(t, ok)
	assert.Equal(t, svgparse.NewColor255(0, 0, 255), stroke)
	assert.Equal(t, 2., *sc.EffectiveStyle(shapes[1]).LineWidth)
}

func TestProcessViewBox(t *testing.T) {
	res := process(t, `<svg viewBox="0 0 10 20" width="100" height="200"></svg>`, IgnoreErrorMode)
	doc := res.Scene.Node(res.Scene.Root()).Content.(svgscene.Document)
	assert.Equal(t, svgpath.Rect{W: 10, H: 20}, *doc.ViewBox)
	assert.Equal(t, svgpath.Rect{W: 100, H: 200}, *doc.ViewPort)
}

func TestDanglingUse(t *testing.T) {
	res := process(t, `<svg xmlns:xlink="http://www.w3.org/1999/xlink">
		<use xlink:href="#missing" x="1" y="2" fill="red"/>
	</svg>`, IgnoreErrorMode)
	assert.Equal(t, []string{`Could not find element with id "missing"`}, warnings(res))
	assert.Empty(t, res.Scene.Children(res.Scene.Root()))
}

func TestUse(t *testing.T) {
	res := process(t, `<svg xmlns:xlink="http://www.w3.org/1999/xlink">
		<defs>
			<rect id="box" width="10" height="10" fill="green"/>
		</defs>
		<use xlink:href="#box" fill="red"/>
		<use href="#box" x="20" y="30"/>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	assert.Empty(t, warnings(res))
	children := sc.Children(sc.Root())
	require.Len(t, children, 2)

	// the own fill of the referenced element wins
	clone := children[0]
	assert.NotEqual(t, res.ElementsByID["box"], clone)
	assert.Equal(t, svgscene.KindRect, sc.Kind(clone))
	fill, _ := sc.FillColor(clone)
	assert.Equal(t, svgparse.NewColor255(0, 128, 0), fill)

	wrapper := children[1]
	assert.Equal(t, svgscene.KindGroup, sc.Kind(wrapper))
	assert.Equal(t, svgpath.NewTranslation(20, 30), *sc.Node(wrapper).Transform)
	require.Len(t, sc.Children(wrapper), 1)
	assert.Equal(t, svgscene.KindRect, sc.Kind(sc.Children(wrapper)[0]))

	// defs content is not drawn
	assert.Equal(t, svgscene.NoNode, sc.Parent(res.ElementsByID["box"]))
}

func TestUnhandled(t *testing.T) {
	res := process(t, `<svg>
		<rect width="1" height="2" foo="bar" data-x="1"/>
		<filter/>
	</svg>`, IgnoreErrorMode)
	assert.Equal(t, []string{
		"Unhandled attributes on <rect>: foo, data-x",
		"Unhandled element <filter>",
	}, warnings(res))
	assert.Len(t, res.Scene.Children(res.Scene.Root()), 1)
}

func TestDuplicateID(t *testing.T) {
	res := process(t, `<svg>
		<rect id="a" width="1" height="2"/>
		<circle id="a" r="2"/>
	</svg>`, IgnoreErrorMode)
	assert.Equal(t, []string{`Duplicate element id "a"`}, warnings(res))
	assert.Equal(t, svgscene.KindRect, res.Scene.Kind(res.ElementsByID["a"]))
}

func TestStylePrecedence(t *testing.T) {
	res := process(t, `<svg>
		<rect width="1" height="2" style="fill:red; stroke:blue; unknown:1" fill="#00ff00" fill-opacity="0.5"/>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	rect := sc.Children(sc.Root())[0]
	fill, _ := sc.FillColor(rect)
	assert.Equal(t, svgparse.Color{R: 0, G: 1, B: 0, A: 0.5}, fill)
	stroke, ok := sc.StrokeColor(rect)
	assert.True(t, ok)
	assert.Equal(t, svgparse.NewColor255(0, 0, 255), stroke)
	assert.Len(t, res.Events.Filter(Debug), 1)
}

func TestStrokeNone(t *testing.T) {
	res := process(t, `<svg>
		<g stroke="red"><path d="M0 0 L1 1" stroke="none" fill="none"/></g>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	path := sc.Children(sc.Children(sc.Root())[0])[0]
	_, ok := sc.StrokeColor(path)
	assert.False(t, ok)
	assert.False(t, sc.Node(path).DrawFill)
}

func TestGradientInheritance(t *testing.T) {
	res := process(t, `<svg xmlns:xlink="http://www.w3.org/1999/xlink">
		<defs>
			<linearGradient id="base" gradientUnits="userSpaceOnUse" x1="0" x2="100">
				<stop offset="0" stop-color="red"/>
				<stop offset="100%" style="stop-color:blue; stop-opacity:0.5"/>
			</linearGradient>
			<linearGradient id="derived" xlink:href="#base" y2="50"/>
		</defs>
		<rect width="100" height="100" fill="url(#derived)"/>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	assert.Empty(t, warnings(res))

	base, derived := res.ElementsByID["base"], res.ElementsByID["derived"]
	rect := sc.Children(sc.Root())[0]
	assert.Equal(t, derived, sc.Node(rect).Gradient)
	assert.Equal(t, base, sc.Node(derived).Content.(svgscene.LinearGradient).Inherited)

	grad, _ := sc.CoalesceGradient(derived)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, 1., grad.Stops[1].Offset)
	assert.Equal(t, svgparse.Color{B: 1, A: 0.5}, grad.Stops[1].Color)
	require.NotNil(t, grad.Units)
	assert.Equal(t, svgscene.UserSpaceOnUse, *grad.Units)
	assert.Equal(t, svgpath.Point{X: 0, Y: 0}, *grad.Point1)
	// the own partial point completed by the defaults
	assert.Equal(t, svgpath.Point{X: 1, Y: 50}, *grad.Point2)
}

func TestFillURL(t *testing.T) {
	res := process(t, `<svg>
		<rect id="notGradient" width="1" height="1"/>
		<rect width="1" height="1" fill="url(#nope)" stroke="blue"/>
		<rect width="1" height="1" fill="url(#notGradient)"/>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	children := sc.Children(sc.Root())
	require.Len(t, children, 3)
	assert.Equal(t, []string{`Could not find paint server with id "nope"`}, warnings(res))
	// the whole element is hidden, stroke included
	require.NotNil(t, sc.Node(children[1]).Style.Alpha)
	assert.Equal(t, 0., *sc.Node(children[1]).Style.Alpha)
	_, hasStroke := sc.StrokeColor(children[1])
	assert.True(t, hasStroke)
	assert.Equal(t, 0., *sc.Node(children[2]).Style.Alpha)
}

func TestText(t *testing.T) {
	res := process(t, `<svg>
		<text x="10" y="20" font-family="'Open Sans', sans-serif" font-size="14">
			Hello
			<tspan y="40" fill="red">world  and
			more</tspan>
		</text>
	</svg>`, IgnoreErrorMode)
	sc := res.Scene
	text := sc.Children(sc.Root())[0]
	content := sc.Node(text).Content.(svgscene.Text)
	require.Len(t, content.Spans, 2)
	assert.Equal(t, "Hello", content.Spans[0].Text)
	assert.Equal(t, svgpath.Point{X: 10, Y: 20}, content.Spans[0].Origin)
	assert.Equal(t, "world and more", content.Spans[1].Text)
	assert.Equal(t, svgpath.Point{X: 10, Y: 40}, content.Spans[1].Origin)
	c, _ := sc.SpanFillColor(text, content.Spans[1])
	assert.Equal(t, svgparse.NewColor255(255, 0, 0), c)
	assert.Equal(t, "Open Sans", sc.FontFamily(text))
	assert.Equal(t, 14., sc.FontSize(text))
}

func TestNestedSvg(t *testing.T) {
	res := process(t, `<svg><svg x="5" y="6" width="10" height="10"><rect width="1" height="1"/></svg></svg>`, IgnoreErrorMode)
	sc := res.Scene
	inner := sc.Children(sc.Root())[0]
	assert.Equal(t, svgscene.KindGroup, sc.Kind(inner))
	assert.Equal(t, svgpath.NewTranslation(5, 6), *sc.Node(inner).Transform)
	assert.Len(t, sc.Children(inner), 1)
}

func TestElementErrors(t *testing.T) {
	const src = `<svg>
		<rect width="1"/>
		<circle r="abc"/>
		<path d="M 0 0 L 1 1"/>
	</svg>`
	res := process(t, src, IgnoreErrorMode)
	assert.Len(t, warnings(res), 2)
	assert.Len(t, res.Scene.Children(res.Scene.Root()), 1)

	_, err := ProcessReader(strings.NewReader(src), Options{ErrorMode: StrictErrorMode})
	require.Error(t, err)
	assert.True(t, errors.Is(err, svgparse.ErrExpectedElementNotFound))
}

func TestInvalidRoot(t *testing.T) {
	_, err := ProcessReader(strings.NewReader(`<html></html>`), Options{})
	assert.True(t, errors.Is(err, svgparse.ErrExpectedElementNotFound))

	_, err = ProcessReader(strings.NewReader(`<svg><rect`), Options{})
	assert.True(t, errors.Is(err, svgparse.ErrCorruptXML))
}

func TestEvents(t *testing.T) {
	es := Events{{Debug, "a"}, {Warning, "b"}, {Error, "c"}}
	assert.Equal(t, Events{{Warning, "b"}, {Error, "c"}}, es.Filter(Warning))
	assert.Equal(t, "WARNING: b", es[1].String())
}
