package svgjson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgprocess"
	"github.com/benoitkugler/svgscene/svgscene"
)

func parse(t *testing.T, src string) *svgscene.Scene {
	t.Helper()
	res, err := svgprocess.ProcessReader(strings.NewReader(src), svgprocess.Options{})
	require.NoError(t, err)
	return res.Scene
}

// elements returns the children of the document group, after
// a round trip through JSON.
func elements(t *testing.T, src string) []interface{} {
	t.Helper()
	data, err := Render(parse(t, src))
	require.NoError(t, err)
	var out dict
	require.NoError(t, json.Unmarshal(data, &out))
	doc := out[keyArrayOfElements].([]interface{})[0].(dict)
	return doc[keyArrayOfElements].([]interface{})
}

func TestRenderRect(t *testing.T) {
	data, err := Render(parse(t, `<svg width="10" height="10"><rect id="r" width="5" height="5" fill="red"/></svg>`))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"elementtype": "arrayofelements",
		"arrayofelements": [{
			"elementtype": "arrayofelements",
			"viewBox": {"origin": {"x": 0, "y": 0}, "size": {"width": 10, "height": 10}},
			"fillcolor": "#000000",
			"linewidth": 1,
			"arrayofelements": [{
				"elementdebugname": "r",
				"fillcolor": "#FF0000",
				"rect": {"origin": {"x": 0, "y": 0}, "size": {"width": 5, "height": 5}},
				"elementtype": "fillrectangle"
			}]
		}]
	}`, string(data))
}

func TestDeterministic(t *testing.T) {
	src := `<svg viewBox="0 0 20 20"><g id="a" transform="translate(1 2)" stroke="blue">
		<circle cx="5" cy="5" r="2"/><line x1="0" y1="0" x2="3" y2="4"/></g></svg>`
	first, err := Render(parse(t, src))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Render(parse(t, src))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestShapes(t *testing.T) {
	els := elements(t, `<svg width="100" height="100">
		<rect width="5" height="5" fill="red" stroke="blue"/>
		<circle cx="5" cy="5" r="2" fill="none" stroke="blue"/>
		<ellipse cx="5" cy="5" rx="2" ry="1"/>
		<line x1="0" y1="0" x2="3" y2="4" stroke="black"/>
		<path d="M0 0 L10 10" stroke="black"/>
		<polygon points="0,0 10,0 10,10" fill-rule="evenodd"/>
		<polyline points="0,0 10,0 10,10" fill="none" stroke="black"/>
		<rect width="10" height="10" rx="2"/>
	</svg>`)
	require.Len(t, els, 8)

	rect := els[0].(dict)
	assert.Equal(t, valueFillAndStrokePath, rect[keyElementType])
	assert.Equal(t, "#0000FF", rect[keyStrokeColor])
	pathEls := rect[keyArrayOfPathElement].([]interface{})
	assert.Equal(t, valuePathRectangle, pathEls[0].(dict)[keyElementType])

	circle := els[1].(dict)
	assert.Equal(t, valueStrokeOval, circle[keyElementType])
	assert.Equal(t, dict{
		keyOrigin: dict{keyX: 3., keyY: 3.},
		keySize:   dict{keyWidth: 4., keyHeight: 4.},
	}, circle[keyRect])

	assert.Equal(t, valueFillOval, els[2].(dict)[keyElementType])

	line := els[3].(dict)
	assert.Equal(t, valueDrawLine, line[keyElementType])
	assert.Equal(t, dict{keyX: 3., keyY: 4.}, line[keyLine].(dict)[keyEndPoint])

	path := els[4].(dict)
	assert.Equal(t, "M0 0 L10 10", path[keySVGPath])
	assert.Equal(t, valueStrokePath, path[keyElementType])

	polygon := els[5].(dict)
	assert.Equal(t, valueFillPath, polygon[keyElementType])
	assert.Equal(t, valueEvenOddRule, polygon[keyClippingRule])
	polyEls := polygon[keyArrayOfPathElement].([]interface{})
	require.Len(t, polyEls, 3)
	assert.Equal(t, valueCloseSubPath, polyEls[2].(dict)[keyElementType])

	polyline := els[6].(dict)
	assert.Equal(t, valueStrokePath, polyline[keyElementType])
	assert.Len(t, polyline[keyArrayOfPathElement], 2)

	rounded := els[7].(dict)
	assert.Equal(t, valueFillPath, rounded[keyElementType])
	assert.Equal(t, dict{keyX: 2., keyY: 0.}, rounded[keyStartPoint])
	assert.Len(t, rounded[keyArrayOfPathElement], 9)
}

func TestStyle(t *testing.T) {
	els := elements(t, `<svg width="10" height="10">
		<rect width="5" height="5" fill="black" fill-opacity="0.5" stroke="black" stroke-width="2"
			stroke-linecap="round" stroke-linejoin="bevel" stroke-miterlimit="3"
			stroke-dasharray="1 2" stroke-dashoffset="1" opacity="0.25"/>
	</svg>`)
	rect := els[0].(dict)
	assert.Equal(t, dict{
		keyRed: 0., keyGreen: 0., keyBlue: 0., keyAlpha: 0.5, keyColorProfile: valueSRGB,
	}, rect[keyFillColor])
	assert.Equal(t, 2., rect[keyLineWidth])
	assert.Equal(t, "kCGLineCapRound", rect[keyLineCap])
	assert.Equal(t, "kCGLineJoinBevel", rect[keyLineJoin])
	assert.Equal(t, 3., rect[keyMiter])
	assert.Equal(t, []interface{}{1., 2.}, rect[keyDashArray])
	assert.Equal(t, 1., rect[keyDashPhase])
	assert.Equal(t, 0.25, rect[keyContextAlpha])
}

func TestTransform(t *testing.T) {
	els := elements(t, `<svg width="10" height="10">
		<g transform="matrix(1 2 3 4 5 6)"><rect width="5" height="5"/></g>
	</svg>`)
	group := els[0].(dict)
	assert.Equal(t, keyArrayOfElements, group[keyElementType])
	assert.Equal(t, dict{keyM11: 1., keyM12: 2., keyM21: 3., keyM22: 4., keyTX: 5., keyTY: 6.}, group[keyAffineTransform])
	assert.Len(t, group[keyArrayOfElements], 1)
}

func TestText(t *testing.T) {
	els := elements(t, `<svg width="100" height="100">
		<text x="5" y="20" font-family="Arial" font-size="10" stroke="red">Hi</text>
	</svg>`)
	text := els[0].(dict)
	assert.Equal(t, keyArrayOfElements, text[keyElementType])
	spans := text[keyArrayOfElements].([]interface{})
	require.Len(t, spans, 1)

	wrapper := spans[0].(dict)
	assert.Equal(t, keyArrayOfElements, wrapper[keyElementType])
	run := wrapper[keyArrayOfElements].([]interface{})[0].(dict)
	assert.Equal(t, valueBasicString, run[keyElementType])
	assert.Equal(t, "Hi", run[keyStringText])
	assert.Equal(t, "ArialMT", run[keyPostscriptFontName])
	assert.Equal(t, 10., run[keyFontSize])
	assert.Equal(t, dict{keyX: 5., keyY: 0.}, run[keyPoint])
	assert.Equal(t, "#000000", run[keyFillColor])
	assert.Equal(t, "#FF0000", run[keyStrokeColor])
	assert.Equal(t, -1., run[keyStringStrokeWidth])
	assert.NotContains(t, run, keyTextAlignment)

	flip := run[keyContextTransformation].([]interface{})
	require.Len(t, flip, 2)
	assert.Equal(t, dict{keyX: 0., keyY: 20.}, flip[0].(dict)[keyTranslation])
	assert.Equal(t, dict{keyX: 1., keyY: -1.}, flip[1].(dict)[keyScale])
}

func TestTextAnchor(t *testing.T) {
	els := elements(t, `<svg width="100" height="100">
		<text x="50" y="20" text-anchor="middle">Hi</text>
		<text x="50" y="40" text-anchor="end">Hi</text>
	</svg>`)
	require.Len(t, els, 2)
	run := func(i int) dict {
		wrapper := els[i].(dict)[keyArrayOfElements].([]interface{})[0].(dict)
		return wrapper[keyArrayOfElements].([]interface{})[0].(dict)
	}
	assert.Equal(t, valueAlignCenter, run(0)[keyTextAlignment])
	assert.Equal(t, valueAlignRight, run(1)[keyTextAlignment])
}

func TestGradient(t *testing.T) {
	els := elements(t, `<svg width="100" height="100">
		<defs><linearGradient id="g">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue" stop-opacity="0.5"/>
		</linearGradient></defs>
		<rect width="10" height="10" fill="url(#g)"/>
		<rect width="10" height="10" fill="url(#g)" stroke="black" transform="translate(1 1)"/>
	</svg>`)
	require.Len(t, els, 2)

	fill := els[0].(dict)
	assert.Equal(t, valueLinearGradient, fill[keyElementType])
	assert.Equal(t, []interface{}{0., 1.}, fill[keyArrayOfLocations])
	colors := fill[keyArrayOfColors].([]interface{})
	assert.Equal(t, "#FF0000", colors[0])
	assert.Equal(t, 0.5, colors[1].(dict)[keyAlpha])
	assert.Equal(t, dict{keyX: 10., keyY: 0.}, fill[keyLine].(dict)[keyEndPoint])
	assert.Len(t, fill[keyArrayOfPathElement], 4)

	wrapper := els[1].(dict)
	assert.Equal(t, keyArrayOfElements, wrapper[keyElementType])
	assert.Contains(t, wrapper, keyAffineTransform)
	both := wrapper[keyArrayOfElements].([]interface{})
	require.Len(t, both, 2)
	assert.Equal(t, valueLinearGradient, both[0].(dict)[keyElementType])
	assert.Equal(t, valueStrokeRectangle, both[1].(dict)[keyElementType])
	assert.NotContains(t, both[1], keyAffineTransform)
}

func TestColorValue(t *testing.T) {
	assert.Equal(t, "#FF8000", colorValue(svgparse.Color{R: 1, G: 0.5, A: 1}))
	assert.Equal(t, "#FF0000", colorValue(svgparse.Color{R: 1, A: 0.999}))
	assert.IsType(t, dict{}, colorValue(svgparse.Color{R: 1, A: 0.9}))
}

func TestPostscriptName(t *testing.T) {
	assert.Equal(t, "Helvetica", postscriptName("Helvetica"))
	assert.Equal(t, "TimesNewRomanPSMT", postscriptName(" Times New Roman"))
	assert.Equal(t, "MyFont", postscriptName("My Font"))
}

func TestBackendStructure(t *testing.T) {
	b := NewBackend()
	b.EndElement() // ignored at the root
	b.StartElement("leaf")
	b.StartGroup("ignored")
	b.EndElement()
	b.AddPath(svgdraw.Shape{Content: svgscene.Polygon{}})
	b.DrawPath(svgdraw.Stroke)

	root := b.Dict()
	children := root[keyArrayOfElements].([]interface{})
	require.Len(t, children, 1)
	leaf := children[0].(dict)
	assert.Equal(t, "leaf", leaf[keyElementDebugName])
	assert.Equal(t, valueStrokePath, leaf[keyElementType])
	assert.Equal(t, dict{keyX: 0., keyY: 0.}, leaf[keyStartPoint])
}

func TestWriteFile(t *testing.T) {
	target, err := svgdraw.NewBackend("json", svgdraw.Config{})
	require.NoError(t, err)
	require.NoError(t, svgdraw.NewRenderer(parse(t, `<svg><circle r="2"/></svg>`)).Render(target))

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, target.WriteFile(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var content dict
	require.NoError(t, json.Unmarshal(data, &content))
	assert.Equal(t, keyArrayOfElements, content[keyElementType])
}
