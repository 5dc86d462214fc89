package svgsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgprocess"
	"github.com/benoitkugler/svgscene/svgscene"
)

func parse(t *testing.T, src string) *svgscene.Scene {
	t.Helper()
	res, err := svgprocess.ProcessReader(strings.NewReader(src), svgprocess.Options{})
	require.NoError(t, err)
	return res.Scene
}

func lines(t *testing.T, src string) []string {
	t.Helper()
	out, err := Render(parse(t, src))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestRender(t *testing.T) {
	got := lines(t, `<svg width="10" height="10"><rect width="5" height="5" fill="red" transform="translate(1 2)"/></svg>`)
	assert.Equal(t, []string{
		"CGContextSaveGState(context)",
		"CGContextSetRGBFillColor(context, 0, 0, 0, 1)",
		"CGContextSetLineWidth(context, 1)",
		"CGContextSaveGState(context)",
		"CGContextSetRGBFillColor(context, 1, 0, 0, 1)",
		"CGContextConcatCTM(context, CGAffineTransform(1, 0, 0, 1, 1, 2))",
		`CGContextAddPath(context, "M0,0 L5,0 L5,5 L0,5 Z")`,
		"CGContextDrawPath(context, kCGPathFill)",
		"CGContextRestoreGState(context)",
		"CGContextRestoreGState(context)",
	}, got)
}

func TestStyleAndModes(t *testing.T) {
	got := lines(t, `<svg>
		<path d="M0 0 L1 1" fill="none" stroke="blue" stroke-linecap="round" stroke-dasharray="1,2" stroke-dashoffset="0.5"/>
		<path d="M0 0 L1 1 L0 1 Z" stroke="blue" fill-rule="evenodd" opacity="0.5" mix-blend-mode="multiply"/>
	</svg>`)
	assert.Contains(t, got, `CGContextAddPath(context, "M0 0 L1 1")`)
	assert.Contains(t, got, "CGContextSetLineCap(context, kCGLineCapRound)")
	assert.Contains(t, got, "CGContextSetLineDash(context, 0.5, [1, 2], 2)")
	assert.Contains(t, got, "CGContextDrawPath(context, kCGPathStroke)")
	assert.Contains(t, got, "CGContextSetAlpha(context, 0.5)")
	assert.Contains(t, got, "CGContextSetBlendMode(context, kCGBlendModeMultiply)")
	assert.Contains(t, got, "CGContextDrawPath(context, kCGPathEOFillStroke)")
}

func TestText(t *testing.T) {
	got := lines(t, `<svg><text x="1" y="2" font-family="Courier" font-size="8">abc</text></svg>`)
	assert.Contains(t, got, `CGContextSelectFont(context, "Courier", 8)`)
	assert.Contains(t, got, `CGContextShowTextAtPoint(context, 1, 2, "abc", 3)`)
}

func TestGradient(t *testing.T) {
	got := lines(t, `<svg>
		<defs><linearGradient id="g" x1="0" y1="0" x2="0" y2="1">
			<stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue"/>
		</linearGradient></defs>
		<rect width="4" height="4" fill="url(#g)"/>
	</svg>`)
	assert.Contains(t, got, "CGContextClip(context)")
	assert.Contains(t, got, "CGContextDrawLinearGradient(context, CGGradient([CGColor(1, 0, 0, 1), CGColor(0, 0, 1, 1)], [0, 1]), CGPoint(0, 0), CGPoint(0, 4), 0)")
}

func TestBalanced(t *testing.T) {
	b := NewBackend()
	sc := parse(t, `<svg><g><g><circle r="1"/></g></g><text>a<tspan>b</tspan></text></svg>`)
	require.NoError(t, svgdraw.NewRenderer(sc).Render(b))
	src := b.Source()
	assert.Equal(t, strings.Count(src, "CGContextSaveGState"), strings.Count(src, "CGContextRestoreGState"))
	assert.Equal(t, 0, b.Depth())
}

func TestWriteFile(t *testing.T) {
	target, err := svgdraw.NewBackend("source", svgdraw.Config{})
	require.NoError(t, err)
	require.NoError(t, svgdraw.NewRenderer(parse(t, `<svg><circle r="2"/></svg>`)).Render(target))

	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, target.WriteFile(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CGContextDrawPath(context, kCGPathFill)")
}
