package svgxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="ISO-8859-1"?>
<!-- comment -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1">
	<title>Caf` + "\xe9" + `</title>
	<use xlink:href="#a" x="2"/>
	<text>Hello <tspan>world</tspan></text>
</svg>`

func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Name)

	v, ok := root.Attr("version")
	assert.True(t, ok)
	assert.Equal(t, "1.1", v)
	_, ok = root.Attr("xmlns:xlink")
	assert.True(t, ok)

	children := root.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "Café", children[0].Text())

	href, ok := children[1].Attr("xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "#a", href)

	text := children[2]
	require.Len(t, text.Children, 2)
	assert.Equal(t, CharData("Hello "), text.Children[0])
	assert.Equal(t, "Hello ", text.Text())
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "<svg>", "<svg></g>"} {
		_, err := Decode(strings.NewReader(input))
		assert.True(t, errors.Is(err, svgparse.ErrCorruptXML), input)
	}
}
