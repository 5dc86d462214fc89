// Package svgicon draws SVG files as icons: the document
// is scaled into a target rectangle of an existing backend,
// so that several icons may share the same output.
package svgicon

import (
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgprocess"
	"github.com/benoitkugler/svgscene/svgscene"
)

// Icon holds a parsed SVG document.
// See the `Draw` method to use it.
type Icon struct {
	Scene       *svgscene.Scene
	ViewBox     svgpath.Rect
	Title       string
	Description string
	Transform   svgpath.Matrix2D
}

// ReadIconStream reads the icon from the given io.Reader.
// errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode svgprocess.ErrorMode) (*Icon, error) {
	res, err := svgprocess.ProcessReader(stream, svgprocess.Options{ErrorMode: errMode})
	if err != nil {
		return nil, err
	}
	root := res.Scene.Node(res.Scene.Root())
	if root == nil {
		return nil, errors.New("invalid svg icon: missing document")
	}
	doc, ok := root.Content.(svgscene.Document)
	if !ok {
		return nil, errors.New("invalid svg icon: missing document")
	}
	icon := &Icon{
		Scene:       res.Scene,
		Title:       doc.Title,
		Description: doc.Description,
		Transform:   svgpath.Identity,
	}
	icon.ViewBox, _ = res.Scene.DocumentSize()
	return icon, nil
}

// ReadIcon reads the icon from the named file.
func ReadIcon(iconFile string, errMode svgprocess.ErrorMode) (*Icon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, errMode)
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments.
// It has no effect on icons without size.
func (ic *Icon) SetTarget(x, y, w, h float64) {
	if ic.ViewBox.IsEmpty() {
		return
	}
	ic.Transform = svgpath.NewTranslation(x, y).
		Scale(w/ic.ViewBox.W, h/ic.ViewBox.H).
		Translate(-ic.ViewBox.X, -ic.ViewBox.Y)
}

// Draw the icon into the backend `b`, applying Transform.
// The view box mapping of the backend is bypassed.
func (ic *Icon) Draw(b svgdraw.Backend) error {
	sc := ic.Scene
	root := sc.Root()
	if n := sc.Node(root); n == nil || !n.Display {
		return nil
	}

	b.PushState()
	defer b.PopState()

	b.ConcatTransform(ic.Transform)
	black := svgparse.Black
	b.SetFillColor(&black)
	b.SetLineWidth(svgscene.DefaultLineWidth)

	rd := svgdraw.NewRenderer(sc)
	for _, child := range sc.Children(root) {
		if err := rd.RenderNode(b, child); err != nil {
			return err
		}
	}
	return nil
}
