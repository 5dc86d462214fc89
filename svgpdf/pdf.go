// Implements a PDF backend to render SVG scenes,
// by wrapping github.com/benoitkugler/pdf.
package svgpdf

import (
	"errors"
	"image/color"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgscene"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdraw.Driver  = Renderer{}
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = (*stroker)(nil)
)

func init() {
	svgdraw.Register("pdf", func(config svgdraw.Config) (svgdraw.Target, error) {
		return NewBackend(Options{Width: config.Width, Height: config.Height})
	})
}

// stateKey identifies an extended graphic state
type stateKey struct {
	opacity float64
	blend   svgscene.BlendMode
}

// Renderer writes the drawing operations into a content stream.
// Opacities and blend modes are set with extended graphic states, cached by value.
type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[stateKey]*model.GraphicState
	strokeOpacityStates map[stateKey]*model.GraphicState

	// BlendMode returns the blend mode of the current graphic state.
	// When nil, the normal mode is used.
	BlendMode func() svgscene.BlendMode
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf         *contentstream.Appearance
	blendMode   func() svgscene.BlendMode
	boundingBox fixed.Rectangle26_6
	started     bool
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	fillOpacityStates map[stateKey]*model.GraphicState
}

// implements the stroking operation.
// Filling consumes the current path, so the stroker
// always writes the path again.
type stroker struct {
	pather
	strokeOpacityStates map[stateKey]*model.GraphicState
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{
		pdf:                 cs,
		fillOpacityStates:   make(map[stateKey]*model.GraphicState),
		strokeOpacityStates: make(map[stateKey]*model.GraphicState),
	}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	p := pather{pdf: r.pdf, blendMode: r.BlendMode}
	if willFill {
		f = &filler{pather: p, fillOpacityStates: r.fillOpacityStates}
	}
	if willStroke {
		s = &stroker{pather: p, strokeOpacityStates: r.strokeOpacityStates}
	}
	return f, s
}

func (p *pather) stateKey(opacity float64) stateKey {
	key := stateKey{opacity: opacity}
	if p.blendMode != nil {
		key.blend = p.blendMode()
	}
	return key
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {
	p.boundingBox = fixed.Rectangle26_6{}
	p.started = false
}

func (p *pather) extend(a fixed.Point26_6) {
	if !p.started {
		p.boundingBox = fixed.Rectangle26_6{Min: a, Max: a}
		p.started = true
		return
	}
	if a.X < p.boundingBox.Min.X {
		p.boundingBox.Min.X = a.X
	}
	if a.Y < p.boundingBox.Min.Y {
		p.boundingBox.Min.Y = a.Y
	}
	if a.X > p.boundingBox.Max.X {
		p.boundingBox.Max.X = a.X
	}
	if a.Y > p.boundingBox.Max.Y {
		p.boundingBox.Max.Y = a.Y
	}
}

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
	p.extend(a)
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
	p.extend(b)
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.Ops(contentstream.OpCurveTo1{X2: cx, Y2: cy, X3: x, Y3: y})
	p.extend(b)
	p.extend(c)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
	p.extend(b)
	p.extend(c)
	p.extend(d)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

// toRGB drops the alpha channel, returned separately.
func toRGB(c svgparse.Color) (color.NRGBA, float64) {
	return color.NRGBA{
		R: uint8(svgparse.To255(c.R)),
		G: uint8(svgparse.To255(c.G)),
		B: uint8(svgparse.To255(c.B)),
		A: 0xff,
	}, c.A
}

// averageColor is used in place of gradients: it returns
// the mean of the stop colors, weighted by the length of
// the intervals around each stop.
// TODO: support gradients with axial shadings.
func averageColor(stops []svgscene.GradientStop) svgparse.Color {
	switch len(stops) {
	case 0:
		return svgparse.Color{}
	case 1:
		return stops[0].Color
	}
	var out svgparse.Color
	var total float64
	for i, stop := range stops {
		prev, next := stop.Offset, stop.Offset
		if i > 0 {
			prev = stops[i-1].Offset
		}
		if i < len(stops)-1 {
			next = stops[i+1].Offset
		}
		w := (next - prev) / 2
		if i == 0 {
			w += stop.Offset
		}
		if i == len(stops)-1 {
			w += 1 - stop.Offset
		}
		out.R += w * stop.Color.R
		out.G += w * stop.Color.G
		out.B += w * stop.Color.B
		out.A += w * stop.Color.A
		total += w
	}
	if total == 0 {
		return stops[0].Color
	}
	out.R /= total
	out.G /= total
	out.B /= total
	out.A /= total
	return out
}

func patternColor(pattern svgdraw.Pattern) (color.NRGBA, float64) {
	switch pattern := pattern.(type) {
	case svgdraw.PlainColor:
		return toRGB(svgparse.Color(pattern))
	case svgdraw.LinearGradient:
		return toRGB(averageColor(pattern.Stops))
	}
	return color.NRGBA{A: 0xff}, 1
}

// opacityState returns the cached state for `key`,
// creating it with `build` if needed.
func opacityState(cache map[stateKey]*model.GraphicState, key stateKey, build func(model.ObjFloat, []model.Name) *model.GraphicState) *model.GraphicState {
	gs, ok := cache[key]
	if !ok {
		gs = build(model.ObjFloat(key.opacity), []model.Name{model.Name(key.blend.String())})
		cache[key] = gs
	}
	return gs
}

func (f *filler) Draw(pattern svgdraw.Pattern, opacity float64) {
	c, alpha := patternColor(pattern)
	f.pdf.SetColorFill(c)
	opacity *= alpha
	gs := opacityState(f.fillOpacityStates, f.stateKey(opacity), func(o model.ObjFloat, bm []model.Name) *model.GraphicState {
		return &model.GraphicState{Ca: o, BM: bm}
	})
	name := f.pdf.AddExtGState(gs)
	f.pdf.Ops(contentstream.OpSetExtGState{Dict: name})

	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

var (
	capStyles  = [...]uint8{svgdraw.ButtCap: 0, svgdraw.RoundCap: 1, svgdraw.SquareCap: 2}
	joinStyles = [...]uint8{svgdraw.Miter: 0, svgdraw.Round: 1, svgdraw.Bevel: 2}
)

func (s *stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash.Dash,
			Phase: options.Dash.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: capStyles[options.Join.LineCap]},
		contentstream.OpSetLineJoin{Style: joinStyles[options.Join.LineJoin]},
		contentstream.OpSetMiterLimit{Limit: float64(options.Join.MiterLimit) / 64},
	)
}

func (s *stroker) Draw(pattern svgdraw.Pattern, opacity float64) {
	c, alpha := patternColor(pattern)
	s.pdf.SetColorStroke(c)
	opacity *= alpha
	gs := opacityState(s.strokeOpacityStates, s.stateKey(opacity), func(o model.ObjFloat, bm []model.Name) *model.GraphicState {
		return &model.GraphicState{CA: o, BM: bm}
	})
	name := s.pdf.AddExtGState(gs)
	s.pdf.Ops(contentstream.OpSetExtGState{Dict: name}, contentstream.OpStroke{})
}

// Options configures the page.
type Options struct {
	// Width and Height are the page dimensions, in points.
	Width, Height float64
}

// A4 page, in points
var A4 = Options{Width: 595.28, Height: 841.89}

var errInvalidSize = errors.New("svgpdf: invalid page size")

// Backend draws a scene onto a single page.
// The y axis is flipped so that the scene coordinates may be used.
type Backend struct {
	*svgdraw.Painter
	page     contentstream.Appearance
	renderer Renderer
	closed   bool
}

// NewBackend returns a backend for a page of the given size.
func NewBackend(opts Options) (*Backend, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errInvalidSize
	}
	b := &Backend{page: contentstream.NewAppearance(opts.Width, opts.Height)}
	b.renderer = NewRenderer(&b.page)
	b.renderer.BlendMode = b.blendMode
	b.Painter = svgdraw.NewPainter(b.renderer, opts.Width, opts.Height)
	b.page.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, opts.Height}},
	)
	return b, nil
}

func (b *Backend) blendMode() svgscene.BlendMode {
	if bm := b.Style().BlendMode; bm != nil {
		return *bm
	}
	return svgscene.BlendNormal
}

// Document closes the page content and returns a document
// containing it. The backend must not be used afterwards.
func (b *Backend) Document() model.Document {
	if !b.closed {
		b.page.Ops(contentstream.OpRestore{})
		b.closed = true
	}
	var doc model.Document
	var page model.PageObject
	b.page.ApplyToPageObject(&page, true)
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	return doc
}

// WriteFile saves the page as a PDF file.
func (b *Backend) WriteFile(path string) error {
	doc := b.Document()
	return doc.WriteFile(path, nil)
}

// WriteDocument renders the scene into a one page PDF file.
// When the page size is not given, the document view port
// (or view box) is used.
func WriteDocument(sc *svgscene.Scene, path string, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		vb, ok := sc.DocumentSize()
		if !ok {
			opts = A4
		} else {
			opts.Width, opts.Height = vb.W, vb.H
		}
	}
	b, err := NewBackend(opts)
	if err != nil {
		return err
	}
	if err := svgdraw.NewRenderer(sc).Render(b); err != nil {
		return err
	}
	return b.WriteFile(path)
}
