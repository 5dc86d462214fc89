// Implements a raster backend to render SVG scenes,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/benoitkugler/svgscene/svgdraw"
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdraw.Driver     = (*Renderer)(nil)
	_ svgdraw.TextDriver = (*Renderer)(nil)
	_ svgdraw.Filler     = filler{}
	_ svgdraw.Stroker    = stroker{}
)

func init() {
	svgdraw.Register("raster", func(config svgdraw.Config) (svgdraw.Target, error) {
		return NewBackend(Options{Width: int(config.Width), Height: int(config.Height)})
	})
}

// Renderer draws into an image.
type Renderer struct {
	img    draw.Image
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	font  *opentype.Font
	faces map[float64]font.Face // by size
}

type filler struct {
	*rasterx.Filler
}

type stroker struct {
	*rasterx.Dasher
}

// NewRenderer returns a renderer drawing into `img`.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(img draw.Image, scanner rasterx.Scanner) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, img.Bounds())
	}
	return &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		faces:  make(map[float64]font.Face),
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

// opaque splits the alpha channel, since rasterx applies
// the stop opacity separately.
func opaque(c svgparse.Color) (svgparse.Color, float64) {
	a := c.A
	c.A = 1
	return c, a
}

func toRasterxGradient(grad svgdraw.LinearGradient) rasterx.Gradient {
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, stop := range grad.Stops {
		c, a := opaque(stop.Color)
		stops[i] = rasterx.GradStop{StopColor: c, Offset: stop.Offset, Opacity: a}
	}
	return rasterx.Gradient{
		Points: [5]float64{grad.X1, grad.Y1, grad.X2, grad.Y2},
		Stops:  stops,
		Matrix: rasterx.Identity,
		Units:  rasterx.UserSpaceOnUse, // points are already in device space
	}
}

// resolve gradient color
func setColorFromPattern(color svgdraw.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch color := color.(type) {
	case svgdraw.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(svgparse.Color(color), opacity))
	case svgdraw.LinearGradient:
		rasterxGradient := toRasterxGradient(color)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

func (f filler) Draw(color svgdraw.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Filler.Scanner)
	f.Filler.Draw()
}

func (s stroker) Draw(color svgdraw.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.Dasher.Scanner)
	s.Dasher.Draw()
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round: rasterx.Round,
		svgdraw.Bevel: rasterx.Bevel,
		svgdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:   rasterx.ButtCap,
		svgdraw.SquareCap: rasterx.SquareCap,
		svgdraw.RoundCap:  rasterx.RoundCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgdraw.FlatGap:  rasterx.FlatGap,
		svgdraw.RoundGap: rasterx.RoundGap,
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	capFunc := capToFunc[options.Join.LineCap]
	s.Dasher.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capFunc, capFunc,
		gapToFunc[options.Join.LineGap], joinToJoin[options.Join.LineJoin],
		options.Dash.Dash, options.Dash.DashOffset,
	)
}

func (rd *Renderer) face(size float64) (font.Face, error) {
	if face, ok := rd.faces[size]; ok {
		return face, nil
	}
	if rd.font == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, err
		}
		rd.font = f
	}
	face, err := opentype.NewFace(rd.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	rd.faces[size] = face
	return face, nil
}

// DrawText draws the text with the Go Regular font, whatever the font family.
// Only the translation and the scaling of `ctm` are taken into account.
// Stroked glyphs are not supported: only the fill is drawn.
func (rd *Renderer) DrawText(text svgdraw.TextRun, ctm svgpath.Matrix2D) {
	if text.Fill == nil || text.Text == "" {
		return
	}
	size := text.FontSize * ctm.ScaleFactor()
	if size <= 0 {
		return
	}
	face, err := rd.face(math.Round(size*64) / 64)
	if err != nil {
		return
	}
	origin := ctm.TransformPoint(text.Origin)
	dot := fixed.Point26_6{X: fixed.Int26_6(origin.X * 64), Y: fixed.Int26_6(origin.Y * 64)}
	switch text.Anchor {
	case svgscene.AnchorMiddle:
		dot.X -= font.MeasureString(face, text.Text) / 2
	case svgscene.AnchorEnd:
		dot.X -= font.MeasureString(face, text.Text)
	}
	drawer := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(*text.Fill),
		Face: face,
		Dot:  dot,
	}
	drawer.DrawString(text.Text)
}

// MeasureText returns the advance width of `s`, as drawn
// by DrawText in user space.
func (rd *Renderer) MeasureText(s string, fontSize float64) (float64, error) {
	face, err := rd.face(fontSize)
	if err != nil {
		return 0, err
	}
	w := font.MeasureString(face, s)
	return float64(w) / 64, nil
}

var errInvalidSize = errors.New("svgraster: missing or invalid image size")

// Options configures the raster output.
type Options struct {
	// Width and Height are the size of the image, in pixels.
	// When zero, the document view box size is used.
	Width, Height int
}

// Backend is a svgdraw.Backend drawing into an RGBA image.
type Backend struct {
	*svgdraw.Painter
	Image *image.RGBA
}

// NewBackend returns a backend drawing into a new image.
// The size must be set in `opts`.
func NewBackend(opts Options) (*Backend, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errInvalidSize
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	rd := NewRenderer(img, nil)
	return &Backend{Painter: svgdraw.NewPainter(rd, float64(opts.Width), float64(opts.Height)), Image: img}, nil
}

// WriteFile saves the image as PNG.
func (b *Backend) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.Image); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RasterDocument renders the scene into a new image.
// When the size is not given in `opts`, the document
// view box (or view port) is used.
func RasterDocument(sc *svgscene.Scene, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		vb, ok := sc.DocumentSize()
		if !ok {
			return nil, errInvalidSize
		}
		opts.Width, opts.Height = int(math.Ceil(vb.W)), int(math.Ceil(vb.H))
	}
	b, err := NewBackend(opts)
	if err != nil {
		return nil, err
	}
	if err := svgdraw.NewRenderer(sc).Render(b); err != nil {
		return nil, err
	}
	return b.Image, nil
}
