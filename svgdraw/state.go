package svgdraw

import (
	"github.com/benoitkugler/svgscene/svgparse"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgscene"
)

// GraphicState is the drawing state at one point of the traversal.
type GraphicState struct {
	// CTM maps the current user space to the backend space.
	CTM svgpath.Matrix2D
	// Style holds the current properties. Fill and Stroke
	// are nil when no paint is set.
	Style svgscene.Style
}

// States is a stack of graphic states, implementing the
// state related methods of Backend.
// The zero value is not usable: use NewStates.
type States struct {
	stack []GraphicState
}

// NewStates returns a stack with an identity transform and an empty style.
func NewStates() *States {
	return &States{stack: []GraphicState{{CTM: svgpath.Identity}}}
}

// Current returns the top of the stack, which may be modified in place.
func (s *States) Current() *GraphicState { return &s.stack[len(s.stack)-1] }

// Depth returns the number of saved states.
func (s *States) Depth() int { return len(s.stack) - 1 }

func (s *States) PushState() {
	s.stack = append(s.stack, *s.Current())
}

// PopState restores the previous state. The initial
// state is never removed.
func (s *States) PopState() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *States) ConcatTransform(m svgpath.Matrix2D) {
	cur := s.Current()
	cur.CTM = cur.CTM.Mult(m)
}

func (s *States) FillColor() *svgparse.Color { return s.Current().Style.Fill }

func (s *States) SetFillColor(c *svgparse.Color) { s.Current().Style.Fill = c }

func (s *States) StrokeColor() *svgparse.Color { return s.Current().Style.Stroke }

func (s *States) SetStrokeColor(c *svgparse.Color) { s.Current().Style.Stroke = c }

// LineWidth returns the current line width, defaulting to 1.
func (s *States) LineWidth() float64 {
	if w := s.Current().Style.LineWidth; w != nil {
		return *w
	}
	return svgscene.DefaultLineWidth
}

func (s *States) SetLineWidth(w float64) { s.Current().Style.LineWidth = &w }

func (s *States) Style() svgscene.Style { return s.Current().Style }

// SetStyle overrides the current properties with the
// fields specified in `style`.
func (s *States) SetStyle(style svgscene.Style) {
	cur := s.Current()
	cur.Style = style.Inherit(&cur.Style)
}
