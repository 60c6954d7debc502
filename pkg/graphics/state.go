package graphics

import "github.com/AOShei/go-fast-pdf/pkg/font"

// LineCap and LineJoin mirror the PDF `J`/`j` operator's integer codes.
type LineCap int

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

type LineJoin int

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

// RenderMode mirrors the PDF `Tr` operator's integer codes.
type RenderMode int

const (
	RenderFill RenderMode = iota
	RenderStroke
	RenderFillStroke
	RenderInvisible
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClipOnly
)

// Color holds a colour space name (a device family or a /ColorSpace
// resource name) and its current component values.
type Color struct {
	Space      string
	Components []float64
}

func (c Color) clone() Color {
	out := Color{Space: c.Space}
	if c.Components != nil {
		out.Components = append([]float64(nil), c.Components...)
	}
	return out
}

// TextState tracks the text-specific parameters of spec.md §3: the
// active font, its size, the character/word spacing and horizontal
// scale Tc/Tw/Tz apply, leading, rise, render mode, and the text and
// text-line matrices.
type TextState struct {
	Font        font.Font
	FontSize    float64
	CharSpacing float64
	WordSpacing float64
	Hscale      float64 // Tz operand / 100, default 1
	Leading     float64
	Rise        float64
	RenderMode  RenderMode

	Tm  Matrix
	Tlm Matrix
}

// NewTextState returns a TextState with Hscale and the matrices at
// their PDF defaults.
func NewTextState() TextState {
	return TextState{
		Hscale: 1,
		Tm:     Identity(),
		Tlm:    Identity(),
	}
}

// State is the full graphics state spec.md §3 describes: the CTM,
// stroke/fill colour, line style, rendering intent, alpha/blend/soft
// mask, the current clip path, and the embedded text state.
type State struct {
	CTM Matrix

	StrokeColor Color
	FillColor   Color

	LineWidth  float64
	LineCap    LineCap
	LineJoin   LineJoin
	MiterLimit float64
	DashArray  []float64
	DashPhase  float64

	RenderingIntent   string
	StrokeAdjustment  bool
	Flatness          float64
	BlendMode         string
	StrokeAlpha       float64
	FillAlpha         float64
	SoftMask          string
	OverprintStroke   bool
	OverprintFill     bool
	OverprintMode     int

	ClipPath *Path
	ClipRule FillRule

	Text TextState
}

// NewState returns the initial graphics state a page (or Form XObject)
// begins content-stream interpretation with.
func NewState() State {
	return State{
		CTM:         Identity(),
		StrokeColor: Color{Space: "DeviceGray", Components: []float64{0}},
		FillColor:   Color{Space: "DeviceGray", Components: []float64{0}},
		LineWidth:   1,
		MiterLimit:  10,
		Flatness:    1,
		StrokeAlpha: 1,
		FillAlpha:   1,
		Text:        NewTextState(),
	}
}

// Clone returns a deep-enough copy of s for pushing onto the q/Q stack:
// slice-typed fields (DashArray, colour Components) get their own
// backing array so mutating the copy never aliases the original.
func (s State) Clone() State {
	out := s
	out.DashArray = append([]float64(nil), s.DashArray...)
	out.StrokeColor = s.StrokeColor.clone()
	out.FillColor = s.FillColor.clone()
	return out
}

// Stack implements the q/Q graphics-state stack: Push snapshots the
// current state, Pop restores the most recent snapshot.
type Stack struct {
	states []State
}

// Push saves a copy of cur onto the stack.
func (s *Stack) Push(cur State) {
	s.states = append(s.states, cur.Clone())
}

// Pop removes and returns the most recently pushed state, or the zero
// State and false if the stack is empty (an unbalanced `Q`).
func (s *Stack) Pop() (State, bool) {
	if len(s.states) == 0 {
		return State{}, false
	}
	i := len(s.states) - 1
	top := s.states[i]
	s.states = s.states[:i]
	return top, true
}

// Depth reports how many states are currently saved.
func (s *Stack) Depth() int { return len(s.states) }
