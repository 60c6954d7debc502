package content

import (
	"fmt"
	"strings"

	"github.com/AOShei/go-fast-pdf/pkg/font"
	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdfimage"
)

// Device receives the drawing calls Interpreter produces as it walks a
// content stream. A Driver implementation (pkg/loader's text-extraction
// sink, a future renderer) supplies one; the package ships two reference
// sinks of its own for tests that don't need a real backend.
type Device interface {
	StartPage(state *graphics.State, pageNum int, width, height float64)
	Clip(state *graphics.State)
	DrawChar(ch font.CharCode, state *graphics.State)
	DrawImage(img *pdfimage.Image, state *graphics.State)
	StrokePath(path *graphics.Path, state *graphics.State)
	FillPath(path *graphics.Path, state *graphics.State, rule graphics.FillRule)
	FillAndStrokePath(path *graphics.Path, state *graphics.State, rule graphics.FillRule)
	UpdateFont(state *graphics.State)
	BeginText(state *graphics.State)
	EndText(state *graphics.State)
	EndPage(state *graphics.State)
	HDPI() float64
	VDPI() float64
}

// NullDevice discards every call. It exists so interpreter-correctness
// tests can drive a content stream without pulling in a rendering
// backend.
type NullDevice struct{}

func (NullDevice) StartPage(*graphics.State, int, float64, float64)                  {}
func (NullDevice) Clip(*graphics.State)                                             {}
func (NullDevice) DrawChar(font.CharCode, *graphics.State)                           {}
func (NullDevice) DrawImage(*pdfimage.Image, *graphics.State)                        {}
func (NullDevice) StrokePath(*graphics.Path, *graphics.State)                        {}
func (NullDevice) FillPath(*graphics.Path, *graphics.State, graphics.FillRule)       {}
func (NullDevice) FillAndStrokePath(*graphics.Path, *graphics.State, graphics.FillRule) {}
func (NullDevice) UpdateFont(*graphics.State)                                       {}
func (NullDevice) BeginText(*graphics.State)                                        {}
func (NullDevice) EndText(*graphics.State)                                          {}
func (NullDevice) EndPage(*graphics.State)                                          {}
func (NullDevice) HDPI() float64                                                    { return 72 }
func (NullDevice) VDPI() float64                                                    { return 72 }

// TraceDevice records every call as a newline-delimited line of text, a
// test oracle a trace-comparison test can diff against a golden file
// without the ceremony of an XML schema.
type TraceDevice struct {
	lines []string
}

func (d *TraceDevice) Lines() []string { return d.lines }

func (d *TraceDevice) String() string { return strings.Join(d.lines, "\n") }

func (d *TraceDevice) record(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *TraceDevice) StartPage(state *graphics.State, pageNum int, width, height float64) {
	d.record("StartPage %d %.2fx%.2f", pageNum, width, height)
}

func (d *TraceDevice) Clip(state *graphics.State) {
	d.record("Clip rule=%d", state.ClipRule)
}

func (d *TraceDevice) DrawChar(ch font.CharCode, state *graphics.State) {
	d.record("DrawChar %d", ch)
}

func (d *TraceDevice) DrawImage(img *pdfimage.Image, state *graphics.State) {
	d.record("DrawImage %dx%d", img.Width, img.Height)
}

func (d *TraceDevice) StrokePath(path *graphics.Path, state *graphics.State) {
	d.record("StrokePath subpaths=%d", len(path.Subpaths))
}

func (d *TraceDevice) FillPath(path *graphics.Path, state *graphics.State, rule graphics.FillRule) {
	d.record("FillPath subpaths=%d rule=%d", len(path.Subpaths), rule)
}

func (d *TraceDevice) FillAndStrokePath(path *graphics.Path, state *graphics.State, rule graphics.FillRule) {
	d.record("FillAndStrokePath subpaths=%d rule=%d", len(path.Subpaths), rule)
}

func (d *TraceDevice) UpdateFont(state *graphics.State) {
	name := ""
	if state.Text.Font != nil {
		name = state.Text.Font.BaseFont()
	}
	d.record("UpdateFont %s size=%.2f", name, state.Text.FontSize)
}

func (d *TraceDevice) BeginText(state *graphics.State) { d.record("BeginText") }
func (d *TraceDevice) EndText(state *graphics.State)   { d.record("EndText") }
func (d *TraceDevice) EndPage(state *graphics.State)   { d.record("EndPage") }
func (d *TraceDevice) HDPI() float64                   { return 72 }
func (d *TraceDevice) VDPI() float64                   { return 72 }
