package loader

import (
	"testing"

	"github.com/AOShei/go-fast-pdf/pkg/font"
	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdfimage"
)

// stubFont is a minimal font.Font that maps every code to its byte value.
type stubFont struct{}

func (stubFont) Chars(data []byte) []font.Char {
	out := make([]font.Char, len(data))
	for i, b := range data {
		out[i] = font.Char{Code: font.CharCode(b), NBytes: 1}
	}
	return out
}
func (stubFont) Width(code font.CharCode) (float64, bool)  { return 500, true }
func (stubFont) Unicode(code font.CharCode) (string, bool) { return string(rune(code)), true }
func (stubFont) WritingMode() font.WritingMode             { return font.Horizontal }
func (stubFont) Glyph(code font.CharCode) (uint16, bool)   { return 0, false }
func (stubFont) BaseFont() string                          { return "Stub" }

func stateAt(x, y, fontSize float64) *graphics.State {
	s := graphics.NewState()
	s.Text.Font = stubFont{}
	s.Text.FontSize = fontSize
	s.Text.Tm = graphics.Translation(x, y)
	return &s
}

func TestTextDeviceAppendsAdjacentGlyphsWithoutGap(t *testing.T) {
	dev := newTextDevice(false)
	dev.DrawChar(font.CharCode('H'), stateAt(0, 0, 12))
	dev.DrawChar(font.CharCode('i'), stateAt(6, 0, 12))

	if dev.Text() != "Hi" {
		t.Fatalf("Text() = %q, want %q", dev.Text(), "Hi")
	}
}

func TestTextDeviceInsertsSpaceOnHorizontalGap(t *testing.T) {
	dev := newTextDevice(false)
	dev.DrawChar(font.CharCode('A'), stateAt(0, 0, 10))
	// A gap greater than 0.2*FontSize (2 units) on the same line.
	dev.DrawChar(font.CharCode('B'), stateAt(10, 0, 10))

	if dev.Text() != "A B" {
		t.Fatalf("Text() = %q, want %q", dev.Text(), "A B")
	}
}

func TestTextDeviceInsertsNewlineOnVerticalJump(t *testing.T) {
	dev := newTextDevice(false)
	dev.DrawChar(font.CharCode('A'), stateAt(0, 100, 10))
	// A baseline jump greater than 0.5*FontSize (5 units) starts a new line.
	dev.DrawChar(font.CharCode('B'), stateAt(0, 80, 10))

	if dev.Text() != "A\nB" {
		t.Fatalf("Text() = %q, want %q", dev.Text(), "A\\nB")
	}
}

func TestTextDeviceDrawImageRecordsRectWhenEnabled(t *testing.T) {
	dev := newTextDevice(true)
	state := graphics.NewState()
	state.CTM = graphics.Matrix{100, 0, 0, 50, 10, 20}

	img := &pdfimage.Image{Width: 64, Height: 32, ColorSpace: "DeviceRGB"}
	dev.DrawImage(img, &state)

	if len(dev.images) != 1 {
		t.Fatalf("len(images) = %d, want 1", len(dev.images))
	}
	got := dev.images[0]
	want := []float64{10, 20, 100, 50}
	for i, w := range want {
		if got.Rect[i] != w {
			t.Fatalf("Rect = %v, want %v", got.Rect, want)
		}
	}
	if got.Width != 64 || got.Height != 32 || got.ColorSpace != "/DeviceRGB" {
		t.Fatalf("unexpected image metadata: %+v", got)
	}
}

func TestTextDeviceDrawImageSkippedWhenDisabled(t *testing.T) {
	dev := newTextDevice(false)
	state := graphics.NewState()
	img := &pdfimage.Image{Width: 1, Height: 1}
	dev.DrawImage(img, &state)

	if len(dev.images) != 0 {
		t.Fatalf("len(images) = %d, want 0 when extractImages is false", len(dev.images))
	}
}
