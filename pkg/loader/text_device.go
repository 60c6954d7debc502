package loader

import (
	"math"
	"strings"

	"github.com/AOShei/go-fast-pdf/pkg/font"
	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/model"
	"github.com/AOShei/go-fast-pdf/pkg/pdfimage"
)

// textDevice is a content.Device that reproduces the teacher's
// prose-extraction behaviour (handleText's "gap since the last glyph
// implies a word/line break" heuristic, recordImage/recordInlineImage's
// image-metadata bookkeeping) on top of the general-purpose
// interpreter instead of inline inside it.
type textDevice struct {
	buf     strings.Builder
	lastX   float64
	lastY   float64
	hasLast bool

	extractImages bool
	images        []model.Image
	imageSeq      int
}

func newTextDevice(extractImages bool) *textDevice {
	return &textDevice{extractImages: extractImages}
}

func (d *textDevice) Text() string { return d.buf.String() }

func (d *textDevice) StartPage(state *graphics.State, pageNum int, width, height float64) {}
func (d *textDevice) EndPage(state *graphics.State)                                       {}
func (d *textDevice) Clip(state *graphics.State)                                          {}
func (d *textDevice) BeginText(state *graphics.State)                                     {}
func (d *textDevice) EndText(state *graphics.State)                                       {}
func (d *textDevice) UpdateFont(state *graphics.State)                                    {}
func (d *textDevice) StrokePath(path *graphics.Path, state *graphics.State)               {}
func (d *textDevice) FillPath(path *graphics.Path, state *graphics.State, rule graphics.FillRule) {
}
func (d *textDevice) FillAndStrokePath(path *graphics.Path, state *graphics.State, rule graphics.FillRule) {
}
func (d *textDevice) HDPI() float64 { return 72 }
func (d *textDevice) VDPI() float64 { return 72 }

// DrawChar appends code's Unicode text to the buffer, inserting a line
// break when the glyph's baseline jumps more than half a font size and
// a space when the gap between the end of the previous glyph (its
// origin plus its advance width) and this glyph's origin exceeds a small
// fraction of the font size — the same two thresholds
// extractor.go's handleText used, generalized from per-string to
// per-glyph granularity now that the interpreter calls Device.DrawChar
// once per character instead of handing the device a whole run.
func (d *textDevice) DrawChar(ch font.CharCode, state *graphics.State) {
	ts := &state.Text
	fm := ts.Tm.Mult(state.CTM)
	x, y := fm[4], fm[5]

	if d.hasLast {
		if math.Abs(y-d.lastY) > ts.FontSize*0.5 {
			if d.buf.Len() > 0 {
				d.buf.WriteString("\n")
			}
		} else if gap := x - d.lastX; gap > ts.FontSize*0.2 {
			s := d.buf.String()
			if d.buf.Len() > 0 && !strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, " ") {
				d.buf.WriteString(" ")
			}
		}
	}

	if ts.Font != nil {
		if s, ok := ts.Font.Unicode(ch); ok {
			d.buf.WriteString(s)
		} else if ch < 256 {
			d.buf.WriteByte(byte(ch))
		}
	}

	adv := 0.0
	if ts.Font != nil {
		if w, ok := ts.Font.Width(ch); ok {
			adv = w / 1000 * ts.FontSize * ts.Hscale
		}
	}
	end := graphics.Translation(adv, 0).Mult(fm)
	d.lastX, d.lastY = end[4], y
	d.hasLast = true
}

// DrawImage records the image's placement (its unit-square corners
// transformed by the CTM give the on-page rectangle) and metadata,
// matching recordImage/recordNestedImage/recordInlineImage's JSON
// shape without decoding pixels the JSON report never used.
func (d *textDevice) DrawImage(img *pdfimage.Image, state *graphics.State) {
	if !d.extractImages {
		return
	}
	rect := imageRect(state)
	d.imageSeq++
	d.images = append(d.images, model.Image{
		Type:       "image",
		ID:         "",
		Rect:       rect,
		Width:      float64(img.Width),
		Height:     float64(img.Height),
		ColorSpace: "/" + img.ColorSpace,
	})
}

// imageRect returns [x, y, width, height] for the unit square
// transformed by the current CTM, the rectangle an image XObject
// always occupies by convention.
func imageRect(state *graphics.State) []float64 {
	corners := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := state.CTM.Apply(c[0], c[1])
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	return []float64{minX, minY, maxX - minX, maxY - minY}
}
