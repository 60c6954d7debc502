// Package font implements the PDF font subsystem: decoding a content
// stream byte run into character codes, resolving widths, Unicode text
// and (when an embedded program is present) glyph indices, uniformly
// across simple (Type1/TrueType/Type3) and composite (Type0/CID) fonts.
package font

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// CharCode is a decoded character code: the raw byte for a simple font,
// or the matched codespace value for a composite font (not yet a CID —
// callers needing the CID call Font.Width/Font.Glyph, which do that
// translation internally).
type CharCode uint32

// Char is one decoded unit from a Tj/TJ byte run: its code and how many
// input bytes it consumed, which the text-showing algorithm needs to
// advance through the string and (for simple fonts) to detect the
// single-byte 0x20 that triggers word spacing.
type Char struct {
	Code   CharCode
	NBytes int
}

// WritingMode selects which axis text advances along.
type WritingMode int

const (
	Horizontal WritingMode = iota
	Vertical
)

// Font is the uniform interface spec.md's font subsystem exposes to the
// content interpreter, covering both SimpleFont and CompositeFont.
type Font interface {
	// Chars decodes a Tj/TJ string operand into character codes.
	Chars(data []byte) []Char
	// Width returns the glyph width for code in 1/1000 text-space units
	// (the caller scales by font size); ok is false only when the font
	// could not resolve code at all (not even a default width).
	Width(code CharCode) (width float64, ok bool)
	// Unicode returns the best-effort Unicode text code represents.
	Unicode(code CharCode) (string, bool)
	// WritingMode reports the font's text-advance axis.
	WritingMode() WritingMode
	// Glyph returns the embedded font program's glyph index for code,
	// when a FontFile is present; ok is false otherwise.
	Glyph(code CharCode) (gid uint16, ok bool)
	// BaseFont is the font's /BaseFont name, for diagnostics.
	BaseFont() string
}

// Resolver resolves indirect references, matching pdf.Reader.Resolve.
type Resolver func(pdf.Object) pdf.Object

// Load builds a Font from a /Font dictionary, dispatching on /Subtype.
func Load(dict pdf.DictionaryObject, resolve Resolver) (Font, error) {
	subtype, _ := pdf.AsName(dict["/Subtype"])
	switch subtype {
	case "Type0":
		return loadComposite(dict, resolve)
	case "Type1", "MMType1", "TrueType", "Type3":
		return loadSimple(dict, resolve)
	default:
		return nil, &pdf.FontError{BaseFont: baseFontName(dict, resolve), Err: fmt.Errorf("unsupported font subtype %q", subtype)}
	}
}

func baseFontName(dict pdf.DictionaryObject, resolve Resolver) string {
	name, _ := pdf.AsName(resolve(dict["/BaseFont"]))
	return name
}
