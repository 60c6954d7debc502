package font

import (
	"github.com/AOShei/go-fast-pdf/pkg/cmap"
	"github.com/AOShei/go-fast-pdf/pkg/encoding"
	"github.com/AOShei/go-fast-pdf/pkg/font/base14"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
	"golang.org/x/image/font/sfnt"
)

// SimpleFont implements Font for Type1, MMType1, TrueType and Type3
// fonts: a single byte maps directly to a character code, widths come
// from a flat /FirstChar../LastChar /Widths array (falling back, for a
// font with no embedded program, to its Base-14 table by glyph name or
// that table's missing width, then to the descriptor's /MissingWidth,
// then 0), and glyph
// names come from a base /Encoding plus an optional /Differences patch.
type SimpleFont struct {
	baseFont   string
	firstChar  int
	widths     []float64
	missingW   float64
	encoding   encoding.Table
	toUnicode  *cmap.CMap
	base14     *base14.Metrics
	sfntFont   *sfnt.Font
	sfntBuf    sfnt.Buffer
	symbolic   bool
}

func loadSimple(dict pdf.DictionaryObject, resolve Resolver) (Font, error) {
	f := &SimpleFont{}
	f.baseFont, _ = pdf.AsName(resolve(dict["/BaseFont"]))

	if fc, ok := resolve(dict["/FirstChar"]).(pdf.NumberObject); ok {
		f.firstChar = int(fc)
	}
	if arr, ok := resolve(dict["/Widths"]).(pdf.ArrayObject); ok {
		f.widths = make([]float64, len(arr))
		for i, o := range arr {
			f.widths[i] = pdf.AsNumber(resolve(o))
		}
	}

	descDict, _ := resolve(dict["/FontDescriptor"]).(pdf.DictionaryObject)
	if descDict != nil {
		if mw, ok := resolve(descDict["/MissingWidth"]).(pdf.NumberObject); ok {
			f.missingW = float64(mw)
		}
		flags := int(pdf.AsNumber(resolve(descDict["/Flags"])))
		f.symbolic = flags&4 != 0 && flags&32 == 0
		f.sfntFont = loadEmbeddedProgram(descDict, resolve)
	}

	embedded := descDict != nil && (descDict["/FontFile"] != nil || descDict["/FontFile2"] != nil || descDict["/FontFile3"] != nil)
	if m, ok := base14.Get(mustBase14(f.baseFont)); ok && !embedded {
		f.base14 = &m
	}

	f.encoding = resolveSimpleEncoding(resolve(dict["/Encoding"]), f.baseFont, resolve)

	if tu, ok := resolve(dict["/ToUnicode"]).(pdf.StreamObject); ok {
		if cm, err := cmap.Parse(tu.Data, cmap.LoadPredefined); err == nil {
			f.toUnicode = cm
		}
	}

	return f, nil
}

func mustBase14(baseFont string) string {
	name, _ := base14.Resolve(baseFont)
	return name
}

func resolveSimpleEncoding(enc pdf.Object, baseFont string, resolve Resolver) encoding.Table {
	def := encoding.StandardEncoding
	if name, ok := base14.Resolve(baseFont); ok && (name == "Symbol" || name == "ZapfDingbats") {
		if t, ok := encoding.Base(name); ok {
			def = t
		}
	}

	switch v := enc.(type) {
	case pdf.NameObject:
		name, _ := pdf.AsName(v)
		if t, ok := encoding.Base(name); ok {
			return t
		}
		return def
	case pdf.DictionaryObject:
		base := def
		if baseName, ok := pdf.AsName(resolve(v["/BaseEncoding"])); ok {
			if t, ok := encoding.Base(baseName); ok {
				base = t
			}
		}
		diffArr, _ := resolve(v["/Differences"]).(pdf.ArrayObject)
		if diffArr == nil {
			return base
		}
		d := encoding.NewDifferences(base)
		for _, item := range diffArr {
			switch o := resolve(item).(type) {
			case pdf.NumberObject:
				d.SetCode(int(o))
			case pdf.NameObject:
				name, _ := pdf.AsName(o)
				d.Name(name)
			}
		}
		return d.Table()
	default:
		return def
	}
}

func loadEmbeddedProgram(desc pdf.DictionaryObject, resolve Resolver) *sfnt.Font {
	for _, key := range []string{"/FontFile2", "/FontFile3"} {
		st, ok := resolve(desc[key]).(pdf.StreamObject)
		if !ok {
			continue
		}
		if f, err := sfnt.Parse(st.Data); err == nil {
			return f
		}
	}
	return nil
}

func (f *SimpleFont) BaseFont() string { return f.baseFont }

func (f *SimpleFont) Chars(data []byte) []Char {
	chars := make([]Char, len(data))
	for i, b := range data {
		chars[i] = Char{Code: CharCode(b), NBytes: 1}
	}
	return chars
}

func (f *SimpleFont) Width(code CharCode) (float64, bool) {
	idx := int(code) - f.firstChar
	if idx >= 0 && idx < len(f.widths) && f.widths[idx] != 0 {
		return f.widths[idx], true
	}
	if f.base14 != nil {
		if name, ok := f.encoding[int(code)]; ok {
			if w, ok := f.base14.Widths[name]; ok {
				return w, true
			}
		}
		return f.base14.MissingWidth, true
	}
	if f.missingW != 0 {
		return f.missingW, true
	}
	return 0, len(f.widths) > 0
}

func (f *SimpleFont) Unicode(code CharCode) (string, bool) {
	if f.toUnicode != nil {
		if s, ok := f.toUnicode.ToUnicode(uint32(code)); ok {
			return s, true
		}
	}
	if name, ok := f.encoding[int(code)]; ok {
		if s, ok := encoding.ToUnicode(name); ok {
			return s, true
		}
	}
	if code >= 0x20 && code <= 0x7E {
		return string(rune(code)), true
	}
	return "", false
}

func (f *SimpleFont) WritingMode() WritingMode { return Horizontal }

func (f *SimpleFont) Glyph(code CharCode) (uint16, bool) {
	if f.sfntFont == nil {
		return 0, false
	}
	if f.symbolic {
		gi, err := f.sfntFont.GlyphIndex(&f.sfntBuf, rune(0xF000+code))
		if err == nil && gi != 0 {
			return uint16(gi), true
		}
	}
	r := rune(code)
	if s, ok := f.Unicode(code); ok && len([]rune(s)) == 1 {
		r = []rune(s)[0]
	}
	gi, err := f.sfntFont.GlyphIndex(&f.sfntBuf, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	return uint16(gi), true
}
