package font

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/cmap"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
	"golang.org/x/image/font/sfnt"
)

// CompositeFont implements Font for Type0/CID fonts: a multi-byte
// encoding CMap decodes the content-stream byte run into character
// codes, which the descendant CIDFont then maps (through the same or a
// further CID mapping) to CIDs, widths and glyph indices.
type CompositeFont struct {
	baseFont    string
	encodingCM  *cmap.CMap
	toUnicode   *cmap.CMap
	descendant  cidFont
	writingMode WritingMode
}

// cidFont holds the descendant CIDFont's own data: width maps and the
// CID-to-glyph-index mapping used when an embedded program is present.
type cidFont struct {
	defaultWidth float64
	widths       map[int]float64
	cidToGID     map[int]uint16
	cidToGIDIdentity bool
	sfntFont     *sfnt.Font
	sfntBuf      sfnt.Buffer
}

func loadComposite(dict pdf.DictionaryObject, resolve Resolver) (Font, error) {
	cf := &CompositeFont{}
	cf.baseFont, _ = pdf.AsName(resolve(dict["/BaseFont"]))
	cf.writingMode = Horizontal

	encObj := resolve(dict["/Encoding"])
	switch v := encObj.(type) {
	case pdf.NameObject:
		name, _ := pdf.AsName(v)
		cm, err := cmap.LoadPredefined(name)
		if err != nil {
			return nil, &pdf.FontError{BaseFont: cf.baseFont, Err: err}
		}
		cf.encodingCM = cm
	case pdf.StreamObject:
		cm, err := cmap.Parse(v.Data, cmap.LoadPredefined)
		if err != nil {
			return nil, &pdf.FontError{BaseFont: cf.baseFont, Err: err}
		}
		cf.encodingCM = cm
	default:
		return nil, &pdf.FontError{BaseFont: cf.baseFont, Err: fmt.Errorf("missing /Encoding")}
	}
	if cf.encodingCM != nil && cf.encodingCM.WMode == 1 {
		cf.writingMode = Vertical
	}

	descArr, _ := resolve(dict["/DescendantFonts"]).(pdf.ArrayObject)
	if len(descArr) == 0 {
		return nil, &pdf.FontError{BaseFont: cf.baseFont, Err: fmt.Errorf("missing /DescendantFonts")}
	}
	descDict, _ := resolve(descArr[0]).(pdf.DictionaryObject)
	if descDict == nil {
		return nil, &pdf.FontError{BaseFont: cf.baseFont, Err: fmt.Errorf("descendant font is not a dictionary")}
	}
	cf.descendant = loadCIDFont(descDict, resolve)

	if tu, ok := resolve(dict["/ToUnicode"]).(pdf.StreamObject); ok {
		if cm, err := cmap.Parse(tu.Data, cmap.LoadPredefined); err == nil {
			cf.toUnicode = cm
		}
	}

	return cf, nil
}

func loadCIDFont(dict pdf.DictionaryObject, resolve Resolver) cidFont {
	cf := cidFont{defaultWidth: 1000, widths: make(map[int]float64)}

	if dw, ok := resolve(dict["/DW"]).(pdf.NumberObject); ok {
		cf.defaultWidth = float64(dw)
	}
	if w, ok := resolve(dict["/W"]).(pdf.ArrayObject); ok {
		parseWArray(w, resolve, cf.widths)
	}

	switch v := resolve(dict["/CIDToGIDMap"]).(type) {
	case pdf.NameObject:
		if name, _ := pdf.AsName(v); name == "Identity" {
			cf.cidToGIDIdentity = true
		}
	case pdf.StreamObject:
		cf.cidToGID = make(map[int]uint16, len(v.Data)/2)
		for i := 0; i+1 < len(v.Data); i += 2 {
			gid := uint16(v.Data[i])<<8 | uint16(v.Data[i+1])
			if gid != 0 {
				cf.cidToGID[i/2] = gid
			}
		}
	default:
		cf.cidToGIDIdentity = true
	}

	if descDict, ok := resolve(dict["/FontDescriptor"]).(pdf.DictionaryObject); ok {
		cf.sfntFont = loadEmbeddedProgram(descDict, resolve)
	}

	return cf
}

// parseWArray parses the /W array: each run is either
// "c [w1 w2 ...]" (consecutive CIDs starting at c) or
// "cFirst cLast w" (a CID range sharing one width).
func parseWArray(w pdf.ArrayObject, resolve Resolver, out map[int]float64) {
	i := 0
	for i < len(w) {
		first, ok := resolve(w[i]).(pdf.NumberObject)
		if !ok {
			i++
			continue
		}
		i++
		if i >= len(w) {
			break
		}
		if arr, ok := resolve(w[i]).(pdf.ArrayObject); ok {
			for j, o := range arr {
				out[int(first)+j] = pdf.AsNumber(resolve(o))
			}
			i++
			continue
		}
		last, ok := resolve(w[i]).(pdf.NumberObject)
		if !ok || i+1 >= len(w) {
			break
		}
		width := pdf.AsNumber(resolve(w[i+1]))
		for c := int(first); c <= int(last); c++ {
			out[c] = width
		}
		i += 2
	}
}

func (f *CompositeFont) BaseFont() string { return f.baseFont }

func (f *CompositeFont) Chars(data []byte) []Char {
	var out []Char
	for len(data) > 0 {
		code, n := f.encodingCM.NextCode(data)
		if n <= 0 {
			n = 1
		}
		out = append(out, Char{Code: CharCode(code), NBytes: n})
		data = data[n:]
	}
	return out
}

func (f *CompositeFont) cid(code CharCode) int {
	if cid, ok := f.encodingCM.ToCID(uint32(code)); ok {
		return int(cid)
	}
	return int(code)
}

func (f *CompositeFont) Width(code CharCode) (float64, bool) {
	cid := f.cid(code)
	if w, ok := f.descendant.widths[cid]; ok {
		return w, true
	}
	return f.descendant.defaultWidth, true
}

func (f *CompositeFont) Unicode(code CharCode) (string, bool) {
	if f.toUnicode != nil {
		if s, ok := f.toUnicode.ToUnicode(uint32(code)); ok {
			return s, true
		}
	}
	return "", false
}

func (f *CompositeFont) WritingMode() WritingMode { return f.writingMode }

func (f *CompositeFont) Glyph(code CharCode) (uint16, bool) {
	cid := f.cid(code)
	if f.descendant.cidToGIDIdentity {
		if f.descendant.sfntFont != nil && cid >= f.descendant.sfntFont.NumGlyphs() {
			return 0, false
		}
		return uint16(cid), true
	}
	gid, ok := f.descendant.cidToGID[cid]
	return gid, ok
}
