package encoding

import "golang.org/x/text/encoding/charmap"

// MacRomanEncoding is derived from golang.org/x/text/encoding/charmap's
// Macintosh code page: PDF's MacRomanEncoding is byte-for-byte the same
// code page, so each code is decoded to its rune via charmap.Macintosh
// and then named through the reverse Adobe Glyph List lookup rather than
// hand-tabulated a second time.
var MacRomanEncoding = buildMacRomanEncoding()

func buildMacRomanEncoding() Table {
	t := make(Table, 256)
	dec := charmap.Macintosh.NewDecoder()
	for code := 0; code < 256; code++ {
		r, err := dec.Bytes([]byte{byte(code)})
		if err != nil || len(r) == 0 {
			continue
		}
		ru := []rune(string(r))[0]
		if name, ok := unicodeToGlyphName[ru]; ok {
			t[code] = name
		}
	}
	return t
}
