package font

import (
	"testing"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func TestLoadCompositeIdentityH(t *testing.T) {
	descendant := pdf.DictionaryObject{
		"/Subtype": pdf.NameObject("CIDFontType2"),
		"/DW":      pdf.NumberObject(1000),
		"/W": pdf.ArrayObject{
			pdf.NumberObject(3),
			pdf.ArrayObject{pdf.NumberObject(500), pdf.NumberObject(600)},
		},
	}
	dict := pdf.DictionaryObject{
		"/Subtype":         pdf.NameObject("Type0"),
		"/BaseFont":        pdf.NameObject("Arial-Identity-H"),
		"/Encoding":        pdf.NameObject("Identity-H"),
		"/DescendantFonts": pdf.ArrayObject{descendant},
	}

	f, err := Load(dict, identityResolve)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	chars := f.Chars([]byte{0x00, 0x03, 0x00, 0x04})
	if len(chars) != 2 || chars[0].NBytes != 2 || chars[0].Code != 3 {
		t.Fatalf("Chars() = %+v, want two 2-byte codes starting at 3", chars)
	}

	if w, ok := f.Width(chars[0].Code); !ok || w != 500 {
		t.Fatalf("Width(3) = %v, %v, want 500, true", w, ok)
	}
	if w, ok := f.Width(CharCode(999)); !ok || w != 1000 {
		t.Fatalf("Width(999) = %v, %v, want the /DW default 1000, true", w, ok)
	}

	// Identity-H + a default /CIDToGIDMap maps CID directly to GID.
	if gid, ok := f.Glyph(chars[1].Code); !ok || gid != 4 {
		t.Fatalf("Glyph(4) = %v, %v, want 4, true", gid, ok)
	}
}

func TestLoadCompositeMissingEncodingFails(t *testing.T) {
	dict := pdf.DictionaryObject{
		"/Subtype":         pdf.NameObject("Type0"),
		"/BaseFont":        pdf.NameObject("Foo"),
		"/DescendantFonts": pdf.ArrayObject{pdf.DictionaryObject{}},
	}
	if _, err := Load(dict, identityResolve); err == nil {
		t.Fatalf("Load() with no /Encoding returned nil error")
	}
}

func TestParseWArrayRangeForm(t *testing.T) {
	out := make(map[int]float64)
	parseWArray(pdf.ArrayObject{
		pdf.NumberObject(10), pdf.NumberObject(12), pdf.NumberObject(750),
	}, identityResolve, out)

	for c := 10; c <= 12; c++ {
		if out[c] != 750 {
			t.Fatalf("out[%d] = %v, want 750", c, out[c])
		}
	}
	if _, ok := out[13]; ok {
		t.Fatalf("out[13] unexpectedly set")
	}
}
