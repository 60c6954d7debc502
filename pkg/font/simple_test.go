package font

import (
	"testing"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func identityResolve(o pdf.Object) pdf.Object { return o }

func TestLoadSimpleFallsBackToBase14Widths(t *testing.T) {
	dict := pdf.DictionaryObject{
		"/Subtype":  pdf.NameObject("Type1"),
		"/BaseFont": pdf.NameObject("Helvetica"),
	}

	f, err := Load(dict, identityResolve)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 'A' in StandardEncoding, Helvetica's tabulated width is 667.
	w, ok := f.Width(CharCode('A'))
	if !ok || w != 667 {
		t.Fatalf("Width('A') = %v, %v, want 667, true", w, ok)
	}

	if f.WritingMode() != Horizontal {
		t.Fatalf("WritingMode() = %v, want Horizontal", f.WritingMode())
	}
	if f.BaseFont() != "Helvetica" {
		t.Fatalf("BaseFont() = %q, want Helvetica", f.BaseFont())
	}
}

func TestLoadSimplePrefersExplicitWidthsArray(t *testing.T) {
	dict := pdf.DictionaryObject{
		"/Subtype":   pdf.NameObject("Type1"),
		"/BaseFont":  pdf.NameObject("Helvetica"),
		"/FirstChar": pdf.NumberObject(65),
		"/Widths":    pdf.ArrayObject{pdf.NumberObject(900)},
	}

	f, err := Load(dict, identityResolve)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	w, ok := f.Width(CharCode('A'))
	if !ok || w != 900 {
		t.Fatalf("Width('A') = %v, %v, want the explicit /Widths entry 900, true", w, ok)
	}
}

func TestLoadSimpleChars(t *testing.T) {
	f := &SimpleFont{}
	chars := f.Chars([]byte("Hi"))
	if len(chars) != 2 || chars[0].Code != CharCode('H') || chars[0].NBytes != 1 {
		t.Fatalf("Chars(\"Hi\") = %+v, want one Char per byte", chars)
	}
}

func TestResolveSimpleEncodingWithDifferences(t *testing.T) {
	enc := pdf.DictionaryObject{
		"/BaseEncoding": pdf.NameObject("WinAnsiEncoding"),
		"/Differences": pdf.ArrayObject{
			pdf.NumberObject(65),
			pdf.NameObject("Agrave"),
		},
	}
	table := resolveSimpleEncoding(enc, "Helvetica", identityResolve)
	if table[65] != "Agrave" {
		t.Fatalf("table[65] = %q, want Agrave", table[65])
	}
}

func TestLoadSimpleUnicodeFallsBackToASCII(t *testing.T) {
	// Code 81 ('Q') is renamed to "g52", a glyph name with no Unicode
	// mapping, so Unicode falls back to the printable-ASCII code itself.
	dict := pdf.DictionaryObject{
		"/Subtype":  pdf.NameObject("Type1"),
		"/BaseFont": pdf.NameObject("Helvetica"),
		"/Encoding": pdf.DictionaryObject{"/Differences": pdf.ArrayObject{pdf.NumberObject(81), pdf.NameObject("g52")}},
	}
	f, err := Load(dict, identityResolve)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, ok := f.Unicode(CharCode('Q'))
	if !ok || s != "Q" {
		t.Fatalf("Unicode('Q') = %q, %v, want \"Q\", true", s, ok)
	}
}
