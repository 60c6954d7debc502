package encoding

import "testing"

func TestStandardEncodingASCII(t *testing.T) {
	if StandardEncoding[0x41] != "A" {
		t.Fatalf("StandardEncoding[0x41] = %q, want A", StandardEncoding[0x41])
	}
	if StandardEncoding[0x27] != "quoteright" {
		t.Fatalf("StandardEncoding[0x27] = %q, want quoteright", StandardEncoding[0x27])
	}
}

func TestWinAnsiEncodingDiffersAtQuote(t *testing.T) {
	if WinAnsiEncoding[0x27] != "quotesingle" {
		t.Fatalf("WinAnsiEncoding[0x27] = %q, want quotesingle", WinAnsiEncoding[0x27])
	}
	if WinAnsiEncoding[0x80] != "Euro" {
		t.Fatalf("WinAnsiEncoding[0x80] = %q, want Euro", WinAnsiEncoding[0x80])
	}
}

func TestBaseLookup(t *testing.T) {
	tbl, ok := Base("WinAnsiEncoding")
	if !ok || tbl[0x41] != "A" {
		t.Fatalf("Base(WinAnsiEncoding) failed: %v %v", ok, tbl[0x41])
	}
	if _, ok := Base("NoSuchEncoding"); ok {
		t.Fatalf("Base(NoSuchEncoding) should not be found")
	}
}

func TestMacRomanEncodingBuilt(t *testing.T) {
	if MacRomanEncoding[0x41] != "A" {
		t.Fatalf("MacRomanEncoding[0x41] = %q, want A", MacRomanEncoding[0x41])
	}
	if len(MacRomanEncoding) < 100 {
		t.Fatalf("MacRomanEncoding only has %d entries, expected near-full coverage", len(MacRomanEncoding))
	}
}

func TestToUnicodeDirect(t *testing.T) {
	s, ok := ToUnicode("eacute")
	if !ok || s != "é" {
		t.Fatalf("ToUnicode(eacute) = %q, %v, want é, true", s, ok)
	}
}

func TestToUnicodeUniFallback(t *testing.T) {
	s, ok := ToUnicode("uni00E9")
	if !ok || s != "é" {
		t.Fatalf("ToUnicode(uni00E9) = %q, %v, want é, true", s, ok)
	}
}

func TestToUnicodeSuffixStripped(t *testing.T) {
	s, ok := ToUnicode("A.sc")
	if !ok || s != "A" {
		t.Fatalf("ToUnicode(A.sc) = %q, %v, want A, true", s, ok)
	}
}

func TestDifferencesPatch(t *testing.T) {
	d := NewDifferences(StandardEncoding)
	d.SetCode(0x80)
	d.Name("Euro")
	d.Name("quotesinglbase")
	tbl := d.Table()
	if tbl[0x80] != "Euro" || tbl[0x81] != "quotesinglbase" {
		t.Fatalf("differences not applied: %v %v", tbl[0x80], tbl[0x81])
	}
	if StandardEncoding[0x80] != "" {
		t.Fatalf("base StandardEncoding mutated by Differences patch")
	}
}
