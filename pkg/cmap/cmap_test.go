package cmap

import "testing"

func TestParseToUnicodeBFChar(t *testing.T) {
	data := []byte(`
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<00> <FF>
endcodespacerange
2 beginbfchar
<41> <0041>
<42> <0042>
endbfchar
endcmap
end
end
`)
	cm, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s, ok := cm.ToUnicode(0x41); !ok || s != "A" {
		t.Fatalf("ToUnicode(0x41) = %q, %v, want %q, true", s, ok, "A")
	}
	if s, ok := cm.ToUnicode(0x42); !ok || s != "B" {
		t.Fatalf("ToUnicode(0x42) = %q, %v, want %q, true", s, ok, "B")
	}
}

func TestParseToUnicodeBFRange(t *testing.T) {
	data := []byte(`
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0000> <0002> <0061>
endbfrange
endcmap
`)
	cm, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[uint32]string{0: "a", 1: "b", 2: "c"}
	for code, w := range want {
		if s, ok := cm.ToUnicode(code); !ok || s != w {
			t.Fatalf("ToUnicode(%d) = %q, %v, want %q", code, s, ok, w)
		}
	}
}

func TestNextCodeCodespace(t *testing.T) {
	data := []byte(`
begincmap
2 begincodespacerange
<00> <80>
<8100> <FEFF>
endcodespacerange
endcmap
`)
	cm, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	code, n := cm.NextCode([]byte{0x41})
	if code != 0x41 || n != 1 {
		t.Fatalf("NextCode(single-byte) = %d, %d, want 0x41, 1", code, n)
	}

	code, n = cm.NextCode([]byte{0x81, 0x40})
	if code != 0x8140 || n != 2 {
		t.Fatalf("NextCode(double-byte) = %x, %d, want 0x8140, 2", code, n)
	}
}

func TestParseCIDRange(t *testing.T) {
	data := []byte(`
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 begincidrange
<0000> <00FF> 1
endcidrange
endcmap
`)
	cm, err := Parse(data, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cid, ok := cm.ToCID(0x10)
	if !ok || cid != 0x11 {
		t.Fatalf("ToCID(0x10) = %d, %v, want 17, true", cid, ok)
	}
}

func TestLoadPredefinedIdentityH(t *testing.T) {
	cm, err := LoadPredefined("Identity-H")
	if err != nil {
		t.Fatalf("LoadPredefined: %v", err)
	}
	cid, ok := cm.ToCID(0x1234)
	if !ok || cid != 0x1234 {
		t.Fatalf("Identity-H ToCID(0x1234) = %d, %v, want 0x1234, true", cid, ok)
	}
}
