package filter

import (
	"bytes"
	"testing"
)

// TestLZWVector exercises the spec's canonical LZW fixture: the byte
// sequence 80 0B 60 50 22 0C 0C 85 01 decodes to "-----A---B".
func TestLZWVector(t *testing.T) {
	in := []byte{0x80, 0x0B, 0x60, 0x50, 0x22, 0x0C, 0x0C, 0x85, 0x01}
	want := []byte("-----A---B")

	got, err := LZW(in, true)
	if err != nil {
		t.Fatalf("LZW: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("LZW(%x) = %q, want %q", in, got, want)
	}
}

func TestASCII85RoundTrip(t *testing.T) {
	// "Man is distinguished..." is the canonical ASCII85 test sentence;
	// the encoded form below is the well-known Adobe PostScript example.
	encoded := []byte("9jqo^BlbD-BleB1DJ+*+F(f,q/0JhKF<GL>Cj@.4Gp$d7F!,L7@<6@)/0JDEF<G%<+EV:2F!,O<DJ+*.@<*K0@<6L(Df-\\0Ec5e;DffZ(EZee.Bl.9pF\"AGXBPCsi+DGm>@3BB/F*&OCAfu2/AKYi(DIb:@FD,*)+C]U=@3BN#EcYf8ATD3s@q?d$AftVqCh[NqF<G:8+EV:.+Cf>-FD5W8ARlolDIal(DId<j@<?3r@:F%a+D58'ATD4$Bl@l3De:,-DJs`8ARoFb/0JMK@qB4^F!,R<AKZ&-DfTqBG%G>uD.RTpAKYo'+CT/5+Cei#DII?(E,9)oF*2M7/c~>")
	want := "Man is distinguished, not only by his reason, but by this singular passion from other animals, which is a lust of the mind, that by a perseverance of delight in the continued and indefatigable generation of knowledge, exceeds the short vehemence of any carnal pleasure."

	got, err := ASCII85(encoded)
	if err != nil {
		t.Fatalf("ASCII85: %v", err)
	}
	if string(got) != want {
		t.Fatalf("ASCII85 decoded mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestASCIIHex(t *testing.T) {
	got, err := ASCIIHex([]byte("48656c6c6f>"))
	if err != nil {
		t.Fatalf("ASCIIHex: %v", err)
	}
	if string(got) != "Hello" {
		t.Fatalf("ASCIIHex = %q, want %q", got, "Hello")
	}
}

func TestASCIIHexOddDigit(t *testing.T) {
	// A trailing unpaired digit is treated as if followed by "0".
	got, err := ASCIIHex([]byte("4A3>"))
	if err != nil {
		t.Fatalf("ASCIIHex: %v", err)
	}
	want := []byte{0x4A, 0x30}
	if !bytes.Equal(got, want) {
		t.Fatalf("ASCIIHex = %x, want %x", got, want)
	}
}

func TestRunLength(t *testing.T) {
	// 2 literal bytes "AB", then run of 4 'x', then EOD.
	in := []byte{0x01, 'A', 'B', 256 - 4 + 1, 'x', 128}
	got, err := RunLength(in)
	if err != nil {
		t.Fatalf("RunLength: %v", err)
	}
	want := "ABxxxx"
	if string(got) != want {
		t.Fatalf("RunLength = %q, want %q", got, want)
	}
}

func TestApplyPredictorUp(t *testing.T) {
	// Two 3-byte rows, tag 2 (Up) on both; second row differences are
	// zero, so decoding it should reproduce the first row exactly.
	data := []byte{
		2, 10, 20, 30,
		2, 0, 0, 0,
	}
	got, err := ApplyPredictor(data, 12, 1, 8, 3)
	if err != nil {
		t.Fatalf("ApplyPredictor: %v", err)
	}
	want := []byte{10, 20, 30, 10, 20, 30}
	if !bytes.Equal(got, want) {
		t.Fatalf("ApplyPredictor = %v, want %v", got, want)
	}
}

func TestApplyPredictorNone(t *testing.T) {
	data := []byte{1, 2, 3}
	got, err := ApplyPredictor(data, 1, 1, 8, 3)
	if err != nil {
		t.Fatalf("ApplyPredictor: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("ApplyPredictor(no-op) = %v, want %v", got, data)
	}
}
