package pdfimage

import (
	"testing"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func identity(o pdf.Object) pdf.Object { return o }

func TestDecodeGray8bpp(t *testing.T) {
	dict := pdf.DictionaryObject{
		"/Width":            pdf.NumberObject(2),
		"/Height":           pdf.NumberObject(2),
		"/BitsPerComponent": pdf.NumberObject(8),
		"/ColorSpace":       pdf.NameObject("/DeviceGray"),
	}
	data := []byte{0x00, 0xFF, 0x80, 0x40}
	stream := pdf.StreamObject{Dictionary: dict, Data: data}

	img, err := Decode(stream, identity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 || img.NumComponents != 1 {
		t.Fatalf("unexpected dims: %dx%d x%d", img.Width, img.Height, img.NumComponents)
	}
	if img.Samples[0] != 0 || img.Samples[1] != 1 {
		t.Fatalf("row 0 samples = %v, want [0 1]", img.Samples[:2])
	}
	r, g, b := img.RGB(0, 1)
	if r != 0x80 || g != 0x80 || b != 0x80 {
		t.Fatalf("RGB(0,1) = %d,%d,%d want 0x80 each", r, g, b)
	}
}

func TestDecode1BitImageMask(t *testing.T) {
	dict := pdf.DictionaryObject{
		"/Width":     pdf.NumberObject(8),
		"/Height":    pdf.NumberObject(1),
		"/ImageMask": pdf.BooleanObject(true),
	}
	data := []byte{0b10110000}
	stream := pdf.StreamObject{Dictionary: dict, Data: data}

	img, err := Decode(stream, identity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []float64{1, 0, 1, 1, 0, 0, 0, 0}
	for i, w := range want {
		if img.Samples[i] != w {
			t.Fatalf("sample %d = %v, want %v", i, img.Samples[i], w)
		}
	}
}

func TestDecodeWithStencilMaskStream(t *testing.T) {
	maskDict := pdf.DictionaryObject{
		"/Width":  pdf.NumberObject(8),
		"/Height": pdf.NumberObject(1),
	}
	mask := pdf.StreamObject{Dictionary: maskDict, Data: []byte{0b10000001}}

	dict := pdf.DictionaryObject{
		"/Width":            pdf.NumberObject(1),
		"/Height":           pdf.NumberObject(1),
		"/BitsPerComponent": pdf.NumberObject(8),
		"/ColorSpace":       pdf.NameObject("/DeviceGray"),
		"/Mask":             mask,
	}
	stream := pdf.StreamObject{Dictionary: dict, Data: []byte{0x00}}

	img, err := Decode(stream, identity)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Mask == nil {
		t.Fatalf("img.Mask is nil, want a decoded StencilMask")
	}
	if img.Mask.Width != 8 || img.Mask.Height != 1 {
		t.Fatalf("mask dims = %dx%d, want 8x1", img.Mask.Width, img.Mask.Height)
	}
	if !img.Mask.Masked(0, 0) || !img.Mask.Masked(7, 0) {
		t.Fatalf("expected bits 0 and 7 to be masked")
	}
	if img.Mask.Masked(3, 0) {
		t.Fatalf("bit 3 should not be masked")
	}
}

func TestStencilMaskDecodeInvertsSense(t *testing.T) {
	maskDict := pdf.DictionaryObject{
		"/Width":  pdf.NumberObject(8),
		"/Height": pdf.NumberObject(1),
		"/Decode": pdf.ArrayObject{pdf.NumberObject(1), pdf.NumberObject(0)},
	}
	mask := pdf.StreamObject{Dictionary: maskDict, Data: []byte{0b10000001}}

	sm, err := decodeStencilMask(mask, identity)
	if err != nil {
		t.Fatalf("decodeStencilMask: %v", err)
	}
	if sm.Masked(0, 0) {
		t.Fatalf("bit 0 set with /Decode [1 0] should report unmasked")
	}
	if !sm.Masked(1, 0) {
		t.Fatalf("bit 1 clear with /Decode [1 0] should report masked")
	}
}
