package loader

import "testing"

func TestPageWidthHeight(t *testing.T) {
	p := &Page{MediaBox: [4]float64{0, 0, 612, 792}}
	if p.Width() != 612 {
		t.Fatalf("Width() = %v, want 612", p.Width())
	}
	if p.Height() != 792 {
		t.Fatalf("Height() = %v, want 792", p.Height())
	}
}

func TestPageWidthHeightWithNonZeroOrigin(t *testing.T) {
	p := &Page{MediaBox: [4]float64{10, 20, 310, 320}}
	if p.Width() != 300 {
		t.Fatalf("Width() = %v, want 300", p.Width())
	}
	if p.Height() != 300 {
		t.Fatalf("Height() = %v, want 300", p.Height())
	}
}
