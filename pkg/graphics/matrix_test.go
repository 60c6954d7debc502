package graphics

import "testing"

func TestIdentityApply(t *testing.T) {
	x, y := Identity().Apply(3, 4)
	if x != 3 || y != 4 {
		t.Fatalf("Identity().Apply(3, 4) = %v, %v, want 3, 4", x, y)
	}
}

func TestMultComposesLeftThenRight(t *testing.T) {
	// Translate by (10, 0), then scale by 2: a point at the origin
	// should land at (20, 0), matching PDF's row-vector convention
	// where the new CTM is the operand matrix times the current CTM.
	translate := Translation(10, 0)
	scale := Matrix{2, 0, 0, 2, 0, 0}

	got := translate.Mult(scale)
	x, y := got.Apply(0, 0)
	if x != 20 || y != 0 {
		t.Fatalf("got (%v, %v), want (20, 0)", x, y)
	}
}

func TestMultIdentityIsNoOp(t *testing.T) {
	m := Matrix{2, 0, 0, 3, 5, 7}
	if got := m.Mult(Identity()); got != m {
		t.Fatalf("m.Mult(Identity()) = %v, want %v", got, m)
	}
	if got := Identity().Mult(m); got != m {
		t.Fatalf("Identity().Mult(m) = %v, want %v", got, m)
	}
}

func TestTranslationApply(t *testing.T) {
	x, y := Translation(3, -2).Apply(1, 1)
	if x != 4 || y != -1 {
		t.Fatalf("got (%v, %v), want (4, -1)", x, y)
	}
}
