package graphics

import "testing"

func TestRectBuildsClosedSubpath(t *testing.T) {
	var p Path
	p.Rect(0, 0, 10, 20)

	if len(p.Subpaths) != 1 {
		t.Fatalf("len(Subpaths) = %d, want 1", len(p.Subpaths))
	}
	sub := p.Subpaths[0]
	if len(sub) != 5 {
		t.Fatalf("len(subpath) = %d, want 5 (move + 3 lines + close)", len(sub))
	}
	if sub[0].Op != SegMoveTo || sub[4].Op != SegClose {
		t.Fatalf("subpath does not start with MoveTo and end with Close: %v", sub)
	}

	x, y, ok := p.Current()
	if !ok || x != 0 || y != 0 {
		t.Fatalf("Current() after Rect+Close = (%v, %v, %v), want (0, 0, true)", x, y, ok)
	}
}

func TestLineToWithoutMoveToActsAsMoveTo(t *testing.T) {
	var p Path
	p.LineTo(5, 5)

	if len(p.Subpaths) != 1 || p.Subpaths[0][0].Op != SegMoveTo {
		t.Fatalf("LineTo with no current subpath did not start a new one: %v", p.Subpaths)
	}
}

func TestCurveToWithoutMoveToStartsAtFirstControlPoint(t *testing.T) {
	var p Path
	p.CurveTo(1, 1, 2, 2, 3, 3)

	if len(p.Subpaths) != 1 {
		t.Fatalf("len(Subpaths) = %d, want 1", len(p.Subpaths))
	}
	if p.Subpaths[0][0].Op != SegMoveTo {
		t.Fatalf("first segment = %v, want SegMoveTo", p.Subpaths[0][0].Op)
	}
	x, y, _ := p.Current()
	if x != 3 || y != 3 {
		t.Fatalf("Current() = (%v, %v), want (3, 3)", x, y)
	}
}

func TestMultipleMoveTosStartNewSubpaths(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.MoveTo(5, 5)
	p.LineTo(6, 5)

	if len(p.Subpaths) != 2 {
		t.Fatalf("len(Subpaths) = %d, want 2", len(p.Subpaths))
	}
}
