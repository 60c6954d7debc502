package graphics

import "testing"

func TestStackPushPopRestoresCTM(t *testing.T) {
	var stack Stack
	state := NewState()
	state.CTM = Translation(10, 10)
	stack.Push(state)

	state.CTM = Matrix{2, 0, 0, 2, 0, 0}
	state.LineWidth = 5

	restored, ok := stack.Pop()
	if !ok {
		t.Fatalf("Pop() on a non-empty stack returned ok=false")
	}
	if restored.CTM != (Matrix{1, 0, 0, 1, 10, 10}) {
		t.Fatalf("restored.CTM = %v, want the pushed translation", restored.CTM)
	}
	if restored.LineWidth != 1 {
		t.Fatalf("restored.LineWidth = %v, want the pushed default of 1", restored.LineWidth)
	}
}

func TestStackPopEmptyIsUnbalanced(t *testing.T) {
	var stack Stack
	if _, ok := stack.Pop(); ok {
		t.Fatalf("Pop() on an empty stack returned ok=true")
	}
}

func TestCloneDoesNotAliasSlices(t *testing.T) {
	state := NewState()
	state.DashArray = []float64{1, 2, 3}
	state.FillColor.Components = []float64{0.1, 0.2, 0.3}

	clone := state.Clone()
	clone.DashArray[0] = 99
	clone.FillColor.Components[0] = 0.9

	if state.DashArray[0] != 1 {
		t.Fatalf("mutating clone.DashArray affected the original: %v", state.DashArray)
	}
	if state.FillColor.Components[0] != 0.1 {
		t.Fatalf("mutating clone.FillColor affected the original: %v", state.FillColor.Components)
	}
}

func TestStackDepth(t *testing.T) {
	var stack Stack
	if stack.Depth() != 0 {
		t.Fatalf("Depth() on a new stack = %d, want 0", stack.Depth())
	}
	stack.Push(NewState())
	stack.Push(NewState())
	if stack.Depth() != 2 {
		t.Fatalf("Depth() after two pushes = %d, want 2", stack.Depth())
	}
	stack.Pop()
	if stack.Depth() != 1 {
		t.Fatalf("Depth() after one pop = %d, want 1", stack.Depth())
	}
}
