package content

import (
	"strings"
	"testing"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func identity(o pdf.Object) pdf.Object { return o }

func TestPathConstructionAndFill(t *testing.T) {
	dev := &TraceDevice{}
	in := New(identity, dev, pdf.DictionaryObject{}, nil)

	data := []byte("10 10 100 100 re f\n")
	if err := in.Run(data, 1, 200, 200); err != nil {
		t.Fatalf("Run: %v", err)
	}

	trace := dev.String()
	if !strings.Contains(trace, "FillPath subpaths=1") {
		t.Fatalf("expected a fill call, got:\n%s", trace)
	}
	if !strings.Contains(trace, "StartPage 1") || !strings.Contains(trace, "EndPage") {
		t.Fatalf("expected StartPage/EndPage bracketing, got:\n%s", trace)
	}
}

func TestGraphicsStateStack(t *testing.T) {
	dev := &NullDevice{}
	in := New(identity, dev, pdf.DictionaryObject{}, nil)

	data := []byte("q 2 0 0 2 0 0 cm Q\n")
	if err := in.Run(data, 0, 0, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := in.state.CTM; got != [6]float64{1, 0, 0, 1, 0, 0} {
		t.Fatalf("CTM after q/cm/Q = %v, want identity", got)
	}
}

func TestUnbalancedQDoesNotPanic(t *testing.T) {
	dev := &NullDevice{}
	in := New(identity, dev, pdf.DictionaryObject{}, nil)
	if err := in.Run([]byte("Q\n"), 0, 0, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestUnknownOperatorIsSkippedNotFatal(t *testing.T) {
	dev := &NullDevice{}
	in := New(identity, dev, pdf.DictionaryObject{}, nil)
	if err := in.Run([]byte("1 2 Zz 3 4 m l S\n"), 0, 0, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestColorOperators(t *testing.T) {
	dev := &NullDevice{}
	in := New(identity, dev, pdf.DictionaryObject{}, nil)
	if err := in.Run([]byte("1 0 0 rg 0.5 g\n"), 0, 0, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.state.FillColor.Space != "DeviceGray" {
		t.Fatalf("FillColor.Space = %q, want DeviceGray", in.state.FillColor.Space)
	}
}
