package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func num(o pdf.Object) float64 { return pdf.AsNumber(o) }

func nums(ops []pdf.Object) []float64 {
	out := make([]float64, len(ops))
	for i, o := range ops {
		out[i] = num(o)
	}
	return out
}

func need(ops []pdf.Object, n int) error {
	if len(ops) < n {
		return fmt.Errorf("need %d operands, got %d", n, len(ops))
	}
	return nil
}

func (in *Interpreter) opQ(ops []pdf.Object) error {
	in.stack.Push(in.state)
	return nil
}

func (in *Interpreter) opQPop(ops []pdf.Object) error {
	top, ok := in.stack.Pop()
	if !ok {
		return fmt.Errorf("Q with no matching q")
	}
	in.state = top
	return nil
}

func (in *Interpreter) opCM(ops []pdf.Object) error {
	if err := need(ops, 6); err != nil {
		return err
	}
	m := matrixFrom(ops)
	in.state.CTM = m.Mult(in.state.CTM)
	return nil
}

func matrixFrom(ops []pdf.Object) graphics.Matrix {
	n := nums(ops[:6])
	return graphics.Matrix{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// execGeneralState implements gs: looking up name in the page's
// /ExtGState resource dictionary and applying LW, LC, LJ, ML, RI, OP, op,
// OPM, CA, ca, BM and SMask to the state. Font sets only the font size:
// no font is loaded and the device's UpdateFont is not called. D, SA,
// SM, AIS, TK and unrecognised keys are ignored.
func (in *Interpreter) execGeneralState(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, ok := pdf.AsName(ops[0])
	if !ok {
		return fmt.Errorf("gs: operand is not a name")
	}
	entry, ok := in.resourceDict("/ExtGState", "/"+name)
	if !ok {
		return fmt.Errorf("gs: %q not found in /ExtGState", name)
	}
	dict, ok := entry.(pdf.DictionaryObject)
	if !ok {
		return fmt.Errorf("gs: %q is not a dictionary", name)
	}

	s := &in.state
	if v, ok := dict["/LW"]; ok {
		s.LineWidth = num(in.resolve(v))
	}
	if v, ok := dict["/LC"]; ok {
		s.LineCap = graphics.LineCap(int(num(in.resolve(v))))
	}
	if v, ok := dict["/LJ"]; ok {
		s.LineJoin = graphics.LineJoin(int(num(in.resolve(v))))
	}
	if v, ok := dict["/ML"]; ok {
		s.MiterLimit = num(in.resolve(v))
	}
	if v, ok := dict["/RI"]; ok {
		s.RenderingIntent, _ = pdf.AsName(in.resolve(v))
	}
	if v, ok := dict["/OP"]; ok {
		if b, ok := in.resolve(v).(pdf.BooleanObject); ok {
			s.OverprintStroke = bool(b)
		}
	}
	if v, ok := dict["/op"]; ok {
		if b, ok := in.resolve(v).(pdf.BooleanObject); ok {
			s.OverprintFill = bool(b)
		}
	}
	if v, ok := dict["/OPM"]; ok {
		s.OverprintMode = int(num(in.resolve(v)))
	}
	if v, ok := dict["/CA"]; ok {
		s.StrokeAlpha = num(in.resolve(v))
	}
	if v, ok := dict["/ca"]; ok {
		s.FillAlpha = num(in.resolve(v))
	}
	if v, ok := dict["/BM"]; ok {
		switch bm := in.resolve(v).(type) {
		case pdf.NameObject:
			s.BlendMode, _ = pdf.AsName(bm)
		case pdf.ArrayObject:
			if len(bm) > 0 {
				s.BlendMode, _ = pdf.AsName(in.resolve(bm[0]))
			}
		}
	}
	if v, ok := dict["/SMask"]; ok {
		if n, ok := pdf.AsName(in.resolve(v)); ok {
			s.SoftMask = n
		} else {
			s.SoftMask = ""
		}
	}
	if v, ok := dict["/Font"]; ok {
		if arr, ok := in.resolve(v).(pdf.ArrayObject); ok && len(arr) == 2 {
			s.Text.FontSize = num(in.resolve(arr[1]))
		}
	}
	return nil
}

func (in *Interpreter) opLineWidth(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.LineWidth = num(ops[0])
	return nil
}

func (in *Interpreter) opLineCap(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.LineCap = graphics.LineCap(int(num(ops[0])))
	return nil
}

func (in *Interpreter) opLineJoin(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.LineJoin = graphics.LineJoin(int(num(ops[0])))
	return nil
}

func (in *Interpreter) opMiterLimit(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.MiterLimit = num(ops[0])
	return nil
}

func (in *Interpreter) opDash(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	arr, ok := ops[0].(pdf.ArrayObject)
	if !ok {
		return fmt.Errorf("d: first operand is not an array")
	}
	in.state.DashArray = nums(arr)
	in.state.DashPhase = num(ops[1])
	return nil
}

func (in *Interpreter) opRenderingIntent(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, _ := pdf.AsName(ops[0])
	in.state.RenderingIntent = name
	return nil
}

func (in *Interpreter) opFlatness(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Flatness = num(ops[0])
	return nil
}

// execCompatibility implements BX/EX: both are no-ops here since
// unknown operators inside a compatibility section are already
// tolerated (logged, skipped) rather than treated as fatal.
func (in *Interpreter) execCompatibility(ops []pdf.Object) error { return nil }

// execMarkedContent implements BMC/BDC/EMC/MP/DP: marked-content
// sections carry no state this interpreter tracks (no nesting depth
// consumers exist yet), so they are accepted and ignored.
func (in *Interpreter) execMarkedContent(ops []pdf.Object) error { return nil }
