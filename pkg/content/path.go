package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// userToDevice applies the CTM to a user-space point before it enters
// the accumulated Path, matching graphics.Path's documented contract
// that its segments are already in device/user space.
func (in *Interpreter) userToDevice(x, y float64) (float64, float64) {
	return in.state.CTM.Apply(x, y)
}

func (in *Interpreter) opMoveTo(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	x, y := in.userToDevice(num(ops[0]), num(ops[1]))
	in.path.MoveTo(x, y)
	return nil
}

func (in *Interpreter) opLineTo(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	x, y := in.userToDevice(num(ops[0]), num(ops[1]))
	in.path.LineTo(x, y)
	return nil
}

func (in *Interpreter) opCurveTo(ops []pdf.Object) error {
	if err := need(ops, 6); err != nil {
		return err
	}
	x1, y1 := in.userToDevice(num(ops[0]), num(ops[1]))
	x2, y2 := in.userToDevice(num(ops[2]), num(ops[3]))
	x3, y3 := in.userToDevice(num(ops[4]), num(ops[5]))
	in.path.CurveTo(x1, y1, x2, y2, x3, y3)
	return nil
}

// opCurveToV implements `v`: the first control point is the current
// point itself.
func (in *Interpreter) opCurveToV(ops []pdf.Object) error {
	if err := need(ops, 4); err != nil {
		return err
	}
	cx, cy, ok := in.path.Current()
	if !ok {
		return &pdf.PathError{Err: fmt.Errorf("v with no current point")}
	}
	x2, y2 := in.userToDevice(num(ops[0]), num(ops[1]))
	x3, y3 := in.userToDevice(num(ops[2]), num(ops[3]))
	in.path.CurveTo(cx, cy, x2, y2, x3, y3)
	return nil
}

// opCurveToY implements `y`: the second control point is the endpoint
// itself.
func (in *Interpreter) opCurveToY(ops []pdf.Object) error {
	if err := need(ops, 4); err != nil {
		return err
	}
	x1, y1 := in.userToDevice(num(ops[0]), num(ops[1]))
	x3, y3 := in.userToDevice(num(ops[2]), num(ops[3]))
	in.path.CurveTo(x1, y1, x3, y3, x3, y3)
	return nil
}

func (in *Interpreter) opClosePath(ops []pdf.Object) error {
	in.path.Close()
	return nil
}

func (in *Interpreter) opRect(ops []pdf.Object) error {
	if err := need(ops, 4); err != nil {
		return err
	}
	x, y, w, h := num(ops[0]), num(ops[1]), num(ops[2]), num(ops[3])
	x0, y0 := in.userToDevice(x, y)
	x1, y1 := in.userToDevice(x+w, y)
	x2, y2 := in.userToDevice(x+w, y+h)
	x3, y3 := in.userToDevice(x, y+h)
	in.path.MoveTo(x0, y0)
	in.path.LineTo(x1, y1)
	in.path.LineTo(x2, y2)
	in.path.LineTo(x3, y3)
	in.path.Close()
	return nil
}

// finishPainting hands the accumulated path to the device (stroke,
// fill, or both, per which), applies any W/W* clip mark set since the
// last painting operator, and resets the path for the next sequence.
func (in *Interpreter) finishPainting(stroke, fill bool, rule graphics.FillRule) {
	switch {
	case stroke && fill:
		in.device.FillAndStrokePath(&in.path, &in.state, rule)
	case fill:
		in.device.FillPath(&in.path, &in.state, rule)
	case stroke:
		in.device.StrokePath(&in.path, &in.state)
	}
	if in.hasPendingClip {
		in.state.ClipPath = clonePath(&in.path)
		in.state.ClipRule = in.pendingClip
		in.device.Clip(&in.state)
		in.hasPendingClip = false
	}
	in.path = graphics.Path{}
}

func clonePath(p *graphics.Path) *graphics.Path {
	out := *p
	out.Subpaths = append([]graphics.Subpath(nil), p.Subpaths...)
	return &out
}

func (in *Interpreter) opStroke(ops []pdf.Object) error {
	in.finishPainting(true, false, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opCloseStroke(ops []pdf.Object) error {
	in.path.Close()
	in.finishPainting(true, false, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opFillNonZero(ops []pdf.Object) error {
	in.finishPainting(false, true, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opFillEvenOdd(ops []pdf.Object) error {
	in.finishPainting(false, true, graphics.EvenOdd)
	return nil
}

func (in *Interpreter) opFillStrokeNonZero(ops []pdf.Object) error {
	in.finishPainting(true, true, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opFillStrokeEvenOdd(ops []pdf.Object) error {
	in.finishPainting(true, true, graphics.EvenOdd)
	return nil
}

func (in *Interpreter) opCloseFillStrokeNonZero(ops []pdf.Object) error {
	in.path.Close()
	in.finishPainting(true, true, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opCloseFillStrokeEvenOdd(ops []pdf.Object) error {
	in.path.Close()
	in.finishPainting(true, true, graphics.EvenOdd)
	return nil
}

// opEndPath implements `n`: end the path without painting, still
// honouring a pending clip mark.
func (in *Interpreter) opEndPath(ops []pdf.Object) error {
	in.finishPainting(false, false, graphics.NonZeroWinding)
	return nil
}

func (in *Interpreter) opClipNonZero(ops []pdf.Object) error {
	in.hasPendingClip = true
	in.pendingClip = graphics.NonZeroWinding
	return nil
}

func (in *Interpreter) opClipEvenOdd(ops []pdf.Object) error {
	in.hasPendingClip = true
	in.pendingClip = graphics.EvenOdd
	return nil
}
