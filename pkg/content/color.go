package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func (in *Interpreter) opFillGray(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.FillColor = graphics.Color{Space: "DeviceGray", Components: nums(ops[:1])}
	return nil
}

func (in *Interpreter) opStrokeGray(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.StrokeColor = graphics.Color{Space: "DeviceGray", Components: nums(ops[:1])}
	return nil
}

func (in *Interpreter) opFillRGB(ops []pdf.Object) error {
	if err := need(ops, 3); err != nil {
		return err
	}
	in.state.FillColor = graphics.Color{Space: "DeviceRGB", Components: nums(ops[:3])}
	return nil
}

func (in *Interpreter) opStrokeRGB(ops []pdf.Object) error {
	if err := need(ops, 3); err != nil {
		return err
	}
	in.state.StrokeColor = graphics.Color{Space: "DeviceRGB", Components: nums(ops[:3])}
	return nil
}

func (in *Interpreter) opFillCMYK(ops []pdf.Object) error {
	if err := need(ops, 4); err != nil {
		return err
	}
	in.state.FillColor = graphics.Color{Space: "DeviceCMYK", Components: nums(ops[:4])}
	return nil
}

func (in *Interpreter) opStrokeCMYK(ops []pdf.Object) error {
	if err := need(ops, 4); err != nil {
		return err
	}
	in.state.StrokeColor = graphics.Color{Space: "DeviceCMYK", Components: nums(ops[:4])}
	return nil
}

func (in *Interpreter) opFillColorSpace(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, _ := pdf.AsName(ops[0])
	in.state.FillColor = graphics.Color{Space: name}
	return nil
}

func (in *Interpreter) opStrokeColorSpace(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, _ := pdf.AsName(ops[0])
	in.state.StrokeColor = graphics.Color{Space: name}
	return nil
}

// opFillColor implements sc/scn: the trailing operand may be a pattern
// name rather than a number, in which case only the space's component
// values preceding it are recorded (pattern tiling/shading itself is
// not interpreted here, spec.md §4.8's Non-goal).
func (in *Interpreter) opFillColor(ops []pdf.Object) error {
	return in.setColor(ops, &in.state.FillColor)
}

func (in *Interpreter) opStrokeColor(ops []pdf.Object) error {
	return in.setColor(ops, &in.state.StrokeColor)
}

func (in *Interpreter) setColor(ops []pdf.Object, c *graphics.Color) error {
	if len(ops) == 0 {
		return fmt.Errorf("sc/scn: no operands")
	}
	if name, ok := pdf.AsName(ops[len(ops)-1]); ok {
		c.Space = "Pattern"
		c.Components = nums(ops[:len(ops)-1])
		_ = name
		return nil
	}
	c.Components = nums(ops)
	return nil
}

// execShading implements sh: painting a shading pattern across the
// current clip is a rendering concern the Device owns; the
// interpreter's role is limited to resolving the /Shading resource so
// a Device that wants the dictionary can have it, which is out of
// scope for the reference NullDevice/TraceDevice sinks.
func (in *Interpreter) execShading(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, ok := pdf.AsName(ops[0])
	if !ok {
		return fmt.Errorf("sh: operand is not a name")
	}
	if _, ok := in.resourceDict("/Shading", "/"+name); !ok {
		return fmt.Errorf("sh: %q not found in /Shading", name)
	}
	return nil
}
