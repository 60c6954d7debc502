package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/font"
	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

func (in *Interpreter) opBeginText(ops []pdf.Object) error {
	in.state.Text.Tm = graphics.Identity()
	in.state.Text.Tlm = graphics.Identity()
	in.device.BeginText(&in.state)
	return nil
}

func (in *Interpreter) opEndText(ops []pdf.Object) error {
	in.device.EndText(&in.state)
	return nil
}

func (in *Interpreter) opCharSpacing(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.CharSpacing = num(ops[0])
	return nil
}

func (in *Interpreter) opWordSpacing(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.WordSpacing = num(ops[0])
	return nil
}

// opHscale implements Tz: the operand is a percentage, Hscale stores
// the already-divided-by-100 factor every downstream computation uses
// directly.
func (in *Interpreter) opHscale(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.Hscale = num(ops[0]) / 100.0
	return nil
}

func (in *Interpreter) opLeading(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.Leading = num(ops[0])
	return nil
}

func (in *Interpreter) opRise(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.Rise = num(ops[0])
	return nil
}

func (in *Interpreter) opRenderMode(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	in.state.Text.RenderMode = graphics.RenderMode(int(num(ops[0])))
	return nil
}

// opFont implements Tf: resolves name against /Font in the current
// resource dictionary, loading (and caching) the font the first time
// it is referenced.
func (in *Interpreter) opFont(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	name, ok := pdf.AsName(ops[0])
	if !ok {
		return fmt.Errorf("Tf: first operand is not a name")
	}
	f, err := in.lookupFont(name)
	if err != nil {
		return err
	}
	in.state.Text.Font = f
	in.state.Text.FontSize = num(ops[1])
	in.device.UpdateFont(&in.state)
	return nil
}

func (in *Interpreter) lookupFont(name string) (font.Font, error) {
	if f, ok := in.fonts[name]; ok {
		return f, nil
	}
	entry, ok := in.resourceDict("/Font", "/"+name)
	if !ok {
		return nil, &pdf.FontError{BaseFont: name, Err: fmt.Errorf("not found in /Font resources")}
	}
	dict, ok := entry.(pdf.DictionaryObject)
	if !ok {
		return nil, &pdf.FontError{BaseFont: name, Err: fmt.Errorf("resource is not a dictionary")}
	}
	f, err := font.Load(dict, font.Resolver(in.resolve))
	if err != nil {
		return nil, err
	}
	in.fonts[name] = f
	return f, nil
}

func (in *Interpreter) opTd(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	tx, ty := num(ops[0]), num(ops[1])
	m := graphics.Translation(tx, ty)
	in.state.Text.Tlm = m.Mult(in.state.Text.Tlm)
	in.state.Text.Tm = in.state.Text.Tlm
	return nil
}

func (in *Interpreter) opTD(ops []pdf.Object) error {
	if err := need(ops, 2); err != nil {
		return err
	}
	in.state.Text.Leading = -num(ops[1])
	return in.opTd(ops)
}

func (in *Interpreter) opTm(ops []pdf.Object) error {
	if err := need(ops, 6); err != nil {
		return err
	}
	m := matrixFrom(ops)
	in.state.Text.Tm = m
	in.state.Text.Tlm = m
	return nil
}

func (in *Interpreter) opTStar(ops []pdf.Object) error {
	m := graphics.Translation(0, -in.state.Text.Leading)
	in.state.Text.Tlm = m.Mult(in.state.Text.Tlm)
	in.state.Text.Tm = in.state.Text.Tlm
	return nil
}

func bytesOf(o pdf.Object) ([]byte, bool) { return pdf.Bytes(o) }

func (in *Interpreter) opShowText(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	data, ok := bytesOf(ops[0])
	if !ok {
		return fmt.Errorf("Tj: operand is not a string")
	}
	in.showText(data)
	return nil
}

func (in *Interpreter) opNextLineShowText(ops []pdf.Object) error {
	in.opTStar(nil)
	return in.opShowText(ops)
}

func (in *Interpreter) opNextLineShowTextSpacing(ops []pdf.Object) error {
	if err := need(ops, 3); err != nil {
		return err
	}
	in.state.Text.WordSpacing = num(ops[0])
	in.state.Text.CharSpacing = num(ops[1])
	in.opTStar(nil)
	return in.opShowText(ops[2:])
}

func (in *Interpreter) opShowTextArray(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	arr, ok := ops[0].(pdf.ArrayObject)
	if !ok {
		return fmt.Errorf("TJ: operand is not an array")
	}
	ts := &in.state.Text
	for _, el := range arr {
		if n, ok := el.(pdf.NumberObject); ok {
			shift := -float64(n) / 1000.0 * ts.FontSize * ts.Hscale
			advance(ts, shift)
			continue
		}
		if data, ok := bytesOf(el); ok {
			in.showText(data)
		}
	}
	return nil
}

// advance moves Tm along the writing-mode axis by amount, in text
// space, matching the sign convention a horizontal TJ adjustment uses
// (Open Question (b): vertical writing applies the same sign along y).
func advance(ts *graphics.TextState, amount float64) {
	if ts.Font != nil && ts.Font.WritingMode() == font.Vertical {
		ts.Tm = graphics.Translation(0, amount).Mult(ts.Tm)
		return
	}
	ts.Tm = graphics.Translation(amount, 0).Mult(ts.Tm)
}

// showText decodes data through the active font, hands each code and the
// current state to the device (which derives the glyph position from Tm
// and the CTM; no rendering matrix is computed here), and advances Tm per
// spec.md's advance-width formula, scaled by Hscale.
func (in *Interpreter) showText(data []byte) {
	ts := &in.state.Text
	if ts.Font == nil {
		return
	}
	for _, ch := range ts.Font.Chars(data) {
		in.device.DrawChar(ch.Code, &in.state)

		w, ok := ts.Font.Width(ch.Code)
		if !ok {
			w = 0
		}
		charAdvance := w/1000.0*ts.FontSize + ts.CharSpacing
		if ch.NBytes == 1 && ch.Code == 0x20 {
			charAdvance += ts.WordSpacing
		}
		charAdvance *= ts.Hscale
		advance(ts, charAdvance)
	}
}
