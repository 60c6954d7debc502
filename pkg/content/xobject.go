package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/filter"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
	"github.com/AOShei/go-fast-pdf/pkg/pdfimage"
)

// execXObject implements Do: resolves name against /XObject and
// branches on /Subtype, image vs form. The teacher only ever records
// XObject references for its image-discovery pass (processFormXObject
// walks a form's /Resources for nested images, never its content
// stream); this interprets the Form's content as part of the page's
// own state instead.
func (in *Interpreter) execXObject(ops []pdf.Object) error {
	if err := need(ops, 1); err != nil {
		return err
	}
	name, ok := pdf.AsName(ops[0])
	if !ok {
		return fmt.Errorf("Do: operand is not a name")
	}
	cat, ok := in.resolve(in.resources()["/XObject"]).(pdf.DictionaryObject)
	if !ok {
		return fmt.Errorf("Do: no /XObject resources")
	}
	raw, ok := cat["/"+name]
	if !ok {
		return fmt.Errorf("Do: %q not found in /XObject", name)
	}
	objNum := -1
	if ref, ok := raw.(pdf.IndirectObject); ok {
		objNum = ref.ObjectNumber
	}
	stream, ok := in.resolve(raw).(pdf.StreamObject)
	if !ok {
		return fmt.Errorf("Do: %q is not a stream", name)
	}
	subtype, _ := pdf.AsName(in.resolve(stream.Dictionary["/Subtype"]))
	switch subtype {
	case "Image":
		return in.drawImageXObject(stream)
	case "Form":
		return in.runForm(stream, objNum)
	default:
		return fmt.Errorf("Do: unsupported XObject subtype %q", subtype)
	}
}

func (in *Interpreter) drawImageXObject(stream pdf.StreamObject) error {
	fs := in.resolve(stream.Dictionary["/Filter"])
	if arr, ok := fs.(pdf.ArrayObject); ok && len(arr) > 0 {
		fs = in.resolve(arr[len(arr)-1])
	}
	if n, _ := pdf.AsName(fs); n == "DCTDecode" || n == "DCT" {
		res, err := filter.DCT(stream.Data)
		if err != nil {
			return err
		}
		stream.Data = res.Pixels
	}
	img, err := pdfimage.Decode(stream, pdfimage.Resolver(in.resolve))
	if err != nil {
		return err
	}
	in.device.DrawImage(img, &in.state)
	return nil
}

// runForm interprets a Form XObject's content stream in place: its
// /Matrix is prepended to the CTM and its /Resources (falling back to
// the enclosing resources when absent, per spec.md §3) are pushed for
// the duration, both undone on return. A form that (directly or
// through nested forms) references its own object number is skipped
// rather than recursed into forever.
func (in *Interpreter) runForm(stream pdf.StreamObject, objNum int) error {
	if objNum >= 0 {
		if in.visitedForms[objNum] {
			return fmt.Errorf("Do: cyclic form reference (object %d)", objNum)
		}
		in.visitedForms[objNum] = true
		defer delete(in.visitedForms, objNum)
	}

	saved := in.state
	in.stack.Push(in.state)
	defer func() {
		if top, ok := in.stack.Pop(); ok {
			in.state = top
		} else {
			in.state = saved
		}
	}()

	if arr, ok := in.resolve(stream.Dictionary["/Matrix"]).(pdf.ArrayObject); ok && len(arr) == 6 {
		m := matrixFrom(arr)
		in.state.CTM = m.Mult(in.state.CTM)
	}

	var formRes pdf.DictionaryObject
	if r, ok := in.resolve(stream.Dictionary["/Resources"]).(pdf.DictionaryObject); ok {
		formRes = r
	}
	in.pushResources(formRes)
	defer in.popResources()

	return in.Run(stream.Data, 0, 0, 0)
}
