// Package content interprets a PDF page (or Form XObject) content
// stream against a Device, replacing the teacher's single hard-coded
// processOp switch with the full operator table: path construction and
// painting, clipping, text, colour, shading, XObjects (image and
// form), inline images, marked content, and compatibility sections.
package content

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AOShei/go-fast-pdf/pkg/font"
	"github.com/AOShei/go-fast-pdf/pkg/graphics"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// Resolver resolves indirect references, matching pdf.Reader.Resolve.
type Resolver func(pdf.Object) pdf.Object

// Interpreter walks a content stream's operators against a Device,
// tracking the graphics/text state, the resource-dictionary stack, and
// the pending clip/path accumulated between painting operators.
type Interpreter struct {
	resolve Resolver
	device  Device
	log     *slog.Logger

	state    graphics.State
	stack    graphics.Stack
	resStack []pdf.DictionaryObject

	path           graphics.Path
	pendingClip    graphics.FillRule
	hasPendingClip bool

	fonts map[string]font.Font

	visitedForms map[int]bool
	warnedOps    map[string]bool

	pageNum int
}

// New returns an Interpreter ready to run a page's content stream.
// resources is the page's (possibly inherited) /Resources dictionary.
func New(resolve Resolver, device Device, resources pdf.DictionaryObject, log *slog.Logger) *Interpreter {
	if log == nil {
		log = slog.Default()
	}
	return &Interpreter{
		resolve:      resolve,
		device:       device,
		log:          log,
		state:        graphics.NewState(),
		resStack:     []pdf.DictionaryObject{resources},
		fonts:        map[string]font.Font{},
		visitedForms: map[int]bool{},
		warnedOps:    map[string]bool{},
	}
}

func (in *Interpreter) resources() pdf.DictionaryObject {
	if len(in.resStack) == 0 {
		return nil
	}
	return in.resStack[len(in.resStack)-1]
}

func (in *Interpreter) pushResources(dict pdf.DictionaryObject) {
	if dict == nil {
		dict = in.resources()
	}
	in.resStack = append(in.resStack, dict)
}

func (in *Interpreter) popResources() {
	if len(in.resStack) > 1 {
		in.resStack = in.resStack[:len(in.resStack)-1]
	}
}

// resourceDict resolves category (e.g. "/Font", "/XObject") within the
// resource stack's current top, returning the named sub-entry.
func (in *Interpreter) resourceDict(category, name string) (pdf.Object, bool) {
	cat, ok := in.resolve(in.resources()[category]).(pdf.DictionaryObject)
	if !ok {
		return nil, false
	}
	v, ok := cat[name]
	return in.resolve(v), ok
}

// Run interprets data (a page or Form XObject's already filter-decoded
// content stream bytes), dispatching each operator against the table
// below. pageNum and width/height drive the device's StartPage/EndPage
// bracketing; callers interpreting a nested Form pass 0/0/0 since those
// calls were already made for the enclosing page.
func (in *Interpreter) Run(data []byte, pageNum int, width, height float64) error {
	in.pageNum = pageNum
	if pageNum > 0 {
		in.device.StartPage(&in.state, pageNum, width, height)
	}

	lex := pdf.NewLexerFromBytes(data)
	var operands []pdf.Object

	for {
		obj, err := lex.ReadObject()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("content stream: %w", err)
		}

		kw, isKeyword := obj.(pdf.KeywordObject)
		if !isKeyword {
			operands = append(operands, obj)
			continue
		}

		op := string(kw)
		if op == "BI" {
			if err := in.execInlineImage(lex); err != nil {
				in.warn(op, err)
			}
			operands = nil
			continue
		}

		fn, ok := dispatch[op]
		if !ok {
			in.warnUnknown(op)
			operands = nil
			continue
		}
		if err := fn(in, operands); err != nil {
			in.warn(op, err)
		}
		operands = nil
	}

	if pageNum > 0 {
		in.device.EndPage(&in.state)
	}
	return nil
}

func (in *Interpreter) warn(op string, err error) {
	in.log.Warn("content operator failed", "operator", op, "error", err)
}

// warnUnknown logs an unrecognised operator at Warn the first time it
// is seen in this interpretation, Debug on every repeat, so a content
// stream that leans on a vendor-specific operator doesn't flood logs.
func (in *Interpreter) warnUnknown(op string) {
	if in.warnedOps[op] {
		in.log.Debug("unknown content operator", "operator", op)
		return
	}
	in.warnedOps[op] = true
	in.log.Warn("unknown content operator", "operator", op)
}

// dispatch is the operator table: one entry per spec.md §4.8 operator,
// mapped to that operator's op* method or, for gs, sh, Do, marked
// content and BX/EX, to an exec* method.
var dispatch = map[string]func(*Interpreter, []pdf.Object) error{
	"q":  (*Interpreter).opQ,
	"Q":  (*Interpreter).opQPop,
	"cm": (*Interpreter).opCM,
	"gs": (*Interpreter).execGeneralState,

	"w":  (*Interpreter).opLineWidth,
	"J":  (*Interpreter).opLineCap,
	"j":  (*Interpreter).opLineJoin,
	"M":  (*Interpreter).opMiterLimit,
	"d":  (*Interpreter).opDash,
	"ri": (*Interpreter).opRenderingIntent,
	"i":  (*Interpreter).opFlatness,

	"m":  (*Interpreter).opMoveTo,
	"l":  (*Interpreter).opLineTo,
	"c":  (*Interpreter).opCurveTo,
	"v":  (*Interpreter).opCurveToV,
	"y":  (*Interpreter).opCurveToY,
	"h":  (*Interpreter).opClosePath,
	"re": (*Interpreter).opRect,

	"S":  (*Interpreter).opStroke,
	"s":  (*Interpreter).opCloseStroke,
	"f":  (*Interpreter).opFillNonZero,
	"F":  (*Interpreter).opFillNonZero,
	"f*": (*Interpreter).opFillEvenOdd,
	"B":  (*Interpreter).opFillStrokeNonZero,
	"B*": (*Interpreter).opFillStrokeEvenOdd,
	"b":  (*Interpreter).opCloseFillStrokeNonZero,
	"b*": (*Interpreter).opCloseFillStrokeEvenOdd,
	"n":  (*Interpreter).opEndPath,

	"W":  (*Interpreter).opClipNonZero,
	"W*": (*Interpreter).opClipEvenOdd,

	"BT": (*Interpreter).opBeginText,
	"ET": (*Interpreter).opEndText,

	"Tc": (*Interpreter).opCharSpacing,
	"Tw": (*Interpreter).opWordSpacing,
	"Tz": (*Interpreter).opHscale,
	"TL": (*Interpreter).opLeading,
	"Tf": (*Interpreter).opFont,
	"Tr": (*Interpreter).opRenderMode,
	"Ts": (*Interpreter).opRise,

	"Td": (*Interpreter).opTd,
	"TD": (*Interpreter).opTD,
	"Tm": (*Interpreter).opTm,
	"T*": (*Interpreter).opTStar,

	"Tj": (*Interpreter).opShowText,
	"'":  (*Interpreter).opNextLineShowText,
	"\"": (*Interpreter).opNextLineShowTextSpacing,
	"TJ": (*Interpreter).opShowTextArray,

	"g":  (*Interpreter).opFillGray,
	"G":  (*Interpreter).opStrokeGray,
	"rg": (*Interpreter).opFillRGB,
	"RG": (*Interpreter).opStrokeRGB,
	"k":  (*Interpreter).opFillCMYK,
	"K":  (*Interpreter).opStrokeCMYK,
	"cs": (*Interpreter).opFillColorSpace,
	"CS": (*Interpreter).opStrokeColorSpace,
	"sc": (*Interpreter).opFillColor,
	"SC": (*Interpreter).opStrokeColor,
	"scn": (*Interpreter).opFillColor,
	"SCN": (*Interpreter).opStrokeColor,

	"sh": (*Interpreter).execShading,

	"Do": (*Interpreter).execXObject,

	"BMC": (*Interpreter).execMarkedContent,
	"BDC": (*Interpreter).execMarkedContent,
	"EMC": (*Interpreter).execMarkedContent,
	"MP":  (*Interpreter).execMarkedContent,
	"DP":  (*Interpreter).execMarkedContent,

	"BX": (*Interpreter).execCompatibility,
	"EX": (*Interpreter).execCompatibility,
}
