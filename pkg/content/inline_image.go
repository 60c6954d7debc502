package content

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/filter"
	"github.com/AOShei/go-fast-pdf/pkg/pdf"
	"github.com/AOShei/go-fast-pdf/pkg/pdfimage"
)

// inlineFilterNames maps the abbreviated filter names inline images
// are conventionally written with (PDF 32000-1 Table 93) to the full
// names pkg/filter's functions implement.
var inlineFilterNames = map[string]string{
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"LZW": "LZWDecode",
	"Fl":  "FlateDecode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": "DCTDecode",
}

func resolveInlineFilterName(name string) string {
	if full, ok := inlineFilterNames[name]; ok {
		return full
	}
	return name
}

// execInlineImage implements the `BI <dict> ID <data> EI` form. It is
// called directly from Run's token loop once "BI" has been read, since
// inline image data is not tokenizable the way every other operand is:
// lex is the same Lexer the main loop is reading operators from.
func (in *Interpreter) execInlineImage(lex *pdf.Lexer) error {
	dict := pdf.DictionaryObject{}
	for {
		obj, err := lex.ReadObject()
		if err != nil {
			return fmt.Errorf("inline image dictionary: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok {
			if string(kw) == "ID" {
				break
			}
			return fmt.Errorf("inline image dictionary: unexpected keyword %q", kw)
		}
		key, ok := obj.(pdf.NameObject)
		if !ok {
			return fmt.Errorf("inline image dictionary: expected a name key")
		}
		val, err := lex.ReadObject()
		if err != nil {
			return fmt.Errorf("inline image dictionary: %w", err)
		}
		dict[string(key)] = val
	}

	raw, err := lex.ReadInlineImageData()
	if err != nil {
		return fmt.Errorf("inline image data: %w", err)
	}

	data, err := decodeInlineFilters(raw, dict, in.resolve)
	if err != nil {
		return err
	}

	img, err := pdfimage.Decode(pdf.StreamObject{Dictionary: dict, Data: data}, pdfimage.Resolver(in.resolve))
	if err != nil {
		return err
	}
	in.device.DrawImage(img, &in.state)
	return nil
}

// decodeInlineFilters applies the inline image's /F (or /Filter) chain,
// the abbreviated-name subset pdf producers use for BI...EI data.
// Predictor-bearing filters are out of scope for inline images (no
// production encoder runs a predictor over inline sample data).
func decodeInlineFilters(data []byte, dict pdf.DictionaryObject, resolve Resolver) ([]byte, error) {
	var names []string
	switch v := resolve(firstOf(dict, "/Filter", "/F")).(type) {
	case pdf.NameObject:
		n, _ := pdf.AsName(v)
		names = []string{n}
	case pdf.ArrayObject:
		for _, el := range v {
			n, _ := pdf.AsName(resolve(el))
			names = append(names, n)
		}
	}

	for _, name := range names {
		full := resolveInlineFilterName(name)
		var err error
		switch full {
		case "ASCIIHexDecode":
			data, err = filter.ASCIIHex(data)
		case "ASCII85Decode":
			data, err = filter.ASCII85(data)
		case "LZWDecode":
			data, err = filter.LZW(data, true)
		case "FlateDecode":
			data, err = filter.Flate(data)
		case "RunLengthDecode":
			data, err = filter.RunLength(data)
		case "DCTDecode":
			res, derr := filter.DCT(data)
			if derr == nil {
				data = res.Pixels
			}
			err = derr
		default:
			return nil, &pdf.FilterError{Filter: full, Err: fmt.Errorf("unsupported inline image filter")}
		}
		if err != nil {
			return nil, &pdf.FilterError{Filter: full, Err: err}
		}
	}
	return data, nil
}

func firstOf(dict pdf.DictionaryObject, keys ...string) pdf.Object {
	for _, k := range keys {
		if v, ok := dict[k]; ok {
			return v
		}
	}
	return nil
}
