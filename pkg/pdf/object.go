package pdf

import "fmt"

// Object is the tagged union of every value a PDF object parser can
// produce: null, boolean, number, name, literal/hex string, array,
// dictionary, stream, indirect reference, or a bare keyword encountered
// outside of a known structural position (most commonly a content-stream
// operator).
type Object interface {
	// String returns a short textual form of the object: scalars, names,
	// keywords and references print their value and strings their raw
	// bytes, while arrays, dictionaries and streams print only "array",
	// "dict" or "stream". It is used for diagnostics and for
	// the handful of call sites (page-tree /Type checks, keyword
	// comparisons) that want a cheap textual form instead of a type
	// switch.
	String() string
	pdfObject()
}

// NullObject represents the PDF `null` keyword.
type NullObject struct{}

func (NullObject) String() string { return "null" }
func (NullObject) pdfObject()     {}

// BooleanObject represents `true`/`false`.
type BooleanObject bool

func (b BooleanObject) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (BooleanObject) pdfObject() {}

// NumberObject represents both PDF integers and reals; the distinction
// does not survive parsing, matching how every arithmetic consumer in
// this module treats them (widths, matrix entries, byte offsets).
type NumberObject float64

func (n NumberObject) String() string { return fmt.Sprintf("%v", float64(n)) }
func (NumberObject) pdfObject()       {}

// NameObject is an interned identifier, stored with its leading slash
// (e.g. "/Type") so it round-trips through String() and dictionary keys
// without a separate presentation step.
type NameObject string

func (n NameObject) String() string { return string(n) }
func (NameObject) pdfObject()       {}

// StringObject is a literal ( ... ) string: raw decoded bytes, escapes
// already resolved by the lexer.
type StringObject string

func (s StringObject) String() string { return string(s) }
func (StringObject) pdfObject()       {}

// HexStringObject is a < ... > string: raw decoded bytes.
type HexStringObject []byte

func (h HexStringObject) String() string { return string(h) }
func (HexStringObject) pdfObject()       {}

// KeywordObject is a bare identifier that is neither a recognised
// literal (true/false/null) nor a structural delimiter: "obj", "R",
// content-stream operators like "Tj", or an operator this module does
// not recognise.
type KeywordObject string

func (k KeywordObject) String() string { return string(k) }
func (KeywordObject) pdfObject()       {}

// ArrayObject is an ordered, heterogeneous sequence.
type ArrayObject []Object

func (a ArrayObject) String() string { return "array" }
func (ArrayObject) pdfObject()       {}

// DictionaryObject maps name keys (without the leading slash stripped)
// to values. Duplicate keys during parsing take the last value, per
// spec.
type DictionaryObject map[string]Object

func (DictionaryObject) String() string { return "dict" }
func (DictionaryObject) pdfObject()     {}

// StreamObject is a dictionary plus its (already filter-decoded, by the
// time a caller sees it through Reader) byte payload.
type StreamObject struct {
	Dictionary DictionaryObject
	Data       []byte
}

func (StreamObject) String() string { return "stream" }
func (StreamObject) pdfObject()     {}

// IndirectObject is an unresolved "N G R" reference.
type IndirectObject struct {
	ObjectNumber int
	Generation   int
}

func (r IndirectObject) String() string { return fmt.Sprintf("%d %d R", r.ObjectNumber, r.Generation) }
func (IndirectObject) pdfObject()       {}

// AsNumber resolves a Object known to be numeric, returning 0 for any
// other variant. It is the single place operator/operand coercion bugs
// would show up, so every numeric extraction in this module funnels
// through it instead of repeating the type switch.
func AsNumber(o Object) float64 {
	if n, ok := o.(NumberObject); ok {
		return float64(n)
	}
	return 0
}

// AsName returns the bare name (without the leading slash) and whether
// o was actually a NameObject.
func AsName(o Object) (string, bool) {
	n, ok := o.(NameObject)
	if !ok {
		return "", false
	}
	s := string(n)
	if len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s, true
}

// Bytes returns the raw byte payload of a literal or hex string object.
func Bytes(o Object) ([]byte, bool) {
	switch v := o.(type) {
	case StringObject:
		return []byte(v), true
	case HexStringObject:
		return []byte(v), true
	}
	return nil, false
}
