package pdf

import "fmt"

// The error taxonomy below mirrors the recoverability rules of the
// interpreter: Io and WrongPassword are fatal at open; ParseObject, Xref,
// Filter, Image, Font and Character are recoverable at a stream boundary
// (the current stream aborts, the caller may proceed with the next
// page); Interpreter/Path/Color/Pattern/Function are recoverable
// per-operator and never leave pkg/content.

// ParseObjectError reports a malformed object body: unterminated string,
// unbalanced bracket, unexpected EOF, or a delimiter mismatch.
type ParseObjectError struct {
	Offset int64
	Err    error
}

func (e *ParseObjectError) Error() string {
	return fmt.Sprintf("parse object at offset %d: %v", e.Offset, e.Err)
}
func (e *ParseObjectError) Unwrap() error { return e.Err }

// XrefError reports a missing startxref, missing trailer, cyclic Prev
// chain, dangling reference, or a generation mismatch.
type XrefError struct {
	Err error
}

func (e *XrefError) Error() string { return fmt.Sprintf("xref: %v", e.Err) }
func (e *XrefError) Unwrap() error { return e.Err }

// WrongPasswordError is returned when a document is encrypted and the
// supplied password (including the default empty one) fails the
// password checks: the user-password check, plus the owner-password
// check for revisions 5 and 6.
type WrongPasswordError struct{}

func (*WrongPasswordError) Error() string { return "pdf: incorrect password" }

// FilterError reports a failure decoding a stream through its declared
// filter chain.
type FilterError struct {
	Filter string
	Err    error
}

func (e *FilterError) Error() string { return fmt.Sprintf("filter %s: %v", e.Filter, e.Err) }
func (e *FilterError) Unwrap() error { return e.Err }

func wrapXref(err error) error {
	if err == nil {
		return nil
	}
	return &XrefError{Err: err}
}

// ImageError reports a failure decoding an image XObject's sample data:
// an unsupported bit depth/colour-space combination, a truncated sample
// stream, or a malformed /Decode or /Mask entry.
type ImageError struct {
	Err error
}

func (e *ImageError) Error() string { return fmt.Sprintf("image: %v", e.Err) }
func (e *ImageError) Unwrap() error { return e.Err }

// FontError reports a failure loading a font dictionary: a missing
// descendant CIDFont, an unparsable embedded font program, or a
// /Differences or /Encoding entry of the wrong object type.
type FontError struct {
	BaseFont string
	Err      error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("font %s: %v", e.BaseFont, e.Err)
}
func (e *FontError) Unwrap() error { return e.Err }

// CharacterError reports a single character code the active font or
// CMap cannot resolve to a glyph or width; recoverable at the character
// level, never aborts the containing text-showing operator.
type CharacterError struct {
	Code uint32
	Err  error
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("character code %d: %v", e.Code, e.Err)
}
func (e *CharacterError) Unwrap() error { return e.Err }

// InterpreterError reports a content-stream operator that could not be
// executed with the operands it was given; recoverable per-operator,
// the interpreter logs and continues.
type InterpreterError struct {
	Operator string
	Err      error
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("operator %s: %v", e.Operator, e.Err)
}
func (e *InterpreterError) Unwrap() error { return e.Err }

// PathError reports a malformed path-construction sequence: a painting
// operator reached with no current point, or a curve operator missing
// control points.
type PathError struct {
	Err error
}

func (e *PathError) Error() string { return fmt.Sprintf("path: %v", e.Err) }
func (e *PathError) Unwrap() error { return e.Err }

// ColorError reports a colour operator given the wrong number of
// components for the current colour space, or an unknown colour-space
// resource name.
type ColorError struct {
	Err error
}

func (e *ColorError) Error() string { return fmt.Sprintf("color: %v", e.Err) }
func (e *ColorError) Unwrap() error { return e.Err }

// PatternError reports a /Pattern colour space or `scn`/`SCN` reference
// to a pattern resource that could not be resolved.
type PatternError struct {
	Name string
	Err  error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %s: %v", e.Name, e.Err)
}
func (e *PatternError) Unwrap() error { return e.Err }

// FunctionError reports a PDF function object (Type 0/2/3/4) whose
// definition could not be parsed into the shape an Evaluator consumes.
type FunctionError struct {
	Err error
}

func (e *FunctionError) Error() string { return fmt.Sprintf("function: %v", e.Err) }
func (e *FunctionError) Unwrap() error { return e.Err }
