// Package cmap implements the PostScript-syntax CMap resource format
// used for both /Encoding in composite fonts and /ToUnicode: codespace
// ranges for splitting a string into character codes, cidchar/cidrange
// for code-to-CID mapping, bfchar/bfrange for code-to-Unicode mapping,
// and usecmap composition. Parsing reuses pkg/pdf's tokenizer, since a
// CMap's operator/operand syntax is the same lexical grammar as a
// content stream or object body.
package cmap

import (
	"fmt"
	"sort"
	"unicode/utf16"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// CodespaceRange is one byte-wise range a character code of a given
// width must fall within, position by position (not a simple numeric
// interval): e.g. <8140> to <FEFC> means the first byte must be in
// [0x81,0xFE] and the second in [0x40,0xFC].
type CodespaceRange struct {
	Low, High []byte
}

func (r CodespaceRange) numBytes() int { return len(r.Low) }

func (r CodespaceRange) matches(data []byte) bool {
	if len(data) < len(r.Low) {
		return false
	}
	for i := range r.Low {
		if data[i] < r.Low[i] || data[i] > r.High[i] {
			return false
		}
	}
	return true
}

type cidRange struct{ lo, hi, cid uint32 }

type bfRange struct {
	lo, hi uint32
	dst    []string // len==1 means "increment the last code unit of dst[0] by (code-lo)"; len>1 is a literal per-code array
}

// CMap is a parsed, fully composed (usecmap already merged) CMap.
type CMap struct {
	Name   string
	WMode  int // 0 = horizontal, 1 = vertical
	Ranges []CodespaceRange

	cidSingle map[uint32]uint32
	cidRanges []cidRange

	bfSingle map[uint32]string
	bfRanges []bfRange
}

func newCMap() *CMap {
	return &CMap{
		cidSingle: make(map[uint32]uint32),
		bfSingle:  make(map[uint32]string),
	}
}

// NextCode consumes the next character code from data using the
// codespace ranges, trying the longest width first, and returns the code
// value plus the number of bytes consumed. When no defined codespace
// range matches (malformed or absent ranges), it falls back to a single
// byte (an unmapped code) so the caller always makes forward progress.
func (c *CMap) NextCode(data []byte) (code uint32, n int) {
	if len(data) == 0 {
		return 0, 0
	}

	widths := make(map[int]bool)
	for _, r := range c.Ranges {
		widths[r.numBytes()] = true
	}
	sorted := make([]int, 0, len(widths))
	for w := range widths {
		sorted = append(sorted, w)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, w := range sorted {
		if len(data) < w {
			continue
		}
		for _, r := range c.Ranges {
			if r.numBytes() == w && r.matches(data) {
				return beVal(data[:w]), w
			}
		}
	}

	return uint32(data[0]), 1
}

func beVal(b []byte) uint32 {
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v
}

// ToCID maps a character code to a CID via cidchar then cidrange,
// returning ok=false if the code is not mapped (the caller should then
// use the code itself as the CID, per the Identity convention).
func (c *CMap) ToCID(code uint32) (uint32, bool) {
	if cid, ok := c.cidSingle[code]; ok {
		return cid, true
	}
	for _, r := range c.cidRanges {
		if code >= r.lo && code <= r.hi {
			return r.cid + (code - r.lo), true
		}
	}
	return 0, false
}

// ToUnicode maps a character code to its Unicode string via bfchar then
// bfrange.
func (c *CMap) ToUnicode(code uint32) (string, bool) {
	if s, ok := c.bfSingle[code]; ok {
		return s, true
	}
	for _, r := range c.bfRanges {
		if code < r.lo || code > r.hi {
			continue
		}
		offset := code - r.lo
		if len(r.dst) > 1 {
			if int(offset) < len(r.dst) {
				return r.dst[offset], true
			}
			return "", false
		}
		if len(r.dst) == 1 {
			return incrementLastRune(r.dst[0], offset), true
		}
	}
	return "", false
}

func incrementLastRune(s string, offset uint32) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[len(runes)-1] += rune(offset)
	return string(runes)
}

// Parse reads a CMap's PostScript-syntax body and returns the resulting
// CMap. usecmap references are resolved through load, which the caller
// supplies (typically backed by the predefined-CMap embed.FS plus the
// document's own named CMap resources).
func Parse(data []byte, load func(name string) (*CMap, error)) (*CMap, error) {
	lexer := pdf.NewLexerFromBytes(data)
	cm := newCMap()

	var pending []pdf.Object
	push := func(o pdf.Object) { pending = append(pending, o) }
	popName := func() (string, bool) {
		if len(pending) == 0 {
			return "", false
		}
		n, ok := pdf.AsName(pending[len(pending)-1])
		return n, ok
	}

	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			break
		}

		kw, isKeyword := obj.(pdf.KeywordObject)
		if !isKeyword {
			push(obj)
			continue
		}

		switch string(kw) {
		case "usecmap":
			name, ok := popName()
			if ok && load != nil {
				base, err := load(name)
				if err == nil {
					mergeUseCMap(cm, base)
				}
			}
			pending = nil

		case "begincodespacerange":
			err := parseCodespaceRanges(lexer, cm)
			pending = nil
			if err != nil {
				return nil, err
			}
		case "begincidchar":
			err := parseCIDChar(lexer, cm)
			pending = nil
			if err != nil {
				return nil, err
			}
		case "begincidrange":
			err := parseCIDRange(lexer, cm)
			pending = nil
			if err != nil {
				return nil, err
			}
		case "beginbfchar":
			err := parseBFChar(lexer, cm)
			pending = nil
			if err != nil {
				return nil, err
			}
		case "beginbfrange":
			err := parseBFRange(lexer, cm)
			pending = nil
			if err != nil {
				return nil, err
			}
		case "def":
			// "/WMode 1 def" and similar: the name and value were
			// already pushed; pick off the ones this module cares about.
			if len(pending) >= 2 {
				if name, ok := pdf.AsName(pending[len(pending)-2]); ok && name == "WMode" {
					cm.WMode = int(pdf.AsNumber(pending[len(pending)-1]))
				}
			}
			pending = nil
		default:
			pending = nil
		}
	}

	return cm, nil
}

func mergeUseCMap(dst, src *CMap) {
	dst.Ranges = append(dst.Ranges, src.Ranges...)
	for k, v := range src.cidSingle {
		dst.cidSingle[k] = v
	}
	dst.cidRanges = append(dst.cidRanges, src.cidRanges...)
	for k, v := range src.bfSingle {
		dst.bfSingle[k] = v
	}
	dst.bfRanges = append(dst.bfRanges, src.bfRanges...)
	if dst.WMode == 0 {
		dst.WMode = src.WMode
	}
}

func readHex(lexer *pdf.Lexer) ([]byte, bool) {
	obj, err := lexer.ReadObject()
	if err != nil {
		return nil, false
	}
	h, ok := obj.(pdf.HexStringObject)
	if !ok {
		return nil, false
	}
	return []byte(h), true
}

func parseCodespaceRanges(lexer *pdf.Lexer, cm *CMap) error {
	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: unterminated begincodespacerange: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok && string(kw) == "endcodespacerange" {
			return nil
		}
		lo, ok := obj.(pdf.HexStringObject)
		if !ok {
			continue
		}
		hi, ok := readHex(lexer)
		if !ok {
			return fmt.Errorf("cmap: malformed codespacerange entry")
		}
		cm.Ranges = append(cm.Ranges, CodespaceRange{Low: []byte(lo), High: hi})
	}
}

func parseCIDChar(lexer *pdf.Lexer, cm *CMap) error {
	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: unterminated begincidchar: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok && string(kw) == "endcidchar" {
			return nil
		}
		src, ok := obj.(pdf.HexStringObject)
		if !ok {
			continue
		}
		cidObj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: missing cid in cidchar: %w", err)
		}
		cm.cidSingle[beVal(src)] = uint32(pdf.AsNumber(cidObj))
	}
}

func parseCIDRange(lexer *pdf.Lexer, cm *CMap) error {
	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: unterminated begincidrange: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok && string(kw) == "endcidrange" {
			return nil
		}
		lo, ok := obj.(pdf.HexStringObject)
		if !ok {
			continue
		}
		hi, ok := readHex(lexer)
		if !ok {
			return fmt.Errorf("cmap: malformed cidrange")
		}
		cidObj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: missing cid in cidrange: %w", err)
		}
		cm.cidRanges = append(cm.cidRanges, cidRange{
			lo:  beVal(lo),
			hi:  beVal(hi),
			cid: uint32(pdf.AsNumber(cidObj)),
		})
	}
}

func parseBFChar(lexer *pdf.Lexer, cm *CMap) error {
	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: unterminated beginbfchar: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok && string(kw) == "endbfchar" {
			return nil
		}
		src, ok := obj.(pdf.HexStringObject)
		if !ok {
			continue
		}
		dstObj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: missing destination in bfchar: %w", err)
		}
		if dst, ok := dstObj.(pdf.HexStringObject); ok {
			cm.bfSingle[beVal(src)] = utf16BEToString(dst)
		}
	}
}

func parseBFRange(lexer *pdf.Lexer, cm *CMap) error {
	for {
		obj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: unterminated beginbfrange: %w", err)
		}
		if kw, ok := obj.(pdf.KeywordObject); ok && string(kw) == "endbfrange" {
			return nil
		}
		lo, ok := obj.(pdf.HexStringObject)
		if !ok {
			continue
		}
		hi, ok := readHex(lexer)
		if !ok {
			return fmt.Errorf("cmap: malformed bfrange")
		}
		dstObj, err := lexer.ReadObject()
		if err != nil {
			return fmt.Errorf("cmap: missing destination in bfrange: %w", err)
		}

		switch dst := dstObj.(type) {
		case pdf.HexStringObject:
			cm.bfRanges = append(cm.bfRanges, bfRange{
				lo: beVal(lo), hi: beVal(hi),
				dst: []string{utf16BEToString(dst)},
			})
		case pdf.ArrayObject:
			var list []string
			for _, item := range dst {
				if h, ok := item.(pdf.HexStringObject); ok {
					list = append(list, utf16BEToString(h))
				}
			}
			cm.bfRanges = append(cm.bfRanges, bfRange{lo: beVal(lo), hi: beVal(hi), dst: list})
		}
	}
}

// utf16BEToString decodes a ToUnicode destination hex string as
// UTF-16BE, the encoding every /ToUnicode CMap uses regardless of the
// source encoding of the characters it maps.
func utf16BEToString(b []byte) string {
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(units))
}
