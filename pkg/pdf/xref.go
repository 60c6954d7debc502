package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AOShei/go-fast-pdf/pkg/filter"
)

// XRefEntry is one cross-reference table row: either free, in use at a
// byte offset, or living inside a compressed object stream.
type XRefEntry struct {
	Offset     int64
	Generation int
	Free       bool
	Compressed bool
	StreamObj  int
	StreamIdx  int
}

// XRefTable is the fully-resolved cross-reference table after walking
// the entire /Prev chain, plus the merged trailer dictionary (first
// trailer in the chain wins for any given key, matching how a document's
// most recent update takes precedence).
type XRefTable struct {
	Entries map[int]XRefEntry
	Trailer DictionaryObject
}

func NewXRefTable() *XRefTable {
	return &XRefTable{
		Entries: make(map[int]XRefEntry),
		Trailer: make(DictionaryObject),
	}
}

// ParseXRef walks the startxref -> xref/xref-stream -> /Prev chain,
// merging every trailer encountered. An offset reached a second time (a
// cyclic /Prev chain) is an XrefError.
func ParseXRef(rs io.ReadSeeker) (*XRefTable, error) {
	table := NewXRefTable()
	nextOffset, err := findStartXRef(rs)
	if err != nil {
		return nil, wrapXref(fmt.Errorf("locating startxref: %w", err))
	}

	visited := make(map[int64]bool)

	for nextOffset != 0 {
		if visited[nextOffset] {
			return nil, wrapXref(fmt.Errorf("cyclic /Prev chain at offset %d", nextOffset))
		}
		visited[nextOffset] = true

		if _, err := rs.Seek(nextOffset, io.SeekStart); err != nil {
			return nil, wrapXref(fmt.Errorf("seeking to xref at %d: %w", nextOffset, err))
		}

		sig := make([]byte, 5)
		n, err := rs.Read(sig)
		if err != nil && err != io.EOF {
			return nil, wrapXref(fmt.Errorf("reading xref signature: %w", err))
		}
		if n < 4 {
			return nil, wrapXref(fmt.Errorf("xref signature too short: got %d bytes", n))
		}

		if _, err := rs.Seek(nextOffset, io.SeekStart); err != nil {
			return nil, wrapXref(fmt.Errorf("seeking back to xref: %w", err))
		}

		var prevOffset int64
		var tr DictionaryObject

		if string(sig[:4]) == "xref" {
			prevOffset, tr, err = table.readStandardXRef(rs)
			if err != nil {
				return nil, wrapXref(fmt.Errorf("reading classic xref table: %w", err))
			}
		} else {
			prevOffset, tr, err = table.readXRefStream(rs)
			if err != nil {
				return nil, wrapXref(fmt.Errorf("reading xref stream: %w", err))
			}
		}

		for k, v := range tr {
			if _, exists := table.Trailer[k]; !exists {
				table.Trailer[k] = v
			}
		}
		nextOffset = prevOffset
	}

	if _, ok := table.Trailer["/Root"]; !ok {
		return nil, wrapXref(errors.New("missing /Root in trailer"))
	}

	return table, nil
}

func findStartXRef(rs io.ReadSeeker) (int64, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	readSize := int64(1024)
	if size < readSize {
		readSize = size
	}
	rs.Seek(-readSize, io.SeekEnd)

	buf := make([]byte, readSize)
	io.ReadFull(rs, buf)

	idx := bytes.LastIndex(buf, []byte("startxref"))
	if idx == -1 {
		return 0, errors.New("startxref not found")
	}

	content := strings.TrimSpace(string(buf[idx+9:]))
	end := 0
	for end < len(content) && content[end] >= '0' && content[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, errors.New("startxref has no offset")
	}
	return strconv.ParseInt(content[:end], 10, 64)
}

func (t *XRefTable) readStandardXRef(rs io.ReadSeeker) (int64, DictionaryObject, error) {
	var buf [4]byte
	rs.Read(buf[:]) // consumes "xref"

	lexer := NewLexer(rs)
	entries := make(map[int]XRefEntry)

	for {
		lexer.skipWhitespace()
		b, err := lexer.reader.Peek(7)
		if err == nil && len(b) >= 7 && string(b[:7]) == "trailer" {
			lexer.reader.Discard(7)
			break
		}
		if (err == io.EOF || len(b) < 7) && len(b) > 0 && strings.HasPrefix(string(b), "trailer") {
			lexer.reader.Discard(len("trailer"))
			break
		}

		startObj, err := lexer.ReadObject()
		if err != nil {
			return 0, nil, fmt.Errorf("reading subsection start: %w", err)
		}
		countObj, err := lexer.ReadObject()
		if err != nil {
			return 0, nil, fmt.Errorf("reading subsection count: %w", err)
		}
		startNum, ok1 := startObj.(NumberObject)
		countNum, ok2 := countObj.(NumberObject)
		if !ok1 || !ok2 {
			return 0, nil, errors.New("malformed xref subsection header: expected two integers")
		}

		start := int(startNum)
		count := int(countNum)
		lexer.skipWhitespace()

		// Each entry is a fixed 20-byte line; read directly from the
		// lexer's buffered reader, not rs, since the lexer may already
		// hold buffered bytes past the subsection header.
		lineBuf := make([]byte, 20)
		for i := 0; i < count; i++ {
			if _, err := io.ReadFull(lexer.reader, lineBuf); err != nil {
				return 0, nil, fmt.Errorf("reading xref entry %d: %w", start+i, err)
			}
			offset, _ := strconv.ParseInt(string(lineBuf[:10]), 10, 64)
			gen, _ := strconv.ParseInt(string(lineBuf[11:16]), 10, 64)
			flag := lineBuf[17]

			id := start + i
			if _, exists := entries[id]; !exists {
				entries[id] = XRefEntry{
					Offset:     offset,
					Generation: int(gen),
					Free:       flag == 'f',
				}
			}
		}
	}

	rebaseNumberedFromOne(entries)
	for id, e := range entries {
		if _, exists := t.Entries[id]; !exists {
			t.Entries[id] = e
		}
	}

	obj, err := lexer.ReadObject()
	if err != nil {
		return 0, nil, fmt.Errorf("reading trailer: %w", err)
	}
	tr, ok := obj.(DictionaryObject)
	if !ok {
		return 0, nil, errors.New("expected trailer dictionary")
	}

	var prev int64
	if p, ok := tr["/Prev"].(NumberObject); ok {
		prev = int64(p)
	}
	return prev, tr, nil
}

// rebaseNumberedFromOne detects a known broken xref variant: a producer
// numbers its subsection starting at object 1 instead of 0, with object
// 1 carrying the free-list head that rightfully belongs at object 0
// (Free, Generation 65535). When seen, every entry is shifted down by
// one object number so object 0 becomes the free head again.
func rebaseNumberedFromOne(entries map[int]XRefEntry) {
	if _, hasZero := entries[0]; hasZero {
		return
	}
	head, ok := entries[1]
	if !ok || !head.Free || head.Generation != 65535 {
		return
	}

	shifted := make(map[int]XRefEntry, len(entries))
	for id, e := range entries {
		shifted[id-1] = e
	}
	for id := range entries {
		delete(entries, id)
	}
	for id, e := range shifted {
		entries[id] = e
	}
}

func (t *XRefTable) readXRefStream(rs io.ReadSeeker) (int64, DictionaryObject, error) {
	lexer := NewLexer(rs)

	if _, err := lexer.ReadObject(); err != nil { // object number
		return 0, nil, fmt.Errorf("reading xref stream object number: %w", err)
	}
	if _, err := lexer.ReadObject(); err != nil { // generation number
		return 0, nil, fmt.Errorf("reading xref stream generation number: %w", err)
	}
	if _, err := lexer.ReadObject(); err != nil { // "obj" keyword
		return 0, nil, fmt.Errorf("reading xref stream 'obj' keyword: %w", err)
	}

	obj, err := lexer.ReadObject()
	if err != nil {
		return 0, nil, fmt.Errorf("reading xref stream dictionary: %w", err)
	}
	streamDict, ok := obj.(DictionaryObject)
	if !ok {
		return 0, nil, fmt.Errorf("expected dictionary for xref stream, got %T", obj)
	}

	typeObj, hasType := streamDict["/Type"]
	if !hasType || typeObj.String() != "/XRef" {
		return 0, nil, fmt.Errorf("object is not an XRef stream")
	}

	lengthObj, ok := streamDict["/Length"].(NumberObject)
	if !ok {
		return 0, nil, errors.New("XRef stream missing /Length")
	}

	wArr, ok := streamDict["/W"].(ArrayObject)
	if !ok || len(wArr) != 3 {
		return 0, nil, errors.New("invalid /W array")
	}
	w := []int{int(AsNumber(wArr[0])), int(AsNumber(wArr[1])), int(AsNumber(wArr[2]))}
	stride := w[0] + w[1] + w[2]

	var index []int
	if idxObj, ok := streamDict["/Index"].(ArrayObject); ok {
		for _, v := range idxObj {
			index = append(index, int(AsNumber(v)))
		}
	} else if sizeObj, ok := streamDict["/Size"].(NumberObject); ok {
		index = []int{0, int(sizeObj)}
	}

	lexer.skipWhitespace()
	peek, _ := lexer.reader.Peek(6)
	if string(peek) == "stream" {
		lexer.reader.Discard(6)
	}
	lexer.skipWhitespace()

	compressedData := make([]byte, int64(lengthObj))
	if _, err := io.ReadFull(lexer.reader, compressedData); err != nil {
		return 0, nil, fmt.Errorf("reading compressed xref stream data: %w", err)
	}

	decoded, err := filter.Flate(compressedData)
	if err != nil {
		return 0, nil, &FilterError{Filter: "FlateDecode", Err: err}
	}

	predictor, columns := 1, 1
	if params, ok := streamDict["/DecodeParms"].(DictionaryObject); ok {
		if p, ok := params["/Predictor"].(NumberObject); ok {
			predictor = int(p)
		}
		if c, ok := params["/Columns"].(NumberObject); ok {
			columns = int(c)
		}
	}
	if predictor >= 10 {
		// The /Columns parameter defaults to the sum of the /W widths
		// for xref streams when not specified explicitly.
		if columns <= 1 && stride > 1 {
			columns = stride
		}
		decoded, err = filter.ApplyPredictor(decoded, predictor, 1, 8, columns)
		if err != nil {
			return 0, nil, &FilterError{Filter: "FlateDecode", Err: err}
		}
	}

	reader := bytes.NewReader(decoded)
	for i := 0; i < len(index); i += 2 {
		start := index[i]
		count := index[i+1]

		for j := 0; j < count; j++ {
			f1 := readField(reader, w[0], 1) // default type is "in use" when /W[0] is 0
			f2 := readField(reader, w[1], 0)
			f3 := readField(reader, w[2], 0)

			id := start + j
			if _, exists := t.Entries[id]; exists {
				continue
			}
			switch f1 {
			case 1:
				t.Entries[id] = XRefEntry{Offset: f2, Generation: int(f3)}
			case 2:
				t.Entries[id] = XRefEntry{Compressed: true, StreamObj: int(f2), StreamIdx: int(f3)}
			case 0:
				t.Entries[id] = XRefEntry{Free: true, Generation: int(f3)}
			}
		}
	}

	var prev int64
	if p, ok := streamDict["/Prev"].(NumberObject); ok {
		prev = int64(p)
	}
	return prev, streamDict, nil
}

// readField reads width bytes as a big-endian integer, returning
// defaultValue when width is 0 (per the /W spec: a zero-width field
// means "not present, use the type-specific default").
func readField(r io.Reader, width int, defaultValue int64) int64 {
	if width == 0 {
		return defaultValue
	}
	buf := make([]byte, width)
	io.ReadFull(r, buf)

	var res int64
	for _, b := range buf {
		res = (res << 8) | int64(b)
	}
	return res
}
