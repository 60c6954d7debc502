package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AOShei/go-fast-pdf/pkg/filter"
	"github.com/AOShei/go-fast-pdf/pkg/security"
)

// Reader is the high-level entry point for reading a PDF: object
// resolution, stream decoding, decryption and page-tree navigation all
// go through it. It owns exactly one underlying file handle, which is
// why the concurrent loader gives each worker its own Reader rather
// than sharing one across goroutines.
type Reader struct {
	rs        io.ReadSeeker
	xref      *XRefTable
	security  *security.Handler
	pages     *PageTree
	cache     map[int]Object // resolved-object cache, keyed by object number
	log       *slog.Logger
	noDecrypt bool // true only while parsing /Encrypt itself, before security exists
}

// Options configures how a document is opened.
type Options struct {
	Password string
	Logger   *slog.Logger
}

// NewReader opens rs as a PDF, parsing its cross-reference table and, if
// present, validating the encryption dictionary against opts.Password
// (the empty string is a legitimate password and is tried whenever the
// caller doesn't have a real one).
func NewReader(rs io.ReadSeeker, opts Options) (*Reader, error) {
	xref, err := ParseXRef(rs)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reader := &Reader{
		rs:    rs,
		xref:  xref,
		cache: make(map[int]Object),
		log:   logger,
	}

	if encRef, exists := xref.Trailer["/Encrypt"]; exists {
		encObj := reader.resolveUnencrypted(encRef)
		encDict, ok := encObj.(DictionaryObject)
		if !ok {
			return nil, &WrongPasswordError{}
		}

		var fileID []byte
		if idArray, ok := xref.Trailer["/ID"].(ArrayObject); ok && len(idArray) > 0 {
			if b, ok := Bytes(idArray[0]); ok {
				fileID = b
			}
		}

		params, err := parseEncryptParams(encDict, reader.resolveUnencrypted, fileID)
		if err != nil {
			return nil, fmt.Errorf("parsing /Encrypt: %w", err)
		}

		handler, err := security.Open(params, opts.Password)
		if err != nil {
			if errors.Is(err, security.ErrWrongPassword) {
				return nil, &WrongPasswordError{}
			}
			return nil, err
		}
		reader.security = handler
	}

	catalog, ok := reader.Resolve(xref.Trailer["/Root"]).(DictionaryObject)
	if !ok {
		return nil, wrapXref(errors.New("trailer /Root does not resolve to a dictionary"))
	}
	tree, err := BuildPageTree(catalog, reader.Resolve)
	if err != nil {
		return nil, wrapXref(fmt.Errorf("building page tree: %w", err))
	}
	reader.pages = tree

	return reader, nil
}

// GetObject resolves an indirect reference to its object, decrypting
// and decoding streams as needed. Free entries resolve to NullObject. An
// object number with no xref entry, or an object header whose numbers
// differ from the reference, is an XrefError.
func (r *Reader) GetObject(ref IndirectObject) (Object, error) {
	if !r.noDecrypt {
		if cached, ok := r.cache[ref.ObjectNumber]; ok {
			return cached, nil
		}
	}

	entry, ok := r.xref.Entries[ref.ObjectNumber]
	if !ok {
		return nil, wrapXref(fmt.Errorf("object %d has no xref entry", ref.ObjectNumber))
	}
	if entry.Free {
		return NullObject{}, nil
	}
	if entry.Compressed {
		obj, err := r.getCompressedObject(entry.StreamObj, entry.StreamIdx)
		if err != nil {
			return nil, err
		}
		if !r.noDecrypt {
			r.cache[ref.ObjectNumber] = obj
		}
		return obj, nil
	}

	if _, err := r.rs.Seek(entry.Offset, io.SeekStart); err != nil {
		return nil, &ParseObjectError{Offset: entry.Offset, Err: err}
	}
	lexer := NewLexer(r.rs)

	numObj, _ := lexer.ReadObject() // object number
	genObj, _ := lexer.ReadObject() // generation number
	lexer.ReadObject()              // "obj" keyword
	if int(AsNumber(numObj)) != ref.ObjectNumber || int(AsNumber(genObj)) != ref.Generation {
		return nil, wrapXref(fmt.Errorf("object header %v %v does not match reference %d %d", numObj, genObj, ref.ObjectNumber, ref.Generation))
	}

	obj, err := lexer.ReadObject()
	if err != nil {
		return nil, err
	}

	if dict, ok := obj.(DictionaryObject); ok {
		lexer.skipWhitespace()
		peek, _ := lexer.reader.Peek(6)
		if string(peek) == "stream" {
			stream, err := r.readStream(dict, lexer, ref.ObjectNumber, ref.Generation)
			if err != nil {
				return nil, err
			}
			if !r.noDecrypt {
				r.cache[ref.ObjectNumber] = stream
			}
			return stream, nil
		}
	}

	if r.security != nil && !r.noDecrypt {
		obj = r.decryptObject(obj, ref.ObjectNumber, ref.Generation)
	}
	if !r.noDecrypt {
		r.cache[ref.ObjectNumber] = obj
	}
	return obj, nil
}

// readStream reads a stream's raw bytes, decrypts them, then applies
// every filter named in /Filter left to right with its matching
// /DecodeParms entry. A filter failure aborts the stream with that error.
func (r *Reader) readStream(dict DictionaryObject, lexer *Lexer, objNum, genNum int) (StreamObject, error) {
	lengthObj := r.Resolve(dict["/Length"])
	n, ok := lengthObj.(NumberObject)
	if !ok {
		return StreamObject{}, &ParseObjectError{Offset: lexer.Pos(), Err: errors.New("stream /Length missing or invalid")}
	}
	length := int64(n)

	lexer.reader.Discard(6) // "stream"

	b, err := lexer.reader.ReadByte()
	if err != nil {
		return StreamObject{}, err
	}
	switch b {
	case '\r':
		if next, _ := lexer.reader.Peek(1); len(next) > 0 && next[0] == '\n' {
			lexer.reader.ReadByte()
		}
	case '\n':
	default:
		lexer.reader.UnreadByte()
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(lexer.reader, data); err != nil {
		return StreamObject{}, &ParseObjectError{Offset: lexer.Pos(), Err: fmt.Errorf("reading stream body: %w", err)}
	}

	if r.security != nil && !r.noDecrypt {
		if decrypted, err := r.security.DecryptStream(data, objNum, genNum); err == nil {
			data = decrypted
		} else {
			r.log.Warn("stream decryption failed", "object", objNum, "err", err)
		}
	}

	names, parms := r.filterChain(dict)
	for i, name := range names {
		decoded, err := r.applyFilter(name, data, parms[i])
		if err != nil {
			r.log.Warn("stream filter failed", "filter", name, "object", objNum, "err", err)
			return StreamObject{}, err
		}
		data = decoded
	}

	return StreamObject{Dictionary: dict, Data: data}, nil
}

func (r *Reader) filterChain(dict DictionaryObject) (names []string, parms []DictionaryObject) {
	filterObj := r.Resolve(dict["/Filter"])
	parmsObj := r.Resolve(dict["/DecodeParms"])

	switch f := filterObj.(type) {
	case NameObject:
		names = []string{string(f)}
		if p, ok := parmsObj.(DictionaryObject); ok {
			parms = []DictionaryObject{p}
		} else {
			parms = []DictionaryObject{nil}
		}
	case ArrayObject:
		for _, fo := range f {
			name, _ := AsName(fo)
			names = append(names, "/"+name)
		}
		if arr, ok := parmsObj.(ArrayObject); ok {
			for _, po := range arr {
				p, _ := r.Resolve(po).(DictionaryObject)
				parms = append(parms, p)
			}
		}
		for len(parms) < len(names) {
			parms = append(parms, nil)
		}
	}
	return names, parms
}

func (r *Reader) applyFilter(name string, data []byte, parms DictionaryObject) ([]byte, error) {
	intParm := func(key string, def int) int {
		if parms == nil {
			return def
		}
		if n, ok := r.Resolve(parms[key]).(NumberObject); ok {
			return int(n)
		}
		return def
	}
	boolParm := func(key string, def bool) bool {
		if parms == nil {
			return def
		}
		if b, ok := r.Resolve(parms[key]).(BooleanObject); ok {
			return bool(b)
		}
		return def
	}

	switch name {
	case "/FlateDecode", "/Fl":
		out, err := filter.Flate(data)
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return filter.ApplyPredictor(out, intParm("/Predictor", 1), intParm("/Colors", 1), intParm("/BitsPerComponent", 8), intParm("/Columns", 1))
	case "/LZWDecode", "/LZW":
		out, err := filter.LZW(data, intParm("/EarlyChange", 1) != 0)
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return filter.ApplyPredictor(out, intParm("/Predictor", 1), intParm("/Colors", 1), intParm("/BitsPerComponent", 8), intParm("/Columns", 1))
	case "/ASCII85Decode", "/A85":
		out, err := filter.ASCII85(data)
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return out, nil
	case "/ASCIIHexDecode", "/AHx":
		out, err := filter.ASCIIHex(data)
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return out, nil
	case "/RunLengthDecode", "/RL":
		out, err := filter.RunLength(data)
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return out, nil
	case "/CCITTFaxDecode", "/CCF":
		out, err := filter.CCITTFax(data, filter.CCITTParams{
			Columns:          intParm("/Columns", 1728),
			Rows:             intParm("/Rows", 0),
			K:                intParm("/K", 0),
			BlackIs1:         boolParm("/BlackIs1", false),
			EncodedByteAlign: boolParm("/EncodedByteAlign", false),
		})
		if err != nil {
			return nil, &FilterError{Filter: name, Err: err}
		}
		return out, nil
	case "/DCTDecode", "/DCT":
		// DCTDecode payloads are left compressed: pkg/content decodes
		// them via filter.DCT before handing the samples to pkg/pdfimage,
		// which then applies the stream's own /Decode array and colour
		// space rather than trusting the JPEG's internal one.
		return data, nil
	case "/Crypt":
		return data, nil // already handled above, by object-level decryption
	default:
		return data, nil
	}
}

// NumPages returns the total leaf-page count.
func (r *Reader) NumPages() int {
	if r.pages == nil {
		return 0
	}
	return len(r.pages.Pages)
}

// GetPage returns the Nth leaf page node (0-indexed).
func (r *Reader) GetPage(pageIndex int) (*PageNode, error) {
	if r.pages == nil || pageIndex < 0 || pageIndex >= len(r.pages.Pages) {
		return nil, fmt.Errorf("page index %d out of range", pageIndex)
	}
	return r.pages.Pages[pageIndex], nil
}

func (r *Reader) getCompressedObject(streamObjNum int, index int) (Object, error) {
	objStream, err := r.GetObject(IndirectObject{ObjectNumber: streamObjNum})
	if err != nil {
		return nil, err
	}
	stm, ok := objStream.(StreamObject)
	if !ok {
		return nil, errors.New("referenced object stream is not a stream")
	}

	n := int(AsNumber(r.Resolve(stm.Dictionary["/N"])))
	first := int(AsNumber(r.Resolve(stm.Dictionary["/First"])))

	stmReader := bytes.NewReader(stm.Data)
	stmLexer := NewLexer(stmReader)

	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		if _, err := stmLexer.ReadObject(); err != nil {
			return nil, fmt.Errorf("reading object-stream header entry %d: %w", i, err)
		}
		offsetObj, err := stmLexer.ReadObject()
		if err != nil {
			return nil, fmt.Errorf("reading object-stream offset %d: %w", i, err)
		}
		offsets[i] = int(AsNumber(offsetObj))
	}

	if index < 0 || index >= n {
		return nil, fmt.Errorf("object index %d out of bounds [0, %d)", index, n)
	}

	stmReader.Seek(int64(first+offsets[index]), io.SeekStart)
	return NewLexer(stmReader).ReadObject()
}

// Resolve follows an indirect reference, returning the object itself
// unchanged for every other variant. A reference to a missing or
// unreadable object resolves to NullObject rather than propagating an
// error, matching how the rest of this module treats "the value wasn't
// there" throughout dictionary lookups.
func (r *Reader) Resolve(obj Object) Object {
	ref, ok := obj.(IndirectObject)
	if !ok {
		return obj
	}
	res, err := r.GetObject(ref)
	if err != nil {
		r.log.Warn("failed to resolve object", "ref", ref.String(), "err", err)
		return NullObject{}
	}
	return res
}

// resolveUnencrypted is used only while opening the encryption
// dictionary itself, before r.security exists: /Encrypt, /ID and
// everything they point to are never encrypted, and must not be cached
// since a concurrent cache entry would freeze out the real, decrypted
// value the rest of the document needs.
func (r *Reader) resolveUnencrypted(obj Object) Object {
	r.noDecrypt = true
	defer func() { r.noDecrypt = false }()
	return r.Resolve(obj)
}

func (r *Reader) GetInfo() (DictionaryObject, error) {
	if infoRef, ok := r.xref.Trailer["/Info"]; ok {
		if dict, ok := r.Resolve(infoRef).(DictionaryObject); ok {
			return dict, nil
		}
	}
	return nil, nil
}

// IsEncrypted reports whether the trailer carries an /Encrypt entry.
func (r *Reader) IsEncrypted() bool {
	_, exists := r.xref.Trailer["/Encrypt"]
	return exists
}

var metadataKeys = map[string]bool{
	"/Type": true, "/Subtype": true, "/Length": true, "/Filter": true,
	"/DecodeParms": true, "/Width": true, "/Height": true,
	"/BitsPerComponent": true, "/ColorSpace": true, "/Encrypt": true,
	"/ID": true, "/Size": true, "/Root": true, "/Info": true,
	"/Prev": true, "/Index": true, "/W": true, "/First": true, "/N": true,
}

func isMetadataKey(key string) bool { return metadataKeys[key] }

// decryptObject recursively decrypts string values inside a non-stream
// indirect object (dictionaries and arrays of strings), skipping the
// handful of keys the spec says are never encrypted.
func (r *Reader) decryptObject(obj Object, objNum, genNum int) Object {
	switch v := obj.(type) {
	case StringObject:
		if decrypted, err := r.security.DecryptString([]byte(v), objNum, genNum); err == nil {
			return StringObject(decrypted)
		}
		return v
	case HexStringObject:
		if decrypted, err := r.security.DecryptString([]byte(v), objNum, genNum); err == nil {
			return HexStringObject(decrypted)
		}
		return v
	case ArrayObject:
		for i, elem := range v {
			v[i] = r.decryptObject(elem, objNum, genNum)
		}
		return v
	case DictionaryObject:
		for key, val := range v {
			if !isMetadataKey(key) {
				v[key] = r.decryptObject(val, objNum, genNum)
			}
		}
		return v
	default:
		return obj
	}
}
