package filter

import "fmt"

const (
	lzwClearCode = 256
	lzwEODCode   = 257
	lzwFirstCode = 258
	lzwMaxBits   = 12
)

// bitReader pulls MSB-first variable-width codes out of a byte slice, the
// packing PDF (and TIFF) LZW streams use — the opposite bit order from
// compress/lzw's GIF mode, which is why this filter is hand-rolled rather
// than adapted from the standard library.
type bitReader struct {
	data []byte
	pos  int // bit position
}

func (r *bitReader) readCode(width int) (int, bool) {
	if r.pos+width > len(r.data)*8 {
		return 0, false
	}
	code := 0
	for i := 0; i < width; i++ {
		byteIdx := r.pos / 8
		bitIdx := 7 - uint(r.pos%8)
		bit := (r.data[byteIdx] >> bitIdx) & 1
		code = (code << 1) | int(bit)
		r.pos++
	}
	return code, true
}

// LZW inverts LZWDecode. earlyChange matches the stream's /EarlyChange
// entry (default true, i.e. 1): when set, the code width grows one code
// early, the table-full-at-width quirk every PDF LZW writer relies on.
func LZW(data []byte, earlyChange bool) ([]byte, error) {
	type entry struct {
		prefix int // index into table, -1 for none
		suffix byte
	}

	// Indices 0-255 are single-byte literals; 256 (clear) and 257 (EOD)
	// are reserved and never looked up through emit.
	table := make([]entry, lzwFirstCode, 1<<lzwMaxBits)
	for i := 0; i < 256; i++ {
		table[i] = entry{prefix: -1, suffix: byte(i)}
	}

	br := &bitReader{data: data}
	var out []byte
	codeWidth := 9
	var prevCode int = -1

	emit := func(code int) []byte {
		var buf []byte
		for code != -1 {
			e := table[code]
			buf = append(buf, e.suffix)
			code = e.prefix
		}
		// reverse
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
		return buf
	}

	reset := func() {
		table = table[:lzwFirstCode]
		codeWidth = 9
		prevCode = -1
	}

	for {
		code, ok := br.readCode(codeWidth)
		if !ok {
			break
		}
		if code == lzwClearCode {
			reset()
			continue
		}
		if code == lzwEODCode {
			break
		}

		var entryBytes []byte
		switch {
		case code < len(table):
			entryBytes = emit(code)
		case code == len(table) && prevCode != -1:
			prevBytes := emit(prevCode)
			entryBytes = append(append([]byte{}, prevBytes...), prevBytes[0])
		default:
			return nil, fmt.Errorf("filter: lzw invalid code %d", code)
		}

		out = append(out, entryBytes...)

		if prevCode != -1 && len(table) < (1<<lzwMaxBits) {
			table = append(table, entry{prefix: prevCode, suffix: entryBytes[0]})
		}

		threshold := len(table)
		if earlyChange {
			threshold++
		}
		switch {
		case threshold >= 2048 && codeWidth < 12:
			codeWidth = 12
		case threshold >= 1024 && codeWidth < 11:
			codeWidth = 11
		case threshold >= 512 && codeWidth < 10:
			codeWidth = 10
		}

		prevCode = code
	}

	return out, nil
}
