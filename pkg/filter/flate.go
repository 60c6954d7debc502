package filter

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Flate inverts FlateDecode: zlib-wrapped DEFLATE, as written by every
// PDF producer in practice (raw DEFLATE without the zlib header is not
// a conforming FlateDecode stream and is not accepted).
func Flate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("flate: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("flate: %w", err)
	}
	// A truncated final stream (common in hand-edited test fixtures and
	// a handful of real producers that miscount /Length) still yields
	// usable output up to the point of failure.
	return out, nil
}
