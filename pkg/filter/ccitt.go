package filter

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTParams mirrors the subset of a CCITTFaxDecode stream's
// /DecodeParms this module acts on; /EndOfLine, /EndOfBlock and
// /DamagedRowsBeforeError are accepted by golang.org/x/image/ccitt only
// through its Options, so unsupported combinations fall back to its
// defaults rather than erroring.
type CCITTParams struct {
	Columns          int
	Rows             int
	K                int
	BlackIs1         bool
	EncodedByteAlign bool
}

// CCITTFax inverts CCITTFaxDecode, producing one packed bit per pixel
// (MSB first), matching the unfiltered bit layout of a 1-bpc DeviceGray
// image stream.
func CCITTFax(data []byte, p CCITTParams) ([]byte, error) {
	mode := ccitt.Group4
	switch {
	case p.K < 0:
		mode = ccitt.Group4
	case p.K == 0:
		mode = ccitt.Group3_1D
	default:
		mode = ccitt.Group3_2D
	}

	order := ccitt.MSB
	opts := &ccitt.Options{
		Invert: !p.BlackIs1,
		Align:  p.EncodedByteAlign,
	}

	r := ccitt.NewReader(bytes.NewReader(data), order, mode, p.Columns, p.Rows, opts)
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ccittfax: %w", err)
	}
	return out, nil
}
