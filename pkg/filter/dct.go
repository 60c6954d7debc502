package filter

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// DCTResult is the decoded, un-color-managed pixel data from a DCTDecode
// stream: interleaved component bytes in row-major order, ready for
// pkg/pdfimage to apply the stream's own /Decode array and colour space
// rather than trusting the JPEG's embedded one (a scanned CMYK JPEG with
// an Adobe APP14 marker is the case this matters for).
type DCTResult struct {
	Width      int
	Height     int
	Components int
	Pixels     []byte
}

// DCT decodes a DCTDecode stream's baseline/progressive JPEG payload.
// Decoding (entropy coding, IDCT, upsampling) is delegated entirely to
// image/jpeg per the boundary contract; this function only flattens the
// result into raw component bytes.
func DCT(data []byte) (*DCTResult, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("dct: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch px := img.(type) {
	case *image.CMYK:
		out := make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(out[y*w*4:(y+1)*w*4], px.Pix[y*px.Stride:y*px.Stride+w*4])
		}
		return &DCTResult{Width: w, Height: h, Components: 4, Pixels: out}, nil
	case *image.Gray:
		out := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(out[y*w:(y+1)*w], px.Pix[y*px.Stride:y*px.Stride+w])
		}
		return &DCTResult{Width: w, Height: h, Components: 1, Pixels: out}, nil
	default:
		out := make([]byte, w*h*3)
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				out[i] = byte(r >> 8)
				out[i+1] = byte(g >> 8)
				out[i+2] = byte(b >> 8)
				i += 3
			}
		}
		return &DCTResult{Width: w, Height: h, Components: 3, Pixels: out}, nil
	}
}
