// Package pdfimage decodes an already filter-decoded image XObject (or
// inline image) sample payload into per-pixel component tuples: bit
// unpacking across the supported depths, /Decode range mapping, and
// /ImageMask and /Mask handling. Real colour-space arithmetic (ICC,
// Lab, Separation tint transforms) stays out of scope; RGB offers only
// the DeviceGray/RGB/CMYK boundary cases a reference Device needs to
// draw something.
package pdfimage

import (
	"fmt"

	"github.com/AOShei/go-fast-pdf/pkg/pdf"
)

// Resolver resolves indirect references, matching pdf.Reader.Resolve.
type Resolver func(pdf.Object) pdf.Object

// Image is a decoded image XObject: per-pixel component samples already
// mapped through the /Decode array, addressable as Samples[(y*Width+x)*NumComponents+c].
type Image struct {
	Width, Height    int
	BitsPerComponent int
	ColorSpace       string
	NumComponents    int
	Decode           [][2]float64 // one [min,max] pair per component
	Samples          []float64    // decoded, Decode-mapped component values

	ImageMask bool
	Mask      *StencilMask
	ColorKey  [][2]int // raw-sample [min,max] per component; a pixel entirely within range is transparent
}

// StencilMask is a 1-bit-per-sample soft/stencil mask attached via
// /Mask when that entry is itself an image stream rather than a
// colour-key array.
type StencilMask struct {
	Width, Height int
	Bits          []byte // packed, row-padded to a byte boundary, 1 = masked per Decode's sense
	Decode        [2]float64
}

// Decode unpacks stream's sample data (already run through its
// /Filter chain by the caller) into an Image.
func Decode(stream pdf.StreamObject, resolve Resolver) (*Image, error) {
	dict := stream.Dictionary

	img := &Image{
		Width:  int(pdf.AsNumber(resolve(firstOf(dict, "/Width", "/W")))),
		Height: int(pdf.AsNumber(resolve(firstOf(dict, "/Height", "/H")))),
	}
	img.BitsPerComponent = int(pdf.AsNumber(resolve(firstOf(dict, "/BitsPerComponent", "/BPC"))))
	if img.BitsPerComponent == 0 {
		img.BitsPerComponent = 8
	}
	if b, ok := resolve(firstOf(dict, "/ImageMask", "/IM")).(pdf.BooleanObject); ok {
		img.ImageMask = bool(b)
	}

	if img.ImageMask {
		img.ColorSpace = "DeviceGray"
		img.NumComponents = 1
		img.BitsPerComponent = 1
	} else {
		img.ColorSpace, img.NumComponents = resolveColorSpace(resolve(firstOf(dict, "/ColorSpace", "/CS")), resolve)
	}

	img.Decode = resolveDecode(resolve(firstOf(dict, "/Decode", "/D")), resolve, img)

	if img.Width <= 0 || img.Height <= 0 || img.NumComponents <= 0 {
		return nil, &pdf.ImageError{Err: fmt.Errorf("invalid dimensions %dx%d, %d components", img.Width, img.Height, img.NumComponents)}
	}

	if err := unpackSamples(img, stream.Data); err != nil {
		return nil, &pdf.ImageError{Err: err}
	}

	switch m := resolve(dict["/Mask"]).(type) {
	case pdf.ArrayObject:
		img.ColorKey = parseColorKey(m)
	case pdf.StreamObject:
		sm, err := decodeStencilMask(m, resolve)
		if err != nil {
			return nil, &pdf.ImageError{Err: fmt.Errorf("mask: %w", err)}
		}
		img.Mask = sm
	}

	return img, nil
}

// decodeStencilMask unpacks a /Mask entry that is itself a 1-bit image
// stream (as opposed to the colour-key-interval array form): its
// samples are kept packed, not expanded to float64 per pixel, since a
// Device only ever needs a yes/no test per pixel.
func decodeStencilMask(stream pdf.StreamObject, resolve Resolver) (*StencilMask, error) {
	dict := stream.Dictionary
	w := int(pdf.AsNumber(resolve(dict["/Width"])))
	h := int(pdf.AsNumber(resolve(dict["/Height"])))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid stencil mask dimensions %dx%d", w, h)
	}
	rowBytes := (w + 7) / 8
	if len(stream.Data) < rowBytes*h {
		return nil, fmt.Errorf("stencil mask data too short: have %d bytes, need %d", len(stream.Data), rowBytes*h)
	}

	decode := [2]float64{0, 1}
	if arr, ok := resolve(dict["/Decode"]).(pdf.ArrayObject); ok && len(arr) == 2 {
		decode = [2]float64{pdf.AsNumber(resolve(arr[0])), pdf.AsNumber(resolve(arr[1]))}
	}

	return &StencilMask{
		Width:  w,
		Height: h,
		Bits:   append([]byte(nil), stream.Data[:rowBytes*h]...),
		Decode: decode,
	}, nil
}

// Masked reports whether the stencil mask marks the sample at (x, y)
// as masked (excluded from painting), honouring /Decode [1 0] meaning
// the bit sense is inverted.
func (m *StencilMask) Masked(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	rowBytes := (m.Width + 7) / 8
	byteIdx := y*rowBytes + x/8
	bit := (m.Bits[byteIdx] >> uint(7-x%8)) & 1
	masked := bit == 1
	if m.Decode[0] == 1 {
		masked = !masked
	}
	return masked
}

func firstOf(dict pdf.DictionaryObject, keys ...string) pdf.Object {
	for _, k := range keys {
		if v, ok := dict[k]; ok {
			return v
		}
	}
	return nil
}

// resolveColorSpace returns the family name and component count for a
// /ColorSpace entry, covering the device families, Indexed, and
// ICCBased (by its /N, the only field needed for sample unpacking).
func resolveColorSpace(cs pdf.Object, resolve Resolver) (string, int) {
	switch v := resolve(cs).(type) {
	case pdf.NameObject:
		name, _ := pdf.AsName(v)
		return deviceComponents(name)
	case pdf.ArrayObject:
		if len(v) == 0 {
			return "DeviceGray", 1
		}
		family, _ := pdf.AsName(resolve(v[0]))
		switch family {
		case "ICCBased":
			if st, ok := resolve(v[1]).(pdf.StreamObject); ok {
				n := int(pdf.AsNumber(resolve(st.Dictionary["/N"])))
				switch n {
				case 1:
					return "DeviceGray", 1
				case 4:
					return "DeviceCMYK", 4
				default:
					return "DeviceRGB", 3
				}
			}
			return "DeviceRGB", 3
		case "Indexed":
			return "Indexed", 1
		case "Separation", "DeviceN":
			if len(v) > 1 {
				if names, ok := resolve(v[1]).(pdf.ArrayObject); ok {
					return family, len(names)
				}
			}
			return family, 1
		case "CalRGB", "Lab":
			return family, 3
		case "CalGray":
			return family, 1
		default:
			name, _ := pdf.AsName(v[0])
			return deviceComponents(name)
		}
	default:
		return "DeviceGray", 1
	}
}

func deviceComponents(name string) (string, int) {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return "DeviceGray", 1
	case "DeviceCMYK", "CMYK":
		return "DeviceCMYK", 4
	case "DeviceRGB", "CalRGB", "RGB":
		return "DeviceRGB", 3
	default:
		return "DeviceGray", 1
	}
}

// resolveDecode returns the per-component [min,max] pairs, applying the
// colour-space-family default when /Decode is absent.
func resolveDecode(decodeObj pdf.Object, resolve Resolver, img *Image) [][2]float64 {
	if arr, ok := resolve(decodeObj).(pdf.ArrayObject); ok && len(arr) == img.NumComponents*2 {
		out := make([][2]float64, img.NumComponents)
		for i := range out {
			out[i] = [2]float64{pdf.AsNumber(resolve(arr[2*i])), pdf.AsNumber(resolve(arr[2*i+1]))}
		}
		return out
	}

	out := make([][2]float64, img.NumComponents)
	if img.ImageMask {
		out[0] = [2]float64{0, 1}
		return out
	}
	if img.ColorSpace == "Indexed" {
		out[0] = [2]float64{0, float64((1 << img.BitsPerComponent) - 1)}
		return out
	}
	for i := range out {
		out[i] = [2]float64{0, 1}
	}
	return out
}

// unpackSamples reads data as a row-padded, big-endian-packed bit
// stream at img.BitsPerComponent per sample, maps each raw sample
// through its component's Decode range, and fills img.Samples.
func unpackSamples(img *Image, data []byte) error {
	bpc := img.BitsPerComponent
	nc := img.NumComponents
	rowBits := img.Width * nc * bpc
	rowBytes := (rowBits + 7) / 8
	if len(data) < rowBytes*img.Height {
		return fmt.Errorf("sample data too short: have %d bytes, need %d", len(data), rowBytes*img.Height)
	}

	maxVal := float64((uint64(1) << uint(bpc)) - 1)
	img.Samples = make([]float64, img.Width*img.Height*nc)

	out := 0
	for y := 0; y < img.Height; y++ {
		row := data[y*rowBytes : (y+1)*rowBytes]
		bitPos := 0
		for x := 0; x < img.Width; x++ {
			for c := 0; c < nc; c++ {
				raw := readBits(row, bitPos, bpc)
				bitPos += bpc
				dmin, dmax := img.Decode[c][0], img.Decode[c][1]
				var v float64
				if img.ColorSpace == "Indexed" {
					v = float64(raw)
				} else {
					v = dmin + float64(raw)/maxVal*(dmax-dmin)
				}
				img.Samples[out] = v
				out++
			}
		}
	}
	return nil
}

// readBits reads an n-bit (n <= 32) big-endian-packed unsigned value
// starting at bitPos within row.
func readBits(row []byte, bitPos, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := (bitPos + i) / 8
		bitIdx := 7 - uint((bitPos+i)%8)
		if byteIdx >= len(row) {
			break
		}
		bit := (row[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint32(bit)
	}
	return v
}

func parseColorKey(arr pdf.ArrayObject) [][2]int {
	n := len(arr) / 2
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		lo, _ := arr[2*i].(pdf.NumberObject)
		hi, _ := arr[2*i+1].(pdf.NumberObject)
		out[i] = [2]int{int(lo), int(hi)}
	}
	return out
}

// RGB converts the pixel at (x, y) to 8-bit sRGB-ish values for the
// colour-space families this package understands directly
// (DeviceGray/DeviceRGB/DeviceCMYK); other families return mid-grey
// rather than attempting colour management that is out of scope here.
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0, 0, 0
	}
	base := (y*img.Width + x) * img.NumComponents
	switch img.ColorSpace {
	case "DeviceGray", "CalGray":
		v := clamp01(img.Samples[base])
		g8 := uint8(v * 255)
		return g8, g8, g8
	case "DeviceRGB", "CalRGB":
		return to8(img.Samples[base]), to8(img.Samples[base+1]), to8(img.Samples[base+2])
	case "DeviceCMYK":
		c, m, y2, k := img.Samples[base], img.Samples[base+1], img.Samples[base+2], img.Samples[base+3]
		return to8((1 - c) * (1 - k)), to8((1 - m) * (1 - k)), to8((1 - y2) * (1 - k))
	default:
		return 128, 128, 128
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 { return uint8(clamp01(v) * 255) }
