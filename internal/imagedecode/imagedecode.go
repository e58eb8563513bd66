// Package imagedecode turns a PDF image XObject (or inline image) into
// an SVG-embeddable data: URL. It covers the sample formats a page
// actually carries — raw (possibly Flate/LZW-filtered) samples at 1,
// 2, 4, or 8 bits per component in DeviceGray/DeviceRGB/DeviceCMYK/
// Indexed, plus JPEG (DCTDecode) passed straight through the standard
// library's decoder — and re-encodes every one of them as PNG, since
// no PDF-aware encoder in the example corpus knows how to emit that
// wire format and image/png is the stdlib's only image encoder, unlike
// the filter decoders above it which all come from the corpus.
package imagedecode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/coregx/gxpdf/logging"
)

// ColorSpaceInfo is the minimal shape internal/interpreter's resolved
// ColorSpace is converted to before calling Decode, so this package
// does not need to know how to parse a PDF /ColorSpace entry itself.
type ColorSpaceInfo struct {
	Family string // "DeviceGray", "DeviceRGB", "DeviceCMYK", "Indexed"
	N      int    // components per sample for the base family

	// Indexed-specific.
	Base   *ColorSpaceInfo
	Lookup []byte
}

func (cs ColorSpaceInfo) components() int {
	if cs.Family == "Indexed" {
		return 1
	}
	return cs.N
}

// Result is a decoded image ready for the SVG emitter: a data: URL plus
// its pixel dimensions (needed for the unit-square Image transform).
type Result struct {
	DataURL string
	Width   int
	Height  int
}

// SMask carries an already-decoded soft mask (PDF 1.7 11.6.5.3): a
// separate DeviceGray image supplying this image's per-pixel alpha.
// The caller (internal/interpreter) resolves and decodes /SMask itself
// via a nested Decode call and passes the result in, since soft masks
// are themselves image XObjects with their own filter chain.
type SMask struct {
	Gray   []byte // one byte per pixel, row-major
	Width  int
	Height int
}

// Decode reads an image XObject's already filter-chain-decoded sample
// data (raw, or JPEG bytes if filterName is DCTDecode) and produces an
// embeddable PNG data URL.
func Decode(decoded []byte, width, height, bpc int, filterName string, cs ColorSpaceInfo, smask *SMask) (*Result, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imagedecode: invalid dimensions %dx%d", width, height)
	}
	if bpc == 0 {
		bpc = 8
	}

	var img image.Image
	var err error
	switch filterName {
	case "DCTDecode", "DCT":
		img, err = jpeg.Decode(bytes.NewReader(decoded))
		if err != nil {
			return nil, fmt.Errorf("imagedecode: jpeg: %w", err)
		}
	case "CCITTFaxDecode", "CCF", "JBIG2Decode", "JPXDecode":
		// No decoder for these fax/bilevel/wavelet codecs in the
		// example corpus; render a mid-gray placeholder rather than
		// failing the whole page over one unsupported image.
		logging.Logger().Warn("unsupported image filter, rendering placeholder",
			"filter", filterName, "width", width, "height", height)
		img = placeholder(width, height)
	default:
		img, err = unpackSamples(decoded, width, height, bpc, cs)
		if err != nil {
			return nil, err
		}
	}

	if smask != nil {
		img = applySoftMask(img, smask, width, height)
	}

	return encodePNG(img)
}

// DecodeStencilMask reads a 1-bpc /ImageMask sample grid and paints
// fillColor wherever the mask selects "paint this pixel" (PDF 1.7
// 8.9.6.2): sample 0 paints unless /Decode is [1 0], which reverses it.
func DecodeStencilMask(decoded []byte, width, height int, invert bool, fillColor color.Color) (*Result, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imagedecode: invalid dimensions %dx%d", width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	r, g, b, _ := fillColor.RGBA()
	stride := (width + 7) / 8
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			byteIdx := y*stride + x/8
			if byteIdx >= len(decoded) {
				continue
			}
			bit := (decoded[byteIdx] >> (7 - uint(x%8))) & 1
			paint := bit == 0
			if invert {
				paint = !paint
			}
			if paint {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xFF})
			}
		}
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imagedecode: png encode: %w", err)
	}
	b := img.Bounds()
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return &Result{DataURL: dataURL, Width: b.Dx(), Height: b.Dy()}, nil
}

func placeholder(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img
}

// unpackSamples reads width*height samples packed bpc bits wide (MSB
// first, each row byte-aligned per PDF 1.7 7.4.3) and converts them to
// RGBA pixels via cs.
func unpackSamples(data []byte, width, height, bpc int, cs ColorSpaceInfo) (image.Image, error) {
	nComp := cs.components()
	maxVal := float64((uint64(1) << uint(bpc)) - 1)
	rowBits := width * nComp * bpc
	rowBytes := (rowBits + 7) / 8

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		rowStart := y * rowBytes
		if rowStart >= len(data) {
			break
		}
		row := data[rowStart:]
		bitPos := 0
		for x := 0; x < width; x++ {
			samples := make([]float64, nComp)
			for c := 0; c < nComp; c++ {
				v := readBits(row, bitPos, bpc)
				bitPos += bpc
				samples[c] = float64(v) / maxVal
			}
			r, g, b := toRGB(cs, samples, maxVal)
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return out, nil
}

func readBits(data []byte, bitPos, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := (bitPos + i) / 8
		if byteIdx >= len(data) {
			return v << uint(n-i)
		}
		bit := (data[byteIdx] >> (7 - uint((bitPos+i)%8))) & 1
		v = v<<1 | uint32(bit)
	}
	return v
}

func toRGB(cs ColorSpaceInfo, samples []float64, maxVal float64) (r, g, b uint8) {
	clamp := func(f float64) uint8 {
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	switch cs.Family {
	case "DeviceGray":
		if len(samples) < 1 {
			return 0, 0, 0
		}
		v := clamp(samples[0])
		return v, v, v
	case "DeviceRGB":
		if len(samples) < 3 {
			return 0, 0, 0
		}
		return clamp(samples[0]), clamp(samples[1]), clamp(samples[2])
	case "DeviceCMYK":
		if len(samples) < 4 {
			return 0, 0, 0
		}
		c, m, y, k := samples[0], samples[1], samples[2], samples[3]
		return clamp((1 - c) * (1 - k)), clamp((1 - m) * (1 - k)), clamp((1 - y) * (1 - k))
	case "Indexed":
		if len(samples) < 1 || cs.Base == nil {
			return 0, 0, 0
		}
		idx := int(samples[0] * maxVal)
		n := cs.Base.components()
		off := idx * n
		if off < 0 || off+n > len(cs.Lookup) {
			return 0, 0, 0
		}
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			vals[i] = float64(cs.Lookup[off+i]) / 255
		}
		return toRGB(*cs.Base, vals, 255)
	default:
		return 0, 0, 0
	}
}

// UnpackGray reads a DeviceGray sample grid at bpc bits per component
// and returns one byte per pixel (0-255), row-major, for use as a soft
// mask's alpha channel.
func UnpackGray(data []byte, width, height, bpc int) []byte {
	if bpc == 0 {
		bpc = 8
	}
	maxVal := float64((uint64(1) << uint(bpc)) - 1)
	rowBytes := (width*bpc + 7) / 8
	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		rowStart := y * rowBytes
		if rowStart >= len(data) {
			break
		}
		row := data[rowStart:]
		bitPos := 0
		for x := 0; x < width; x++ {
			v := readBits(row, bitPos, bpc)
			bitPos += bpc
			out[y*width+x] = byte(float64(v) / maxVal * 255)
		}
	}
	return out
}

func applySoftMask(base image.Image, smask *SMask, width, height int) image.Image {
	bounds := base.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sy := y * smask.Height / height
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sx := x * smask.Width / width
			r, g, bch, _ := base.At(x, y).RGBA()
			a := byte(0xFF)
			idx := sy*smask.Width + sx
			if idx >= 0 && idx < len(smask.Gray) {
				a = smask.Gray[idx]
			}
			out.SetNRGBA(x, y, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bch >> 8), A: a})
		}
	}
	return out
}
