package interpreter

import (
	"github.com/coregx/gxpdf/internal/parser"
)

// ColorSpace is a resolved PDF color space: just enough to turn a
// component tuple from sc/scn (or g/rg/k's fixed-family operators)
// into an RGBColor. Non-goals (spec.md) exclude CalGray/CalRGB/Lab/
// DeviceN/Pattern/ICCBased as first-class color models; each is
// approximated here to its nearest supported family rather than
// rejected outright, so a page using them still renders with a
// plausible (if not colorimetrically exact) color.
type ColorSpace struct {
	Family string // "DeviceGray", "DeviceRGB", "DeviceCMYK", "Indexed"
	N      int    // component count the family expects

	// Indexed-specific: Base is the underlying color space the
	// palette entries are expressed in, Lookup is the raw palette
	// bytes, HiVal is the highest valid index.
	Base   *ColorSpace
	Lookup []byte
	HiVal  int
}

// DeviceGrayCS, DeviceRGBCS, DeviceCMYKCS are the three families every
// PDF viewer must support and the only ones this converter renders
// exactly.
var (
	DeviceGrayCS = &ColorSpace{Family: "DeviceGray", N: 1}
	DeviceRGBCS  = &ColorSpace{Family: "DeviceRGB", N: 3}
	DeviceCMYKCS = &ColorSpace{Family: "DeviceCMYK", N: 4}
)

// resolveColorSpace turns a /ColorSpace resource entry (or a content
// stream's CS/cs operand, which may itself be a resource-dictionary
// name or one of the three device names directly) into a ColorSpace.
func resolveColorSpace(reader *parser.Reader, csResources *parser.Dictionary, obj parser.PdfObject) *ColorSpace {
	obj = reader.Resolve(obj)

	if name, ok := obj.(*parser.Name); ok {
		switch name.Value() {
		case "DeviceGray", "CalGray", "G":
			return DeviceGrayCS
		case "DeviceRGB", "CalRGB", "RGB":
			return DeviceRGBCS
		case "DeviceCMYK", "CMYK":
			return DeviceCMYKCS
		case "Pattern":
			return DeviceGrayCS
		default:
			if csResources != nil && csResources.Has(name.Value()) {
				return resolveColorSpace(reader, csResources, csResources.Get(name.Value()))
			}
			return DeviceGrayCS
		}
	}

	arr, ok := obj.(*parser.Array)
	if !ok || arr.Len() == 0 {
		return DeviceGrayCS
	}

	family, ok := reader.Resolve(arr.Get(0)).(*parser.Name)
	if !ok {
		return DeviceGrayCS
	}

	switch family.Value() {
	case "ICCBased":
		// The stream's /N gives the component count; map it to the
		// matching device family rather than doing a real ICC
		// transform (out of scope per spec.md's Non-goals).
		if stream, ok := reader.Resolve(arr.Get(1)).(*parser.Stream); ok {
			switch stream.Dictionary().GetInteger("N") {
			case 1:
				return DeviceGrayCS
			case 4:
				return DeviceCMYKCS
			default:
				return DeviceRGBCS
			}
		}
		return DeviceRGBCS

	case "Indexed":
		if arr.Len() < 4 {
			return DeviceRGBCS
		}
		base := resolveColorSpace(reader, csResources, arr.Get(1))
		hival := int(asInt(reader.Resolve(arr.Get(2))))
		lookup := lookupBytes(reader, arr.Get(3))
		return &ColorSpace{Family: "Indexed", N: 1, Base: base, Lookup: lookup, HiVal: hival}

	case "Separation", "DeviceN":
		// Approximated as single-component gray: the tint transform
		// function is not evaluated, so a 0 tint (no ink) renders as
		// white and 1 (full ink) as black, matching the common case
		// of a single spot color used like a gray ramp.
		return DeviceGrayCS

	case "CalRGB", "Lab":
		return DeviceRGBCS

	case "CalGray":
		return DeviceGrayCS

	default:
		return DeviceGrayCS
	}
}

func lookupBytes(reader *parser.Reader, obj parser.PdfObject) []byte {
	switch v := reader.Resolve(obj).(type) {
	case *parser.String:
		return v.Bytes()
	case *parser.Stream:
		data, err := v.Decode()
		if err != nil {
			return nil
		}
		return data
	default:
		return nil
	}
}

func asInt(obj parser.PdfObject) int64 {
	switch v := obj.(type) {
	case *parser.Integer:
		return v.Value()
	case *parser.Real:
		return int64(v.Value())
	default:
		return 0
	}
}

func asFloat(obj parser.PdfObject) float64 {
	switch v := obj.(type) {
	case *parser.Integer:
		return float64(v.Value())
	case *parser.Real:
		return v.Value()
	default:
		return 0
	}
}

// ToRGB converts a component tuple in cs's native family to RGB.
// Indexed looks its single component up in the palette and recurses
// into the base space; unrecognized component counts fall back to
// black rather than panicking on a malformed content stream.
func (cs *ColorSpace) ToRGB(components []float64) RGBColor {
	switch cs.Family {
	case "DeviceGray":
		if len(components) < 1 {
			return Black
		}
		g := components[0]
		return RGBColor{g, g, g}

	case "DeviceRGB":
		if len(components) < 3 {
			return Black
		}
		return RGBColor{components[0], components[1], components[2]}

	case "DeviceCMYK":
		if len(components) < 4 {
			return Black
		}
		c, m, y, k := components[0], components[1], components[2], components[3]
		return RGBColor{
			R: (1 - c) * (1 - k),
			G: (1 - m) * (1 - k),
			B: (1 - y) * (1 - k),
		}

	case "Indexed":
		if len(components) < 1 || cs.Base == nil {
			return Black
		}
		idx := int(components[0])
		n := cs.Base.N
		off := idx * n
		if off < 0 || off+n > len(cs.Lookup) {
			return Black
		}
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			vals[i] = float64(cs.Lookup[off+i]) / 255
		}
		return cs.Base.ToRGB(vals)

	default:
		return Black
	}
}
