package encoding

import "fmt"

// FilterSpec describes one stage of a stream's /Filter chain, decoupled
// from internal/parser's Dictionary type so this package does not import
// parser (parser imports encoding, not the reverse).
type FilterSpec struct {
	Name   string
	Params map[string]int64 // Predictor, Colors, BitsPerComponent, Columns, EarlyChange
}

// imageFilters are left encoded for internal/imagedecode to consume
// directly (a JPEG byte stream is more useful to the image pipeline than
// a decoded pixel dump would be at this layer).
var imageFilters = map[string]bool{
	"DCTDecode": true, "DCT": true,
	"CCITTFaxDecode": true, "CCF": true,
	"JBIG2Decode": true,
	"JPXDecode":   true,
}

// IsImageFilter reports whether name is one Chain intentionally passes
// through undecoded.
func IsImageFilter(name string) bool {
	return imageFilters[name]
}

// Chain applies each filter stage in order, returning the fully decoded
// stream body. A stage naming an image filter is passed through
// unmodified (and must be the final stage, per spec.md's Filter rules).
func Chain(specs []FilterSpec, data []byte) ([]byte, error) {
	out := data
	for _, spec := range specs {
		if imageFilters[spec.Name] {
			continue
		}

		var err error
		switch spec.Name {
		case "FlateDecode", "Fl":
			out, err = NewFlateDecoder().Decode(out)
			if err == nil {
				out, err = maybeApplyPredictor(out, spec.Params)
			}
		case "LZWDecode", "LZW":
			dec := NewLZWDecoder()
			if ec, ok := spec.Params["EarlyChange"]; ok {
				dec.EarlyChange = int(ec)
			}
			out, err = dec.Decode(out)
			if err == nil {
				out, err = maybeApplyPredictor(out, spec.Params)
			}
		case "ASCII85Decode", "A85":
			out, err = NewASCII85Decoder().Decode(out)
		case "ASCIIHexDecode", "AHx":
			out, err = NewASCIIHexDecoder().Decode(out)
		case "RunLengthDecode", "RL":
			out, err = NewRunLengthDecoder().Decode(out)
		case "Crypt":
			// Identity handler: decryption is out of scope, and the
			// /Identity crypt filter (the only one readers see without
			// a password) is a no-op by definition.
		default:
			return nil, fmt.Errorf("encoding: unsupported filter %q", spec.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding: filter %q: %w", spec.Name, err)
		}
	}
	return out, nil
}

func maybeApplyPredictor(data []byte, params map[string]int64) ([]byte, error) {
	if params == nil {
		return data, nil
	}
	p := PredictorParams{
		Predictor:        int(params["Predictor"]),
		Colors:           int(params["Colors"]),
		BitsPerComponent: int(params["BitsPerComponent"]),
		Columns:          int(params["Columns"]),
	}
	return ApplyPredictor(data, p)
}
