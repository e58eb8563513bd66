package encoding

import (
	"bytes"
	"testing"
)

func TestASCIIHexDecoder_RoundTrip(t *testing.T) {
	dec := NewASCIIHexDecoder()
	original := []byte("Hello, PDF World!")

	encoded, err := dec.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := dec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, original)
	}
}

func TestASCIIHexDecoder_WhitespaceAndOddLength(t *testing.T) {
	dec := NewASCIIHexDecoder()
	decoded, err := dec.Decode([]byte("48 65 6C 6C 6F>"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(decoded) != "Hello" {
		t.Errorf("got %q, want %q", decoded, "Hello")
	}

	decoded, err = dec.Decode([]byte("48656C6C6F0>")) // odd digit count before pad
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) == 0 {
		t.Errorf("expected padded decode to produce output")
	}
}

func TestASCII85Decoder_RoundTrip(t *testing.T) {
	dec := NewASCII85Decoder()
	original := []byte("The quick brown fox jumps over the lazy dog.")

	encoded, err := dec.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := dec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, original)
	}
}

func TestRunLengthDecoder_RoundTrip(t *testing.T) {
	dec := NewRunLengthDecoder()
	original := []byte("aaaaaaaabcdefgggggggggggg")

	encoded, err := dec.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := dec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, original)
	}
}

func TestRunLengthDecoder_Literal(t *testing.T) {
	dec := NewRunLengthDecoder()
	// length byte 4 means copy next 5 literal bytes, then EOD.
	input := []byte{4, 'h', 'e', 'l', 'l', 'o', 128}
	decoded, err := dec.Decode(input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(decoded) != "hello" {
		t.Errorf("got %q, want %q", decoded, "hello")
	}
}

func TestLZWDecoder_LiteralBytes(t *testing.T) {
	// Codes 0-255 pass through unchanged as literals in the first pass,
	// so a clear code followed by the literal codes for "AB" followed by
	// EOD should decode back to "AB".
	dec := NewLZWDecoder()
	bits := &lzwBitWriter{}
	bits.writeCode(lzwClearCode, 9)
	bits.writeCode(int('A'), 9)
	bits.writeCode(int('B'), 9)
	bits.writeCode(lzwEODCode, 9)

	decoded, err := dec.Decode(bits.bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(decoded) != "AB" {
		t.Errorf("got %q, want %q", decoded, "AB")
	}
}

// lzwBitWriter is a tiny MSB-first bit packer mirroring lzwBitReader,
// used only to construct deterministic test fixtures.
type lzwBitWriter struct {
	buf  []byte
	bits int
}

func (w *lzwBitWriter) writeCode(code, width int) {
	for i := width - 1; i >= 0; i-- {
		bit := (code >> uint(i)) & 1
		byteIdx := w.bits / 8
		for byteIdx >= len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		if bit == 1 {
			w.buf[byteIdx] |= 1 << uint(7-w.bits%8)
		}
		w.bits++
	}
}

func (w *lzwBitWriter) bytes() []byte {
	return w.buf
}

func TestApplyPredictor_None(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	out, err := ApplyPredictor(data, PredictorParams{Predictor: 1})
	if err != nil {
		t.Fatalf("ApplyPredictor failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("predictor 1 must be identity, got %v", out)
	}
}

func TestApplyPredictor_PNGSub(t *testing.T) {
	// One row of two RGB pixels; Sub filter (type 1) references the
	// same-row pixel bpp bytes to the left.
	raw := []byte{10, 20, 30, 12, 23, 33}
	filtered := []byte{1, 10, 20, 30, 2, 3, 3} // type byte + Sub-encoded row

	out, err := ApplyPredictor(filtered, PredictorParams{
		Predictor:        11,
		Colors:           3,
		BitsPerComponent: 8,
		Columns:          2,
	})
	if err != nil {
		t.Fatalf("ApplyPredictor failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("got %v, want %v", out, raw)
	}
}

func TestChain_FlateThenNothing(t *testing.T) {
	flate := NewFlateDecoder()
	compressed, err := flate.Encode([]byte("hello chain"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out, err := Chain([]FilterSpec{{Name: "FlateDecode"}}, compressed)
	if err != nil {
		t.Fatalf("Chain failed: %v", err)
	}
	if string(out) != "hello chain" {
		t.Errorf("got %q, want %q", out, "hello chain")
	}
}

func TestChain_ImageFilterPassesThrough(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xD9} // not a real JPEG, just needs to survive untouched
	out, err := Chain([]FilterSpec{{Name: "DCTDecode"}}, raw)
	if err != nil {
		t.Fatalf("Chain failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("image filter stage must pass data through unchanged, got %v", out)
	}
}

func TestChain_UnsupportedFilter(t *testing.T) {
	_, err := Chain([]FilterSpec{{Name: "NotAFilter"}}, []byte("x"))
	if err == nil {
		t.Fatal("expected error for unsupported filter")
	}
}
