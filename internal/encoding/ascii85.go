package encoding

import (
	"bytes"
	"encoding/ascii85"
	"io"
)

// ASCII85Decoder implements ASCII85Decode stream decoding.
//
// PDF's variant is byte-identical to btoa/Adobe ASCII85 except for the
// "~>" end-of-data marker, which stdlib's encoding/ascii85 does not expect
// to see in its input.
//
// Reference: PDF 1.7 specification, Section 7.4.3 (ASCII85Decode Filter).
type ASCII85Decoder struct{}

// NewASCII85Decoder creates a new ASCII85 decoder.
func NewASCII85Decoder() *ASCII85Decoder {
	return &ASCII85Decoder{}
}

// Decode converts ASCII85-encoded data back to binary.
func (d *ASCII85Decoder) Decode(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	trimmed = bytes.TrimSuffix(trimmed, []byte("~>"))

	var out bytes.Buffer
	dec := ascii85.NewDecoder(bytes.NewReader(trimmed))
	if _, err := io.Copy(&out, dec); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Encode converts binary data to ASCII85, appending the "~>" EOD marker.
func (d *ASCII85Decoder) Encode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	enc := ascii85.NewEncoder(&out)
	if _, err := enc.Write(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out.WriteString("~>")
	return out.Bytes(), nil
}
