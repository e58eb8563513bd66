package fonts

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// ToUnicodeMapping is one resolved entry from a /ToUnicode CMap stream:
// character code Code maps to Unicode code point Rune.
type ToUnicodeMapping struct {
	Code uint16
	Rune rune
}

var (
	bfCharLine  = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>`)
	bfRangeLine = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>`)
)

// ParseToUnicodeCMap parses a /ToUnicode CMap stream's beginbfchar/
// endbfchar and beginbfrange/endbfrange blocks (PDF 1.7 9.10.3).
//
// Only the single-destination forms are handled (a bfrange whose
// destination is itself an array of individual code points, rather than
// a single starting Unicode value, is rare enough in practice that it is
// skipped rather than mis-decoded).
func ParseToUnicodeCMap(data []byte) ([]ToUnicodeMapping, error) {
	var mappings []ToUnicodeMapping

	lines := bytes.Split(data, []byte("\n"))
	inBfChar := false
	inBfRange := false

	for _, raw := range lines {
		line := bytes.TrimSpace(raw)
		switch {
		case bytes.Contains(line, []byte("beginbfchar")):
			inBfChar = true
			continue
		case bytes.Contains(line, []byte("endbfchar")):
			inBfChar = false
			continue
		case bytes.Contains(line, []byte("beginbfrange")):
			inBfRange = true
			continue
		case bytes.Contains(line, []byte("endbfrange")):
			inBfRange = false
			continue
		}

		switch {
		case inBfChar:
			m := bfCharLine.FindSubmatch(line)
			if m == nil {
				continue
			}
			code, err := strconv.ParseUint(string(m[1]), 16, 32)
			if err != nil {
				continue
			}
			dst, err := parseUnicodeHex(string(m[2]))
			if err != nil {
				continue
			}
			mappings = append(mappings, ToUnicodeMapping{Code: uint16(code), Rune: dst})
		case inBfRange:
			m := bfRangeLine.FindSubmatch(line)
			if m == nil {
				continue
			}
			lo, err := strconv.ParseUint(string(m[1]), 16, 32)
			if err != nil {
				continue
			}
			hi, err := strconv.ParseUint(string(m[2]), 16, 32)
			if err != nil {
				continue
			}
			dst, err := parseUnicodeHex(string(m[3]))
			if err != nil {
				continue
			}
			for code := lo; code <= hi; code++ {
				mappings = append(mappings, ToUnicodeMapping{
					Code: uint16(code),
					Rune: dst + rune(code-lo),
				})
			}
		}
	}

	if len(mappings) == 0 {
		return nil, fmt.Errorf("no bfchar/bfrange mappings found in CMap stream")
	}
	return mappings, nil
}

// parseUnicodeHex decodes a hex Unicode destination, which may be longer
// than 4 digits when it encodes a UTF-16 surrogate pair or (rarely) a
// multi-rune ligature; only the first UTF-16 code unit is taken in that
// case, matching how most CMap consumers read single-rune destinations.
func parseUnicodeHex(hex string) (rune, error) {
	if len(hex) > 4 {
		hex = hex[:4]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(v), nil
}
