package fonts

import (
	"golang.org/x/text/encoding/charmap"
)

// DecodeWinAnsi decodes a single WinAnsiEncoding byte to its Unicode
// rune, via golang.org/x/text's Windows-1252 table (WinAnsiEncoding is
// PDF's name for CP1252).
//
// Reference: PDF 1.7 specification, Appendix D.2.
func DecodeWinAnsi(b byte) rune {
	r, _ := charmap.Windows1252.DecodeByte(b)
	return r
}

// DecodeMacRoman decodes a single MacRomanEncoding byte to its Unicode
// rune, via golang.org/x/text's Macintosh table.
func DecodeMacRoman(b byte) rune {
	r, _ := charmap.Macintosh.DecodeByte(b)
	return r
}

// DecodeStandardEncoding decodes a single byte under Adobe
// StandardEncoding. golang.org/x/text does not ship this table (it
// predates most modern code-page work), so the 0xA0-0xFF half that
// differs from ASCII is hand-built here from the PDF spec's Appendix D.2
// encoding table.
func DecodeStandardEncoding(b byte) rune {
	if b < 0x80 {
		return rune(b)
	}
	if r, ok := standardEncodingHigh[b]; ok {
		return r
	}
	return 0xFFFD
}

// DecodeMacExpertEncoding decodes a single byte under
// MacExpertEncoding, a specialist encoding for small caps/old-style
// figures that neither golang.org/x/text nor most font tooling bothers
// to ship. The macExpertEncoding table has no entries, so bytes below
// 0x80 decode as ASCII and every other byte decodes as 0xFFFD.
func DecodeMacExpertEncoding(b byte) rune {
	if r, ok := macExpertEncoding[b]; ok {
		return r
	}
	if b < 0x80 {
		return rune(b)
	}
	return 0xFFFD
}

// standardEncodingHigh covers StandardEncoding's 0xA1-0xFF range; the
// 0x80-0xA0 range is unused/undefined in StandardEncoding.
var standardEncodingHigh = map[byte]rune{
	0xA1: 0x00A1, // exclamdown
	0xA2: 0x00A2, // cent
	0xA3: 0x00A3, // sterling
	0xA4: 0x2044, // fraction
	0xA5: 0x00A5, // yen
	0xA6: 0x0192, // florin
	0xA7: 0x00A7, // section
	0xA8: 0x00A4, // currency
	0xA9: 0x0027, // quotesingle
	0xAA: 0x201C, // quotedblleft
	0xAB: 0x00AB, // guillemotleft
	0xAC: 0x2039, // guilsinglleft
	0xAD: 0x203A, // guilsinglright
	0xAE: 0xFB01, // fi
	0xAF: 0xFB02, // fl
	0xB1: 0x2013, // endash
	0xB2: 0x2020, // dagger
	0xB3: 0x2021, // daggerdbl
	0xB4: 0x00B7, // periodcentered
	0xB6: 0x00B6, // paragraph
	0xB7: 0x2022, // bullet
	0xB8: 0x201A, // quotesinglbase
	0xB9: 0x201E, // quotedblbase
	0xBA: 0x201D, // quotedblright
	0xBB: 0x00BB, // guillemotright
	0xBC: 0x2026, // ellipsis
	0xBD: 0x2030, // perthousand
	0xBF: 0x00BF, // questiondown
	0xC1: 0x0060, // grave
	0xC2: 0x00B4, // acute
	0xC3: 0x02C6, // circumflex
	0xC4: 0x02DC, // tilde
	0xC5: 0x00AF, // macron
	0xC6: 0x02D8, // breve
	0xC7: 0x02D9, // dotaccent
	0xC8: 0x00A8, // dieresis
	0xCA: 0x02DA, // ring
	0xCB: 0x00B8, // cedilla
	0xCD: 0x02DD, // hungarumlaut
	0xCE: 0x02DB, // ogonek
	0xCF: 0x02C7, // caron
	0xD0: 0x2014, // emdash
	0xE1: 0x00C6, // AE
	0xE3: 0x00AA, // ordfeminine
	0xE8: 0x0141, // Lslash
	0xE9: 0x00D8, // Oslash
	0xEA: 0x0152, // OE
	0xEB: 0x00BA, // ordmasculine
	0xF1: 0x00E6, // ae
	0xF5: 0x0131, // dotlessi
	0xF8: 0x0142, // lslash
	0xF9: 0x00F8, // oslash
	0xFA: 0x0153, // oe
	0xFB: 0x00DF, // germandbls
}

// macExpertEncoding is deliberately empty: MacExpertEncoding is almost
// entirely small-caps/old-style-figure/ligature glyphs with no single
// Unicode code point, so guessing would be worse than falling through to
// CharMap's AGL/embedded-program lookup for the specific glyph name.
var macExpertEncoding = map[byte]rune{}
