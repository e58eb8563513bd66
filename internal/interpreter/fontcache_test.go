package interpreter

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/gxpdf/internal/parser"
	"github.com/coregx/gxpdf/internal/svgdom"
)

func TestCssFontFamily(t *testing.T) {
	cases := []struct {
		baseFont   string
		wantFamily string
		wantBold   bool
		wantItalic bool
	}{
		{"Helvetica", "Helvetica, Helvetica, Arial, sans-serif", false, false},
		{"ABCDEF+Times-Bold", "Times New Roman, Times, serif", true, false},
		{"Courier-Oblique", "Courier New, Courier, monospace", false, true},
		{"Symbol", "Symbol", false, false},
		{"ZapfDingbats", "Wingdings", false, false},
		{"", "Helvetica, Arial, sans-serif", false, false},
		{"Arial-BoldItalic", "Arial-BoldItalic, Helvetica, Arial, sans-serif", true, true},
	}
	for _, c := range cases {
		t.Run(c.baseFont, func(t *testing.T) {
			family, bold, italic := cssFontFamily(c.baseFont)
			assert.Equal(t, c.wantFamily, family)
			assert.Equal(t, c.wantBold, bold)
			assert.Equal(t, c.wantItalic, italic)
		})
	}
}

func TestResolveEncoding_BareName(t *testing.T) {
	dict := parser.NewDictionary()
	dict.Set("Encoding", parser.NewName("WinAnsiEncoding"))
	base, diffs := resolveEncoding(nil, dict)
	assert.Equal(t, "WinAnsiEncoding", base)
	assert.Nil(t, diffs)
}

func TestResolveEncoding_DictionaryWithDifferences(t *testing.T) {
	diffArr := parser.NewArray()
	diffArr.AppendAll(parser.NewInteger(65), parser.NewName("A"), parser.NewName("B"))

	encDict := parser.NewDictionary()
	encDict.SetName("BaseEncoding", "MacRomanEncoding")
	encDict.Set("Differences", diffArr)

	dict := parser.NewDictionary()
	dict.Set("Encoding", encDict)

	base, diffs := resolveEncoding(nil, dict)
	assert.Equal(t, "MacRomanEncoding", base)
	assert.Equal(t, "A", diffs[65])
	assert.Equal(t, "B", diffs[66])
}

func TestResolveEncoding_Absent(t *testing.T) {
	dict := parser.NewDictionary()
	base, diffs := resolveEncoding(nil, dict)
	assert.Equal(t, "", base)
	assert.Nil(t, diffs)
}

func TestParseCIDWidths_IndividualWidths(t *testing.T) {
	arr := parser.NewArray()
	widthsArr := parser.NewArray()
	widthsArr.AppendAll(parser.NewInteger(100), parser.NewInteger(200))
	arr.AppendAll(parser.NewInteger(10), widthsArr)

	out := make(map[uint32]float64)
	parseCIDWidths(nil, arr, out)

	assert.Equal(t, 100.0, out[10])
	assert.Equal(t, 200.0, out[11])
}

func TestParseCIDWidths_RangeWidth(t *testing.T) {
	arr := parser.NewArray()
	arr.AppendAll(parser.NewInteger(10), parser.NewInteger(12), parser.NewInteger(500))

	out := make(map[uint32]float64)
	parseCIDWidths(nil, arr, out)

	assert.Equal(t, 500.0, out[10])
	assert.Equal(t, 500.0, out[11])
	assert.Equal(t, 500.0, out[12])
}

func TestFontCache_LoadSimpleFontAndMemoizes(t *testing.T) {
	dict := parser.NewDictionary()
	dict.SetName("Subtype", "Type1")
	dict.SetName("BaseFont", "Helvetica-Bold")
	dict.SetInteger("FirstChar", 65)
	dict.SetInteger("LastChar", 66)
	widths := parser.NewArray()
	widths.AppendAll(parser.NewInteger(600), parser.NewInteger(650))
	dict.Set("Widths", widths)

	cache := NewFontCache(nil, nil, nil)
	font, err := cache.Load(dict)
	require.NoError(t, err)
	require.NotNil(t, font)

	assert.False(t, font.Is2Byte)
	assert.True(t, font.Bold)
	assert.Equal(t, 600.0, font.Widths[65])
	assert.Equal(t, 650.0, font.Widths[66])

	font2, err := cache.Load(dict)
	require.NoError(t, err)
	assert.Same(t, font, font2)
}

func TestFontCache_LoadSimpleFontWithoutWidthsFallsBackToStandardMetrics(t *testing.T) {
	dict := parser.NewDictionary()
	dict.SetName("Subtype", "Type1")
	dict.SetName("BaseFont", "Helvetica")
	dict.SetInteger("FirstChar", 65)
	dict.SetInteger("LastChar", 66)
	// No /Widths array: a non-embedded standard font is entitled to omit it.

	cache := NewFontCache(nil, nil, nil)
	font, err := cache.Load(dict)
	require.NoError(t, err)
	require.NotNil(t, font)

	assert.Equal(t, 667.0, font.Widths[65]) // 'A' in Helvetica's AFM metrics
	assert.Equal(t, 667.0, font.Widths[66]) // 'B'
}

func TestFontCache_LoadType0Font(t *testing.T) {
	descendant := parser.NewDictionary()
	descendant.SetReal("DW", 1000)

	descFonts := parser.NewArray()
	descFonts.Append(descendant)

	dict := parser.NewDictionary()
	dict.SetName("Subtype", "Type0")
	dict.SetName("BaseFont", "ABCDEF+SomeSerifFont")
	dict.Set("DescendantFonts", descFonts)

	cache := NewFontCache(nil, nil, nil)
	font, err := cache.Load(dict)
	require.NoError(t, err)
	require.NotNil(t, font)

	assert.True(t, font.Is2Byte)
	assert.Equal(t, 1000.0, font.DefaultWidth)
}

// buildMinimalTTF assembles a tiny complete sfnt binary (font directory
// + head/hhea/hmtx/cmap) mapping 'A' and 'B' to glyphs 1 and 2, the same
// shape a decoded /FontFile2 stream takes.
func buildMinimalTTF(t *testing.T) []byte {
	t.Helper()

	const (
		headOff, headLen = 76, 20
		hheaOff, hheaLen = headOff + headLen, 36
		hmtxOff, hmtxLen = hheaOff + hheaLen, 12
		cmapOff, cmapLen = hmtxOff + hmtxLen, 40
	)

	var buf bytes.Buffer
	w := func(v any) {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, v))
	}

	w(uint32(0x00010000))
	w(uint16(4))
	w(uint16(64))
	w(uint16(2))
	w(uint16(0))

	entry := func(tag string, offset, length uint32) {
		buf.WriteString(tag)
		w(uint32(0))
		w(offset)
		w(length)
	}
	entry("head", headOff, headLen)
	entry("hhea", hheaOff, hheaLen)
	entry("hmtx", hmtxOff, hmtxLen)
	entry("cmap", cmapOff, cmapLen)

	buf.Write(make([]byte, 16))
	w(uint16(0))
	w(uint16(1000)) // unitsPerEm

	buf.Write(make([]byte, 34))
	w(uint16(3)) // numberOfHMetrics

	w(uint16(0))
	w(int16(0))
	w(uint16(500))
	w(int16(0))
	w(uint16(600))
	w(int16(0))

	w(uint16(0))
	w(uint16(1))
	w(uint16(3))
	w(uint16(1))
	w(uint32(12))

	w(uint16(4))
	w(uint16(28))
	w(uint16(0))
	w(uint16(4))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0x0042))
	w(uint16(0xFFFF))
	w(uint16(0))
	w(uint16(0x0041))
	w(uint16(0xFFFF))
	w(int16(-64))
	w(int16(1))

	return buf.Bytes()
}

func TestFontCache_LoadSimpleFontEmbedsFontProgram(t *testing.T) {
	ttfData := buildMinimalTTF(t)
	fontFile := parser.NewStream(parser.NewDictionary(), ttfData)

	fontDesc := parser.NewDictionary()
	fontDesc.Set("FontFile2", fontFile)

	dict := parser.NewDictionary()
	dict.SetName("Subtype", "TrueType")
	dict.SetName("BaseFont", "ABCDEF+CustomSans")
	dict.SetInteger("FirstChar", 0x41)
	dict.SetInteger("LastChar", 0x42)
	dict.SetName("Encoding", "WinAnsiEncoding")
	dict.Set("FontDescriptor", fontDesc)
	widths := parser.NewArray()
	widths.AppendAll(parser.NewInteger(500), parser.NewInteger(600))
	dict.Set("Widths", widths)

	emitter := svgdom.NewEmitter(200, 200)
	cache := NewFontCache(nil, nil, emitter)

	font, err := cache.Load(dict)
	require.NoError(t, err)
	require.NotNil(t, font)

	assert.True(t, font.CharMap.Embedding())
	entryA, ok := font.CharMap.Lookup(0x41)
	require.True(t, ok)
	assert.False(t, entryA.NotDef)
	assert.Equal(t, 1, entryA.GlyphIndex)

	entryB, ok := font.CharMap.Lookup(0x42)
	require.True(t, ok)
	assert.False(t, entryB.NotDef)
	assert.Equal(t, 2, entryB.GlyphIndex)

	assert.True(t, strings.HasPrefix(font.FontFamily, "pdf-embed-"))
	assert.Equal(t, 1, emitter.Defs().Len())
}

func TestFontCache_LoadSimpleFontWithoutFontFile2FallsBackToExtraction(t *testing.T) {
	dict := parser.NewDictionary()
	dict.SetName("Subtype", "TrueType")
	dict.SetName("BaseFont", "Helvetica")
	dict.SetInteger("FirstChar", 65)
	dict.SetInteger("LastChar", 66)

	emitter := svgdom.NewEmitter(200, 200)
	cache := NewFontCache(nil, nil, emitter)

	font, err := cache.Load(dict)
	require.NoError(t, err)
	require.NotNil(t, font)

	assert.False(t, font.CharMap.Embedding())
	assert.False(t, strings.HasPrefix(font.FontFamily, "pdf-embed-"))
	assert.Equal(t, 0, emitter.Defs().Len())
}
