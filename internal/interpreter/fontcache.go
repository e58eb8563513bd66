package interpreter

import (
	"fmt"
	"strings"

	"github.com/coregx/gxpdf/internal/fonts"
	"github.com/coregx/gxpdf/internal/parser"
	"github.com/coregx/gxpdf/internal/svgdom"
)

// LoadedFont is everything the interpreter needs to show text with one
// font resource: its CharMap (code -> Unicode, and -> glyph index when
// a program is embedded), per-code advance widths in glyph-space
// (1/1000 em) units, and a CSS font-family value — an @font-face name
// ahead of a BaseFont-derived fallback when the font's program was
// embedded, just the fallback otherwise.
type LoadedFont struct {
	CharMap      *fonts.CharMap
	Widths       map[uint32]float64
	DefaultWidth float64
	Is2Byte      bool
	FontFamily   string
	Bold         bool
	Italic       bool
}

// FontCache loads and memoizes one LoadedFont per distinct font
// dictionary, keyed by its identity within the resolved object graph
// (the dictionary pointer itself, since the same *parser.Dictionary is
// reused across lookups once Reader.GetObject has cached it). This is
// the single-shot-per-key population spec.md 5 requires for CharMap,
// built on parser.OnceMap.
type FontCache struct {
	reader   *parser.Reader
	resolver FontResolver
	emitter  *svgdom.Emitter
	gates    *parser.OnceMap[*parser.Dictionary, *LoadedFont]
}

// NewFontCache creates an empty, per-document font cache. resolver may
// be nil, in which case every font uses the built-in name-based CSS
// family guess. emitter may also be nil (as in tests that never
// serialize a document), in which case embedded font programs are
// still parsed for their own cmap/PUA disambiguation but never get an
// inline @font-face rule, so they render through the CSS fallback
// stack like a non-embedded font would.
func NewFontCache(reader *parser.Reader, resolver FontResolver, emitter *svgdom.Emitter) *FontCache {
	return &FontCache{
		reader:   reader,
		resolver: resolver,
		emitter:  emitter,
		gates:    parser.NewOnceMap[*parser.Dictionary, *LoadedFont](),
	}
}

// Load returns the LoadedFont for fontDict, building it on first
// request.
func (c *FontCache) Load(fontDict *parser.Dictionary) (*LoadedFont, error) {
	return c.gates.Get(fontDict, func() (*LoadedFont, error) {
		return buildLoadedFont(c.reader, fontDict, c.resolver, c.emitter)
	})
}

func buildLoadedFont(reader *parser.Reader, dict *parser.Dictionary, resolver FontResolver, emitter *svgdom.Emitter) (*LoadedFont, error) {
	subtype := dict.GetName("Subtype")
	baseFont := dict.GetName("BaseFont")
	baseFontName := ""
	if baseFont != nil {
		baseFontName = baseFont.Value()
	}

	toUnicode := parseToUnicode(reader, dict)

	var font *LoadedFont
	var err error
	if subtype != nil && subtype.Value() == "Type0" {
		font, err = buildType0Font(reader, dict, baseFontName, toUnicode, emitter)
	} else {
		font, err = buildSimpleFont(reader, dict, baseFontName, toUnicode, emitter)
	}
	if err != nil || font == nil || resolver == nil {
		return font, err
	}

	desc := FontDescriptor{BaseFont: baseFontName, Bold: font.Bold, Italic: font.Italic}
	if fd, ok := reader.Resolve(dict.Get("FontDescriptor")).(*parser.Dictionary); ok {
		desc.ItalicAngle = fd.GetReal("ItalicAngle")
		flags := fd.GetInteger("Flags")
		desc.FixedPitch = flags&1 != 0
		desc.Serif = flags&2 != 0
		desc.Italic = desc.Italic || flags&64 != 0
	}
	if sub, err := resolver(desc); err == nil && sub.FontFamily != "" {
		font.FontFamily = sub.FontFamily
	}
	return font, nil
}

func parseToUnicode(reader *parser.Reader, dict *parser.Dictionary) map[uint32]rune {
	obj := reader.Resolve(dict.Get("ToUnicode"))
	stream, ok := obj.(*parser.Stream)
	if !ok {
		return nil
	}
	data, err := stream.Decode()
	if err != nil {
		return nil
	}
	mappings, err := fonts.ParseToUnicodeCMap(data)
	if err != nil {
		return nil
	}
	out := make(map[uint32]rune, len(mappings))
	for _, m := range mappings {
		out[uint32(m.Code)] = m.Rune
	}
	return out
}

func buildSimpleFont(reader *parser.Reader, dict *parser.Dictionary, baseFontName string, toUnicode map[uint32]rune, emitter *svgdom.Emitter) (*LoadedFont, error) {
	firstChar := dict.GetInteger("FirstChar")
	lastChar := dict.GetInteger("LastChar")
	widthsArr := reader.Resolve(dict.Get("Widths"))

	widths := make(map[uint32]float64)
	if arr, ok := widthsArr.(*parser.Array); ok {
		for i := 0; i < arr.Len(); i++ {
			widths[uint32(firstChar)+uint32(i)] = asFloat(reader.Resolve(arr.Get(i)))
		}
	}

	// Non-embedded standard fonts routinely omit /Widths, relying on the
	// reader's built-in AFM metrics for the 14 base fonts (PDF 1.7 9.6.2.2).
	standardMetrics := fonts.GetMetrics(baseFontName)

	missingWidth := 500.0
	if fd, ok := reader.Resolve(dict.Get("FontDescriptor")).(*parser.Dictionary); ok && fd.Has("MissingWidth") {
		missingWidth = fd.GetReal("MissingWidth")
	}

	baseEncodingName, differences := resolveEncoding(reader, dict)
	if baseEncodingName == "" && standardMetrics != nil && baseFontName != "Symbol" && baseFontName != "ZapfDingbats" {
		// PDF 1.7 9.6.6.2: absent /Encoding on a non-symbolic font falls
		// back to the font's built-in encoding, StandardEncoding for the
		// non-symbolic standard 14 fonts.
		baseEncodingName = "StandardEncoding"
	}

	codes := make([]uint32, 0, 256)
	if lastChar >= firstChar && firstChar >= 0 {
		for code := firstChar; code <= lastChar; code++ {
			codes = append(codes, uint32(code))
		}
	} else {
		for code := uint32(0); code <= 0xFF; code++ {
			codes = append(codes, code)
		}
	}

	src := fonts.FontSource{
		ToUnicode:    toUnicode,
		BaseEncoding: baseEncodingName,
		Differences:  differences,
		Codes:        codes,
	}
	cm, fontProgram, fontFormat := buildCharMap(reader, dict, src)

	if standardMetrics != nil {
		for _, code := range codes {
			if _, explicit := widths[code]; explicit {
				continue
			}
			if entry, ok := cm.Lookup(code); ok && !entry.NotDef {
				widths[code] = float64(standardMetrics.GetCharWidth(entry.Unicode))
			}
		}
	}

	family, bold, italic := cssFontFamily(baseFontName)
	family = embedFontFamily(emitter, fontFormat, fontProgram, family)
	return &LoadedFont{
		CharMap:      cm,
		Widths:       widths,
		DefaultWidth: missingWidth,
		Is2Byte:      false,
		FontFamily:   family,
		Bold:         bold,
		Italic:       italic,
	}, nil
}

// buildCharMap builds src's CharMap, embedding the font program from
// dict's /FontDescriptor /FontFile2 (TrueType) stream when one is
// present and parses cleanly: spec.md's CharMap invariant (b) requires
// PUA disambiguation only when a glyph program is actually going to be
// inlined, so extraction mode (no PUA remap) remains correct for every
// font this converter can't embed (/FontFile and /FontFile3 programs,
// and any /FontFile2 that fails to parse). Returns the font program
// bytes and its sfnt format name alongside the CharMap so the caller
// can register an @font-face rule.
func buildCharMap(reader *parser.Reader, dict *parser.Dictionary, src fonts.FontSource) (*fonts.CharMap, []byte, string) {
	data, ok := loadEmbeddedFontProgram(reader, dict)
	if !ok {
		return fonts.NewCharMapForExtraction(src), nil, ""
	}
	ttf, err := fonts.ParseTTF(data)
	if err != nil {
		return fonts.NewCharMapForExtraction(src), nil, ""
	}
	src.EmbeddedCMap = ttf.EmbeddedCharMap(src)
	return fonts.NewCharMapForEmbedding(src), data, "truetype"
}

// loadEmbeddedFontProgram reads fontDescDict's /FontFile2 stream, the
// only embedded-program format this converter's TTF reader
// understands. /FontFile (Type 1) and /FontFile3 (CFF/OpenType) font
// programs are left unparsed; their text still renders, just without
// an inlined glyph program, via the CSS fallback font-family.
func loadEmbeddedFontProgram(reader *parser.Reader, fontDescDict *parser.Dictionary) ([]byte, bool) {
	fd, ok := reader.Resolve(fontDescDict.Get("FontDescriptor")).(*parser.Dictionary)
	if !ok {
		return nil, false
	}
	stream, ok := reader.Resolve(fd.Get("FontFile2")).(*parser.Stream)
	if !ok {
		return nil, false
	}
	data, err := stream.Decode()
	if err != nil {
		return nil, false
	}
	return data, true
}

// embedFontFamily registers fontProgram as an inline @font-face rule
// (when non-nil and emitter is available) and prepends its generated
// family name to fallback, so a browser that for some reason can't
// parse the embedded program still falls back to the name-based guess.
func embedFontFamily(emitter *svgdom.Emitter, format string, fontProgram []byte, fallback string) string {
	if emitter == nil || fontProgram == nil {
		return fallback
	}
	embedded := emitter.EmbedFontFace(format, fontProgram)
	return embedded + ", " + fallback
}

// resolveEncoding reads /Encoding, which is either a bare name
// (WinAnsiEncoding, MacRomanEncoding, MacExpertEncoding) or a
// dictionary naming a /BaseEncoding plus a /Differences array of
// [code name name ... code name ...] entries (PDF 1.7 9.6.6.2).
func resolveEncoding(reader *parser.Reader, dict *parser.Dictionary) (string, map[uint32]string) {
	obj := reader.Resolve(dict.Get("Encoding"))
	switch v := obj.(type) {
	case *parser.Name:
		return v.Value(), nil
	case *parser.Dictionary:
		base := ""
		if n := v.GetName("BaseEncoding"); n != nil {
			base = n.Value()
		}
		var diffs map[uint32]string
		if arr, ok := reader.Resolve(v.Get("Differences")).(*parser.Array); ok {
			diffs = parseDifferences(reader, arr)
		}
		return base, diffs
	default:
		return "", nil
	}
}

func parseDifferences(reader *parser.Reader, arr *parser.Array) map[uint32]string {
	out := make(map[uint32]string)
	current := uint32(0)
	for i := 0; i < arr.Len(); i++ {
		item := reader.Resolve(arr.Get(i))
		switch v := item.(type) {
		case *parser.Integer:
			current = uint32(v.Value())
		case *parser.Real:
			current = uint32(v.Value())
		case *parser.Name:
			out[current] = v.Value()
			current++
		}
	}
	return out
}

// buildType0Font handles composite (CID-keyed) fonts: two-byte codes
// under Identity-H/Identity-V in the overwhelming majority of
// producers, with per-CID widths from the descendant font's /W array
// (PDF 1.7 9.7.4.3) and /DW default width. Only the ToUnicode path
// resolves characters for Type0 fonts; a font that omits /ToUnicode
// renders as .notdef for every code.
func buildType0Font(reader *parser.Reader, dict *parser.Dictionary, baseFontName string, toUnicode map[uint32]rune, emitter *svgdom.Emitter) (*LoadedFont, error) {
	descFonts, _ := reader.Resolve(dict.Get("DescendantFonts")).(*parser.Array)
	var descendant *parser.Dictionary
	if descFonts != nil && descFonts.Len() > 0 {
		descendant, _ = reader.Resolve(descFonts.Get(0)).(*parser.Dictionary)
	}

	defaultWidth := 1000.0
	widths := make(map[uint32]float64)
	if descendant != nil {
		if descendant.Has("DW") {
			defaultWidth = descendant.GetReal("DW")
		}
		if wArr, ok := reader.Resolve(descendant.Get("W")).(*parser.Array); ok {
			parseCIDWidths(reader, wArr, widths)
		}
	}

	codes := make([]uint32, 0, len(toUnicode)+len(widths))
	seen := make(map[uint32]bool)
	for code := range toUnicode {
		if !seen[code] {
			codes = append(codes, code)
			seen[code] = true
		}
	}
	for code := range widths {
		if !seen[code] {
			codes = append(codes, code)
			seen[code] = true
		}
	}

	src := fonts.FontSource{ToUnicode: toUnicode, Codes: codes}
	cm, fontProgram, fontFormat := buildCharMapCID(reader, descendant, src)

	family, bold, italic := cssFontFamily(baseFontName)
	family = embedFontFamily(emitter, fontFormat, fontProgram, family)
	return &LoadedFont{
		CharMap:      cm,
		Widths:       widths,
		DefaultWidth: defaultWidth,
		Is2Byte:      true,
		FontFamily:   family,
		Bold:         bold,
		Italic:       italic,
	}, nil
}

// buildCharMapCID mirrors buildCharMap for composite fonts: the
// descendant CIDFont dictionary (not the outer Type0 dictionary)
// carries /FontDescriptor. Glyph-index resolution for an embedded CID
// font assumes the default /CIDToGIDMap (Identity) that Identity-H/
// Identity-V producers use: CID equals GID equals the raw 2-byte code,
// matching buildType0Font's existing Identity-only character
// resolution above.
func buildCharMapCID(reader *parser.Reader, descendant *parser.Dictionary, src fonts.FontSource) (*fonts.CharMap, []byte, string) {
	if descendant == nil {
		return fonts.NewCharMapForExtraction(src), nil, ""
	}
	data, ok := loadEmbeddedFontProgram(reader, descendant)
	if !ok {
		return fonts.NewCharMapForExtraction(src), nil, ""
	}
	if _, err := fonts.ParseTTF(data); err != nil {
		return fonts.NewCharMapForExtraction(src), nil, ""
	}

	embedded := make(map[uint32]int, len(src.Codes))
	for _, code := range src.Codes {
		embedded[code] = int(code)
	}
	src.EmbeddedCMap = embedded
	return fonts.NewCharMapForEmbedding(src), data, "truetype"
}

// parseCIDWidths parses a /W array: each entry is either
// `cFirst [w1 w2 ... wn]` (individual widths for cFirst..cFirst+n-1) or
// `cFirst cLast w` (one width applied to the whole range).
func parseCIDWidths(reader *parser.Reader, arr *parser.Array, out map[uint32]float64) {
	i := 0
	for i < arr.Len() {
		first := uint32(asInt(reader.Resolve(arr.Get(i))))
		i++
		if i >= arr.Len() {
			break
		}
		next := reader.Resolve(arr.Get(i))
		if sub, ok := next.(*parser.Array); ok {
			for j := 0; j < sub.Len(); j++ {
				out[first+uint32(j)] = asFloat(reader.Resolve(sub.Get(j)))
			}
			i++
			continue
		}
		last := uint32(asInt(next))
		i++
		if i >= arr.Len() {
			break
		}
		w := asFloat(reader.Resolve(arr.Get(i)))
		i++
		for c := first; c <= last; c++ {
			out[c] = w
		}
	}
}

// cssFontFamily turns a PDF BaseFont name (often subset-tagged, e.g.
// "ABCDEF+Helvetica-BoldOblique") into a CSS font-family stack plus
// bold/italic flags: the fallback a reader falls back to when a font
// program isn't embedded (or couldn't be parsed) and the closest
// installed system font has to stand in for the text instead. When a
// program is embedded, embedFontFamily prepends its own @font-face
// family name ahead of this fallback.
func cssFontFamily(baseFont string) (family string, bold, italic bool) {
	name := baseFont
	if idx := strings.IndexByte(name, '+'); idx == 6 {
		name = name[idx+1:]
	}
	lower := strings.ToLower(name)
	bold = strings.Contains(lower, "bold")
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")

	switch {
	case strings.Contains(lower, "times") || strings.Contains(lower, "serif") || strings.Contains(lower, "georgia") || strings.Contains(lower, "minion"):
		return "Times New Roman, Times, serif", bold, italic
	case strings.Contains(lower, "courier") || strings.Contains(lower, "mono") || strings.Contains(lower, "consolas"):
		return "Courier New, Courier, monospace", bold, italic
	case strings.Contains(lower, "symbol"):
		return "Symbol", bold, italic
	case strings.Contains(lower, "zapfdingbats") || strings.Contains(lower, "wingdings"):
		return "Wingdings", bold, italic
	case name == "":
		return "Helvetica, Arial, sans-serif", bold, italic
	default:
		return fmt.Sprintf("%s, Helvetica, Arial, sans-serif", name), bold, italic
	}
}
