package fonts

// FontSource gathers every input a CharMap build draws from: the font's
// ToUnicode CMap (already flattened to code->rune by ParseToUnicodeCMap),
// its declared base encoding name, any /Encoding/Differences glyph
// names, an embedded font program's code->glyph-index table, and the
// full domain of codes that appear on the page (from the content stream
// and/or the font's /Widths array).
type FontSource struct {
	ToUnicode    map[uint32]rune
	BaseEncoding string // "WinAnsiEncoding", "MacRomanEncoding", "MacExpertEncoding", "StandardEncoding", or ""
	Differences  map[uint32]string
	EmbeddedCMap map[uint32]int // code -> glyph index, from the font program's own cmap/encoding
	Codes        []uint32
}

// CharMapEntry is the resolved output for one input code: the Unicode
// code point to draw as SVG text, and (when embedding the font program)
// the glyph index within that program. GlyphIndex is -1 when unknown.
type CharMapEntry struct {
	Unicode    rune
	GlyphIndex int
	NotDef     bool
}

// CharMap is the code->(Unicode, glyph) table for one font, built once
// per font and safe for concurrent read afterward (population happens
// entirely inside the constructor, so there is no mutable state to
// race on once a CharMap is returned).
//
// Reference: spec's 6-priority font-subsystem build order; see
// NewCharMapForEmbedding/NewCharMapForExtraction.
type CharMap struct {
	embedding bool
	entries   map[uint32]CharMapEntry
}

// NewCharMapForEmbedding builds a CharMap for embedding the font program
// into the SVG output: Unicode code points are made unique per glyph
// index by remapping collisions into the Private Use Area (U+E000 to
// U+F8FF), so that the emitted `<text>` content unambiguously selects
// the intended embedded glyph.
func NewCharMapForEmbedding(src FontSource) *CharMap {
	return build(src, true)
}

// NewCharMapForExtraction builds a CharMap for plain text output (no
// embedded glyph program to disambiguate): duplicates are resolved
// first-wins and no PUA remap is performed, per spec's text-extraction
// mode.
func NewCharMapForExtraction(src FontSource) *CharMap {
	return build(src, false)
}

func build(src FontSource, embedding bool) *CharMap {
	cm := &CharMap{embedding: embedding, entries: make(map[uint32]CharMapEntry, len(src.Codes))}

	used := make(map[rune]bool)
	nextPUA := rune(0xE000)

	for _, code := range src.Codes {
		glyphIndex := -1
		if gi, ok := src.EmbeddedCMap[code]; ok {
			glyphIndex = gi
		}

		u, ok := resolveUnicode(src, code)
		if !ok {
			cm.entries[code] = CharMapEntry{Unicode: 0xFFFD, GlyphIndex: glyphIndex, NotDef: true}
			continue
		}
		u = normalizeLigature(u)

		if embedding {
			if used[u] {
				remapped, ok := allocatePUA(used, &nextPUA)
				if !ok {
					// PUA exhausted: leave this glyph as .notdef rather than
					// reuse a slot and silently alias two different glyphs.
					cm.entries[code] = CharMapEntry{Unicode: 0xFFFD, GlyphIndex: glyphIndex, NotDef: true}
					continue
				}
				u = remapped
			}
			used[u] = true
		}

		cm.entries[code] = CharMapEntry{Unicode: u, GlyphIndex: glyphIndex}
	}

	return cm
}

// ligatureCanon holds the Latin ligature presentation-form code points
// (fi, fl, ff, ffi, ffl, long-s-t, st) a /Differences glyph name or a
// ToUnicode destination can resolve to. normalizeLigature runs before
// the embedding collision check so these always collide (and PUA-remap)
// as a single unit rather than depending on which resolution path
// happened to produce the code point first.
var ligatureCanon = map[rune]rune{
	0xFB00: 0xFB00, // ff
	0xFB01: 0xFB01, // fi
	0xFB02: 0xFB02, // fl
	0xFB03: 0xFB03, // ffi
	0xFB04: 0xFB04, // ffl
	0xFB05: 0xFB05, // long s + t
	0xFB06: 0xFB06, // st
}

func normalizeLigature(u rune) rune {
	if canon, ok := ligatureCanon[u]; ok {
		return canon
	}
	return u
}

// resolveUnicode implements priorities (1), (2)/(5) and (6) of the
// 6-priority chain. Priority (3) (font-internal cmap) contributes only
// GlyphIndex in this model, since a raw code->glyph-index table carries
// no Unicode of its own without inverting the font program's cmap
// subtable; priority (4) (multi-character ToUnicode) collapses into (1)
// here because ParseToUnicodeCMap already resolves bfchar/bfrange
// destinations to a single rune (see its doc comment) rather than
// preserving ligature sequences, and priorities (2) and (5) collapse
// into one Differences->AGL lookup for the same reason: our model has
// no separate "named glyph found directly in the base encoding's literal
// table" step distinct from "named glyph found via the Adobe Glyph
// List" — both go through the same decode path below.
func resolveUnicode(src FontSource, code uint32) (rune, bool) {
	if u, ok := src.ToUnicode[code]; ok && !isControl(u) {
		return u, true
	}

	if name, ok := src.Differences[code]; ok {
		if u, ok := AdobeGlyphList()[name]; ok && !isControl(u) {
			return u, true
		}
	}

	if src.BaseEncoding != "" && code <= 0xFF {
		if u, ok := decodeBaseEncoding(src.BaseEncoding, byte(code)); ok && !isControl(u) {
			return u, true
		}
	}

	return 0, false
}

func decodeBaseEncoding(name string, b byte) (rune, bool) {
	switch name {
	case "WinAnsiEncoding":
		return DecodeWinAnsi(b), true
	case "MacRomanEncoding":
		return DecodeMacRoman(b), true
	case "MacExpertEncoding":
		r := DecodeMacExpertEncoding(b)
		return r, r != 0xFFFD
	case "StandardEncoding":
		r := DecodeStandardEncoding(b)
		return r, r != 0xFFFD
	default:
		return 0, false
	}
}

func isControl(r rune) bool {
	return r < 0x20 && r != '\n' && r != '\t'
}

// allocatePUA returns the next unused Private Use Area (U+E000-U+F8FF)
// code point for collision remapping. The allocator stops at U+F8FF
// rather than wrapping back to U+E000: once every PUA slot is taken,
// the glyph that does not fit is left as .notdef by the caller instead
// of reusing an already-assigned slot and aliasing two glyphs.
func allocatePUA(used map[rune]bool, next *rune) (rune, bool) {
	for r := *next; r <= 0xF8FF; r++ {
		if !used[r] {
			*next = r + 1
			return r, true
		}
	}
	*next = 0xF900
	return 0, false
}

// Lookup returns the resolved entry for code, and whether code is in
// this CharMap's domain at all (a code outside the domain is a caller
// bug, not a `.notdef` glyph — use Entry.NotDef to distinguish
// ".notdef" from "never looked up").
func (c *CharMap) Lookup(code uint32) (CharMapEntry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Len reports how many codes this CharMap resolves.
func (c *CharMap) Len() int {
	return len(c.entries)
}

// Embedding reports whether this CharMap was built in embedding mode
// (PUA collision remap applied) rather than extraction mode.
func (c *CharMap) Embedding() bool {
	return c.embedding
}
