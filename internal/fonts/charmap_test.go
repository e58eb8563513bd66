package fonts

import "testing"

// TestAllocatePUA_StopsAtF8FF verifies the allocator never wraps back to
// U+E000 once the Private Use Area is exhausted; the glyph that doesn't
// fit is the caller's responsibility to leave as .notdef.
func TestAllocatePUA_StopsAtF8FF(t *testing.T) {
	used := make(map[rune]bool)
	for r := rune(0xE000); r <= 0xF8FF; r++ {
		used[r] = true
	}

	next := rune(0xE000)
	_, ok := allocatePUA(used, &next)
	if ok {
		t.Fatal("expected allocation to fail once the PUA is fully used")
	}
}

// TestAllocatePUA_SkipsUsedSlots verifies the allocator advances past
// slots already claimed by an earlier collision.
func TestAllocatePUA_SkipsUsedSlots(t *testing.T) {
	used := map[rune]bool{0xE000: true, 0xE001: true}
	next := rune(0xE000)

	got, ok := allocatePUA(used, &next)
	if !ok {
		t.Fatal("expected an allocation to succeed")
	}
	if got != 0xE002 {
		t.Errorf("expected 0xE002, got 0x%04X", got)
	}
}

// TestBuild_PUACollisionRemapsSecondGlyph verifies two codes resolving
// to the same Unicode code point get distinct code points in embedding
// mode, so a <text> run can select the right glyph unambiguously.
func TestBuild_PUACollisionRemapsSecondGlyph(t *testing.T) {
	src := FontSource{
		ToUnicode: map[uint32]rune{1: 'A', 2: 'A'},
		Codes:     []uint32{1, 2},
	}
	cm := NewCharMapForEmbedding(src)

	e1, _ := cm.Lookup(1)
	e2, _ := cm.Lookup(2)
	if e1.Unicode != 'A' {
		t.Errorf("expected first occurrence to keep 'A', got %q", e1.Unicode)
	}
	if e2.Unicode == 'A' || e2.NotDef {
		t.Errorf("expected second occurrence remapped into the PUA, got %q (notdef=%v)", e2.Unicode, e2.NotDef)
	}
	if e2.Unicode < 0xE000 || e2.Unicode > 0xF8FF {
		t.Errorf("expected remapped code point within the PUA, got %04X", e2.Unicode)
	}
}

// TestBuild_ExtractionModeAllowsDuplicates verifies extraction mode
// (no embedded glyph program to disambiguate) performs no PUA remap.
func TestBuild_ExtractionModeAllowsDuplicates(t *testing.T) {
	src := FontSource{
		ToUnicode: map[uint32]rune{1: 'A', 2: 'A'},
		Codes:     []uint32{1, 2},
	}
	cm := NewCharMapForExtraction(src)

	e1, _ := cm.Lookup(1)
	e2, _ := cm.Lookup(2)
	if e1.Unicode != 'A' || e2.Unicode != 'A' {
		t.Errorf("expected both codes to resolve to 'A' in extraction mode, got %q and %q", e1.Unicode, e2.Unicode)
	}
}

// TestNormalizeLigature verifies ligature presentation-form code points
// pass through unchanged (the table is an identity canon today, but the
// lookup itself is what collision-check ordering depends on) and that
// unrelated runes are untouched.
func TestNormalizeLigature(t *testing.T) {
	cases := []struct {
		in, want rune
	}{
		{0xFB01, 0xFB01}, // fi
		{0xFB00, 0xFB00}, // ff
		{'A', 'A'},
		{0x1234, 0x1234},
	}
	for _, c := range cases {
		if got := normalizeLigature(c.in); got != c.want {
			t.Errorf("normalizeLigature(%04X) = %04X, want %04X", c.in, got, c.want)
		}
	}
}

// TestBuild_LigaturesCollideAsOneUnit verifies two codes whose ToUnicode
// destinations both resolve to the same ligature code point remap
// against each other rather than being treated as distinct units
// (spec.md 4.6's ligature-normalization-before-collision-check step).
func TestBuild_LigaturesCollideAsOneUnit(t *testing.T) {
	src := FontSource{
		ToUnicode: map[uint32]rune{1: 0xFB01, 2: 0xFB01},
		Codes:     []uint32{1, 2},
	}
	cm := NewCharMapForEmbedding(src)

	e1, _ := cm.Lookup(1)
	e2, _ := cm.Lookup(2)
	if e1.Unicode != 0xFB01 {
		t.Errorf("expected first occurrence to keep the ligature code point, got %04X", e1.Unicode)
	}
	if e2.Unicode == 0xFB01 {
		t.Errorf("expected second occurrence remapped away from the ligature code point")
	}
}
