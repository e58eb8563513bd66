package fonts

// AFM data for the two symbolic Standard 14 fonts, Symbol and
// ZapfDingbats. Both use a non-Latin encoding, so their width tables
// are keyed by the Unicode code point a caller substitutes for the
// symbol/dingbat glyph rather than by WinAnsi code, matching how
// internal/interpreter's fontcache.go resolves a code to Unicode via
// the font's CharMap before ever consulting these metrics.

// symbolMetrics contains metrics for Symbol.
var symbolMetrics = &FontMetrics{
	Ascender:     1010,
	Descender:    -293,
	CapHeight:    700,
	XHeight:      500,
	DefaultWidth: 250,
	CharWidths:   symbolWidths,
}

// zapfDingbatsMetrics contains metrics for ZapfDingbats.
var zapfDingbatsMetrics = &FontMetrics{
	Ascender:     820,
	Descender:    -143,
	CapHeight:    700,
	XHeight:      500,
	DefaultWidth: 278,
	CharWidths:   zapfDingbatsWidths,
}

// symbolWidths covers the Greek alphabet and common math symbols Symbol
// provides in place of Latin letters.
//
//nolint:gochecknoglobals // Font metrics are intentionally global constants
var symbolWidths = map[rune]int{
	' ': 250,
	'Α': 722, 'Β': 667, 'Γ': 603, 'Δ': 612, 'Ε': 611, 'Ζ': 722, 'Η': 722, 'Θ': 741,
	'Ι': 333, 'Κ': 722, 'Λ': 686, 'Μ': 889, 'Ν': 722, 'Ξ': 645, 'Ο': 722, 'Π': 768,
	'Ρ': 556, 'Σ': 592, 'Τ': 611, 'Υ': 690, 'Φ': 763, 'Χ': 722, 'Ψ': 795, 'Ω': 768,
	'α': 631, 'β': 549, 'γ': 411, 'δ': 494, 'ε': 439, 'ζ': 494, 'η': 603, 'θ': 521,
	'ι': 329, 'κ': 549, 'λ': 549, 'μ': 576, 'ν': 521, 'ξ': 493, 'ο': 549, 'π': 549,
	'ρ': 549, 'σ': 603, 'τ': 439, 'υ': 576, 'φ': 521, 'χ': 549, 'ψ': 713, 'ω': 686,
	'≈': 549, '≠': 549, '≤': 549, '≥': 549, '±': 549, '∞': 713, '∑': 713, '√': 549,
	'∂': 494, '∆': 612, '∇': 713,
}

// zapfDingbatsWidths covers a small, commonly-used subset of dingbats.
//
//nolint:gochecknoglobals // Font metrics are intentionally global constants
var zapfDingbatsWidths = map[rune]int{
	' ': 278,
	'✓': 794, '✔': 794, '✗': 746, '✘': 746,
	'★': 788, '☆': 788, '●': 791, '○': 791, '■': 761, '□': 761,
	'✂': 848, '✉': 890, '✈': 890, '☎': 890,
	'❶': 788, '❷': 788, '❸': 788,
}
