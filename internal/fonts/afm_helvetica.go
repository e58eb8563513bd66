package fonts

// AFM data for Helvetica font family.
// Data source: Adobe Font Metrics (AFM) files for Standard 14 fonts.

// helveticaMetrics contains metrics for Helvetica (regular).
var helveticaMetrics = &FontMetrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	XHeight:      523,
	DefaultWidth: 278, // space width
	CharWidths:   helveticaWidths,
}

// helveticaBoldMetrics contains metrics for Helvetica-Bold.
var helveticaBoldMetrics = &FontMetrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	XHeight:      532,
	DefaultWidth: 278,
	CharWidths:   helveticaBoldWidths,
}

// helveticaObliqueMetrics contains metrics for Helvetica-Oblique.
// Oblique is a sheared rendering of the regular glyphs, so it shares
// the regular family's widths (PDF 1.7 9.6.5 Standard 14 metrics).
var helveticaObliqueMetrics = &FontMetrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	XHeight:      523,
	DefaultWidth: 278,
	CharWidths:   helveticaWidths,
}

// helveticaBoldObliqueMetrics contains metrics for Helvetica-BoldOblique.
var helveticaBoldObliqueMetrics = &FontMetrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	XHeight:      532,
	DefaultWidth: 278,
	CharWidths:   helveticaBoldWidths,
}

// helveticaWidths contains character widths for Helvetica/Helvetica-Oblique.
//
//nolint:gochecknoglobals,dupl // Font metrics are intentionally global constants
var helveticaWidths = map[rune]int{
	' ': 278, '!': 278, '"': 355, '#': 556, '$': 556, '%': 889, '&': 667, '\'': 191,
	'(': 333, ')': 333, '*': 389, '+': 584, ',': 278, '-': 333, '.': 278, '/': 278,
	'0': 556, '1': 556, '2': 556, '3': 556, '4': 556, '5': 556, '6': 556, '7': 556,
	'8': 556, '9': 556, ':': 278, ';': 278, '<': 584, '=': 584, '>': 584, '?': 556,
	'@': 1015,
	'A': 667, 'B': 667, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778, 'H': 722,
	'I': 278, 'J': 500, 'K': 667, 'L': 556, 'M': 833, 'N': 722, 'O': 778, 'P': 667,
	'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722, 'V': 667, 'W': 944, 'X': 667,
	'Y': 667, 'Z': 611,
	'[': 278, '\\': 278, ']': 278, '^': 469, '_': 556, '`': 333,
	'a': 556, 'b': 556, 'c': 500, 'd': 556, 'e': 556, 'f': 278, 'g': 556, 'h': 556,
	'i': 222, 'j': 222, 'k': 500, 'l': 222, 'm': 833, 'n': 556, 'o': 556, 'p': 556,
	'q': 556, 'r': 333, 's': 500, 't': 278, 'u': 556, 'v': 500, 'w': 722, 'x': 500,
	'y': 500, 'z': 500,
	'{': 334, '|': 260, '}': 334, '~': 584,
	'À': 667, 'Á': 667, 'Â': 667, 'Ã': 667, 'Ä': 667, 'Å': 667, 'Æ': 1000, 'Ç': 722,
	'È': 667, 'É': 667, 'Ê': 667, 'Ë': 667, 'Ì': 278, 'Í': 278, 'Î': 278, 'Ï': 278,
	'Ð': 722, 'Ñ': 722, 'Ò': 778, 'Ó': 778, 'Ô': 778, 'Õ': 778, 'Ö': 778, '×': 584,
	'Ø': 778, 'Ù': 722, 'Ú': 722, 'Û': 722, 'Ü': 722, 'Ý': 667, 'Þ': 667, 'ß': 611,
	'à': 556, 'á': 556, 'â': 556, 'ã': 556, 'ä': 556, 'å': 556, 'æ': 889, 'ç': 500,
	'è': 556, 'é': 556, 'ê': 556, 'ë': 556, 'ì': 222, 'í': 222, 'î': 222, 'ï': 222,
	'ð': 556, 'ñ': 556, 'ò': 556, 'ó': 556, 'ô': 556, 'õ': 556, 'ö': 556, '÷': 584,
	'ø': 611, 'ù': 556, 'ú': 556, 'û': 556, 'ü': 556, 'ý': 500, 'þ': 556, 'ÿ': 500,
	'€': 556,
}

// helveticaBoldWidths contains character widths for Helvetica-Bold/-BoldOblique.
//
//nolint:gochecknoglobals,dupl // Font metrics are intentionally global constants
var helveticaBoldWidths = map[rune]int{
	' ': 278, '!': 333, '"': 474, '#': 556, '$': 556, '%': 889, '&': 722, '\'': 238,
	'(': 333, ')': 333, '*': 389, '+': 584, ',': 278, '-': 333, '.': 278, '/': 278,
	'0': 556, '1': 556, '2': 556, '3': 556, '4': 556, '5': 556, '6': 556, '7': 556,
	'8': 556, '9': 556, ':': 333, ';': 333, '<': 584, '=': 584, '>': 584, '?': 611,
	'@': 975,
	'A': 722, 'B': 722, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778, 'H': 722,
	'I': 278, 'J': 556, 'K': 722, 'L': 611, 'M': 833, 'N': 722, 'O': 778, 'P': 667,
	'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722, 'V': 667, 'W': 944, 'X': 667,
	'Y': 667, 'Z': 611,
	'[': 333, '\\': 278, ']': 333, '^': 584, '_': 556, '`': 333,
	'a': 556, 'b': 611, 'c': 556, 'd': 611, 'e': 556, 'f': 333, 'g': 611, 'h': 611,
	'i': 278, 'j': 278, 'k': 556, 'l': 278, 'm': 889, 'n': 611, 'o': 611, 'p': 611,
	'q': 611, 'r': 389, 's': 556, 't': 333, 'u': 611, 'v': 556, 'w': 778, 'x': 556,
	'y': 556, 'z': 500,
	'{': 389, '|': 280, '}': 389, '~': 584,
	'ß': 611, '€': 556,
}
