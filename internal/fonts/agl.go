package fonts

import "sync"

// AdobeGlyphList returns the process-wide Adobe Glyph List subset (glyph
// name -> Unicode code point), used to resolve /Encoding/Differences
// entries that name a glyph rather than give it a byte value directly.
// The table is built once per process: it never changes at runtime, so
// sharing it across every CharMap avoids rebuilding a couple hundred map
// entries per font.
//
// Reference: Adobe Glyph List Specification v2.0
// (https://github.com/adobe-type-tools/agl-aglfn); this is a practical
// subset covering the names actually seen in /Differences arrays in the
// wild.
var AdobeGlyphList = sync.OnceValue(buildAdobeGlyphList)

func buildAdobeGlyphList() map[string]rune {
	table := map[string]rune{
		// Digits
		"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
		"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',

		// Basic punctuation
		"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
		"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
		"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
		"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
		"colon": ':', "semicolon": ';', "less": '<', "equal": '=',
		"greater": '>', "question": '?', "at": '@', "bracketleft": '[',
		"backslash": '\\', "bracketright": ']', "asciicircum": '^',
		"underscore": '_', "grave": '`', "braceleft": '{', "bar": '|',
		"braceright": '}', "asciitilde": '~', "quoteright": '’',
		"quoteleft": '‘',

		// Uppercase Latin
		"A": 'A', "B": 'B', "C": 'C', "D": 'D', "E": 'E', "F": 'F', "G": 'G',
		"H": 'H', "I": 'I', "J": 'J', "K": 'K', "L": 'L', "M": 'M', "N": 'N',
		"O": 'O', "P": 'P', "Q": 'Q', "R": 'R', "S": 'S', "T": 'T', "U": 'U',
		"V": 'V', "W": 'W', "X": 'X', "Y": 'Y', "Z": 'Z',

		// Lowercase Latin
		"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
		"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
		"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
		"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',

		// Accented Latin (lowercase)
		"agrave": 'à', "aacute": 'á', "acircumflex": 'â',
		"atilde": 'ã', "adieresis": 'ä', "aring": 'å',
		"egrave": 'è', "eacute": 'é', "ecircumflex": 'ê',
		"edieresis": 'ë', "igrave": 'ì', "iacute": 'í',
		"icircumflex": 'î', "idieresis": 'ï', "ntilde": 'ñ',
		"ograve": 'ò', "oacute": 'ó', "ocircumflex": 'ô',
		"otilde": 'õ', "odieresis": 'ö', "oslash": 'ø',
		"ugrave": 'ù', "uacute": 'ú', "ucircumflex": 'û',
		"udieresis": 'ü', "yacute": 'ý', "ydieresis": 'ÿ',
		"ccedilla": 'ç', "ae": 'æ',

		// Accented Latin (uppercase)
		"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â',
		"Atilde": 'Ã', "Adieresis": 'Ä', "Aring": 'Å',
		"Egrave": 'È', "Eacute": 'É', "Ecircumflex": 'Ê',
		"Edieresis": 'Ë', "Igrave": 'Ì', "Iacute": 'Í',
		"Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
		"Ocircumflex": 'Ô', "Otilde": 'Õ', "Odieresis": 'Ö',
		"Oslash": 'Ø', "Ugrave": 'Ù', "Uacute": 'Ú',
		"Ucircumflex": 'Û', "Udieresis": 'Ü', "Yacute": 'Ý',
		"Ccedilla": 'Ç', "AE": 'Æ',

		// Currency and common symbols
		"cent": '¢', "sterling": '£', "yen": '¥',
		"Euro": '€', "currency": '¤', "degree": '°',
		"mu": 'µ', "section": '§', "paragraph": '¶',
		"copyright": '©', "registered": '®', "trademark": '™',
		"bullet": '•', "dagger": '†', "daggerdbl": '‡',
		"ellipsis": '…', "florin": 'ƒ', "fraction": '⁄',
		"perthousand": '‰', "exclamdown": '¡', "questiondown": '¿',

		// Math symbols
		"multiply": '×', "divide": '÷', "plusminus": '±',
		"onehalf": '½', "onequarter": '¼', "threequarters": '¾',
		"onesuperior": '¹', "twosuperior": '²', "threesuperior": '³',
		"notequal": '≠', "lessequal": '≤', "greaterequal": '≥',
		"infinity": '∞', "summation": '∑', "radical": '√',

		// Dashes and quotes
		"endash": '–', "emdash": '—',
		"quotedblleft": '“', "quotedblright": '”',
		"quotesinglbase": '‚', "quotedblbase": '„',
		"guillemotleft": '«', "guillemotright": '»',
		"guilsinglleft": '‹', "guilsinglright": '›',

		// Spaces
		"nbspace": ' ', "emspace": ' ', "enspace": ' ',
		"thinspace": ' ',

		// Arrows
		"arrowleft": '←', "arrowup": '↑', "arrowright": '→',
		"arrowdown": '↓', "arrowboth": '↔',

		// Card suits
		"club": '♣', "diamond": '♦', "heart": '♥', "spade": '♠',
	}
	for name, r := range ligatureGlyphs() {
		table[name] = r
	}
	return table
}

// ligatureGlyphs returns the small set of Latin typographic ligatures a
// font's /Differences array may name directly (most commonly in
// Expert/Old-Style font variants).
func ligatureGlyphs() map[string]rune {
	return map[string]rune{
		"fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ',
		"ffi": 'ﬃ', "ffl": 'ﬄ',
	}
}
