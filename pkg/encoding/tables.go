// Package encoding implements the PDF simple-font base encodings
// (StandardEncoding, WinAnsiEncoding, MacRomanEncoding, MacExpertEncoding,
// Symbol, ZapfDingbats), the /Differences array patching rules, and glyph
// name to Unicode resolution via an Adobe Glyph List subset.
package encoding

// Table maps a character code (0-255) to a PostScript glyph name, without
// the leading slash used in PDF /Name token syntax.
type Table map[int]string

// Clone returns an independent copy of t, used as the starting point for
// applying a /Differences array without mutating a shared base table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Base returns one of the six predefined base encodings by its PDF
// /Encoding name (e.g. "WinAnsiEncoding"), or false if name does not
// identify one.
func Base(name string) (Table, bool) {
	switch name {
	case "StandardEncoding":
		return StandardEncoding, true
	case "WinAnsiEncoding":
		return WinAnsiEncoding, true
	case "MacRomanEncoding":
		return MacRomanEncoding, true
	case "MacExpertEncoding":
		return MacExpertEncoding, true
	case "Symbol":
		return SymbolEncoding, true
	case "ZapfDingbats":
		return ZapfDingbatsEncoding, true
	default:
		return nil, false
	}
}

// asciiNames holds the printable-ASCII glyph names shared, code for code,
// by StandardEncoding and WinAnsiEncoding (they disagree only at 0x27 and
// 0x60, patched in by each table's init below).
var asciiNames = map[int]string{
	0x20: "space", 0x21: "exclam", 0x22: "quotedbl", 0x23: "numbersign",
	0x24: "dollar", 0x25: "percent", 0x26: "ampersand",
	0x28: "parenleft", 0x29: "parenright", 0x2A: "asterisk", 0x2B: "plus",
	0x2C: "comma", 0x2D: "hyphen", 0x2E: "period", 0x2F: "slash",
	0x30: "zero", 0x31: "one", 0x32: "two", 0x33: "three", 0x34: "four",
	0x35: "five", 0x36: "six", 0x37: "seven", 0x38: "eight", 0x39: "nine",
	0x3A: "colon", 0x3B: "semicolon", 0x3C: "less", 0x3D: "equal",
	0x3E: "greater", 0x3F: "question", 0x40: "at",
	0x41: "A", 0x42: "B", 0x43: "C", 0x44: "D", 0x45: "E", 0x46: "F",
	0x47: "G", 0x48: "H", 0x49: "I", 0x4A: "J", 0x4B: "K", 0x4C: "L",
	0x4D: "M", 0x4E: "N", 0x4F: "O", 0x50: "P", 0x51: "Q", 0x52: "R",
	0x53: "S", 0x54: "T", 0x55: "U", 0x56: "V", 0x57: "W", 0x58: "X",
	0x59: "Y", 0x5A: "Z",
	0x5B: "bracketleft", 0x5C: "backslash", 0x5D: "bracketright",
	0x5E: "asciicircum", 0x5F: "underscore",
	0x61: "a", 0x62: "b", 0x63: "c", 0x64: "d", 0x65: "e", 0x66: "f",
	0x67: "g", 0x68: "h", 0x69: "i", 0x6A: "j", 0x6B: "k", 0x6C: "l",
	0x6D: "m", 0x6E: "n", 0x6F: "o", 0x70: "p", 0x71: "q", 0x72: "r",
	0x73: "s", 0x74: "t", 0x75: "u", 0x76: "v", 0x77: "w", 0x78: "x",
	0x79: "y", 0x7A: "z",
	0x7B: "braceleft", 0x7C: "bar", 0x7D: "braceright", 0x7E: "asciitilde",
}

func withASCII(extra map[int]string) Table {
	t := make(Table, len(asciiNames)+len(extra))
	for k, v := range asciiNames {
		t[k] = v
	}
	for k, v := range extra {
		t[k] = v
	}
	return t
}

// StandardEncoding is Adobe's original built-in font encoding (PDF 32000-1
// Appendix D.2).
var StandardEncoding = withASCII(map[int]string{
	0x27: "quoteright", 0x60: "quoteleft",
	0xA1: "exclamdown", 0xA2: "cent", 0xA3: "sterling", 0xA4: "fraction",
	0xA5: "yen", 0xA6: "florin", 0xA7: "section", 0xA8: "currency",
	0xA9: "quotesingle", 0xAA: "quotedblleft", 0xAB: "guillemotleft",
	0xAC: "guilsinglleft", 0xAD: "guilsinglright", 0xAE: "fi", 0xAF: "fl",
	0xB1: "endash", 0xB2: "dagger", 0xB3: "daggerdbl",
	0xB4: "periodcentered", 0xB6: "paragraph", 0xB7: "bullet",
	0xB8: "quotesinglbase", 0xB9: "quotedblbase", 0xBA: "quotedblright",
	0xBB: "guillemotright", 0xBC: "ellipsis", 0xBD: "perthousand",
	0xBF: "questiondown",
	0xC1: "grave", 0xC2: "acute", 0xC3: "circumflex", 0xC4: "tilde",
	0xC5: "macron", 0xC6: "breve", 0xC7: "dotaccent", 0xC8: "dieresis",
	0xCA: "ring", 0xCB: "cedilla", 0xCD: "hungarumlaut", 0xCE: "ogonek",
	0xCF: "caron", 0xD0: "emdash",
	0xE1: "AE", 0xE3: "ordfeminine", 0xE8: "Lslash", 0xE9: "Oslash",
	0xEA: "OE", 0xEB: "ordmasculine",
	0xF1: "ae", 0xF5: "dotlessi", 0xF8: "lslash", 0xF9: "oslash",
	0xFA: "oe", 0xFB: "germandbls",
})

// WinAnsiEncoding is Windows Code Page 1252 as restricted and named for
// PDF use (PDF 32000-1 Appendix D.2).
var WinAnsiEncoding = withASCII(map[int]string{
	0x27: "quotesingle", 0x60: "grave",
	0x80: "Euro", 0x82: "quotesinglbase", 0x83: "florin",
	0x84: "quotedblbase", 0x85: "ellipsis", 0x86: "dagger",
	0x87: "daggerdbl", 0x88: "circumflex", 0x89: "perthousand",
	0x8A: "Scaron", 0x8B: "guilsinglleft", 0x8C: "OE", 0x8E: "Zcaron",
	0x91: "quoteleft", 0x92: "quoteright", 0x93: "quotedblleft",
	0x94: "quotedblright", 0x95: "bullet", 0x96: "endash", 0x97: "emdash",
	0x98: "tilde", 0x99: "trademark", 0x9A: "scaron",
	0x9B: "guilsinglright", 0x9C: "oe", 0x9E: "zcaron", 0x9F: "Ydieresis",
	0xA0: "space", 0xA1: "exclamdown", 0xA2: "cent", 0xA3: "sterling",
	0xA4: "currency", 0xA5: "yen", 0xA6: "brokenbar", 0xA7: "section",
	0xA8: "dieresis", 0xA9: "copyright", 0xAA: "ordfeminine",
	0xAB: "guillemotleft", 0xAC: "logicalnot", 0xAD: "hyphen",
	0xAE: "registered", 0xAF: "macron", 0xB0: "degree", 0xB1: "plusminus",
	0xB2: "twosuperior", 0xB3: "threesuperior", 0xB4: "acute", 0xB5: "mu",
	0xB6: "paragraph", 0xB7: "periodcentered", 0xB8: "cedilla",
	0xB9: "onesuperior", 0xBA: "ordmasculine", 0xBB: "guillemotright",
	0xBC: "onequarter", 0xBD: "onehalf", 0xBE: "threequarters",
	0xBF: "questiondown",
	0xC0: "Agrave", 0xC1: "Aacute", 0xC2: "Acircumflex", 0xC3: "Atilde",
	0xC4: "Adieresis", 0xC5: "Aring", 0xC6: "AE", 0xC7: "Ccedilla",
	0xC8: "Egrave", 0xC9: "Eacute", 0xCA: "Ecircumflex", 0xCB: "Edieresis",
	0xCC: "Igrave", 0xCD: "Iacute", 0xCE: "Icircumflex", 0xCF: "Idieresis",
	0xD0: "Eth", 0xD1: "Ntilde", 0xD2: "Ograve", 0xD3: "Oacute",
	0xD4: "Ocircumflex", 0xD5: "Otilde", 0xD6: "Odieresis",
	0xD7: "multiply", 0xD8: "Oslash", 0xD9: "Ugrave", 0xDA: "Uacute",
	0xDB: "Ucircumflex", 0xDC: "Udieresis", 0xDD: "Yacute", 0xDE: "Thorn",
	0xDF: "germandbls",
	0xE0: "agrave", 0xE1: "aacute", 0xE2: "acircumflex", 0xE3: "atilde",
	0xE4: "adieresis", 0xE5: "aring", 0xE6: "ae", 0xE7: "ccedilla",
	0xE8: "egrave", 0xE9: "eacute", 0xEA: "ecircumflex", 0xEB: "edieresis",
	0xEC: "igrave", 0xED: "iacute", 0xEE: "icircumflex", 0xEF: "idieresis",
	0xF0: "eth", 0xF1: "ntilde", 0xF2: "ograve", 0xF3: "oacute",
	0xF4: "ocircumflex", 0xF5: "otilde", 0xF6: "odieresis", 0xF7: "divide",
	0xF8: "oslash", 0xF9: "ugrave", 0xFA: "uacute", 0xFB: "ucircumflex",
	0xFC: "udieresis", 0xFD: "yacute", 0xFE: "thorn", 0xFF: "ydieresis",
})

// MacExpertEncoding holds only the printable-ASCII glyph names shared
// with StandardEncoding; none of the expert set's small caps, ligatures
// or old-style figures are tabulated.
var MacExpertEncoding = withASCII(nil)

// SymbolEncoding is the built-in encoding of the Symbol font (Greek
// letters and math glyphs in the ASCII code range, PDF 32000-1 Appendix
// D.5 abridged to the letters and punctuation commonly extracted as text).
var SymbolEncoding = Table{
	0x20: "space", 0x21: "exclam", 0x28: "parenleft", 0x29: "parenright",
	0x2B: "plus", 0x2C: "comma", 0x2D: "minus", 0x2E: "period",
	0x2F: "slash",
	0x30: "zero", 0x31: "one", 0x32: "two", 0x33: "three", 0x34: "four",
	0x35: "five", 0x36: "six", 0x37: "seven", 0x38: "eight", 0x39: "nine",
	0x3D: "equal",
	0x41: "Alpha", 0x42: "Beta", 0x43: "Chi", 0x44: "Delta",
	0x45: "Epsilon", 0x46: "Phi", 0x47: "Gamma", 0x48: "Eta", 0x49: "Iota",
	0x4B: "Kappa", 0x4C: "Lambda", 0x4D: "Mu", 0x4E: "Nu",
	0x4F: "Omicron", 0x50: "Pi", 0x51: "Theta", 0x52: "Rho",
	0x53: "Sigma", 0x54: "Tau", 0x55: "Upsilon", 0x57: "Omega",
	0x58: "Xi", 0x59: "Psi", 0x5A: "Zeta",
	0x61: "alpha", 0x62: "beta", 0x63: "chi", 0x64: "delta",
	0x65: "epsilon", 0x66: "phi", 0x67: "gamma", 0x68: "eta", 0x69: "iota",
	0x6B: "kappa", 0x6C: "lambda", 0x6D: "mu", 0x6E: "nu",
	0x6F: "omicron", 0x70: "pi", 0x71: "theta", 0x72: "rho",
	0x73: "sigma", 0x74: "tau", 0x75: "upsilon", 0x77: "omega",
	0x78: "xi", 0x79: "psi", 0x7A: "zeta",
	0xA5: "infinity", 0xA3: "lessequal", 0xB3: "greaterequal",
	0xD6: "radical", 0xD7: "dotmath",
}

// ZapfDingbatsEncoding maps the handful of dingbat codes extraction cares
// about (bullets, checkmarks) rather than the full ornament set.
var ZapfDingbatsEncoding = Table{
	0x20: "space",
	0x6C: "a22", // filled circle bullet
	0x6E: "a23", // filled square bullet
	0x76: "a35", // check mark
}
