package encoding

import (
	"strconv"
	"strings"
)

// glyphToUnicode is a subset of the Adobe Glyph List: PostScript glyph
// name to the Unicode text it represents. It covers the glyph names
// produced by StandardEncoding, WinAnsiEncoding, MacRomanEncoding and
// ordinary Latin text; names outside this table fall back to the
// "uniXXXX"/"uXXXXXX" conventions handled by ToUnicode.
var glyphToUnicode = map[string]string{
	"space": " ", "exclam": "!", "quotedbl": "\"", "numbersign": "#",
	"dollar": "$", "percent": "%", "ampersand": "&",
	"quoteright": "’", "quotesingle": "'",
	"parenleft": "(", "parenright": ")", "asterisk": "*", "plus": "+",
	"comma": ",", "hyphen": "-", "period": ".", "slash": "/",
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"colon": ":", "semicolon": ";", "less": "<", "equal": "=",
	"greater": ">", "question": "?", "at": "@",
	"A": "A", "B": "B", "C": "C", "D": "D", "E": "E", "F": "F", "G": "G",
	"H": "H", "I": "I", "J": "J", "K": "K", "L": "L", "M": "M", "N": "N",
	"O": "O", "P": "P", "Q": "Q", "R": "R", "S": "S", "T": "T", "U": "U",
	"V": "V", "W": "W", "X": "X", "Y": "Y", "Z": "Z",
	"bracketleft": "[", "backslash": "\\", "bracketright": "]",
	"asciicircum": "^", "underscore": "_",
	"grave": "`", "quoteleft": "‘",
	"a": "a", "b": "b", "c": "c", "d": "d", "e": "e", "f": "f", "g": "g",
	"h": "h", "i": "i", "j": "j", "k": "k", "l": "l", "m": "m", "n": "n",
	"o": "o", "p": "p", "q": "q", "r": "r", "s": "s", "t": "t", "u": "u",
	"v": "v", "w": "w", "x": "x", "y": "y", "z": "z",
	"braceleft": "{", "bar": "|", "braceright": "}", "asciitilde": "~",

	"fi": "fi", "fl": "fl", "ff": "ff", "ffi": "ffi", "ffl": "ffl",
	"dotlessi": "ı", "germandbls": "ß",

	"AE": "Æ", "ae": "æ", "OE": "Œ", "oe": "œ",
	"oslash": "ø", "Oslash": "Ø", "lslash": "ł",
	"Lslash": "Ł", "Eth": "Ð", "eth": "ð",
	"Thorn": "Þ", "thorn": "þ", "Scaron": "Š",
	"scaron": "š", "Zcaron": "Ž", "zcaron": "ž",
	"Ydieresis": "Ÿ", "ydieresis": "ÿ",

	"Agrave": "À", "Aacute": "Á", "Acircumflex": "Â",
	"Atilde": "Ã", "Adieresis": "Ä", "Aring": "Å",
	"Ccedilla": "Ç", "Egrave": "È", "Eacute": "É",
	"Ecircumflex": "Ê", "Edieresis": "Ë", "Igrave": "Ì",
	"Iacute": "Í", "Icircumflex": "Î", "Idieresis": "Ï",
	"Ntilde": "Ñ", "Ograve": "Ò", "Oacute": "Ó",
	"Ocircumflex": "Ô", "Otilde": "Õ", "Odieresis": "Ö",
	"Ugrave": "Ù", "Uacute": "Ú", "Ucircumflex": "Û",
	"Udieresis": "Ü", "Yacute": "Ý",
	"agrave": "à", "aacute": "á", "acircumflex": "â",
	"atilde": "ã", "adieresis": "ä", "aring": "å",
	"ccedilla": "ç", "egrave": "è", "eacute": "é",
	"ecircumflex": "ê", "edieresis": "ë", "igrave": "ì",
	"iacute": "í", "icircumflex": "î", "idieresis": "ï",
	"ntilde": "ñ", "ograve": "ò", "oacute": "ó",
	"ocircumflex": "ô", "otilde": "õ", "odieresis": "ö",
	"ugrave": "ù", "uacute": "ú", "ucircumflex": "û",
	"udieresis": "ü", "yacute": "ý",

	"cent": "¢", "sterling": "£", "currency": "¤",
	"yen": "¥", "brokenbar": "¦", "section": "§",
	"dieresis": "¨", "copyright": "©", "ordfeminine": "ª",
	"guillemotleft": "«", "logicalnot": "¬",
	"registered": "®", "macron": "¯", "degree": "°",
	"plusminus": "±", "twosuperior": "²",
	"threesuperior": "³", "acute": "´", "mu": "µ",
	"paragraph": "¶", "periodcentered": "·", "cedilla": "¸",
	"onesuperior": "¹", "ordmasculine": "º",
	"guillemotright": "»", "onequarter": "¼",
	"onehalf": "½", "threequarters": "¾",
	"questiondown": "¿", "exclamdown": "¡",
	"multiply": "×", "divide": "÷",

	"Euro": "€", "quotesinglbase": "‚", "florin": "ƒ",
	"quotedblbase": "„", "ellipsis": "…", "dagger": "†",
	"daggerdbl": "‡", "circumflex": "ˆ",
	"perthousand": "‰", "guilsinglleft": "‹",
	"guilsinglright": "›", "quotedblleft": "“",
	"quotedblright": "”", "bullet": "•", "endash": "–",
	"emdash": "—", "tilde": "˜", "trademark": "™",
	"breve": "˘", "dotaccent": "˙", "ring": "˚",
	"hungarumlaut": "˝", "ogonek": "˛", "caron": "ˇ",
	"fraction": "⁄",

	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ",
	"Delta": "Δ", "Epsilon": "Ε", "Zeta": "Ζ",
	"Eta": "Η", "Theta": "Θ", "Iota": "Ι",
	"Kappa": "Κ", "Lambda": "Λ", "Mu": "Μ",
	"Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο", "Pi": "Π",
	"Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ",
	"Upsilon": "Υ", "Phi": "Φ", "Chi": "Χ", "Psi": "Ψ",
	"Omega": "Ω",
	"alpha": "α", "beta": "β", "gamma": "γ",
	"delta": "δ", "epsilon": "ε", "zeta": "ζ",
	"eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "nu": "ν", "xi": "ξ",
	"omicron": "ο", "pi": "π", "rho": "ρ", "sigma": "σ",
	"tau": "τ", "upsilon": "υ", "phi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",

	"infinity": "∞", "lessequal": "≤", "greaterequal": "≥",
	"notequal": "≠", "approxequal": "≈", "integral": "∫",
	"product": "∏", "summation": "∑", "radical": "√",
	"partialdiff": "∂", "minus": "−",
}

// unicodeToGlyphName is the reverse of glyphToUnicode, for resolving
// single-rune code pages (MacRomanEncoding) back to a glyph name. Built
// once at package init from the single-rune entries only.
var unicodeToGlyphName = buildReverseGlyphList()

func buildReverseGlyphList() map[rune]string {
	m := make(map[rune]string, len(glyphToUnicode))
	for name, s := range glyphToUnicode {
		r := []rune(s)
		if len(r) != 1 {
			continue
		}
		if _, exists := m[r[0]]; !exists {
			m[r[0]] = name
		}
	}
	return m
}

// ToUnicode resolves a PostScript glyph name to the text it represents.
// Names not in the table fall back to the Adobe Glyph List's "uniXXXX"
// (exactly four hex digits) and "uXXXX".."uXXXXXX" (four to six hex
// digits) naming conventions.
func ToUnicode(glyphName string) (string, bool) {
	if s, ok := glyphToUnicode[glyphName]; ok {
		return s, true
	}
	if base, _, ok := strings.Cut(glyphName, "."); ok {
		if s, ok := glyphToUnicode[base]; ok {
			return s, true
		}
	}
	if strings.HasPrefix(glyphName, "uni") && len(glyphName) == 7 {
		if r, err := strconv.ParseUint(glyphName[3:], 16, 32); err == nil {
			return string(rune(r)), true
		}
	}
	if strings.HasPrefix(glyphName, "u") && len(glyphName) >= 5 && len(glyphName) <= 7 {
		if r, err := strconv.ParseUint(glyphName[1:], 16, 32); err == nil {
			return string(rune(r)), true
		}
	}
	return "", false
}
