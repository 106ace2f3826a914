package similarity

import "strings"

// NYSIIS encodes a name with the New York State Identification and
// Intelligence System phonetic algorithm. Returns "" for input with no
// letters. Source data usually carries precomputed codes; this covers
// collections that do not.
func NYSIIS(name string) string {
	s := []rune(CleanLetters(name))
	if len(s) == 0 {
		return ""
	}

	// Leading transcodes.
	switch {
	case hasPrefix(s, "MAC"):
		s = replaceAt(s, 0, 3, "MCC")
	case hasPrefix(s, "KN"):
		s = replaceAt(s, 0, 2, "NN")
	case s[0] == 'K':
		s[0] = 'C'
	case hasPrefix(s, "PH"), hasPrefix(s, "PF"):
		s = replaceAt(s, 0, 2, "FF")
	case hasPrefix(s, "SCH"):
		s = replaceAt(s, 0, 3, "SSS")
	}

	// Trailing transcodes.
	switch {
	case hasSuffix(s, "EE"), hasSuffix(s, "IE"):
		s = replaceAt(s, len(s)-2, 2, "Y")
	case hasSuffix(s, "DT"), hasSuffix(s, "RT"), hasSuffix(s, "RD"),
		hasSuffix(s, "NT"), hasSuffix(s, "ND"):
		s = replaceAt(s, len(s)-2, 2, "D")
	}

	key := []rune{s[0]}
	for i := 1; i < len(s); i++ {
		var repl []rune
		switch {
		case hasPrefix(s[i:], "EV"):
			repl = []rune("AF")
			s = replaceAt(s, i, 2, "AF")
		case isVowel(s[i]):
			repl = []rune("A")
			s[i] = 'A'
		case s[i] == 'Q':
			repl = []rune("G")
			s[i] = 'G'
		case s[i] == 'Z':
			repl = []rune("S")
			s[i] = 'S'
		case s[i] == 'M':
			repl = []rune("N")
			s[i] = 'N'
		case hasPrefix(s[i:], "KN"):
			repl = []rune("N")
			s = replaceAt(s, i, 2, "N")
		case s[i] == 'K':
			repl = []rune("C")
			s[i] = 'C'
		case hasPrefix(s[i:], "SCH"):
			repl = []rune("SSS")
			s = replaceAt(s, i, 3, "SSS")
		case hasPrefix(s[i:], "PH"):
			repl = []rune("FF")
			s = replaceAt(s, i, 2, "FF")
		case s[i] == 'H' && (!isVowel(s[i-1]) || i+1 >= len(s) || !isVowel(s[i+1])):
			repl = []rune{s[i-1]}
			s[i] = s[i-1]
		case s[i] == 'W' && isVowel(s[i-1]):
			repl = []rune{s[i-1]}
			s[i] = s[i-1]
		default:
			repl = []rune{s[i]}
		}
		for _, r := range repl {
			if key[len(key)-1] != r {
				key = append(key, r)
			}
		}
		i += len(repl) - 1
	}

	if len(key) > 1 && key[len(key)-1] == 'S' {
		key = key[:len(key)-1]
	}
	if hasSuffix(key, "AY") {
		key = replaceAt(key, len(key)-2, 2, "Y")
	}
	if len(key) > 1 && key[len(key)-1] == 'A' {
		key = key[:len(key)-1]
	}
	return string(key)
}

func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func hasPrefix(s []rune, prefix string) bool {
	return strings.HasPrefix(string(s), prefix)
}

func hasSuffix(s []rune, suffix string) bool {
	return strings.HasSuffix(string(s), suffix)
}

func replaceAt(s []rune, at, length int, with string) []rune {
	out := make([]rune, 0, len(s)-length+len(with))
	out = append(out, s[:at]...)
	out = append(out, []rune(with)...)
	out = append(out, s[at+length:]...)
	return out
}
