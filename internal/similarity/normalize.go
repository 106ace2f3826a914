package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean normalizes a record field for comparison: diacritics folded,
// whitespace trimmed and collapsed, uppercased. Historical transcriptions
// mix accented and plain spellings of the same name; folding keeps them in
// the same block.
func Clean(value string) string {
	if folded, _, err := transform.String(foldDiacritics, value); err == nil {
		value = folded
	}
	return strings.ToUpper(strings.Join(strings.Fields(value), " "))
}

// CleanLetters returns Clean(value) reduced to A-Z only, the form the
// phonetic encoder expects.
func CleanLetters(value string) string {
	cleaned := Clean(value)
	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
