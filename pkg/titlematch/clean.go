// Package titlematch compares human-typed names against catalogue titles.
// Czech diacritics, punctuation and spacing are ignored.
package titlematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanValues covers II-IX. "I", "V" and "X" are ordinary words in titles
// ("V lese", "X-Files") and stay as they are.
var romanValues = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "vi": "6",
	"vii": "7", "viii": "8", "ix": "9",
}

// punctuation that separates words rather than joining them.
var separators = strings.NewReplacer(
	"&", " a ",
	"+", " a ",
	"-", " ",
	"–", " ",
	".", " ",
	":", " ",
	"/", " ",
	"_", " ",
	"'", "",
	"’", "",
)

// Clean folds a title into a comparable form: lower case, no diacritics,
// arabic numerals, single spaces between words.
//
//	Clean("Četnické humoresky II.") == "cetnicke humoresky 2"
func Clean(title string) string {
	s := separators.Replace(strings.ToLower(title))

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	// A numeral opening the title is a word, not a sequence number.
	words := strings.Fields(b.String())
	for i := 1; i < len(words); i++ {
		if n, ok := romanValues[words[i]]; ok {
			words[i] = n
		}
	}
	return stripDiacritics(strings.Join(words, " "))
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
