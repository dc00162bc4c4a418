// Package names holds the name normalization rules shared by the roster
// loader and the sign-in normalizer.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the lookup key for a person's name: lower-cased, periods
// replaced by spaces, surrounding whitespace trimmed. Inner whitespace is kept
// as is. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, ".", " ")
	return strings.TrimSpace(s)
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest of the run. Any non-letter starts a new run, so
// "o'brien" becomes "O'Brien" and "user1abc" becomes "User1Abc".
func TitleCase(s string) string {
	// A Caser keeps state and must not be shared between goroutines
	caser := cases.Title(language.English)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
		} else {
			if start >= 0 {
				b.WriteString(caser.String(s[start:i]))
				start = -1
			}
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}
