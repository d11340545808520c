package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks and recomposes,
// which turns "Café" into "Cafe" and "Naïve" into "Naive".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts an arbitrary header or cell string into the canonical
// matching form: diacritics stripped, lowercased, runs of punctuation and
// whitespace collapsed to single spaces, outer whitespace trimmed.
//
// "Item_ID", " item id " and "Ítem-Id" all normalize to "item id".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		// Any separator, punctuation or symbol acts as a word boundary.
		pendingSpace = true
	}
	return b.String()
}
