package token

import (
	"strings"
	"unicode"
)

// FormatID derives a stable token identifier from a display title:
// lowercase, with every run of non-alphanumeric characters collapsed to
// a single dash. Letters and digits from any script survive, so names
// in non-Latin scripts keep distinct identifiers. Deterministic;
// distinct titles map to distinct identifiers unless they differ only
// in punctuation.
func FormatID(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
