package match

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a configuration key for comparison: it is lowercased
// and separators (_, -, space, .) are dropped, so "display_name",
// "Display-Name" and "displayName" all normalize to "displayname".
func NormalizeKey(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
