package reconcile

import (
	"strings"
	"unicode"
)

// accentFold maps the accented Latin letters that actually occur in
// French/Italian/Spanish station names to their unaccented base
// letter. The retrieval pack carries no Unicode-normalization library,
// so this is a small, explicit table rather than a NFD-then-strip
// pipeline.
var accentFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n', 'ý': 'y', 'ÿ': 'y',
}

// normalizeName lowercases, strips accents and collapses every run of
// non-alphanumeric characters to a single space, the comparison key
// used for cross-operator name linking and orphan-station grouping.
func normalizeName(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	lastWasSpace := false
	for _, r := range lower {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if !lastWasSpace {
			b.WriteRune(' ')
			lastWasSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
