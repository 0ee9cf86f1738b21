package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s, strips combining marks (accents, breves, diaereses) and collapses
// whitespace, so that "Площадь,  м²", "площадь, м²" and "ПЛОЩАДЬ, м²" compare equal.
// Cyrillic "й" and "ё" fold to "и" and "е".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return CollapseSpaces(strings.ToLower(out))
}

// CollapseSpaces trims s and replaces every run of unicode whitespace (including
// non-breaking and narrow spaces used as thousands separators) with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsBlank reports whether s contains nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// ContainsFold reports whether needle occurs in haystack after folding both.
// An empty needle always matches.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
