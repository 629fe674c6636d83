// Package textfold matches free-form shop text case-insensitively using
// Unicode case folding, so "POSTER", "Poster" and "poster" compare equal.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether substr occurs in s, ignoring case.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// ContainsAny reports whether any of the keywords occurs in s, ignoring case.
func ContainsAny(s string, keywords ...string) bool {
	folded := Fold(s)
	for _, k := range keywords {
		if strings.Contains(folded, Fold(k)) {
			return true
		}
	}
	return false
}
