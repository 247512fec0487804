// Package textfold lower-cases text for case-insensitive matching.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower returns s lower-cased with language-neutral Unicode rules.
// A Caser keeps state, so one is built per call.
func Lower(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Und).String(s)
}

// Contains reports whether needle occurs in haystack ignoring case.
func Contains(haystack, needle string) bool {
	return strings.Contains(Lower(haystack), Lower(needle))
}

// Compare orders a and b ignoring case, like strings.Compare.
func Compare(a, b string) int {
	return strings.Compare(Lower(a), Lower(b))
}
