package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes external text (textures, meal types, restriction tags):
// trims, composes to NFC and lowercases with the language-neutral caser.
// Accents are kept, so "ALMOÇO" folds to "almoço", never "almoco".
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// cases.Caser keeps state; a fresh one per call keeps Fold safe for concurrent use.
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// tagSet is a set of folded restriction tags.
type tagSet map[string]struct{}

func (s tagSet) has(tag string) bool {
	_, ok := s[tag]
	return ok
}

func (s tagSet) sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// intersect returns the sorted tags present in both s and tags.
func (s tagSet) intersect(tags []string) []string {
	var out []string
	for _, t := range tags {
		if s.has(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func oneOf(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
