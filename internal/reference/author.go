package reference

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// initialsOnly matches an author token made only of initials, e.g. "J." or "K. L.".
var initialsOnly = regexp.MustCompile(`^(?:\p{Lu}\.?[\s-]*)+$`)

// ParseAuthors splits an author string into display names.
//
// The string is split on commas, each token trimmed, and tokens of at most
// one character discarded. A token holding only initials is folded onto the
// preceding surname, so "Ajnabi, J., Lee, K." yields ["Ajnabi, J." "Lee, K."]
// while "J. Ajnabi, K. Lee" yields ["J. Ajnabi" "K. Lee"].
func ParseAuthors(authors string) []string {
	var names []string
	for _, tok := range strings.Split(authors, ",") {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if n := len(names); n > 0 && initialsOnly.MatchString(tok) && !strings.Contains(names[n-1], ",") {
			names[n-1] += ", " + tok
			continue
		}
		names = append(names, tok)
	}
	return names
}

// FirstAuthorToken returns the first comma-delimited token of the author
// string, trimmed. It is the raw material of a citation key.
func FirstAuthorToken(authors string) string {
	first, _, _ := strings.Cut(authors, ",")
	return strings.TrimSpace(first)
}
