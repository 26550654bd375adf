// Package author recognizes the page owner's name in author lists.
package author

import (
	"strings"
	"unicode"
)

// Owner identifies the page owner by surname and initials.
type Owner struct {
	Surname  string `yaml:"surname"`
	Initials string `yaml:"initials"` // e.g. "J" or "J.A."; only letters are significant
}

// ParseOwner parses a display name into an Owner.
//
// Supported formats:
//   - "Ajnabi"          → surname only
//   - "Johan Ajnabi"    → initials="J", surname="Ajnabi" (First Last)
//   - "J. A. Ajnabi"    → initials="JA", surname="Ajnabi"
//   - "Ajnabi, Johan"   → initials="J", surname="Ajnabi" (Last, First)
func ParseOwner(input string) Owner {
	input = strings.TrimSpace(input)
	if input == "" {
		return Owner{}
	}

	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Owner{Surname: last, Initials: initialsOf(first)}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Owner{Surname: parts[0]}
	}
	last := parts[len(parts)-1]
	return Owner{Surname: last, Initials: initialsOf(strings.Join(parts[:len(parts)-1], " "))}
}

// letters returns the significant initial letters, upper-cased.
func (o Owner) letters() []rune {
	var out []rune
	for _, r := range o.Initials {
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToUpper(r))
		}
	}
	return out
}

// initialsOf returns the first letter of each word in a given-name string.
// Already-abbreviated input ("J.A.") keeps every letter.
func initialsOf(given string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(given, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	}) {
		if strings.Contains(word, ".") {
			for _, r := range word {
				if unicode.IsLetter(r) {
					b.WriteRune(unicode.ToUpper(r))
				}
			}
			continue
		}
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}
