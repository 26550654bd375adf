// Package citation cross-references inline citation markers with
// publication records and formats citations for display.
package citation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/jajnabi/folio/internal/reference"
)

// Key is a citation lookup token: the first author token, lower-cased with
// whitespace removed, joined to the year by an underscore ("ajnabi_2023").
type Key string

// KeyFor derives the citation key of a publication.
func KeyFor(p reference.Publication) Key {
	return makeKey(reference.FirstAuthorToken(p.Authors), int(p.Year))
}

// NormalizeKey lower-cases a raw key taken from text.
func NormalizeKey(raw string) Key {
	return Key(strings.ToLower(strings.TrimSpace(raw)))
}

func makeKey(name string, year int) Key {
	return Key(normalizeName(name) + "_" + strconv.Itoa(year))
}

// normalizeName lower-cases a name and strips every whitespace rune.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}
