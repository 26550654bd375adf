// Package export provides functions to export publications to various formats.
package export

import (
	"fmt"
	"strings"

	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/reference"
)

// ToBibTeX converts a publication to a BibTeX entry keyed by key.
func ToBibTeX(key string, p reference.Publication) string {
	entryType := determineEntryType(p)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	if names := reference.ParseAuthors(p.Authors); len(names) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(strings.Join(names, " and "))))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(p.Title)))

	if venue := reference.DisplayVenue(p.Journal); venue != "" {
		fieldName := "journal"
		switch entryType {
		case "inproceedings":
			fieldName = "booktitle"
		case "misc":
			fieldName = "howpublished"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(venue)))
	}

	b.WriteString(fmt.Sprintf("  year = {%d},\n", p.Year))

	if p.Link != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", p.Link))
	}

	if entryType == "misc" {
		b.WriteString("  note = {Preprint},\n")
	}

	if p.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(p.Abstract)))
	}

	b.WriteString("}\n")

	return b.String()
}

// Entry pairs a publication with its BibTeX key.
type Entry struct {
	Key         string
	Publication reference.Publication
}

// Entries assigns each publication its citation key. Later publications
// that share a key get a letter suffix ("lee_2021b") so keys stay unique.
func Entries(pubs []reference.Publication) []Entry {
	seen := make(map[citation.Key]int)
	out := make([]Entry, 0, len(pubs))
	for _, p := range pubs {
		k := citation.KeyFor(p)
		n := seen[k]
		seen[k] = n + 1
		key := string(k)
		if n > 0 {
			key += suffix(n)
		}
		out = append(out, Entry{Key: key, Publication: p})
	}
	return out
}

// suffix returns "b" for 1, "c" for 2, and so on through "z", then
// falls back to a numeric suffix.
func suffix(n int) string {
	if n < 26 {
		return string(rune('a' + n))
	}
	return fmt.Sprintf("_%d", n+1)
}

// ToBibTeXList converts multiple publications to BibTeX format.
func ToBibTeXList(pubs []reference.Publication) string {
	var entries []string
	for _, e := range Entries(pubs) {
		entries = append(entries, ToBibTeX(e.Key, e.Publication))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns the BibTeX entry type for a publication.
func determineEntryType(p reference.Publication) string {
	if reference.Classify(p) == reference.Preprint {
		return "misc"
	}

	venue := strings.ToLower(p.Journal)
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}

	return "article"
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"{", `\{`,
		"}", `\}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
