package citation

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jajnabi/folio/internal/reference"
)

// inlineTemplate is parsed at init time to fail fast on template errors.
var inlineTemplate = template.Must(template.New("cite").Parse(
	`<span class="exp-citation"><strong>{{.Venue}}</strong>, {{.Year}} ` +
		`<a href="{{.Link}}" target="_blank" rel="noopener noreferrer">[{{.Label}}]</a></span>`))

type inlineData struct {
	Venue string
	Year  int
	Link  string
	Label string
}

// FormatShort returns the short citation label: "Name, 2023" for a single
// author, "Name et al., 2023" otherwise. An author string with no usable
// names is treated as one name.
func FormatShort(p reference.Publication) string {
	names := reference.ParseAuthors(p.Authors)
	if len(names) == 0 {
		names = []string{strings.TrimSpace(p.Authors)}
	}
	if len(names) == 1 {
		return fmt.Sprintf("%s, %d", names[0], p.Year)
	}
	return fmt.Sprintf("%s et al., %d", names[0], p.Year)
}

// InlineVenue returns the venue as shown in an inline citation: the
// "(preprint)" parenthetical removed, with " (preprint)" re-appended for
// any venue classified as a preprint.
func InlineVenue(p reference.Publication) string {
	venue := reference.DisplayVenue(p.Journal)
	if reference.IsPreprintVenue(p.Journal) {
		venue += " (preprint)"
	}
	return venue
}

// FormatInline renders the citation fragment used inside experience bullets:
// venue, year, and a link labelled with the short citation.
func FormatInline(p reference.Publication) template.HTML {
	var buf bytes.Buffer
	err := inlineTemplate.Execute(&buf, inlineData{
		Venue: InlineVenue(p),
		Year:  int(p.Year),
		Link:  p.Link,
		Label: FormatShort(p),
	})
	if err != nil {
		return template.HTML(template.HTMLEscapeString(FormatShort(p)))
	}
	return template.HTML(buf.String())
}
