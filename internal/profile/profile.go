// Package profile holds the page owner's profile, about text, and research
// interests.
package profile

import (
	"regexp"
	"strings"
)

// Profile is the content of profile.json.
type Profile struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Focus       string            `json:"focus"`
	Affiliation []string          `json:"affiliation"`
	Email       string            `json:"email,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
}

// Link names in display order.
const (
	LinkScholar  = "Google Scholar"
	LinkORCID    = "ORCID"
	LinkLinkedIn = "LinkedIn"
	LinkBlueSky  = "BlueSky"
)

// LinkOrder is the order profile links are shown in.
var LinkOrder = []string{LinkScholar, LinkORCID, LinkLinkedIn, LinkBlueSky}

// Link is a named outbound profile link.
type Link struct {
	Name string
	URL  string
}

// OrderedLinks returns the known links that are present, in LinkOrder.
// Absent or empty entries are skipped.
func (p Profile) OrderedLinks() []Link {
	var out []Link
	for _, name := range LinkOrder {
		if url := strings.TrimSpace(p.Links[name]); url != "" {
			out = append(out, Link{Name: name, URL: url})
		}
	}
	return out
}

// Interests is the content of interests.json.
type Interests []string

var paragraphBreak = regexp.MustCompile(`\r?\n\s*\r?\n`)

// Paragraphs splits about text on blank lines, dropping empty paragraphs.
func Paragraphs(about string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(strings.TrimSpace(about), -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
