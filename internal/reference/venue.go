package reference

import (
	"regexp"
	"strings"
)

// Kind classifies a publication for filtering.
type Kind string

const (
	Peer     Kind = "peer"
	Preprint Kind = "preprint"
)

// preprintMarker matches the "(preprint)" parenthetical some venues carry.
var preprintMarker = regexp.MustCompile(`(?i)\s*\(preprint\)`)

// IsPreprintVenue reports whether a venue name indicates a preprint server.
func IsPreprintVenue(journal string) bool {
	j := strings.ToLower(journal)
	return strings.Contains(j, "biorxiv") || strings.Contains(j, "preprint")
}

// Classify returns Preprint when the venue mentions bioRxiv or a preprint,
// Peer otherwise.
func Classify(p Publication) Kind {
	if IsPreprintVenue(p.Journal) {
		return Preprint
	}
	return Peer
}

// DisplayVenue strips the "(preprint)" parenthetical and trailing whitespace
// from a venue name.
func DisplayVenue(journal string) string {
	return strings.TrimSpace(preprintMarker.ReplaceAllString(journal, ""))
}
