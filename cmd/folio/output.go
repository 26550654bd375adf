package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search command

	SearchTitleMaxLen = 70 // Used in search result summaries
	ListTitleMaxLen   = 72 // Used in list command output
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#1a5276", Dark: "#5dade2"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}
	badgeColor  = lipgloss.AdaptiveColor{Light: "#b7950b", Dark: "#f4d03f"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	titleStyle  = lipgloss.NewStyle().Italic(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	keyStyle    = lipgloss.NewStyle().Foreground(accentColor)
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(badgeColor)
	ownerStyle  = lipgloss.NewStyle().Bold(true)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PublicationResult is a publication as listed or searched, with its
// citation key and derived fields.
type PublicationResult struct {
	Key         citation.Key   `json:"key"`
	Kind        reference.Kind `json:"kind"`
	FirstAuthor bool           `json:"first_author"`
	Citation    string         `json:"citation"`
	reference.Publication
}

func toResult(m *author.Matcher, p reference.Publication) PublicationResult {
	return PublicationResult{
		Key:         citation.KeyFor(p),
		Kind:        reference.Classify(p),
		FirstAuthor: m != nil && m.IsFirstAuthor(p.Authors),
		Citation:    citation.FormatShort(p),
		Publication: p,
	}
}

func toResults(m *author.Matcher, pubs []reference.Publication) []PublicationResult {
	out := make([]PublicationResult, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, toResult(m, p))
	}
	return out
}

// printPublication prints one publication in the styled human format.
func printPublication(num int, m *author.Matcher, r PublicationResult) {
	line := fmt.Sprintf("%s %s", dimStyle.Render(fmt.Sprintf("%3d.", num)), keyStyle.Render(string(r.Key)))
	if r.FirstAuthor {
		line += " " + badgeStyle.Render("★ First author")
	}
	fmt.Println(line)
	fmt.Printf("     %s\n", titleStyle.Render(truncateString(r.Title, ListTitleMaxLen)))
	fmt.Printf("     %s\n", styledAuthors(m, r.Authors))
	fmt.Printf("     %s\n\n", dimStyle.Render(fmt.Sprintf("%s, %s [%s]", r.Journal, r.Year, r.Kind)))
}

// styledAuthors renders the author list with the owner's name in bold.
func styledAuthors(m *author.Matcher, authors string) string {
	if m == nil {
		return authors
	}
	var b strings.Builder
	for _, sp := range m.Spans(authors) {
		if sp.Match {
			b.WriteString(ownerStyle.Render(sp.Text))
		} else {
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
