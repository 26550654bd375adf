package author

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoSurname is returned when an Owner has no surname to match.
var ErrNoSurname = errors.New("owner surname is required")

// Span is a piece of an author string; Match marks the owner's name.
type Span struct {
	Text  string
	Match bool
}

// Matcher finds the owner's name in author strings written either as
// "Surname, I." or "I. Surname".
//
// Matching is case-insensitive and Unicode word-boundary safe: "Ajnabi, J."
// matches but "Ajnabian, J.", "Al-Ajnabi, J." and "Ajnabi, Jo" do not.
type Matcher struct {
	leading *regexp.Regexp
	any     *regexp.Regexp
}

// NewMatcher compiles the name patterns for an owner.
func NewMatcher(o Owner) (*Matcher, error) {
	surname := strings.TrimSpace(o.Surname)
	if surname == "" {
		return nil, ErrNoSurname
	}
	name := regexp.QuoteMeta(surname)

	// With no initials configured, the bare surname is the whole pattern.
	core := name
	if letters := o.letters(); len(letters) > 0 {
		parts := make([]string, len(letters))
		for i, r := range letters {
			parts[i] = regexp.QuoteMeta(string(r))
		}
		initials := strings.Join(parts, `\.?\s*`)
		surnameFirst := name + `,\s*` + initials + `\.?`
		initialsFirst := initials + `(?:\.\s*|\s+)` + name
		core = surnameFirst + `|` + initialsFirst
	}

	return &Matcher{
		leading: regexp.MustCompile(`(?i)^\s*(` + core + `)` + after),
		any:     regexp.MustCompile(`(?i)` + before + `(` + core + `)` + after),
	}, nil
}

// Name guards. A name may not touch a letter, mark, digit, hyphen, or
// apostrophe on either side, so "Al-Ajnabi" and "Ajnabian" stay unmatched.
const (
	nameRune = `\p{L}\p{M}\p{N}\-'’`
	before   = `(?:^|[^` + nameRune + `])`
	after    = `(?:$|[^` + nameRune + `])`
)

// MustMatcher is like NewMatcher but panics on error.
func MustMatcher(o Owner) *Matcher {
	m, err := NewMatcher(o)
	if err != nil {
		panic(err)
	}
	return m
}

// IsFirstAuthor reports whether the owner's name opens the author string.
func (m *Matcher) IsFirstAuthor(authors string) bool {
	return m.leading.MatchString(authors)
}

// Matches reports whether the owner's name appears anywhere in the string.
func (m *Matcher) Matches(authors string) bool {
	return m.any.MatchString(authors)
}

// Spans splits the author string into alternating plain and matched pieces.
// Concatenating every Span.Text reproduces the input exactly.
func (m *Matcher) Spans(authors string) []Span {
	var spans []Span
	last := 0
	// Group 1 is the name without the guard runes around it.
	for _, loc := range m.any.FindAllStringSubmatchIndex(authors, -1) {
		start, end := loc[2], loc[3]
		if start > last {
			spans = append(spans, Span{Text: authors[last:start]})
		}
		spans = append(spans, Span{Text: authors[start:end], Match: true})
		last = end
	}
	if last < len(authors) {
		spans = append(spans, Span{Text: authors[last:]})
	}
	return spans
}

// Highlight wraps every occurrence of the owner's name in <strong> tags and
// leaves the rest of the string untouched. The result is not HTML-escaped.
func (m *Matcher) Highlight(authors string) string {
	var b strings.Builder
	for _, s := range m.Spans(authors) {
		if s.Match {
			b.WriteString("<strong>")
			b.WriteString(s.Text)
			b.WriteString("</strong>")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
