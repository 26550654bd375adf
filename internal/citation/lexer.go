package citation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Grammar selects which inline marker syntaxes Scan recognizes.
type Grammar string

const (
	GrammarCurly Grammar = "curly" // ({ajnabi_2023})
	GrammarProse Grammar = "prose" // (Ajnabi et al., 2023)
	GrammarBoth  Grammar = "both"
)

// ErrUnknownGrammar is returned by ParseGrammar for unsupported names.
var ErrUnknownGrammar = errors.New("unknown citation grammar")

// ParseGrammar validates a grammar name. The empty string means curly.
func ParseGrammar(s string) (Grammar, error) {
	switch g := Grammar(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GrammarCurly, nil
	case GrammarCurly, GrammarProse, GrammarBoth:
		return g, nil
	default:
		return "", fmt.Errorf("%w %q: must be curly, prose, or both", ErrUnknownGrammar, s)
	}
}

// Marker patterns. Capture groups: curly key; prose name and year. A prose
// name never spans a semicolon, so grouped citations are left as text.
const (
	curlyPattern = `\(\{([a-z0-9_]+)\}\)`
	prosePattern = `\(([^(){};]+?)\s+et\s+al\.?,\s*(\d{4})\)`
)

var (
	curlyRe = regexp.MustCompile(`(?i)` + curlyPattern)
	proseRe = regexp.MustCompile(`(?i)` + prosePattern)
	bothRe  = regexp.MustCompile(`(?i)` + curlyPattern + `|` + prosePattern)
)

// Marker is one inline citation found in text. Keyed markers carry Key;
// prose markers carry Name and Year.
type Marker struct {
	Raw  string // Marker text exactly as written
	Key  string
	Name string
	Year int
}

// Keyed reports whether the marker uses the curly key syntax.
func (m Marker) Keyed() bool {
	return m.Key != ""
}

// Segment is either a literal span of text or a citation marker.
type Segment struct {
	Literal string
	Marker  *Marker
}

// Scan splits text into literal spans and citation markers. Concatenating
// Literal and Marker.Raw over all segments reproduces the input.
func Scan(text string, g Grammar) []Segment {
	var re *regexp.Regexp
	switch g {
	case GrammarProse:
		re = proseRe
	case GrammarBoth:
		re = bothRe
	default:
		re = curlyRe
	}

	var segs []Segment
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Literal: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Marker: markerAt(text, loc, g)})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Literal: text[last:]})
	}
	return segs
}

// markerAt builds a Marker from a submatch index slice. The group layout
// depends on which pattern produced it.
func markerAt(text string, loc []int, g Grammar) *Marker {
	m := &Marker{Raw: text[loc[0]:loc[1]]}
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	switch g {
	case GrammarProse:
		m.Name, m.Year = strings.TrimSpace(group(1)), atoi(group(2))
	case GrammarBoth:
		if k := group(1); k != "" {
			m.Key = k
		} else {
			m.Name, m.Year = strings.TrimSpace(group(2)), atoi(group(3))
		}
	default:
		m.Key = group(1)
	}
	return m
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
