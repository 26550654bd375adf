package experience

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/jajnabi/folio/internal/citation"
)

// UnresolvedPolicy decides what replaces a marker that names no known
// publication.
type UnresolvedPolicy string

const (
	// Drop replaces the marker with nothing.
	Drop UnresolvedPolicy = "drop"
	// Literal keeps the marker text as written.
	Literal UnresolvedPolicy = "literal"
)

// ErrUnknownPolicy is returned by ParsePolicy for unsupported names.
var ErrUnknownPolicy = errors.New("unknown unresolved-citation policy")

// ParsePolicy validates a policy name. The empty string means drop.
func ParsePolicy(s string) (UnresolvedPolicy, error) {
	switch p := UnresolvedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Drop, nil
	case Drop, Literal:
		return p, nil
	default:
		return "", fmt.Errorf("%w %q: must be drop or literal", ErrUnknownPolicy, s)
	}
}

// Renderer expands experience points into markup.
type Renderer struct {
	Index      *citation.Index
	Grammar    citation.Grammar
	Unresolved UnresolvedPolicy
}

// NewRenderer returns a Renderer with the default grammar and policy.
func NewRenderer(ix *citation.Index) *Renderer {
	return &Renderer{Index: ix, Grammar: citation.GrammarCurly, Unresolved: Drop}
}

// RenderPoint renders one bullet's content (without the surrounding <li>).
//
// Plain text is HTML-escaped and each recognized marker is replaced by the
// inline citation of its publication. Annotated points render their text, a
// line break, and the inline citation of their paper without any lookup.
func (r *Renderer) RenderPoint(p Point) template.HTML {
	if p.Kind == Annotated {
		return template.HTML(template.HTMLEscapeString(p.Text) + "<br>" + string(citation.FormatInline(p.Paper)))
	}

	var b strings.Builder
	for _, seg := range citation.Scan(p.Text, r.Grammar) {
		if seg.Marker == nil {
			b.WriteString(template.HTMLEscapeString(seg.Literal))
			continue
		}
		if pub, ok := r.Index.ResolveMarker(*seg.Marker); ok {
			b.WriteString(string(citation.FormatInline(pub)))
			continue
		}
		if r.Unresolved == Literal {
			b.WriteString(template.HTMLEscapeString(seg.Marker.Raw))
		}
	}
	return template.HTML(b.String())
}

// UnresolvedMarkers lists the markers in an entry's points that resolve to nothing.
func (r *Renderer) UnresolvedMarkers(e Entry) []string {
	var out []string
	for _, p := range e.Points {
		if p.Kind != Plain {
			continue
		}
		for _, seg := range citation.Scan(p.Text, r.Grammar) {
			if seg.Marker == nil {
				continue
			}
			if _, ok := r.Index.ResolveMarker(*seg.Marker); !ok {
				out = append(out, seg.Marker.Raw)
			}
		}
	}
	return out
}
