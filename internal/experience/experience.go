// Package experience models research-experience entries and expands their
// bullet points with formatted citations.
package experience

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jajnabi/folio/internal/reference"
)

// Entry is one element of experience.json.
type Entry struct {
	Role        string  `json:"role"`
	Institution string  `json:"institution"`
	Period      string  `json:"period"`
	Supervisor  string  `json:"supervisor"`
	Points      []Point `json:"points"`
}

// PointKind tags the variant held by a Point.
type PointKind int

const (
	// Plain points are free text that may contain inline citation markers.
	Plain PointKind = iota
	// Annotated points name their publication explicitly.
	Annotated
)

// Point is a bullet under an experience entry. In JSON it is either a
// string or an object {"text": ..., "paper": {...}}; the variant is decided
// once when decoding.
type Point struct {
	Kind  PointKind
	Text  string
	Paper reference.Publication // Set only for Annotated points
}

// PlainPoint builds a Plain point.
func PlainPoint(text string) Point {
	return Point{Kind: Plain, Text: text}
}

// AnnotatedPoint builds a point that cites paper directly.
func AnnotatedPoint(text string, paper reference.Publication) Point {
	return Point{Kind: Annotated, Text: text, Paper: paper}
}

type annotatedJSON struct {
	Text  string                 `json:"text"`
	Paper *reference.Publication `json:"paper"`
}

func (p *Point) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlainPoint(s)
		return nil
	}

	var obj annotatedJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("experience point must be a string or {text, paper}: %w", err)
	}
	// An object without a paper carries no citation; keep its text.
	if obj.Paper == nil {
		*p = PlainPoint(obj.Text)
		return nil
	}
	*p = AnnotatedPoint(obj.Text, *obj.Paper)
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	if p.Kind == Annotated {
		return json.Marshal(annotatedJSON{Text: p.Text, Paper: &p.Paper})
	}
	return json.Marshal(p.Text)
}
