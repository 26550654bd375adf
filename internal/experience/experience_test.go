package experience

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPoint_UnmarshalJSON(t *testing.T) {
	data := []byte(`[
		"Led the analysis ({ajnabi_2023}).",
		{"text": "Built the pipeline", "paper": {"authors": "Lee, K.", "year": 2021, "journal": "Cell", "title": "T", "link": "https://example.org/t"}},
		{"text": "No paper here"}
	]`)

	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}

	if points[0].Kind != Plain || points[0].Text != "Led the analysis ({ajnabi_2023})." {
		t.Errorf("points[0] = %+v, want plain text", points[0])
	}
	if points[1].Kind != Annotated || points[1].Paper.Authors != "Lee, K." || points[1].Paper.Year != 2021 {
		t.Errorf("points[1] = %+v, want annotated Lee 2021", points[1])
	}
	if points[2].Kind != Plain || points[2].Text != "No paper here" {
		t.Errorf("points[2] = %+v, want plain fallback", points[2])
	}
}

func TestPoint_UnmarshalJSON_Invalid(t *testing.T) {
	for _, input := range []string{`42`, `[1]`, `true`} {
		var p Point
		if err := json.Unmarshal([]byte(input), &p); err == nil {
			t.Errorf("Unmarshal(%s) expected error", input)
		}
	}
}

func TestPoint_RoundTripShape(t *testing.T) {
	entry := Entry{
		Role:   "Research Assistant",
		Points: []Point{PlainPoint("text"), AnnotatedPoint("cited", samplePubs()[1])},
	}
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(entry, back); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}
