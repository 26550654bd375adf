package publist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jajnabi/folio/internal/reference"
)

func titles(pubs []reference.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.Title
	}
	return out
}

func samplePubs() []reference.Publication {
	return []reference.Publication{
		{Title: "A", Year: 2021, Journal: "Cell"},
		{Title: "B", Year: 2023, Journal: "bioRxiv"},
		{Title: "C", Year: 2021, Journal: "Nature (preprint)"},
		{Title: "D", Year: 2019, Journal: "Science"},
		{Title: "E", Year: 2023, Journal: "PLOS"},
		{Title: "F", Year: 2021, Journal: "eLife"},
	}
}

func TestDeriveView(t *testing.T) {
	tests := []struct {
		name   string
		filter FilterType
		order  SortOrder
		want   []string
	}{
		{"all desc stable", All, Desc, []string{"B", "E", "A", "C", "F", "D"}},
		{"all asc stable", All, Asc, []string{"D", "A", "C", "F", "B", "E"}},
		{"peer desc", Peer, Desc, []string{"E", "A", "F", "D"}},
		{"preprint desc", Preprint, Desc, []string{"B", "C"}},
		{"preprint asc", Preprint, Asc, []string{"C", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(DeriveView(samplePubs(), tt.filter, tt.order))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeriveView() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveView_SubsetAndMonotonic(t *testing.T) {
	pubs := samplePubs()
	for _, f := range FilterTypes {
		for _, o := range []SortOrder{Desc, Asc} {
			view := DeriveView(pubs, f, o)

			seen := make(map[string]int)
			for i, p := range view {
				if !f.Matches(p) {
					t.Errorf("%s/%s: %q does not satisfy filter", f, o, p.Title)
				}
				seen[p.Title]++
				if i == 0 {
					continue
				}
				prev := view[i-1].Year
				if (o == Desc && p.Year > prev) || (o == Asc && p.Year < prev) {
					t.Errorf("%s/%s: year order broken at %d", f, o, i)
				}
			}
			for _, p := range pubs {
				want := 0
				if f.Matches(p) {
					want = 1
				}
				if seen[p.Title] != want {
					t.Errorf("%s/%s: %q appears %d times, want %d", f, o, p.Title, seen[p.Title], want)
				}
			}
		}
	}
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	pubs := samplePubs()
	before := titles(pubs)
	DeriveView(pubs, All, Asc)
	if diff := cmp.Diff(before, titles(pubs)); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestDeriveView_SpecExample(t *testing.T) {
	pubs := []reference.Publication{
		{Authors: "Ajnabi, J., Lee, K.", Year: 2023, Journal: "Nature (preprint)", Title: "2023 item"},
		{Authors: "Lee, K.", Year: 2021, Journal: "Cell", Title: "2021 item"},
	}
	got := titles(DeriveView(pubs, All, Desc))
	if diff := cmp.Diff([]string{"2023 item", "2021 item"}, got); diff != "" {
		t.Errorf("DeriveView() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFilterType(t *testing.T) {
	for _, s := range []string{"all", "Peer", " preprint "} {
		if _, err := ParseFilterType(s); err != nil {
			t.Errorf("ParseFilterType(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFilterType("journal"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("ParseFilterType(journal) error = %v, want ErrUnknownFilter", err)
	}
}

func TestParseSortOrder(t *testing.T) {
	if o, err := ParseSortOrder("ASC"); err != nil || o != Asc {
		t.Errorf("ParseSortOrder(ASC) = %q, %v", o, err)
	}
	if _, err := ParseSortOrder("random"); !errors.Is(err, ErrUnknownSort) {
		t.Errorf("ParseSortOrder(random) error = %v, want ErrUnknownSort", err)
	}
}

func TestLabels(t *testing.T) {
	if All.Label() != "All" || Peer.Label() != "Peer-reviewed" || Preprint.Label() != "Preprints" {
		t.Error("unexpected filter labels")
	}
	if Desc.Label() != "Newest first" || Asc.Label() != "Oldest first" {
		t.Error("unexpected sort labels")
	}
}
