package experience

import (
	"errors"
	"strings"
	"testing"

	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/reference"
)

func samplePubs() []reference.Publication {
	return []reference.Publication{
		{Authors: "Ajnabi, J., Lee, K.", Year: 2023, Journal: "Nature (preprint)", Title: "First", Link: "https://example.org/first"},
		{Authors: "Lee, K.", Year: 2021, Journal: "Cell", Title: "Second", Link: "https://example.org/second"},
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  UnresolvedPolicy
	}{
		{"", Drop},
		{"drop", Drop},
		{"LITERAL", Literal},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if _, err := ParsePolicy("keep"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("ParsePolicy(keep) error = %v, want ErrUnknownPolicy", err)
	}
}

func TestRenderPoint_ResolvedMarker(t *testing.T) {
	pubs := samplePubs()
	r := NewRenderer(citation.BuildIndex(pubs))

	got := string(r.RenderPoint(PlainPoint("Led the analysis ({ajnabi_2023}).")))
	want := "Led the analysis " + string(citation.FormatInline(pubs[0])) + "."
	if got != want {
		t.Errorf("RenderPoint() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderPoint_UnresolvedPolicies(t *testing.T) {
	ix := citation.BuildIndex(samplePubs())
	text := "Led the analysis ({ajnabi_1999})."

	tests := []struct {
		policy UnresolvedPolicy
		want   string
	}{
		{Drop, "Led the analysis ."},
		{Literal, "Led the analysis ({ajnabi_1999})."},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			r := &Renderer{Index: ix, Grammar: citation.GrammarCurly, Unresolved: tt.policy}
			if got := string(r.RenderPoint(PlainPoint(text))); got != tt.want {
				t.Errorf("RenderPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPoint_EmptyIndex(t *testing.T) {
	r := NewRenderer(nil)
	if got := string(r.RenderPoint(PlainPoint("x ({ajnabi_2023}) y"))); got != "x  y" {
		t.Errorf("RenderPoint() = %q, want %q", got, "x  y")
	}
}

func TestRenderPoint_ProseGrammar(t *testing.T) {
	pubs := samplePubs()
	r := &Renderer{Index: citation.BuildIndex(pubs), Grammar: citation.GrammarProse, Unresolved: Literal}

	got := string(r.RenderPoint(PlainPoint("Showed it (Lee et al., 2021) and ({ajnabi_2023}).")))
	want := "Showed it " + string(citation.FormatInline(pubs[1])) + " and ({ajnabi_2023})."
	if got != want {
		t.Errorf("RenderPoint() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderPoint_EscapesLiteralText(t *testing.T) {
	r := NewRenderer(citation.BuildIndex(samplePubs()))
	got := string(r.RenderPoint(PlainPoint("a < b & c")))
	if got != "a &lt; b &amp; c" {
		t.Errorf("RenderPoint() = %q", got)
	}
}

func TestRenderPoint_Annotated(t *testing.T) {
	paper := reference.Publication{Authors: "Chen, M.", Year: 2018, Journal: "Science", Link: "https://example.org/c"}
	r := NewRenderer(citation.BuildIndex(samplePubs()))

	got := string(r.RenderPoint(AnnotatedPoint("Trained models", paper)))
	want := "Trained models<br>" + string(citation.FormatInline(paper))
	if got != want {
		t.Errorf("RenderPoint() =\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(got, "[Chen, M., 2018]") {
		t.Errorf("annotated point should carry its paper's label, got %s", got)
	}
}

func TestUnresolvedMarkers(t *testing.T) {
	r := NewRenderer(citation.BuildIndex(samplePubs()))
	e := Entry{Points: []Point{
		PlainPoint("ok ({ajnabi_2023}) missing ({nobody_2000})"),
		AnnotatedPoint("({ignored_1})", reference.Publication{}),
		PlainPoint("({lee_2021}) ({ghost_2001})"),
	}}

	got := r.UnresolvedMarkers(e)
	want := []string{"({nobody_2000})", "({ghost_2001})"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("UnresolvedMarkers() = %v, want %v", got, want)
	}
}
