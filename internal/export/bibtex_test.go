package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jajnabi/folio/internal/reference"
)

func TestToBibTeX_BasicArticle(t *testing.T) {
	p := reference.Publication{
		Authors:  "Ajnabi, J., Lee, K.",
		Year:     2023,
		Journal:  "Nature",
		Title:    "Test Paper Title",
		Link:     "https://example.org/paper",
		Abstract: "This is the abstract",
	}

	got := ToBibTeX("ajnabi_2023", p)

	if !strings.HasPrefix(got, "@article{ajnabi_2023,") {
		t.Errorf("ToBibTeX() should start with @article{ajnabi_2023, got:\n%s", got)
	}
	for _, want := range []string{
		`author = {Ajnabi, J. and Lee, K.}`,
		`title = {Test Paper Title}`,
		`journal = {Nature}`,
		`year = {2023}`,
		`url = {https://example.org/paper}`,
		`abstract = {This is the abstract}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(got), "}") {
		t.Errorf("ToBibTeX() should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_Preprint(t *testing.T) {
	p := reference.Publication{Authors: "Lee, K.", Year: 2024, Journal: "Virus Evolution (preprint)", Title: "P"}

	got := ToBibTeX("lee_2024", p)

	if !strings.HasPrefix(got, "@misc{lee_2024,") {
		t.Errorf("preprint should be @misc, got:\n%s", got)
	}
	if !strings.Contains(got, `howpublished = {Virus Evolution}`) {
		t.Errorf("preprint venue should drop the parenthetical, got:\n%s", got)
	}
	if !strings.Contains(got, `note = {Preprint}`) {
		t.Errorf("preprint should carry a note, got:\n%s", got)
	}
}

func TestDetermineEntryType(t *testing.T) {
	tests := []struct {
		venue string
		want  string
	}{
		{"Nature", "article"},
		{"bioRxiv", "misc"},
		{"Cell (preprint)", "misc"},
		{"Proceedings of NeurIPS", "inproceedings"},
		{"International Conference on Machine Learning", "inproceedings"},
		{"Symposium on Theory of Computing", "inproceedings"},
		{"", "article"},
	}

	for _, tt := range tests {
		t.Run(tt.venue, func(t *testing.T) {
			got := determineEntryType(reference.Publication{Journal: tt.venue})
			if got != tt.want {
				t.Errorf("determineEntryType(%q) = %q, want %q", tt.venue, got, tt.want)
			}
		})
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"A & B", `A \& B`},
		{"100%", `100\%`},
		{"$x$", `\$x\$`},
		{"a_b", `a\_b`},
		{"{x}", `\{x\}`},
		{"~", `\textasciitilde{}`},
		{"^", `\textasciicircum{}`},
	}
	for _, tt := range tests {
		if got := escapeLatex(tt.input); got != tt.want {
			t.Errorf("escapeLatex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEntries_DisambiguatesKeys(t *testing.T) {
	pubs := []reference.Publication{
		{Authors: "Lee, K.", Year: 2021, Title: "One"},
		{Authors: "Ajnabi, J.", Year: 2023, Title: "Two"},
		{Authors: "Lee, K., Ajnabi, J.", Year: 2021, Title: "Three"},
		{Authors: "Lee, M.", Year: 2021, Title: "Four"},
	}

	got := Entries(pubs)
	want := []string{"lee_2021", "ajnabi_2023", "lee_2021b", "lee_2021c"}
	for i, e := range got {
		if e.Key != want[i] {
			t.Errorf("Entries()[%d].Key = %q, want %q", i, e.Key, want[i])
		}
	}
}

func TestToBibTeXList(t *testing.T) {
	pubs := []reference.Publication{
		{Authors: "Lee, K.", Year: 2021, Journal: "Cell", Title: "One"},
		{Authors: "Ajnabi, J.", Year: 2023, Journal: "Nature", Title: "Two"},
	}
	got := ToBibTeXList(pubs)
	if strings.Count(got, "@article{") != 2 {
		t.Errorf("ToBibTeXList() should have 2 entries, got:\n%s", got)
	}
	if ToBibTeXList(nil) != "" {
		t.Error("ToBibTeXList(nil) should be empty")
	}
}

func TestParseBibTeXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	content := `@article{lee_2021,
  title = {One},
  url = {https://www.example.org/one/},
}

@misc{other_2020,
  title = {Other},
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := ParseBibTeXFile(path)
	if err != nil {
		t.Fatalf("ParseBibTeXFile() error = %v", err)
	}
	if !idx.Keys["lee_2021"] || !idx.Keys["other_2020"] {
		t.Errorf("Keys = %v", idx.Keys)
	}
	if !idx.HasEntry("renamed", "http://example.org/one") {
		t.Error("HasEntry() should match by normalized URL")
	}
	if idx.HasEntry("new_2024", "https://example.org/new") {
		t.Error("HasEntry() should not match unknown entries")
	}

	fresh := idx.NewEntries([]Entry{
		{Key: "lee_2021", Publication: reference.Publication{Link: "https://example.org/moved"}},
		{Key: "new_2024", Publication: reference.Publication{Link: "https://example.org/new"}},
	})
	if len(fresh) != 1 || fresh[0].Key != "new_2024" {
		t.Errorf("NewEntries() = %+v, want only new_2024", fresh)
	}
}

func TestParseBibTeXFile_Missing(t *testing.T) {
	idx, err := ParseBibTeXFile(filepath.Join(t.TempDir(), "none.bib"))
	if err != nil {
		t.Fatalf("ParseBibTeXFile() error = %v", err)
	}
	if len(idx.Keys) != 0 {
		t.Errorf("Keys = %v, want empty", idx.Keys)
	}
}

func TestAppendToBibFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := AppendToBibFile(path, "@article{a,\n}\n"); err != nil {
		t.Fatalf("AppendToBibFile() error = %v", err)
	}
	if err := AppendToBibFile(path, "@article{b,\n}\n"); err != nil {
		t.Fatalf("AppendToBibFile() error = %v", err)
	}
	idx, err := ParseBibTeXFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !idx.Keys["a"] || !idx.Keys["b"] {
		t.Errorf("Keys = %v, want a and b", idx.Keys)
	}
}
