package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jajnabi/folio/internal/reference"
)

func testPubs() []reference.Publication {
	return []reference.Publication{
		{
			Authors:  "Ajnabi, J., Lee, K.",
			Year:     2023,
			Journal:  "Nature",
			Title:    "Machine Learning in Immunology",
			Link:     "https://example.org/ml",
			Abstract: "We discuss antibody repertoires.",
		},
		{
			Authors: "Lee, K.",
			Year:    2021,
			Journal: "bioRxiv (preprint)",
			Title:   "Deep Mutational Scanning",
			Summary: "Scanning every mutation.",
		},
		{
			Authors: "Lee, K., Ajnabi, J.",
			Year:    2021,
			Journal: "Cell",
			Title:   "Statistical Methods in Genomics",
		},
	}
}

// setupTestDB creates a test database indexed over testPubs.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.RebuildFromPublications(testPubs()); err != nil {
		t.Fatalf("Failed to rebuild DB: %v", err)
	}
	return db
}

func titles(pubs []reference.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.Title
	}
	return out
}

func TestOpenDB_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("OpenDB() did not create database file")
	}
}

func TestDB_RebuildFromPublications(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	rebuilt, err := db.RebuildFromPublications([]reference.Publication{{Authors: "New, A.", Year: 2026, Title: "New Paper"}})
	if err != nil {
		t.Fatalf("RebuildFromPublications() error = %v", err)
	}
	if rebuilt != 1 {
		t.Errorf("RebuildFromPublications() = %d, want 1", rebuilt)
	}
	count, _ = db.Count()
	if count != 1 {
		t.Errorf("After rebuild, Count() = %d, want 1", count)
	}
	if got, _ := db.Search("Genomics", 10); len(got) != 0 {
		t.Errorf("Search() after rebuild found stale rows: %v", titles(got))
	}
}

func TestDB_Search(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		query string
		want  int
	}{
		{"Immunology", 1},
		{"antibody", 1},
		{"mutation", 1},
		{"Lee", 3},
		{"Nature", 1},
		{"nonexistent", 0},
		{"Lee, K.", 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.Search(tt.query, 10)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) = %v, want %d results", tt.query, titles(got), tt.want)
			}
		})
	}
}

func TestDB_Search_NewestFirst(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.Search("Lee", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[0].Year != 2023 {
		t.Errorf("Search() = %v, want newest first", titles(got))
	}
}

func TestDB_SearchWithFilters(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name    string
		filters SearchFilters
		want    []string
	}{
		{
			name:    "author prefix",
			filters: SearchFilters{Authors: []string{"Ajna"}},
			want:    []string{"Machine Learning in Immunology", "Statistical Methods in Genomics"},
		},
		{
			name:    "preprints only",
			filters: SearchFilters{Kind: reference.Preprint},
			want:    []string{"Deep Mutational Scanning"},
		},
		{
			name:    "year range and author",
			filters: SearchFilters{Authors: []string{"Lee"}, YearTo: 2021, Kind: reference.Peer},
			want:    []string{"Statistical Methods in Genomics"},
		},
		{
			name:    "journal",
			filters: SearchFilters{Journal: "cell"},
			want:    []string{"Statistical Methods in Genomics"},
		},
		{
			name:    "title",
			filters: SearchFilters{Title: "deep"},
			want:    []string{"Deep Mutational Scanning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.SearchWithFilters(tt.filters, 0)
			if err != nil {
				t.Fatalf("SearchWithFilters() error = %v", err)
			}
			gotTitles := titles(got)
			if len(gotTitles) != len(tt.want) {
				t.Fatalf("SearchWithFilters() = %v, want %v", gotTitles, tt.want)
			}
			for i := range tt.want {
				if gotTitles[i] != tt.want[i] {
					t.Errorf("SearchWithFilters()[%d] = %q, want %q", i, gotTitles[i], tt.want[i])
				}
			}
		})
	}
}

func TestDB_GetByKey(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetByKey("lee_2021")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if len(got) != 2 || got[0].Title != "Deep Mutational Scanning" {
		t.Fatalf("GetByKey(lee_2021) = %v, want both 2021 Lee papers in source order", titles(got))
	}
	if got[0].Summary != "Scanning every mutation." || got[0].Journal != "bioRxiv (preprint)" {
		t.Errorf("GetByKey() lost fields: %+v", got[0])
	}

	got, err = db.GetByKey("nobody_1999")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetByKey(nobody_1999) = %v, want none", titles(got))
	}
}

func TestDB_ListAll(t *testing.T) {
	db := setupTestDB(t)

	all, err := db.ListAll(0)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 3 || all[0].Title != "Machine Learning in Immunology" {
		t.Errorf("ListAll(0) = %v, want source order", titles(all))
	}

	limited, err := db.ListAll(2)
	if err != nil {
		t.Fatalf("ListAll(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListAll(2) returned %d, want 2", len(limited))
	}
}

func TestDB_Empty(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	n, err := db.RebuildFromPublications(nil)
	if err != nil || n != 0 {
		t.Errorf("RebuildFromPublications(nil) = %d, %v", n, err)
	}
	if got, err := db.Search("anything", 10); err != nil || len(got) != 0 {
		t.Errorf("Search() on empty db = %v, %v", got, err)
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"simple", "simple"},
		{"two words", "two words"},
		{`say "hi"`, `"say ""hi"""`},
		{"Lee, K.", `"Lee, K."`},
		{"a-b", `"a-b"`},
	}
	for _, tt := range tests {
		if got := prepareFTSQuery(tt.input); got != tt.want {
			t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
