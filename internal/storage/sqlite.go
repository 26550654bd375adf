// Package storage keeps a rebuildable SQLite search index over publications.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPubFields contains the standard field list for SELECT queries.
const selectPubFields = `authors, year, journal, title, link, summary, abstract`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Publications in source order; key is the citation key and may repeat
		CREATE TABLE IF NOT EXISTS pubs (
			id INTEGER PRIMARY KEY,
			key TEXT NOT NULL,
			kind TEXT NOT NULL,
			authors TEXT NOT NULL,
			year INTEGER NOT NULL,
			journal TEXT,
			title TEXT NOT NULL,
			link TEXT,
			summary TEXT,
			abstract TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_key ON pubs(key);

		-- Full-text search virtual table (standalone, not external content)
		-- rowid mirrors pubs.id
		CREATE VIRTUAL TABLE IF NOT EXISTS pubs_fts USING fts5(
			title,
			authors,
			journal,
			summary,
			abstract
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromPublications clears the database and indexes pubs.
func (d *DB) RebuildFromPublications(pubs []reference.Publication) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pubs"); err != nil {
		return 0, fmt.Errorf("clearing pubs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM pubs_fts"); err != nil {
		return 0, fmt.Errorf("clearing pubs_fts table: %w", err)
	}

	pubsStmt, err := tx.Prepare(`
		INSERT INTO pubs (id, key, kind, ` + selectPubFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing pubs insert: %w", err)
	}
	defer pubsStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO pubs_fts (rowid, title, authors, journal, summary, abstract)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, p := range pubs {
		key := citation.KeyFor(p)
		_, err = pubsStmt.Exec(
			i, string(key), string(reference.Classify(p)),
			p.Authors, int(p.Year), nullableStringValue(p.Journal), p.Title,
			nullableStringValue(p.Link), nullableStringValue(p.Summary), nullableStringValue(p.Abstract),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting publication %s: %w", key, err)
		}

		_, err = ftsStmt.Exec(i, p.Title, p.Authors, reference.DisplayVenue(p.Journal), p.Summary, p.Abstract)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(pubs), nil
}

// GetByKey returns the publications filed under a citation key, in source
// order.
func (d *DB) GetByKey(key citation.Key) ([]reference.Publication, error) {
	rows, err := d.db.Query(`SELECT `+selectPubFields+` FROM pubs WHERE key = ? ORDER BY id`, string(key))
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", key, err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// Search performs a full-text search and returns matching publications.
func (d *DB) Search(query string, limit int) ([]reference.Publication, error) {
	return d.SearchWithFilters(SearchFilters{Keyword: query}, limit)
}

// SearchFilters contains optional filters for SearchWithFilters.
type SearchFilters struct {
	Keyword  string         // General keyword search across all text fields
	Title    string         // Search in title only (FTS)
	Authors  []string       // Author names (AND logic, prefix matching)
	Kind     reference.Kind // Peer or Preprint ("" = any)
	YearFrom int            // Minimum year (0 = no minimum)
	YearTo   int            // Maximum year (0 = no maximum)
	Journal  string         // Filter by venue (SQL LIKE, case-insensitive)
}

// SearchWithFilters returns publications matching ALL specified criteria,
// newest first.
func (d *DB) SearchWithFilters(filters SearchFilters, limit int) ([]reference.Publication, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	if filters.Title != "" {
		ftsTerms = append(ftsTerms, "title:"+prepareFTSQuery(filters.Title))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors:"+prepareAuthorQuery(author))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		query = `SELECT ` + selectPubFields + `
			FROM pubs
			WHERE id IN (SELECT rowid FROM pubs_fts WHERE pubs_fts MATCH ?)`
		args = append(args, strings.Join(ftsTerms, " AND "))
	} else {
		query = `SELECT ` + selectPubFields + ` FROM pubs WHERE 1=1`
	}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, string(filters.Kind))
	}
	if filters.YearFrom > 0 {
		query += " AND year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Journal != "" {
		query += " AND journal LIKE ?"
		args = append(args, "%"+filters.Journal+"%")
	}

	query += " ORDER BY year DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching.
// It adds a wildcard (*) so "Ajna" matches "Ajnabi".
func prepareAuthorQuery(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return author
	}

	var terms []string
	for _, part := range strings.Fields(author) {
		part = strings.Trim(part, ",.")
		if part == "" {
			continue
		}
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}
	if len(terms) == 0 {
		return `""`
	}

	// Use OR for multi-word author queries (match any part)
	return "(" + strings.Join(terms, " OR ") + ")"
}

// ListAll returns all publications in source order, optionally limited.
func (d *DB) ListAll(limit int) ([]reference.Publication, error) {
	query := `SELECT ` + selectPubFields + ` FROM pubs ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// Count returns the total number of publications.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM pubs").Scan(&count)
	return count, err
}

func scanPublications(rows *sql.Rows) ([]reference.Publication, error) {
	var pubs []reference.Publication
	for rows.Next() {
		var p reference.Publication
		var year int
		var journal, link, summary, abstract sql.NullString
		if err := rows.Scan(&p.Authors, &year, &journal, &p.Title, &link, &summary, &abstract); err != nil {
			return nil, err
		}
		p.Year = reference.Year(year)
		p.Journal = journal.String
		p.Link = link.String
		p.Summary = summary.String
		p.Abstract = abstract.String
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~,.") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
