package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// URLs maps normalized url values to citation keys
	URLs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		URLs: make(map[string]string),
	}
}

// HasEntry returns true if the entry already exists (by URL or key).
// URL is the primary match; citation key is the fallback if no URL.
func (idx *BibTeXIndex) HasEntry(key, link string) bool {
	if link != "" {
		if _, exists := idx.URLs[normalizeURL(link)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

var (
	// @type{key,
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,]+),`)
	// url = {value} or url = "value"
	urlFieldRegex = regexp.MustCompile(`(?i)^\s*url\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist or is empty.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string

	for scanner.Scan() {
		line := scanner.Text()

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 1 {
			currentKey = strings.TrimSpace(matches[1])
			idx.Keys[currentKey] = true
		}

		if matches := urlFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			if u := normalizeURL(matches[1]); u != "" && currentKey != "" {
				idx.URLs[u] = currentKey
			}
		}
	}

	return idx, scanner.Err()
}

// normalizeURL normalizes a link for comparison: scheme, "www.", and a
// trailing slash are ignored, and the result is lower-cased.
func normalizeURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content)
	return err
}

// NewEntries returns the entries whose key and link are not yet in idx.
func (idx *BibTeXIndex) NewEntries(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if !idx.HasEntry(e.Key, e.Publication.Link) {
			out = append(out, e)
		}
	}
	return out
}
