package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/publist"
	"github.com/jajnabi/folio/internal/reference"
	"github.com/jajnabi/folio/internal/storage"
)

var (
	searchLimit   int
	searchAuthors []string
	searchYear    string
	searchTitle   string
	searchJournal string
	searchType    string
	searchKey     string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Search by author name (can be repeated, uses AND logic)")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	searchCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "Search in title only")
	searchCmd.Flags().StringVar(&searchJournal, "journal", "", "Filter by journal (partial match)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by kind: peer or preprint")
	searchCmd.Flags().StringVar(&searchKey, "key", "", "Lookup by exact citation key")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search publications by keyword, author, or year",
	Long: `Search the publication index built by "folio rebuild".

The positional query searches title, authors, journal, summary, and
abstract. Author matching is by prefix, so "Ajna" matches "Ajnabi".
When multiple authors are specified, all must match (AND logic).

Year syntax:
  --year 2024         - Exact year
  --year 2020:2024    - Range (inclusive)
  --year 2020:        - 2020 and later
  --year :2020        - 2020 and earlier

Examples:
  folio search "antibody"
  folio search -a Ajnabi --year 2022: --type peer
  folio search --key ajnabi_2023`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	var pubs []reference.Publication
	var err error

	switch {
	case searchKey != "":
		pubs, err = db.GetByKey(citation.NormalizeKey(searchKey))

	case len(args) > 0 || len(searchAuthors) > 0 || searchYear != "" ||
		searchTitle != "" || searchJournal != "" || searchType != "":
		filters := storage.SearchFilters{
			Authors: searchAuthors,
			Title:   searchTitle,
			Journal: searchJournal,
		}
		if len(args) > 0 {
			filters.Keyword = args[0]
		}
		if searchYear != "" {
			from, to, err := parseYearRange(searchYear)
			if err != nil {
				exitWithError(ExitError, "invalid year format: %v", err)
			}
			filters.YearFrom = from
			filters.YearTo = to
		}
		if searchType != "" {
			kind, err := parseKind(searchType)
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			filters.Kind = kind
		}
		pubs, err = db.SearchWithFilters(filters, searchLimit)

	default:
		exitWithError(ExitError, "must specify a query or at least one filter (--author, --year, --key)")
	}

	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if n, cerr := db.Count(); cerr == nil && n == 0 {
		logger.Warn("search index is empty; run folio rebuild")
	}

	matcher, err := author.NewMatcher(cfg.Owner)
	if err != nil {
		exitWithError(ExitConfigError, "owner: %v", err)
	}
	// Empty result is not an error
	results := toResults(matcher, pubs)

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No publications found")
		} else {
			fmt.Printf("Found %d publications:\n\n", len(results))
			for i, r := range results {
				printPublication(i+1, matcher, r)
			}
		}
	} else {
		outputJSON(results)
	}
	return nil
}

// parseKind accepts the list filter names other than "all".
func parseKind(s string) (reference.Kind, error) {
	f, err := publist.ParseFilterType(s)
	if err != nil {
		return "", err
	}
	if f == publist.All {
		return "", nil
	}
	return reference.Kind(f), nil
}

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}

		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}

		if from > 0 && to > 0 && from > to {
			return 0, 0, fmt.Errorf("start year %d is after end year %d", from, to)
		}
		return from, to, nil
	}

	// Single year - exact match
	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}

	return year, year, nil
}
