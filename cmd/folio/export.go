package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/export"
)

var (
	exportBibtex bool
	exportKeys   string
	exportAppend string
)

func init() {
	exportCmd.Flags().BoolVar(&exportBibtex, "bibtex", false, "Export to BibTeX format")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified citation keys (comma-separated)")
	exportCmd.Flags().StringVar(&exportAppend, "append", "", "Append entries missing from this .bib file instead of printing")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export publications to BibTeX format",
	Long: `Export publications to BibTeX format.

Entry keys are citation keys. Publications sharing a key get a letter
suffix in list order (lee_2021, lee_2021b).

Examples:
  folio export --bibtex
  folio export --bibtex --keys ajnabi_2023,lee_2021
  folio export --bibtex --append refs.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportAppendResult is the response for export --append.
type ExportAppendResult struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportBibtex {
		exitWithError(ExitError, "--bibtex flag is required")
	}

	root := mustFindSite()
	cfg := mustLoadConfig(root)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	site := loadSite(ctx, cfg)
	if err := site.Errors[content.SectionPublications]; err != nil {
		exitWithError(ExitDataError, "loading publications: %v", err)
	}

	entries := export.Entries(site.Publications)
	if exportKeys != "" {
		entries = selectEntries(entries, strings.Split(exportKeys, ","))
	}

	if exportAppend == "" {
		// BibTeX is always text output, never JSON
		var parts []string
		for _, e := range entries {
			parts = append(parts, export.ToBibTeX(e.Key, e.Publication))
		}
		fmt.Print(strings.Join(parts, "\n"))
		return nil
	}

	idx, err := export.ParseBibTeXFile(exportAppend)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", exportAppend, err)
	}
	fresh := idx.NewEntries(entries)
	if len(fresh) > 0 {
		var parts []string
		for _, e := range fresh {
			parts = append(parts, export.ToBibTeX(e.Key, e.Publication))
		}
		if err := export.AppendToBibFile(exportAppend, strings.Join(parts, "\n")); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportAppend, err)
		}
	}

	result := ExportAppendResult{
		Status:  "appended",
		Path:    exportAppend,
		Added:   len(fresh),
		Skipped: len(entries) - len(fresh),
	}
	if humanOutput {
		fmt.Printf("Appended %d entries to %s (%d already present)\n", result.Added, result.Path, result.Skipped)
	} else {
		outputJSON(result)
	}
	return nil
}

// selectEntries keeps the entries named by keys, in key order. An unknown
// key is an error.
func selectEntries(entries []export.Entry, keys []string) []export.Entry {
	byKey := make(map[string]export.Entry, len(entries))
	for _, e := range entries {
		byKey[strings.ToLower(e.Key)] = e
	}
	var out []export.Entry
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		e, ok := byKey[k]
		if !ok {
			exitWithError(ExitDataError, "unknown key: %s", k)
		}
		out = append(out, e)
	}
	return out
}
