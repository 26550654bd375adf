package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/config"
	"github.com/jajnabi/folio/internal/content"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from publications",
	Long: `Rebuild the SQLite search index from the site's publications.

The index lives under .folio/cache and can be deleted at any time. Run this
after editing publications to keep search results current.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status       string `json:"status"`
	Publications int    `json:"publications"`
	Path         string `json:"path"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
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

	db := mustOpenDatabase(root)
	defer db.Close()

	n, err := db.RebuildFromPublications(site.Publications)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt search index with %d publications\n", n)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Publications: n, Path: config.DBPath(root)})
	}
	return nil
}
