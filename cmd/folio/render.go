package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/launch"
	"github.com/jajnabi/folio/internal/publist"
	"github.com/jajnabi/folio/internal/render"
)

var (
	renderOutput string
	renderLive   bool
	renderOpen   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the page to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderLive, "live", false, "Render the page script for the preview server instead of the static build")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "Open the written page in a browser (requires -o)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the site as a single HTML page",
	Long: `Render the site as a single self-contained HTML page.

Sections that fail to load are logged and left out of the page. The static
page carries every filter and sort view of the publication list, so the
controls work without a server.

Examples:
  folio render -o public/index.html
  folio render -o public/index.html --open
  folio render --live > preview.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	site := loadSite(ctx, cfg)
	r, err := newRenderer(cfg, site)
	if err != nil {
		exitWithError(ExitConfigError, "building renderer: %v", err)
	}

	view := publist.NewController(site.Publications).View()
	page, err := r.Page(site, view, render.PageOptions{Title: cfg.Title, Static: !renderLive})
	if err != nil {
		exitWithError(ExitError, "rendering page: %v", err)
	}

	if renderOpen && renderOutput == "" {
		exitWithError(ExitError, "--open requires -o")
	}
	if renderOutput == "" {
		fmt.Print(page)
		return nil
	}

	if err := os.WriteFile(renderOutput, []byte(page), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", renderOutput, err)
	}

	if renderOpen {
		if err := launch.NewOpener(cfg.Browser).Open(renderOutput); err != nil {
			exitWithError(ExitError, "opening page: %v", err)
		}
	}

	if humanOutput {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d sections failed)\n", renderOutput, len(site.Errors))
	} else {
		outputJSON(StatusResponse{Status: "rendered", Path: renderOutput})
	}
	return nil
}
