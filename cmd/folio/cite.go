package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/clipboard"
	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/reference"
)

var citeCopy bool

func init() {
	citeCmd.Flags().BoolVar(&citeCopy, "copy", false, "Copy the ({key}) marker to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite <key>",
	Short: "Resolve a citation key",
	Long: `Resolve a citation key the way experience markers are resolved.

The key is the first author as written before the first comma, lowercased
with whitespace removed, an underscore, and the year ("J. Ajnabi" in 2023
gives "j.ajnabi_2023"). Matching is case-insensitive.

A ({key}) marker only accepts letters a-z, digits, and underscores. Keys
with other characters cannot be cited with a marker; --copy fails for them
and such publications should be cited in prose, (Ajnabi et al., 2023), or
with an annotated {text, paper} point.

Examples:
  folio cite ajnabi_2023
  folio cite Ajnabi_2023 --human
  folio cite ajnabi_2023 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

// CiteResponse is a resolved citation.
type CiteResponse struct {
	Key    citation.Key `json:"key"`
	Short  string       `json:"short"`
	Inline string       `json:"inline"`
	Link   string       `json:"link"`
	Title  string       `json:"title"`
	Marker string       `json:"marker,omitempty"`
	Copied bool         `json:"copied,omitempty"`
}

func runCite(cmd *cobra.Command, args []string) error {
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

	ix := citation.BuildIndex(site.Publications)
	pub, ok := ix.Resolve(args[0])
	if !ok {
		exitWithError(ExitDataError, "no publication for key %q", citation.NormalizeKey(args[0]))
	}

	resp := CiteResponse{
		Key:    citation.KeyFor(pub),
		Short:  citation.FormatShort(pub),
		Inline: string(citation.FormatInline(pub)),
		Link:   pub.Link,
		Title:  pub.Title,
	}
	if marker, ok := keyMarker(resp.Key); ok {
		resp.Marker = marker
	}

	if citeCopy {
		if resp.Marker == "" {
			exitWithError(ExitDataError,
				"key %q cannot be written as a ({key}) marker; cite it in prose (%s) or with an annotated point",
				resp.Key, proseMarker(pub))
		}
		if err := clipboard.Copy(resp.Marker); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
		resp.Copied = true
	}

	if humanOutput {
		fmt.Println(keyStyle.Render(string(resp.Key)))
		fmt.Printf("  %s\n", titleStyle.Render(resp.Title))
		fmt.Printf("  [%s]\n", resp.Short)
		fmt.Printf("  %s\n", dimStyle.Render(resp.Inline))
		if resp.Marker == "" {
			fmt.Printf("  %s\n", dimStyle.Render("no ({key}) marker possible; cite as "+proseMarker(pub)))
		}
		if resp.Copied {
			fmt.Printf("  %s copied to clipboard\n", resp.Marker)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

// keyMarker writes key as a curly marker, reporting false when the marker
// would not scan back to the same key.
func keyMarker(key citation.Key) (string, bool) {
	marker := "({" + string(key) + "})"
	segs := citation.Scan(marker, citation.GrammarCurly)
	if len(segs) != 1 || segs[0].Marker == nil || citation.NormalizeKey(segs[0].Marker.Key) != key {
		return "", false
	}
	return marker, true
}

// proseMarker writes the prose form that resolves to pub.
func proseMarker(pub reference.Publication) string {
	name := reference.FirstAuthorToken(pub.Authors)
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[len(fields)-1]
	}
	return fmt.Sprintf("(%s et al., %d)", name, pub.Year)
}
