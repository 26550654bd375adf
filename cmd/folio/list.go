package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/publist"
)

var (
	listType string
	listSort string
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", string(publist.All), "Filter: all, peer, or preprint")
	listCmd.Flags().StringVar(&listSort, "sort", string(publist.Desc), "Order by year: desc or asc")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications as the page shows them",
	Long: `List publications filtered and sorted the way the page controls do.

Examples:
  folio list
  folio list --type preprint --sort asc --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// ListResponse is the derived publication view.
type ListResponse struct {
	State        publist.State       `json:"state"`
	Count        int                 `json:"count"`
	Publications []PublicationResult `json:"publications"`
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := publist.ParseFilterType(listType)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	order, err := publist.ParseSortOrder(listSort)
	if err != nil {
		exitWithError(ExitError, "%v", err)
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

	ctrl := publist.NewController(site.Publications)
	if err := ctrl.SetFilterType(filter); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if ctrl.State().Order != order {
		ctrl.ToggleSort()
	}
	view := ctrl.View()

	matcher, err := author.NewMatcher(cfg.Owner)
	if err != nil {
		exitWithError(ExitConfigError, "owner: %v", err)
	}
	results := toResults(matcher, view.Publications)

	if !humanOutput {
		outputJSON(ListResponse{State: view.State, Count: len(results), Publications: results})
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s · %s · %d publications",
		view.State.Filter.Label(), view.State.Order.Label(), len(results))))
	fmt.Println()
	if len(results) == 0 {
		fmt.Println(dimStyle.Render("No publications match this filter."))
		return nil
	}
	for i, r := range results {
		printPublication(i+1, matcher, r)
	}
	return nil
}
