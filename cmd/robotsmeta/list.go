package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/nao1215/robotsmeta/internal/catalog"
	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/nao1215/robotsmeta/internal/render"
	"github.com/nao1215/robotsmeta/internal/report"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pages stored in the catalog",
		Long: `List prints the catalog as a Markdown report, or as JSON with --json.

Examples:
  # Show every stored page
  robotsmeta list

  # Show pages sharing the crawler info of /about
  robotsmeta list --same-as /about

  # Machine-readable output
  robotsmeta list --json`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	addCatalogFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().String("same-as", "",
		"Only list pages whose crawler info equals that of the given page")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sameAs, err := cmd.Flags().GetString("same-as")
	if err != nil {
		return err
	}

	return runList(cmd.Context(), cfg, sameAs, cmd.OutOrStdout())
}

// runList writes the catalog pages to out.
func runList(ctx context.Context, cfg *config.Config, sameAs string, out io.Writer) error {
	c, err := openExistingCatalog(cfg.DBDir)
	if err != nil {
		return err
	}
	defer c.Close()

	pages, err := c.All(ctx)
	if err != nil {
		return err
	}

	if sameAs != "" {
		page, err := c.Get(ctx, sameAs)
		if err != nil {
			return err
		}
		paths, err := c.FindByInfo(ctx, page.Info)
		if err != nil {
			return err
		}
		pages = slices.DeleteFunc(pages, func(p catalog.Page) bool {
			_, found := slices.BinarySearch(paths, p.Path)
			return !found
		})
	}

	renderer := render.NewRenderer()
	results := make([]report.Result, len(pages))
	for i, page := range pages {
		results[i] = report.Result{
			Path: page.Path,
			Info: page.Info,
			Tags: renderer.Render(page.Info),
		}
	}

	var w report.Writer
	if cfg.JSONReport {
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	} else {
		w = report.NewMarkdownWriter(out, report.WithTags(false))
	}
	if _, err := w.Write(results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
