package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <page-path>...",
		Short: "Remove pages from the catalog",
		Long: `Remove deletes pages from the catalog. Every path is attempted; the
command fails if any path was not stored.

Examples:
  robotsmeta remove /drafts /old`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRemoveCmd,
	}

	addCatalogFlags(cmd)

	return cmd
}

// runRemoveCmd executes the remove command.
func runRemoveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return runRemove(cmd.Context(), cfg, args, cmd.OutOrStdout())
}

// runRemove deletes paths and joins the errors of the paths that failed.
func runRemove(ctx context.Context, cfg *config.Config, paths []string, out io.Writer) error {
	c, err := openExistingCatalog(cfg.DBDir)
	if err != nil {
		return err
	}
	defer c.Close()

	var errs []error
	for _, path := range paths {
		if err := c.Delete(ctx, path); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "Removed %s\n", path)
	}
	return errors.Join(errs...)
}
