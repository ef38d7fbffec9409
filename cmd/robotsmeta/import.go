package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nao1215/robotsmeta/internal/catalog"
	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/nao1215/robotsmeta/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [page-path...]",
		Short: "Store page file pages in the catalog",
		Long: `Import copies pages from the page file into the catalog, a SQLite
database in the XDG data directory. Pages whose info did not change are
left untouched. Without page paths every page is imported.

Examples:
  # Import every page
  robotsmeta import

  # Import one page into a custom catalog directory
  robotsmeta import --db ./catalog /about

  # Store the resolved advices including index and follow
  robotsmeta import --implicit`,
		Args: cobra.ArbitraryArgs,
		RunE: runImportCmd,
	}

	addPageFileFlags(cmd)
	addCatalogFlags(cmd)
	cmd.Flags().BoolP("implicit", "i", false,
		"Store advices with index and follow appended unless cancelled")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of pages imported in parallel")

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file, err := loadPageFile(cfg)
	if err != nil {
		return err
	}

	jobs, err := fileJobs(file, args)
	if err != nil {
		return err
	}

	return runImport(ctx, cfg, file, jobs, cmd.OutOrStdout(), logger)
}

// runImport stores jobs in the catalog and prints one line per page.
func runImport(ctx context.Context, cfg *config.Config, file *config.File, jobs []pipeline.Job, out io.Writer, logger *slog.Logger) error {
	c, err := catalog.Open(cfg.DBDir, catalog.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer c.Close()
	logger.Info("catalog opened", "path", c.Path())

	implicit := cfg.UseImplicitAdvices(file)
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithImplicitAdvices(implicit),
				pipeline.WithoutRender(),
				pipeline.WithStore(c),
			)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	var (
		mu      sync.Mutex
		changed int
	)
	err = bp.ProcessBatchWithCallback(ctx, jobs, func(page *pipeline.Page, index int) {
		mu.Lock()
		defer mu.Unlock()

		status := "unchanged"
		if page.Stored {
			status = "stored"
			changed++
		}
		fmt.Fprintf(out, "[%d/%d] %s %s\n", index+1, len(jobs), status, page.Path)
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(out, "Imported %d page(s) into %s (%d changed)\n", len(jobs), c.Path(), changed)
	return nil
}
