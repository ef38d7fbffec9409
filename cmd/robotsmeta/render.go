package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/robotsmeta/internal/catalog"
	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/nao1215/robotsmeta/internal/log"
	"github.com/nao1215/robotsmeta/internal/pipeline"
	"github.com/nao1215/robotsmeta/internal/render"
	"github.com/nao1215/robotsmeta/internal/report"
	"github.com/spf13/cobra"
)

// inlinePath is the path reported for an info built from inline flags.
const inlinePath = "-"

// inlineFlags describe a single ad-hoc info on the command line.
var inlineFlags = []string{"canonical", "advice", "alternate", "description", "keywords", "disable-google"}

var (
	errInlineWithPages = errors.New("inline flags cannot be combined with page paths or --from-catalog")
	errNoPages         = errors.New("no pages to render (add pages to the page file or use inline flags)")
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [page-path...]",
		Short: "Render crawler head tags",
		Long: `Render writes the canonical link, robots meta tag, alternate links,
description, keywords and Google meta tag of one or more pages.

Pages come from the page file (.robotsmeta), or from the catalog with
--from-catalog. Without page paths every page is rendered. Inline flags
describe a single page on the command line instead.

Examples:
  # Render every page of the page file
  robotsmeta render

  # Render two pages as XML-style tags
  robotsmeta render --style xml / /private

  # Render an ad-hoc page
  robotsmeta render --canonical https://example.com/ --advice noindex --advice nofollow

  # Alternate links take "href" or "hreflang=href"
  robotsmeta render --alternate fr=https://example.com/fr/

  # Write a Markdown report of the catalog
  robotsmeta render --from-catalog --markdown -o report.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runRenderCmd,
	}

	addPageFileFlags(cmd)
	addCatalogFlags(cmd)
	cmd.Flags().Bool("from-catalog", false,
		"Read pages from the catalog instead of the page file")

	// Rendering flags
	cmd.Flags().StringP("style", "s", "",
		"Void element style: html, xml or xml-compact (default: page file style, then html)")
	cmd.Flags().BoolP("implicit", "i", false,
		"Append index and follow unless cancelled by another advice")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of pages rendered in parallel")

	// Inline page flags
	cmd.Flags().String("canonical", "", "Canonical URL of an inline page")
	cmd.Flags().StringArray("advice", nil, "Robots advice of an inline page (repeatable)")
	cmd.Flags().StringArray("alternate", nil, "Alternate link of an inline page: href or hreflang=href (repeatable)")
	cmd.Flags().String("description", "", "Description of an inline page")
	cmd.Flags().String("keywords", "", "Keywords of an inline page")
	cmd.Flags().StringSlice("disable-google", nil,
		"Google features to disable for an inline page: sitelinks-search-box, translation")

	// Report flags
	cmd.Flags().String("format", config.FormatHTML,
		"Output format: html, json or markdown")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	return cmd
}

// addPageFileFlags adds the --config flag.
func addPageFileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Page file path (default: .robotsmeta in current, XDG config or home directory)")
}

// addCatalogFlags adds the --db flag.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", config.XDGDataDir(),
		"Directory holding the page catalog")
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, args []string) error {
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

	jobs, err := collectJobs(ctx, cmd, cfg, file, args)
	if err != nil {
		return err
	}

	return runRender(ctx, cfg, file, jobs, cmd.OutOrStdout(), logger)
}

// getBoolFlag retrieves a bool flag from the command or its parent.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// setupLogger creates a structured logger writing to the command's stderr.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	if getBoolFlag(cmd, "log-json") {
		return log.NewJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	}
	return log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// buildConfig creates a Config from the flags the command defines.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()

	stringFlags := map[string]*string{
		"config": &cfg.ConfigFilePath,
		"db":     &cfg.DBDir,
		"style":  &cfg.Style,
		"format": &cfg.Format,
		"output": &cfg.OutputFile,
		"addr":   &cfg.Addr,
	}
	for name, dst := range stringFlags {
		if flags.Lookup(name) == nil {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	boolFlags := map[string]*bool{
		"implicit":     &cfg.ImplicitAdvices,
		"json":         &cfg.JSONReport,
		"markdown":     &cfg.MarkdownReport,
		"from-catalog": &cfg.FromCatalog,
	}
	for name, dst := range boolFlags {
		if flags.Lookup(name) == nil {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	if flags.Lookup("concurrency") != nil {
		var err error
		cfg.Concurrency, err = flags.GetInt("concurrency")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadPageFile loads the page file. If the user explicitly specified a path
// that does not exist it is an error; otherwise a missing file yields an
// empty page file.
func loadPageFile(cfg *config.Config) (*config.File, error) {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return &config.File{Pages: make(map[string]config.PageConfig)}, nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load page file %s: %w", configPath, err)
	}
	return file, nil
}

// hasInlineFlags reports whether any inline page flag was given.
func hasInlineFlags(cmd *cobra.Command) bool {
	for _, name := range inlineFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// collectJobs returns the pages to render: the inline page, catalog pages or
// page file pages, in that order of precedence.
func collectJobs(ctx context.Context, cmd *cobra.Command, cfg *config.Config, file *config.File, args []string) ([]pipeline.Job, error) {
	if hasInlineFlags(cmd) {
		if len(args) > 0 || cfg.FromCatalog {
			return nil, errInlineWithPages
		}
		page, err := inlinePageConfig(cmd)
		if err != nil {
			return nil, err
		}
		info, err := page.ToInfo()
		if err != nil {
			return nil, fmt.Errorf("invalid inline page: %w", err)
		}
		return []pipeline.Job{{Path: inlinePath, Info: info}}, nil
	}

	if cfg.FromCatalog {
		return catalogJobs(ctx, cfg.DBDir, args)
	}
	return fileJobs(file, args)
}

// inlinePageConfig builds a PageConfig from the inline flags. Only flags that
// were given are set, so --description "" renders an empty description.
func inlinePageConfig(cmd *cobra.Command) (config.PageConfig, error) {
	flags := cmd.Flags()
	var page config.PageConfig

	optionalStrings := map[string]**string{
		"canonical":   &page.Canonical,
		"description": &page.Description,
		"keywords":    &page.Keywords,
	}
	for name, dst := range optionalStrings {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return config.PageConfig{}, err
		}
		*dst = &v
	}

	var err error
	page.Advices, err = flags.GetStringArray("advice")
	if err != nil {
		return config.PageConfig{}, err
	}

	alternates, err := flags.GetStringArray("alternate")
	if err != nil {
		return config.PageConfig{}, err
	}
	for _, s := range alternates {
		a, err := config.ParseAlternate(s)
		if err != nil {
			return config.PageConfig{}, err
		}
		page.Alternates = append(page.Alternates, a)
	}

	page.DisableGoogle, err = flags.GetStringSlice("disable-google")
	if err != nil {
		return config.PageConfig{}, err
	}

	return page, nil
}

// fileJobs returns jobs for paths, or for every page of file when paths is
// empty.
func fileJobs(file *config.File, paths []string) ([]pipeline.Job, error) {
	if len(paths) == 0 {
		paths = file.PagePaths()
	}
	if len(paths) == 0 {
		return nil, errNoPages
	}

	jobs := make([]pipeline.Job, 0, len(paths))
	for _, path := range paths {
		info, err := file.Info(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pipeline.Job{Path: path, Info: info})
	}
	return jobs, nil
}

// openExistingCatalog opens the catalog in dir without creating it.
func openExistingCatalog(dir string) (*catalog.Catalog, error) {
	c, err := catalog.Open(dir, catalog.Options{EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog (run \"robotsmeta import\" first): %w", err)
	}
	return c, nil
}

// catalogJobs returns jobs for paths, or for every catalog page when paths
// is empty.
func catalogJobs(ctx context.Context, dir string, paths []string) ([]pipeline.Job, error) {
	c, err := openExistingCatalog(dir)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	var pages []catalog.Page
	if len(paths) == 0 {
		pages, err = c.All(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		for _, path := range paths {
			page, err := c.Get(ctx, path)
			if err != nil {
				return nil, err
			}
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		return nil, errNoPages
	}

	jobs := make([]pipeline.Job, len(pages))
	for i, page := range pages {
		jobs[i] = pipeline.Job{Path: page.Path, Info: page.Info}
	}
	return jobs, nil
}

// runRender renders jobs concurrently and writes them in the requested format.
func runRender(ctx context.Context, cfg *config.Config, file *config.File, jobs []pipeline.Job, stdout io.Writer, logger *slog.Logger) error {
	style, err := cfg.RenderStyle(file)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	renderer := render.NewRenderer(render.WithStyle(style))
	implicit := cfg.UseImplicitAdvices(file)

	logger.Info("rendering pages",
		"pages", len(jobs),
		"style", style,
		"implicitAdvices", implicit,
		"concurrency", cfg.Concurrency,
	)

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithImplicitAdvices(implicit),
				pipeline.WithRenderer(renderer),
			)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	pages, err := bp.ProcessBatch(ctx, jobs)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return writeResults(cfg.OutputFormat(), cfg.OutputFile, stdout, toResults(pages))
}

// toResults converts processed pages to report results.
func toResults(pages []*pipeline.Page) []report.Result {
	results := make([]report.Result, len(pages))
	for i, page := range pages {
		results[i] = report.Result{Path: page.Path, Info: page.Info, Tags: page.Tags}
	}
	return results
}

// writeResults writes results to outputFile, or to stdout when outputFile
// is empty.
func writeResults(format, outputFile string, stdout io.Writer, results []report.Result) (err error) {
	output := stdout
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, openErr := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if openErr != nil {
			return fmt.Errorf("failed to create output file: %w", openErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		output = f
	}

	w, err := report.NewWriter(format, output)
	if err != nil {
		return err
	}
	if _, err := w.Write(results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
