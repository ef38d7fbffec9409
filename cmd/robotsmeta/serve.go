package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/nao1215/robotsmeta/internal/host"
	"github.com/nao1215/robotsmeta/internal/render"
	"github.com/spf13/cobra"
)

const (
	// readHeaderTimeout bounds how long a client may take to send headers.
	readHeaderTimeout = 10 * time.Second

	// shutdownTimeout bounds graceful shutdown after a signal.
	shutdownTimeout = 5 * time.Second
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a preview of every page",
		Long: `Serve starts an HTTP server that answers every configured page path
with a minimal HTML document whose head carries the page's tags. Pages
with robots advices also get an X-Robots-Tag header. GET /healthz
answers "ok".

Examples:
  # Preview the page file on :8080
  robotsmeta serve

  # Preview the catalog on another port
  robotsmeta serve --from-catalog --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addPageFileFlags(cmd)
	addCatalogFlags(cmd)
	cmd.Flags().StringP("addr", "a", config.DefaultAddr, "Listen address")
	cmd.Flags().Bool("from-catalog", false,
		"Serve pages from the catalog instead of the page file")
	cmd.Flags().StringP("style", "s", "",
		"Void element style: html, xml or xml-compact")
	cmd.Flags().BoolP("implicit", "i", false,
		"Append index and follow unless cancelled by another advice")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	file, err := loadPageFile(cfg)
	if err != nil {
		return err
	}

	source, closeSource, err := newPageSource(cfg, file)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Error("failed to close page source", "error", err)
		}
	}()

	style, err := cfg.RenderStyle(file)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	handler := host.NewPreviewHandler(source, render.NewRenderer(render.WithStyle(style)), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving previews on http://%s\n", ln.Addr())
	return serve(ctx, ln, handler, logger)
}

// newPageSource returns the pages to serve and a function releasing them.
func newPageSource(cfg *config.Config, file *config.File) (host.PageSource, func() error, error) {
	if cfg.FromCatalog {
		c, err := openExistingCatalog(cfg.DBDir)
		if err != nil {
			return nil, nil, err
		}
		return host.CatalogPages{Catalog: c}, c.Close, nil
	}

	implicit := cfg.UseImplicitAdvices(file)
	pages := make(host.StaticPages, len(file.Pages))
	for _, path := range file.PagePaths() {
		info, err := file.Info(path)
		if err != nil {
			return nil, nil, err
		}
		if implicit {
			info = info.WithImplicitAdvices()
		}
		pages[path] = info
	}
	return pages, func() error { return nil }, nil
}

// serve runs handler on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("received shutdown signal, stopping preview server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down preview server: %w", err)
	}
	return nil
}
