package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/nao1215/robotsmeta/internal/config"
	"github.com/nao1215/robotsmeta/internal/host"
)

func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()
	flag := cmd.Flags().Lookup("addr")
	if flag == nil {
		t.Fatal("expected addr flag")
	}
	if flag.DefValue != config.DefaultAddr {
		t.Errorf("expected default %q, got %q", config.DefaultAddr, flag.DefValue)
	}
	for _, name := range []string{"config", "db", "from-catalog", "style", "implicit"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestNewPageSource(t *testing.T) {
	t.Parallel()

	file, err := config.LoadConfigFile(writePageFile(t, testPageFile))
	if err != nil {
		t.Fatalf("failed to load page file: %v", err)
	}

	t.Run("static pages", func(t *testing.T) {
		t.Parallel()
		source, closeSource, err := newPageSource(config.NewConfig(), file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeSource()

		info, err := source.Lookup(context.Background(), "/private")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := host.RobotsHeaderValue(info); got != "noindex, nofollow" {
			t.Errorf("expected noindex, nofollow, got %q", got)
		}
	})

	t.Run("implicit advices", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.ImplicitAdvices = true
		source, _, err := newPageSource(cfg, file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := source.Lookup(context.Background(), "/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := host.RobotsHeaderValue(info); got != "index, follow" {
			t.Errorf("expected index, follow, got %q", got)
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.FromCatalog = true
		cfg.DBDir = t.TempDir()
		if _, _, err := newPageSource(cfg, file); err == nil {
			t.Error("expected error for missing catalog")
		}
	})
}

func TestServe(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := host.NewPreviewHandler(host.StaticPages{}, nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ln, handler, logger)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz") //nolint:noctx // test request
	if err != nil {
		cancel()
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
