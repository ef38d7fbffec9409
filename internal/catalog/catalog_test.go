package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/robotsmeta/internal/model"
)

// setupTestCatalog opens a catalog in a temporary directory.
func setupTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func sampleInfo() model.WebCrawlerInfo {
	return model.New().
		WithCanonical("https://example.com/").
		WithAdvices(model.NoIndex, model.NoFollow).
		WithAlternates(model.AlternateLanguage("fr", "https://example.com/fr")).
		WithDescription("").
		DisableGoogleFeatures(model.Translation)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "catalog")
		c, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open catalog: %v", err)
		}
		defer c.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("expected database file to exist: %v", err)
		}
		if c.Path() != filepath.Join(dir, FileName) {
			t.Errorf("unexpected path %q", c.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
		if !strings.Contains(err.Error(), "catalog not found") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open catalog: %v", err)
		}
		if _, err := c.Put(context.Background(), "/", sampleInfo()); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		_ = c.Close()

		reopened, err := Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen catalog: %v", err)
		}
		defer reopened.Close()

		page, err := reopened.Get(context.Background(), "/")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !page.Info.Equal(sampleInfo()) {
			t.Errorf("expected %v, got %v", sampleInfo(), page.Info)
		}
	})
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	ctx := context.Background()
	before := time.Now().Add(-time.Minute)

	changed, err := c.Put(ctx, "/private", sampleInfo())
	if err != nil {
		t.Fatalf("failed to put: %v", err)
	}
	if !changed {
		t.Error("expected first put to report a change")
	}

	page, err := c.Get(ctx, "/private")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if page.Path != "/private" {
		t.Errorf("expected path /private, got %q", page.Path)
	}
	if !page.Info.Equal(sampleInfo()) {
		t.Errorf("expected %v, got %v", sampleInfo(), page.Info)
	}
	if page.UpdatedAt.Before(before) {
		t.Errorf("expected a recent timestamp, got %v", page.UpdatedAt)
	}

	t.Run("unchanged info is not rewritten", func(t *testing.T) {
		changed, err := c.Put(ctx, "/private", sampleInfo())
		if err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if changed {
			t.Error("expected identical info to be a no-op")
		}
	})

	t.Run("changed info overwrites", func(t *testing.T) {
		updated := sampleInfo().WithAdvices(model.NoArchive)
		changed, err := c.Put(ctx, "/private", updated)
		if err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		if !changed {
			t.Error("expected a change")
		}
		page, err := c.Get(ctx, "/private")
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !page.Info.Equal(updated) {
			t.Errorf("expected %v, got %v", updated, page.Info)
		}
	})
}

func TestPutConcurrent(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	ctx := context.Background()

	const writers = 8
	var (
		wg      sync.WaitGroup
		changed atomic.Int32
	)
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.Put(ctx, "/same", sampleInfo())
			if err != nil {
				errs <- err
				return
			}
			if ok {
				changed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("failed to put: %v", err)
	}
	if got := changed.Load(); got != 1 {
		t.Errorf("expected exactly 1 change, got %d", got)
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	_, err := c.Get(context.Background(), "/missing")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}

func TestListAndAll(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	ctx := context.Background()

	for _, path := range []string{"/zeta", "/", "/alpha"} {
		if _, err := c.Put(ctx, path, model.New().WithCanonical("https://example.com"+path)); err != nil {
			t.Fatalf("failed to put %s: %v", path, err)
		}
	}

	paths, err := c.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if diff := cmp.Diff([]string{"/", "/alpha", "/zeta"}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	pages, err := c.All(ctx)
	if err != nil {
		t.Fatalf("failed to get all: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if canonical, _ := pages[1].Info.Canonical(); canonical != "https://example.com/alpha" {
		t.Errorf("expected alpha canonical, got %q", canonical)
	}
}

func TestFindByInfo(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	ctx := context.Background()

	shared := model.New().WithAdvices(model.NoIndex)
	for _, path := range []string{"/b", "/a"} {
		if _, err := c.Put(ctx, path, shared); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
	}
	if _, err := c.Put(ctx, "/c", sampleInfo()); err != nil {
		t.Fatalf("failed to put: %v", err)
	}

	paths, err := c.FindByInfo(ctx, shared)
	if err != nil {
		t.Fatalf("failed to find: %v", err)
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	c := setupTestCatalog(t)
	ctx := context.Background()

	if _, err := c.Put(ctx, "/", sampleInfo()); err != nil {
		t.Fatalf("failed to put: %v", err)
	}
	if err := c.Delete(ctx, "/"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := c.Get(ctx, "/"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound after delete, got %v", err)
	}
	if err := c.Delete(ctx, "/"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound for second delete, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		zero  bool
	}{
		{"2026-01-02T03:04:05Z", false},
		{"2026-01-02T03:04:05.123456789Z", false},
		{"2026-01-02 03:04:05", false},
		{"not a time", true},
	}
	for _, tt := range tests {
		if got := parseTimestamp(tt.input); got.IsZero() != tt.zero {
			t.Errorf("%q: expected zero=%v, got %v", tt.input, tt.zero, got)
		}
	}
}
