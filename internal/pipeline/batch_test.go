package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/robotsmeta/internal/model"
)

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("WithConcurrency", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(3))
		if bp.concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()
		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(-1))
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", bp.concurrency)
		}
	})
}

func jobs(n int) []Job {
	out := make([]Job, n)
	for i := range out {
		path := fmt.Sprintf("/page-%02d", i)
		out[i] = Job{Path: path, Info: model.New().WithCanonical("https://example.com" + path)}
	}
	return out
}

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("keeps job order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			return DefaultPipeline(nil)
		}, WithConcurrency(4))

		input := jobs(20)
		pages, err := bp.ProcessBatch(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pages) != len(input) {
			t.Fatalf("expected %d pages, got %d", len(input), len(pages))
		}
		for i, page := range pages {
			if page.Path != input[i].Path {
				t.Errorf("index %d: expected %s, got %s", i, input[i].Path, page.Path)
			}
			expected := `<link rel="canonical" href="https://example.com` + input[i].Path + `">`
			if page.Tags != expected {
				t.Errorf("index %d: expected %q, got %q", i, expected, page.Tags)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak int32
		slow := &mockStep{name: "slow", fn: func(*Page) {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&current, -1)
		}}

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(slow)
			return p
		}, WithConcurrency(2))

		if _, err := bp.ProcessBatch(context.Background(), jobs(8)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak > 2 {
			t.Errorf("expected at most 2 concurrent jobs, got %d", peak)
		}
	})

	t.Run("first error aborts the batch", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "failing", err: errBoom})
			return p
		}, WithConcurrency(1))

		pages, err := bp.ProcessBatch(context.Background(), jobs(3))
		if !errors.Is(err, errBoom) {
			t.Errorf("expected errBoom, got %v", err)
		}
		for i, page := range pages {
			if page != nil {
				t.Errorf("index %d: expected nil page, got %v", i, page)
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return DefaultPipeline(nil) })
		if _, err := bp.ProcessBatch(ctx, jobs(3)); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return DefaultPipeline(nil) })
		pages, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pages) != 0 {
			t.Errorf("expected no pages, got %d", len(pages))
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func() *Pipeline { return DefaultPipeline(nil) }, WithConcurrency(3))

	var mu sync.Mutex
	seen := make(map[int]string)
	input := jobs(10)
	err := bp.ProcessBatchWithCallback(context.Background(), input, func(page *Page, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = page.Path
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != len(input) {
		t.Fatalf("expected %d callbacks, got %d", len(input), len(seen))
	}
	for i, job := range input {
		if seen[i] != job.Path {
			t.Errorf("index %d: expected %s, got %s", i, job.Path, seen[i])
		}
	}
}
