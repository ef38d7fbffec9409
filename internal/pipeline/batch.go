package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/robotsmeta/internal/log"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at the same time
// unless WithConcurrency says otherwise.
const DefaultConcurrency = 10

// BatchProcessor runs a pipeline over many jobs concurrently.
type BatchProcessor struct {
	// pipelineFactory creates the pipeline for each job.
	pipelineFactory func() *Pipeline

	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the logger for batch-level messages.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs. Non-positive
// values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	bp.logger = log.OrDefault(bp.logger)
	return bp
}

// ProcessBatch runs every job and returns the pages in job order. The first
// failing job cancels the rest and its error is returned; pages of jobs that
// did not finish are nil.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []Job) ([]*Page, error) {
	bp.logger.Info("starting batch processing",
		"total_pages", len(jobs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	// Each goroutine writes only its own index.
	pages := make([]*Page, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			page := NewPage(job)
			if err := bp.pipelineFactory().Execute(ctx, page); err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_pages", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return pages, err
}

// ProcessBatchWithCallback runs every job and calls callback with each
// finished page and its job index. callback is called from worker
// goroutines and must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(page *Page, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			page := NewPage(job)
			if err := bp.pipelineFactory().Execute(ctx, page); err != nil {
				return err
			}
			callback(page, i)
			return nil
		})
	}

	return g.Wait()
}
