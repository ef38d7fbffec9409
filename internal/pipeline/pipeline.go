package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/robotsmeta/internal/log"
	"github.com/nao1215/robotsmeta/internal/model"
)

// Job is one page to process.
type Job struct {
	Path string
	Info model.WebCrawlerInfo
}

// Page is the state a Job accumulates while it moves through the steps.
type Page struct {
	// Path is the page path, e.g. "/about".
	Path string

	// Info is the crawler info. Steps may replace it with a derived value.
	Info model.WebCrawlerInfo

	// Tags is the rendered HTML, set by RenderStep.
	Tags string

	// Stored reports whether StoreStep changed the catalog row.
	Stored bool

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string
}

// NewPage returns the initial state for job.
func NewPage(job Job) *Page {
	return &Page{Path: job.Path, Info: job.Info}
}

// Step is one stage of a Pipeline.
type Step interface {
	// Do processes page in place.
	Do(ctx context.Context, page *Page) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline runs steps over a page in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = log.OrDefault(p.logger)
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step on page and stops at the first error. The context
// is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, page *Page) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"path", page.Path,
				"reason", err,
			)
			return err
		}

		if err := step.Do(ctx, page); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"path", page.Path,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"path", page.Path,
		)
		page.PerformedSteps = append(page.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
