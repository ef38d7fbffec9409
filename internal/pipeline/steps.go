package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/robotsmeta/internal/model"
	"github.com/nao1215/robotsmeta/internal/render"
)

// ImplicitAdvicesStep appends the implicit advices that are not cancelled.
type ImplicitAdvicesStep struct{}

// Name implements Step.
func (ImplicitAdvicesStep) Name() string {
	return "implicit-advices"
}

// Do implements Step.
func (ImplicitAdvicesStep) Do(_ context.Context, page *Page) error {
	page.Info = page.Info.WithImplicitAdvices()
	return nil
}

// RenderStep renders the page tags.
type RenderStep struct {
	renderer *render.Renderer
}

// NewRenderStep creates a RenderStep. A nil renderer means render.NewRenderer().
func NewRenderStep(renderer *render.Renderer) *RenderStep {
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	return &RenderStep{renderer: renderer}
}

// Name implements Step.
func (s *RenderStep) Name() string {
	return "render"
}

// Do implements Step.
func (s *RenderStep) Do(_ context.Context, page *Page) error {
	var sb strings.Builder
	if err := s.renderer.WriteTags(&sb, page.Info); err != nil {
		return fmt.Errorf("render %s: %w", page.Path, err)
	}
	page.Tags = sb.String()
	return nil
}

// Store persists page infos. catalog.Catalog implements it.
type Store interface {
	Put(ctx context.Context, path string, info model.WebCrawlerInfo) (bool, error)
}

// StoreStep writes the page info to a Store.
type StoreStep struct {
	store Store
}

// NewStoreStep creates a StoreStep.
func NewStoreStep(store Store) *StoreStep {
	return &StoreStep{store: store}
}

// Name implements Step.
func (s *StoreStep) Name() string {
	return "store"
}

// Do implements Step.
func (s *StoreStep) Do(ctx context.Context, page *Page) error {
	changed, err := s.store.Put(ctx, page.Path, page.Info)
	if err != nil {
		return err
	}
	page.Stored = changed
	return nil
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*defaultPipelineConfig)

type defaultPipelineConfig struct {
	implicitAdvices bool
	renderer        *render.Renderer
	store           Store
	skipRender      bool
}

// WithImplicitAdvices adds ImplicitAdvicesStep in front of the other steps.
func WithImplicitAdvices(enabled bool) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.implicitAdvices = enabled
	}
}

// WithRenderer sets the renderer used by RenderStep.
func WithRenderer(renderer *render.Renderer) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.renderer = renderer
	}
}

// WithStore adds a StoreStep after rendering.
func WithStore(store Store) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.store = store
	}
}

// WithoutRender drops RenderStep, e.g. when only importing pages.
func WithoutRender() DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.skipRender = true
	}
}

// DefaultPipeline builds the standard step sequence:
// implicit-advices (optional), render, store (optional).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	cfg := &defaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p := New(pipelineOpts...)
	if cfg.implicitAdvices {
		p.AddStep(ImplicitAdvicesStep{})
	}
	if !cfg.skipRender {
		p.AddStep(NewRenderStep(cfg.renderer))
	}
	if cfg.store != nil {
		p.AddStep(NewStoreStep(cfg.store))
	}
	return p
}
