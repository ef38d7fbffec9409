package render

import (
	"io"
	"strings"

	"github.com/nao1215/robotsmeta/internal/model"
)

// adviceSeparator joins advice labels in the robots meta content.
const adviceSeparator = ", "

// Renderer writes the head tags of a model.WebCrawlerInfo.
type Renderer struct {
	style Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the output style. The default is NewStyle().
func WithStyle(style Style) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{style: NewStyle()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Style returns the style the renderer was configured with.
func (r *Renderer) Style() Style {
	return r.style
}

// WriteTags writes the tags for info to w. Nothing is written for an empty
// info. The first write error stops rendering and is returned wrapped in
// ErrWrite; tags already written are left in w.
func (r *Renderer) WriteTags(w io.Writer, info model.WebCrawlerInfo) error {
	if info.IsEmpty() {
		return nil
	}

	t := newTagWriter(w, r.style)

	if canonical, ok := info.Canonical(); ok {
		t.writeString(`<link rel="canonical"`)
		t.attr("href", canonical)
		t.close()
	}

	if advices := info.Advices(); !advices.IsEmpty() {
		labels := make([]string, 0, advices.Len())
		for a := range advices.Values() {
			labels = append(labels, a.Label())
		}
		t.meta("robots", strings.Join(labels, adviceSeparator))
	}

	for alternate := range info.Alternates().Values() {
		t.writeString(`<link rel="alternate"`)
		if language, ok := alternate.Language(); ok {
			t.attr("hreflang", language)
		}
		t.attr("href", alternate.Href())
		t.close()
	}

	if description, ok := info.Description(); ok {
		t.meta("description", description)
	}

	if keywords, ok := info.Keywords(); ok {
		t.meta("keywords", keywords)
	}

	for feature := range info.DisabledGoogleFeatures().Values() {
		t.meta("google", feature.LabelForDisabling())
	}

	return t.err
}

// Render returns the tags for info as a string.
func (r *Renderer) Render(info model.WebCrawlerInfo) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = r.WriteTags(&sb, info)
	return sb.String()
}
