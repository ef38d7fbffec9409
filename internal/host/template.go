package host

import (
	"html/template"
	"strings"

	"github.com/nao1215/robotsmeta/internal/model"
	"github.com/nao1215/robotsmeta/internal/render"
)

// FuncMap returns template functions backed by r:
//
//	{{ crawlerInfo .Info }}
//
// writes the head tags of .Info. Meta content is escaped by the renderer,
// but href and hreflang values are written verbatim and must come from
// trusted configuration. A nil r means render.NewRenderer().
func FuncMap(r *render.Renderer) template.FuncMap {
	if r == nil {
		r = render.NewRenderer()
	}
	return template.FuncMap{
		"crawlerInfo": func(info model.WebCrawlerInfo) (template.HTML, error) {
			var sb strings.Builder
			if err := r.WriteTags(&sb, info); err != nil {
				return "", err
			}
			//nolint:gosec // Content values are escaped by the renderer.
			return template.HTML(sb.String()), nil
		},
	}
}
