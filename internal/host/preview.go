package host

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nao1215/robotsmeta/internal/log"
	"github.com/nao1215/robotsmeta/internal/model"
	"github.com/nao1215/robotsmeta/internal/render"
)

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Path }}</title>
{{ crawlerInfo .Info }}
</head>
<body>
<h1>{{ .Path }}</h1>
<pre>{{ .Info }}</pre>
</body>
</html>
`

type previewPage struct {
	Path string
	Info model.WebCrawlerInfo
}

// NewPreviewHandler returns a chi router that serves:
//
//	GET /healthz  "ok"
//	GET /*        an HTML document whose head carries the page's tags
//
// Unknown paths get 404. X-Robots-Tag is set for known pages.
func NewPreviewHandler(source PageSource, renderer *render.Renderer, logger *slog.Logger) http.Handler {
	logger = log.OrDefault(logger)
	tmpl := template.Must(template.New("preview").Funcs(FuncMap(renderer)).Parse(previewTemplate))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.With(RobotsTagMiddleware(source, logger)).Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		info, err := source.Lookup(req.Context(), path)
		if errors.Is(err, ErrPageNotFound) {
			http.NotFound(w, req)
			return
		}
		if err != nil {
			logger.Error("page lookup failed", "path", path, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, previewPage{Path: path, Info: info}); err != nil {
			logger.Error("preview render failed", "path", path, "error", err)
		}
	})

	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
