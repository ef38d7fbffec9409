package host

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nao1215/robotsmeta/internal/log"
	"github.com/nao1215/robotsmeta/internal/model"
)

// RobotsTagHeader is the response header carrying robots advices.
const RobotsTagHeader = "X-Robots-Tag"

// RobotsHeaderValue joins the advice labels of info with ", ", the same way
// the robots meta content is built. It returns "" when info has no advices.
func RobotsHeaderValue(info model.WebCrawlerInfo) string {
	labels := make([]string, 0, info.Advices().Len())
	for a := range info.Advices().Values() {
		labels = append(labels, a.Label())
	}
	return strings.Join(labels, ", ")
}

// RobotsTagMiddleware sets X-Robots-Tag on responses for paths known to
// source. Unknown paths pass through untouched; lookup failures are logged.
func RobotsTagMiddleware(source PageSource, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = log.OrDefault(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, err := source.Lookup(r.Context(), r.URL.Path)
			switch {
			case err == nil:
				if value := RobotsHeaderValue(info); value != "" {
					w.Header().Set(RobotsTagHeader, value)
				}
			case errors.Is(err, ErrPageNotFound):
			default:
				logger.Warn("robots lookup failed", "path", r.URL.Path, "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}
