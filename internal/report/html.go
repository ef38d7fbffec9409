package report

import (
	"io"
	"strings"
)

// HTMLWriter writes the rendered tags as they are. When more than one page
// is written, each block is preceded by an HTML comment naming the path.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *HTMLWriter) Write(results []Result) (int, error) {
	var sb strings.Builder
	for _, r := range results {
		if len(results) > 1 {
			sb.WriteString("<!-- ")
			sb.WriteString(commentSafe(r.Path))
			sb.WriteString(" -->\n")
		}
		sb.WriteString(r.Tags)
		sb.WriteString("\n")
	}
	return io.WriteString(w.output, sb.String())
}

// commentSafe keeps a path from closing the surrounding comment.
func commentSafe(s string) string {
	return strings.ReplaceAll(s, "--", "%2D%2D")
}
