package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/robotsmeta/internal/model"
)

// Output formats accepted by NewWriter.
const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatHTML, FormatJSON, FormatMarkdown}
}

// Result is one rendered page.
type Result struct {
	// Path is the page path, e.g. "/about".
	Path string `json:"path"`

	// Info is the crawler info the tags were rendered from.
	Info model.WebCrawlerInfo `json:"info"`

	// Tags is the rendered HTML.
	Tags string `json:"tags"`
}

// Writer writes results to its destination.
type Writer interface {
	// Write outputs the results and returns the number of bytes written.
	Write(results []Result) (int, error)
}

// NewWriter returns the writer for format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatHTML, "":
		return NewHTMLWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter holds the destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
