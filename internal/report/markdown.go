package report

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/robotsmeta/internal/model"
)

// syntaxHTML is the fence language of the tag blocks.
const syntaxHTML = markdown.SyntaxHighlight("html")

// MarkdownWriter writes a GitHub Flavored Markdown report: a summary, a
// chart of advice usage, a page table and the tags of every page.
type MarkdownWriter struct {
	baseWriter

	showTags bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithTags controls whether the tag block of each page is written.
// It is on by default.
func WithTags(show bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.showTags = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		showTags:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *MarkdownWriter) Write(results []Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Web Crawler Info Report")
	md.PlainText("")

	w.writeSummary(md, results)
	w.writePages(md, results)
	if w.showTags {
		w.writeTags(md, results)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func isNotIndexed(info model.WebCrawlerInfo) bool {
	return info.Advices().Contains(model.NoIndex) || info.Advices().Contains(model.None)
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []Result) {
	var withAdvices, notIndexed, withCanonical int
	for _, r := range results {
		if !r.Info.Advices().IsEmpty() {
			withAdvices++
		}
		if isNotIndexed(r.Info) {
			notIndexed++
		}
		if _, ok := r.Info.Canonical(); ok {
			withCanonical++
		}
	}

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Pages", strconv.Itoa(len(results))},
			{"With robots advices", strconv.Itoa(withAdvices)},
			{"Excluded from indexing", strconv.Itoa(notIndexed)},
			{"With canonical URL", strconv.Itoa(withCanonical)},
		},
	})
	md.PlainText("")

	w.writeAdviceChart(md, results)

	switch {
	case len(results) == 0:
		md.Note("No pages configured.")
	case notIndexed > 0:
		md.Warningf("%d page(s) are excluded from search indexing.", notIndexed)
	default:
		md.Tip("All pages are indexable.")
	}
	md.PlainText("")
}

// writeAdviceChart writes a mermaid pie chart of how often each advice label
// is used. Nothing is written when no page has advices.
func (w *MarkdownWriter) writeAdviceChart(md *markdown.Markdown, results []Result) {
	counts := make(map[string]uint64)
	for _, r := range results {
		for a := range r.Info.Advices().Values() {
			counts[a.Label()]++
		}
	}
	if len(counts) == 0 {
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Robots Advice Usage"),
		piechart.WithShowData(true),
	)
	for _, label := range labels {
		chart.LabelAndIntValue(label, counts[label])
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writePages(md *markdown.Markdown, results []Result) {
	md.H2("Pages")
	md.PlainText("")

	if len(results) == 0 {
		md.PlainText("No pages.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			"`" + r.Path + "`",
			orDash(canonicalCell(r.Info)),
			orDash(robotsCell(r.Info)),
			orDash(alternatesCell(r.Info)),
			orDash(googleCell(r.Info)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Path", "Canonical", "Robots", "Alternates", "Google"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTags(md *markdown.Markdown, results []Result) {
	if len(results) == 0 {
		return
	}

	md.H2("Tags")
	md.PlainText("")
	for _, r := range results {
		md.PlainText("### `" + r.Path + "`")
		md.PlainText("")
		if r.Tags == "" {
			md.PlainText("No tags.")
		} else {
			md.CodeBlocks(syntaxHTML, r.Tags)
		}
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [robotsmeta](https://github.com/nao1215/robotsmeta)*")
}

func canonicalCell(info model.WebCrawlerInfo) string {
	canonical, ok := info.Canonical()
	if !ok {
		return ""
	}
	return truncateString(canonical, 50)
}

func robotsCell(info model.WebCrawlerInfo) string {
	labels := make([]string, 0, info.Advices().Len())
	for a := range info.Advices().Values() {
		labels = append(labels, a.Label())
	}
	return strings.Join(labels, ", ")
}

func alternatesCell(info model.WebCrawlerInfo) string {
	cells := make([]string, 0, info.Alternates().Len())
	for a := range info.Alternates().Values() {
		if lang, ok := a.Language(); ok {
			cells = append(cells, lang)
		} else if media, ok := a.Media(); ok {
			cells = append(cells, truncateString(media, 30))
		} else {
			cells = append(cells, truncateString(a.Href(), 30))
		}
	}
	return strings.Join(cells, ", ")
}

func googleCell(info model.WebCrawlerInfo) string {
	labels := make([]string, 0, info.DisabledGoogleFeatures().Len())
	for f := range info.DisabledGoogleFeatures().Values() {
		labels = append(labels, f.LabelForDisabling())
	}
	return strings.Join(labels, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates s to maxLen bytes with an ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
