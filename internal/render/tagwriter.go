package render

import (
	"fmt"
	"io"
	"strings"
)

// contentEscaper escapes meta content values. strings.Replacer works on the
// original text in a single pass, so "&" introduced by a replacement is never
// escaped again.
var contentEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape returns s with the five HTML special characters replaced by
// entities. It is the escaping applied to every meta content value.
func Escape(s string) string {
	return contentEscaper.Replace(s)
}

// tagWriter writes tags to a sink and keeps the first write error. Once an
// error is recorded every further write is a no-op.
type tagWriter struct {
	w      io.Writer
	suffix string
	err    error
}

func newTagWriter(w io.Writer, style Style) *tagWriter {
	return &tagWriter{w: w, suffix: style.VoidElementStyle().ClosingSuffix()}
}

func (t *tagWriter) writeString(s string) {
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.w, s); err != nil {
		t.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
}

// attr writes ` name="value"` with value as given.
func (t *tagWriter) attr(name, value string) {
	t.writeString(" " + name + `="` + value + `"`)
}

// meta writes <meta name="name" content="escaped content">.
func (t *tagWriter) meta(name, content string) {
	t.writeString("<meta")
	t.attr("name", name)
	t.attr("content", Escape(content))
	t.close()
}

// close terminates the current tag.
func (t *tagWriter) close() {
	t.writeString(t.suffix)
}
