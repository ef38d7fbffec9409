// Package render serializes a model.WebCrawlerInfo into HTML head tags.
//
// Tags are written in a fixed order: canonical link, robots meta, alternate
// links, description meta, keywords meta and one google meta per disabled
// feature. Only meta content values are escaped; href and hreflang values
// are written verbatim. Every tag ends with the closing suffix of the
// configured VoidElementStyle, so the same info can be rendered as HTML
// ("<link ...>") or XHTML ("<link ... />").
//
// A Renderer holds nothing but its Style and may be shared between
// goroutines as long as each call writes to its own sink.
package render
