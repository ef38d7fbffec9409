// Package host exposes the renderer to HTTP servers and html/template.
//
// FuncMap gives templates a crawlerInfo function that writes the head tags
// of an info. RobotsTagMiddleware mirrors the robots advices of a page into
// the X-Robots-Tag response header. NewPreviewHandler serves a minimal HTML
// document per configured page so that the result can be checked in a
// browser or with curl.
package host
