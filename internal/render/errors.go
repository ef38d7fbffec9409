package render

import "errors"

var (
	// ErrUnknownVoidElementStyle is returned when a void element style name
	// is not one of html, xml or xml-compact.
	ErrUnknownVoidElementStyle = errors.New("unknown void element style")

	// ErrWrite wraps a failure of the sink passed to Renderer.WriteTags.
	ErrWrite = errors.New("failed to write tags")
)
