package config

import (
	"errors"

	"github.com/nao1215/robotsmeta/internal/report"
)

// Configuration errors. Callers check them with errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnknownPage is returned when a page path is not listed in the
	// configuration file.
	ErrUnknownPage = errors.New("unknown page")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingFormats is returned when both --json and --markdown are
	// specified, or when one of them disagrees with --format.
	ErrConflictingFormats = errors.New("conflicting output formats: choose one of html, json and markdown")

	// ErrUnknownFormat is returned when --format names an unsupported format.
	ErrUnknownFormat = report.ErrUnknownFormat

	// ErrInvalidAlternate is returned when an alternate has no href.
	ErrInvalidAlternate = errors.New("invalid alternate: href must not be empty")
)
