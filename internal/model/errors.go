package model

import "errors"

var (
	// ErrEmptyAdvice is returned when an advice label is empty or blank.
	ErrEmptyAdvice = errors.New("advice label must not be empty")

	// ErrUnknownGoogleFeature is returned when a name matches neither a
	// feature name nor a disabling label.
	ErrUnknownGoogleFeature = errors.New("unknown google feature")
)
