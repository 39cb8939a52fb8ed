package verify

import "errors"

var (
	// ErrNoSources is returned when an engine is built without any
	// reference sources.
	ErrNoSources = errors.New("at least one reference source required")

	// ErrSourceUnavailable indicates a reference source could not be
	// reached or read.
	ErrSourceUnavailable = errors.New("reference source unavailable")
)
