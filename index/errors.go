package index

import "errors"

var (
	// ErrIndexRequired is returned when a document index is not provided.
	ErrIndexRequired = errors.New("document index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoRecords is returned when a build is requested with no records.
	ErrNoRecords = errors.New("no records to index")

	// ErrInvalidMaxAttempts is returned when a retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
