package retrieval

import "errors"

var (
	// ErrIndexRequired is returned when a document index is not provided.
	ErrIndexRequired = errors.New("document index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
