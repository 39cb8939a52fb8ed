package storage

import (
	"context"

	"github.com/poiesic/counselit/core"
)

// DocumentIndex provides operations for the searchable college document index.
// Implementations must be thread-safe: searches may run concurrently with a
// rebuild and keep serving the previous generation until the swap completes.
type DocumentIndex interface {
	// ReplaceAll atomically replaces the index contents with docs.
	// Documents are written under a fresh generation and the active
	// generation pointer is swapped only after every document landed,
	// so readers never observe a partially built index.
	ReplaceAll(ctx context.Context, docs ...*core.SearchDocument) error

	// Search finds documents in the active generation similar to the
	// query vector. filters are metadata constraints: a document matches
	// a filter only when its metadata carries the key and the values
	// agree. For list-valued keys a scalar filter value must be a member
	// of the list; a slice-valued filter is a set of allowed values and
	// matches when the metadata value falls in the set.
	// Returns up to limit results ordered by similarity, highest first.
	// Returns ErrIndexNotBuilt if no generation has been activated yet.
	Search(ctx context.Context, vector []float32, filters map[string]any, limit int) ([]*core.SearchResult, error)

	// GetDocument retrieves a single document by ID from the active
	// generation. Returns ErrNotFound if it doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.SearchDocument, error)

	// ListDocuments returns documents from the active generation matching
	// the metadata filters, without similarity ranking. A nil or empty
	// filter set returns every document, up to limit.
	ListDocuments(ctx context.Context, filters map[string]any, limit int) ([]*core.SearchDocument, error)

	// Count reports the number of documents in the active generation.
	// Returns 0 with no error before the first build.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
