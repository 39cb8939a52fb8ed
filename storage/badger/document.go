package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/storage"
)

// DocumentIndex implements storage.DocumentIndex for BadgerDB.
//
// Documents are stored under generation-prefixed keys. A rebuild writes the
// new generation in full before swapping the active generation pointer, so
// concurrent searches keep reading the previous generation until the swap.
type DocumentIndex struct {
	backend *Backend
}

var _ storage.DocumentIndex = (*DocumentIndex)(nil)

// NewDocumentIndex opens a BadgerDB-backed document index at path.
//
// Returns storage.DocumentIndex interface to enforce abstraction.
// See package documentation for rationale.
func NewDocumentIndex(path string) (storage.DocumentIndex, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newDocumentIndex(backend), nil
}

// newDocumentIndex creates an index over an already open backend.
func newDocumentIndex(backend *Backend) *DocumentIndex {
	return &DocumentIndex{backend: backend}
}

// Close closes the underlying backend.
func (x *DocumentIndex) Close() error {
	return x.backend.Close()
}

// activeGeneration reads the active generation pointer within tx.
// Returns storage.ErrIndexNotBuilt if no generation was ever activated.
func activeGeneration(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get(makeActiveGenerationKey())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, storage.ErrIndexNotBuilt
		}
		return 0, err
	}
	var generation uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return storage.ErrTruncatedData
		}
		generation = binary.BigEndian.Uint64(val)
		return nil
	})
	return generation, err
}

// ReplaceAll atomically replaces the index contents with docs.
func (x *DocumentIndex) ReplaceAll(ctx context.Context, docs ...*core.SearchDocument) error {
	// Read the current generation; first build starts at 1.
	var current uint64
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		generation, err := activeGeneration(tx)
		if err != nil {
			if errors.Is(err, storage.ErrIndexNotBuilt) {
				return nil
			}
			return err
		}
		current = generation
		return nil
	}, false)
	if err != nil {
		return err
	}
	next := current + 1

	// Bulk-load the new generation. A write batch avoids badger's
	// per-transaction size limit on large catalogs.
	batch := x.backend.WriteBatch()
	defer batch.Cancel()
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Set(makeDocumentKey(next, doc.Id), storage.MarshalSearchDocument(doc)); err != nil {
			return err
		}
	}
	if err := batch.Flush(); err != nil {
		return err
	}

	// Swap the active generation pointer. Readers pick up the new
	// generation on their next transaction.
	swap := make([]byte, 8)
	binary.BigEndian.PutUint64(swap, next)
	err = x.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeActiveGenerationKey(), swap); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	// Drop the superseded generation. Failure here leaves garbage but
	// never affects correctness, so it is only logged.
	if current > 0 {
		if err := x.backend.DropPrefix(makeGenerationPrefix(current)); err != nil {
			x.backend.logger.Warn("failed to drop superseded index generation",
				"generation", current, "error", err)
		}
	}

	x.backend.logger.Info("index generation activated",
		"generation", next, "documents", len(docs))
	return nil
}

// Search finds documents similar to the query vector, highest first.
func (x *DocumentIndex) Search(ctx context.Context, vector []float32, filters map[string]any, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.SearchResult
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		generation, err := activeGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationPrefix(generation)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc *core.SearchDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalSearchDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc == nil || len(doc.Vector) == 0 {
				continue
			}
			if !matchesFilters(&doc.Metadata, filters) {
				continue
			}

			// Cosine similarity is a dot product for normalized vectors.
			results = append(results, &core.SearchResult{
				Document:   doc,
				Similarity: dotProduct(vector, doc.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetDocument retrieves a single document by ID from the active generation.
func (x *DocumentIndex) GetDocument(ctx context.Context, id core.ID) (*core.SearchDocument, error) {
	var doc *core.SearchDocument
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		generation, err := activeGeneration(tx)
		if err != nil {
			return err
		}
		item, err := tx.Get(makeDocumentKey(generation, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			doc, err = storage.UnmarshalSearchDocument(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns documents matching the metadata filters, unranked.
func (x *DocumentIndex) ListDocuments(ctx context.Context, filters map[string]any, limit int) ([]*core.SearchDocument, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var docs []*core.SearchDocument
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		generation, err := activeGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationPrefix(generation)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(docs) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc *core.SearchDocument
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalSearchDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc == nil || !matchesFilters(&doc.Metadata, filters) {
				continue
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Count reports the number of documents in the active generation.
func (x *DocumentIndex) Count(ctx context.Context) (int, error) {
	count := 0
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		generation, err := activeGeneration(tx)
		if err != nil {
			if errors.Is(err, storage.ErrIndexNotBuilt) {
				return nil
			}
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeGenerationPrefix(generation)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// matchesFilters reports whether metadata satisfies every filter entry.
// Keys the metadata does not carry never match. For list-valued metadata
// a scalar filter value must be a member of the list; a slice-valued
// filter is a set of allowed values and matches when the metadata value
// (or any member of a list-valued one) is in the set.
func matchesFilters(meta *core.DocumentMetadata, filters map[string]any) bool {
	for key, want := range filters {
		value, ok := meta.Field(key)
		if !ok {
			return false
		}
		if !valueMatches(value, want) {
			return false
		}
	}
	return true
}

func valueMatches(value, want any) bool {
	// A slice-valued filter is a set of allowed values.
	if allowed, ok := want.([]string); ok {
		switch v := value.(type) {
		case string:
			return slices.Contains(allowed, v)
		case []string:
			for _, s := range v {
				if slices.Contains(allowed, s) {
					return true
				}
			}
		}
		return false
	}

	switch v := value.(type) {
	case []string:
		s, ok := want.(string)
		if !ok {
			return false
		}
		return slices.Contains(v, s)
	case string:
		s, ok := want.(string)
		return ok && v == s
	case int64:
		switch w := want.(type) {
		case int64:
			return v == w
		case int:
			return v == int64(w)
		case float64:
			return float64(v) == w
		}
		return false
	case float64:
		switch w := want.(type) {
		case float64:
			return v == w
		case int:
			return v == float64(w)
		case int64:
			return v == float64(w)
		}
		return false
	default:
		return value == want
	}
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
