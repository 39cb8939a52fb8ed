package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/storage"
)

func makeDoc(collegeID, name string, streams []string, vector []float32) *core.SearchDocument {
	return &core.SearchDocument{
		Id:   core.IDFromContent(collegeID),
		Text: "College: " + name,
		Metadata: core.DocumentMetadata{
			CollegeID: collegeID,
			Name:      name,
			Type:      "government",
			Location:  "Delhi",
			Streams:   streams,
			MinFee:    10000,
			MaxFee:    50000,
		},
		Vector: vector,
	}
}

func TestDocumentIndexBasics(t *testing.T) {
	index, err := NewMemoryIndex()
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	defer index.Close()

	ctx := context.Background()

	// Before the first build, searches report an unbuilt index.
	if _, err := index.Search(ctx, []float32{1, 0}, nil, 5); !errors.Is(err, storage.ErrIndexNotBuilt) {
		t.Fatalf("Expected ErrIndexNotBuilt, got %v", err)
	}

	// Count is zero with no error before the first build.
	count, err := index.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected 0 documents, got %d", count)
	}

	docs := []*core.SearchDocument{
		makeDoc("GOVT001", "Science College", []string{"science"}, []float32{1, 0}),
		makeDoc("GOVT002", "Commerce College", []string{"commerce"}, []float32{0, 1}),
	}
	if err := index.ReplaceAll(ctx, docs...); err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}

	count, err = index.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 documents, got %d", count)
	}

	// Query vector closest to the science document.
	results, err := index.Search(ctx, []float32{1, 0}, nil, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Document.Metadata.CollegeID != "GOVT001" {
		t.Fatalf("Expected GOVT001 first, got %s", results[0].Document.Metadata.CollegeID)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Fatal("Expected results ordered by similarity descending")
	}
}

func TestDocumentIndexFilters(t *testing.T) {
	index, err := NewMemoryIndex()
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	defer index.Close()

	ctx := context.Background()

	docs := []*core.SearchDocument{
		makeDoc("GOVT001", "Science College", []string{"science", "arts"}, []float32{1, 0}),
		makeDoc("GOVT002", "Commerce College", []string{"commerce"}, []float32{1, 0}),
	}
	if err := index.ReplaceAll(ctx, docs...); err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}

	// Set-membership filter on streams.
	results, err := index.Search(ctx, []float32{1, 0}, map[string]any{"streams": "science"}, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 1 || results[0].Document.Metadata.CollegeID != "GOVT001" {
		t.Fatalf("Expected only GOVT001, got %d results", len(results))
	}

	// A slice-valued filter is a set of allowed values.
	results, err = index.Search(ctx, []float32{1, 0}, map[string]any{"name": []string{"Science College", "Lucknow College"}}, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 1 || results[0].Document.Metadata.CollegeID != "GOVT001" {
		t.Fatalf("Expected only GOVT001 for name set filter, got %d results", len(results))
	}

	// Set filter against list-valued metadata matches on any overlap.
	results, err = index.Search(ctx, []float32{1, 0}, map[string]any{"streams": []string{"commerce", "medicine"}}, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 1 || results[0].Document.Metadata.CollegeID != "GOVT002" {
		t.Fatalf("Expected only GOVT002 for streams set filter, got %d results", len(results))
	}

	// A set containing no held value filters the document out.
	results, err = index.Search(ctx, []float32{1, 0}, map[string]any{"name": []string{"Lucknow College"}}, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected 0 results for non-matching set filter, got %d", len(results))
	}

	// Unknown filter keys never match.
	results, err = index.Search(ctx, []float32{1, 0}, map[string]any{"nonexistent": "x"}, 5)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected 0 results for unknown filter key, got %d", len(results))
	}

	// Equality filter on type.
	listed, err := index.ListDocuments(ctx, map[string]any{"type": "government"}, 10)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 listed documents, got %d", len(listed))
	}
}

func TestDocumentIndexRebuildReplaces(t *testing.T) {
	index, err := NewMemoryIndex()
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	defer index.Close()

	ctx := context.Background()

	first := makeDoc("GOVT001", "Science College", []string{"science"}, []float32{1, 0})
	if err := index.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}

	// Rebuild with a different document set.
	second := makeDoc("GOVT002", "Commerce College", []string{"commerce"}, []float32{0, 1})
	if err := index.ReplaceAll(ctx, second); err != nil {
		t.Fatalf("Failed to rebuild index: %v", err)
	}

	count, err := index.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 document after rebuild, got %d", count)
	}

	// The superseded document is gone.
	if _, err := index.GetDocument(ctx, first.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for superseded document, got %v", err)
	}

	doc, err := index.GetDocument(ctx, second.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if doc.Metadata.CollegeID != "GOVT002" {
		t.Fatalf("Expected GOVT002, got %s", doc.Metadata.CollegeID)
	}
}
