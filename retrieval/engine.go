package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/counselit/ai"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/storage"
)

// DefaultK is the number of candidates pulled from the index per request.
const DefaultK = 5

// Engine performs semantic retrieval of college documents for a profile.
type Engine struct {
	index    storage.DocumentIndex
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new retrieval engine.
func NewEngine(index storage.DocumentIndex, provider ai.AIProvider, opts ...Option) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		index:    index,
		embedder: provider.Embedder(),
		logger:   slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Retrieve finds the candidate documents for a student profile.
// The profile is rendered as a query, embedded, matched against the index,
// and then budget-filtered. Returns up to k results.
func (e *Engine) Retrieve(ctx context.Context, profile *core.StudentProfile, k int) ([]*core.SearchResult, error) {
	return e.RetrieveWithMonitor(ctx, profile, k, nil)
}

// RetrieveWithMonitor is Retrieve with stage callbacks.
func (e *Engine) RetrieveWithMonitor(ctx context.Context, profile *core.StudentProfile, k int, monitor RetrievalMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k <= 0 {
		k = DefaultK
	}

	query := BuildQuery(profile)
	monitor.Start(query)

	results, err := e.Search(ctx, query, nil, k)
	if err != nil {
		return nil, err
	}
	monitor.AfterSimilaritySearch(results)

	kept := FilterByBudget(results, profile)
	monitor.AfterBudgetFilter(kept, len(results)-len(kept))

	if len(kept) > k {
		kept = kept[:k]
	}
	monitor.Finish(kept)
	return kept, nil
}

// Search runs a raw similarity search against the index.
// Used directly by criteria-based lookups that bypass profile rendering.
func (e *Engine) Search(ctx context.Context, query string, filters map[string]any, k int) ([]*core.SearchResult, error) {
	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results, err := e.index.Search(ctx, embedding, filters, k)
	if err != nil {
		e.logger.Error("error querying document index", "err", err)
		return nil, err
	}
	return results, nil
}

// FilterByBudget drops documents with no program inside the budget window.
// A document survives when its fee range overlaps [BudgetMin, BudgetMax]:
// cheapest program at or under the maximum and priciest at or over the
// minimum, both boundaries inclusive. Profiles without a budget maximum
// skip the filter entirely.
func FilterByBudget(results []*core.SearchResult, profile *core.StudentProfile) []*core.SearchResult {
	if profile.BudgetMax <= 0 {
		return results
	}

	kept := make([]*core.SearchResult, 0, len(results))
	for _, result := range results {
		meta := &result.Document.Metadata
		if meta.MinFee <= int64(profile.BudgetMax) && meta.MaxFee >= int64(profile.BudgetMin) {
			kept = append(kept, result)
		}
	}
	return kept
}
