// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package counselit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/counselit/ai"
	"github.com/poiesic/counselit/ai/mock"
	"github.com/poiesic/counselit/ai/openai"
	"github.com/poiesic/counselit/catalog"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/index"
	"github.com/poiesic/counselit/recommend"
	"github.com/poiesic/counselit/retrieval"
	"github.com/poiesic/counselit/storage"
	"github.com/poiesic/counselit/storage/badger"
	"github.com/poiesic/counselit/verify"
)

// System wires the catalog, document index, AI provider, and the
// retrieval, recommendation, and verification engines into one handle.
type System struct {
	catalog   *catalog.Catalog
	index     storage.DocumentIndex
	provider  ai.AIProvider
	retriever *retrieval.Engine
	service   *recommend.Service
	verifier  *verify.Engine
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig   *ai.Config
	provider   ai.AIProvider
	verifyOpts []verify.Option
	inMemory   bool
}

// WithAIConfig sets the AI provider configuration.
// Ignored when WithProvider supplies a provider directly.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// the OpenAI-compatible one. Used to run the pipeline against the mock
// provider.
func WithProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithVerifyOptions forwards options to the verification engine.
func WithVerifyOptions(opts ...verify.Option) SystemOption {
	return func(o *systemOptions) {
		o.verifyOpts = append(o.verifyOpts, opts...)
	}
}

// WithInMemoryStorage keeps the document index in memory. The catalog
// is always loaded from disk.
func WithInMemoryStorage() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// NewSystem loads the college catalog from catalogPath and opens the
// document index at indexPath.
func NewSystem(catalogPath, indexPath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	var idx storage.DocumentIndex
	if options.inMemory {
		idx, err = badger.NewMemoryIndex()
	} else {
		idx, err = badger.NewDocumentIndex(indexPath)
	}
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		switch options.aiConfig.Backend {
		case ai.BackendMock:
			provider = mock.NewMockProvider()
		default:
			provider, err = openai.NewProvider(options.aiConfig)
			if err != nil {
				idx.Close()
				return nil, err
			}
		}
	}

	verifier, err := verify.NewEngine(options.verifyOpts...)
	if err != nil {
		provider.Close()
		idx.Close()
		return nil, err
	}

	retriever, err := retrieval.NewEngine(idx, provider)
	if err != nil {
		provider.Close()
		idx.Close()
		return nil, err
	}

	service, err := recommend.NewService(cat, retriever, provider,
		recommend.WithVerifier(verifier))
	if err != nil {
		provider.Close()
		idx.Close()
		return nil, err
	}

	return &System{
		catalog:   cat,
		index:     idx,
		provider:  provider,
		retriever: retriever,
		service:   service,
		verifier:  verifier,
		logger:    slog.Default(),
	}, nil
}

func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.index.Close(); err != nil {
		s.logger.Error("error closing document index", "err", err)
		return err
	}
	return nil
}

// Catalog returns the loaded college catalog.
func (s *System) Catalog() *catalog.Catalog {
	return s.catalog
}

// Verifier returns the verification engine.
func (s *System) Verifier() *verify.Engine {
	return s.verifier
}

// BuildIndex embeds every catalog record and atomically replaces the
// active index generation. Searches keep serving the previous
// generation until the swap completes.
func (s *System) BuildIndex(ctx context.Context, opts ...index.Option) error {
	pipeline, err := index.NewPipeline(s.index, s.provider, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	return pipeline.Build(ctx, s.catalog.Records()...)
}

// GetRecommendations runs the recommendation pipeline for one request.
func (s *System) GetRecommendations(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
	return s.service.GetRecommendations(ctx, request)
}

// VerifyClaim checks one claim about a college against the reference
// sources.
func (s *System) VerifyClaim(ctx context.Context, claim, subject string, claimType verify.ClaimType) *core.VerificationResult {
	return s.verifier.VerifyClaim(ctx, claim, subject, claimType)
}

// GetCollegeDetails returns the indexed document for a college.
// Returns storage.ErrNotFound for colleges absent from the index and
// storage.ErrIndexNotBuilt before the first build.
func (s *System) GetCollegeDetails(ctx context.Context, collegeID string) (*core.SearchDocument, error) {
	return s.index.GetDocument(ctx, core.IDFromContent(collegeID))
}

// SearchCriteria selects colleges for a criteria search. Stream,
// CollegeType, and State are applied as exact metadata filters; the
// remaining fields only shape the similarity query.
type SearchCriteria struct {
	Stream      string
	Location    string
	BudgetMax   int
	MinRating   float64
	CollegeType string
	State       string
	Limit       int
}

// DefaultSearchLimit is the number of results a criteria search returns
// when no limit is given.
const DefaultSearchLimit = 10

// SearchByCriteria finds colleges matching the criteria, most similar
// first.
func (s *System) SearchByCriteria(ctx context.Context, criteria *SearchCriteria) ([]*core.SearchResult, error) {
	var parts []string
	if criteria.Stream != "" {
		parts = append(parts, fmt.Sprintf("programs in %s", criteria.Stream))
	}
	if criteria.Location != "" {
		parts = append(parts, fmt.Sprintf("in %s", criteria.Location))
	}
	if criteria.BudgetMax > 0 {
		parts = append(parts, fmt.Sprintf("fees under %d", criteria.BudgetMax))
	}
	if criteria.MinRating > 0 {
		parts = append(parts, fmt.Sprintf("rating above %.1f", criteria.MinRating))
	}
	query := "government colleges"
	if len(parts) > 0 {
		query = strings.Join(parts, " ")
	}

	filters := make(map[string]any)
	if criteria.Stream != "" {
		filters["streams"] = criteria.Stream
	}
	if criteria.CollegeType != "" {
		filters["type"] = criteria.CollegeType
	}
	if criteria.State != "" {
		filters["state"] = criteria.State
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	return s.retriever.Search(ctx, query, filters, limit)
}

// Stats reports the size of the catalog and the active index.
type Stats struct {
	CatalogColleges int
	IndexedColleges int
}

// Stats returns current system statistics. An unbuilt index counts as
// zero indexed colleges.
func (s *System) Stats(ctx context.Context) (*Stats, error) {
	indexed, err := s.index.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		CatalogColleges: s.catalog.Len(),
		IndexedColleges: indexed,
	}, nil
}
