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


package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/counselit/ai"
	"github.com/poiesic/counselit/catalog"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/retrieval"
	"github.com/poiesic/counselit/scoring"
	"github.com/poiesic/counselit/verify"
)

// Service orchestrates the recommendation pipeline: retrieve candidate
// documents for a profile, generate recommendations over them, score and
// rank the result, and optionally verify the claims behind each entry.
type Service struct {
	catalog   *catalog.Catalog
	retriever *retrieval.Engine
	generator ai.Generator
	verifier  *verify.Engine
	k         int
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithVerifier sets the verification engine applied when a request asks
// for verification. Without one, verification requests are skipped and
// recommendations stay pending.
func WithVerifier(verifier *verify.Engine) Option {
	return func(s *Service) error {
		s.verifier = verifier
		return nil
	}
}

// WithRetrievalK sets the number of candidate documents retrieved per
// request. Default is retrieval.DefaultK.
func WithRetrievalK(k int) Option {
	return func(s *Service) error {
		if k > 0 {
			s.k = k
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a new recommendation service.
func NewService(cat *catalog.Catalog, retriever *retrieval.Engine, provider ai.AIProvider, opts ...Option) (*Service, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Service{
		catalog:   cat,
		retriever: retriever,
		generator: provider.Generator(),
		k:         retrieval.DefaultK,
		logger:    slog.Default().With("component", "recommend"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// GetRecommendations runs the full pipeline for one request.
//
// The request is validated and normalized first; an uninitialized index
// surfaces as storage.ErrIndexNotBuilt and fails the request. A profile
// whose budget filter removes every candidate yields an empty result,
// not an error.
func (s *Service) GetRecommendations(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
	if err := core.ValidateRequest(request); err != nil {
		return nil, err
	}

	results, err := s.retriever.Retrieve(ctx, &request.Profile, s.k)
	if err != nil {
		return nil, fmt.Errorf("retrieving candidates: %w", err)
	}
	if len(results) == 0 {
		s.logger.Info("no candidate documents for profile",
			"streams", request.Profile.PreferredStreams,
			"budgetMax", request.Profile.BudgetMax)
		return []*core.Recommendation{}, nil
	}

	prompt := BuildPrompt(&request.Profile, results)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating recommendations: %w", err)
	}

	parsed := ParseResponse(response)
	s.logger.Debug("parsed generator response",
		"candidates", len(results),
		"recommendations", len(parsed))
	if len(parsed) == 0 {
		s.logger.Warn("generator response yielded no recommendations",
			"responseLength", len(response))
		return []*core.Recommendation{}, nil
	}

	recommendations := s.resolve(parsed, results)

	if _, err := scoring.Rank(recommendations, request.Preferences); err != nil {
		return nil, err
	}

	if request.IncludeVerification && s.verifier != nil {
		s.verifier.VerifyRecommendations(ctx, recommendations)
	}

	if len(recommendations) > request.MaxRecommendations {
		recommendations = recommendations[:request.MaxRecommendations]
	}
	return recommendations, nil
}

// resolve turns parsed generator output into recommendations backed by
// catalog records. College names are matched case-insensitively through
// the retrieved documents first, then the catalog; names the generator
// invented get a minimal placeholder record so the entry survives with
// its rationale intact.
func (s *Service) resolve(parsed []GeneratedRecommendation, results []*core.SearchResult) []*core.Recommendation {
	byName := make(map[string]string, len(results))
	for _, result := range results {
		meta := &result.Document.Metadata
		byName[strings.ToLower(meta.Name)] = meta.CollegeID
	}

	recommendations := make([]*core.Recommendation, 0, len(parsed))
	for i, gen := range parsed {
		college := s.lookupCollege(gen.CollegeName, byName)
		if college == nil {
			s.logger.Warn("generator named an unknown college", "name", gen.CollegeName)
			college = &core.CollegeRecord{
				CollegeID: fmt.Sprintf("college_%d", i+1),
				Name:      gen.CollegeName,
			}
		}

		sourceLinks := gen.SourceLinks
		if len(sourceLinks) == 0 {
			sourceLinks = college.SourceLinks
		}

		recommendations = append(recommendations, &core.Recommendation{
			Rank:    gen.Rank,
			College: college,
			Score: core.RecommendationScore{
				OfficialQuality: gen.OfficialQuality,
				MentorTrust:     gen.MentorTrust,
				Relevance:       gen.Relevance,
				Proximity:       gen.Proximity,
				Composite:       gen.Composite,
				Confidence:      gen.Confidence,
			},
			Rationale:          gen.Rationale,
			EvidenceCitations:  gen.EvidenceCitations,
			SourceLinks:        sourceLinks,
			VerificationStatus: core.VerificationPending,
		})
	}
	return recommendations
}

func (s *Service) lookupCollege(name string, byName map[string]string) *core.CollegeRecord {
	lower := strings.ToLower(strings.TrimSpace(name))

	if collegeID, ok := byName[lower]; ok {
		if college, err := s.catalog.Get(collegeID); err == nil {
			return college
		}
	}

	for _, college := range s.catalog.Records() {
		if strings.ToLower(college.Name) == lower {
			return college
		}
	}
	return nil
}
