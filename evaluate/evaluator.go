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


package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/counselit/core"
)

// Recommender produces ranked recommendations for a request. The
// recommendation service and the system facade both satisfy it.
type Recommender interface {
	GetRecommendations(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error)
}

// Evaluator runs synthetic cases through a recommender and scores the
// results.
type Evaluator struct {
	recommender Recommender
	maxPerCase  int
	verify      bool
	logger      *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithMaxPerCase sets how many recommendations are requested per case.
func WithMaxPerCase(n int) Option {
	return func(e *Evaluator) error {
		e.maxPerCase = n
		return nil
	}
}

// WithVerification requests claim verification for every case, so the
// report's verification metrics reflect real source checks instead of
// all-pending.
func WithVerification(enabled bool) Option {
	return func(e *Evaluator) error {
		e.verify = enabled
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		e.logger = logger
		return nil
	}
}

// NewEvaluator creates an evaluator backed by recommender.
func NewEvaluator(recommender Recommender, opts ...Option) (*Evaluator, error) {
	if recommender == nil {
		return nil, ErrRecommenderRequired
	}

	e := &Evaluator{
		recommender: recommender,
		maxPerCase:  5,
		logger:      slog.Default().With("component", "evaluate"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Run evaluates every case and aggregates the results. A case whose
// recommendation call fails is scored as producing no recommendations;
// the run itself does not fail.
func (e *Evaluator) Run(ctx context.Context, cases ...*Case) (*Report, error) {
	if len(cases) == 0 {
		return nil, ErrNoCases
	}

	perCase := make(map[string]*CaseReport, len(cases))
	totalRecs := 0
	for _, c := range cases {
		request := &core.RecommendationRequest{
			Profile:             c.Profile,
			MaxRecommendations:  e.maxPerCase,
			IncludeVerification: e.verify,
		}
		recs, err := e.recommender.GetRecommendations(ctx, request)
		if err != nil {
			e.logger.Warn("recommendation failed", "case", c.CaseID, "error", err)
			recs = nil
		}
		perCase[c.CaseID] = evaluateCase(c, recs)
		totalRecs += len(recs)
	}

	report := &Report{
		Overall: OverallMetrics{
			TotalCases:                len(cases),
			TotalRecommendations:      totalRecs,
			AvgRecommendationsPerCase: float64(totalRecs) / float64(len(cases)),
		},
		PerCase:      perCase,
		Quality:      qualityMetrics(perCase),
		Verification: verificationMetrics(perCase),
	}
	return report, nil
}

// SaveReport writes a report to path as indented JSON.
func SaveReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// LoadReport reads a report previously written by SaveReport.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &report, nil
}
