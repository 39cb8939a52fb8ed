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


package scoring

import (
	"slices"

	"github.com/poiesic/counselit/core"
)

// Factor names recognized in preference weight maps.
const (
	FactorOfficialQuality = "official_quality"
	FactorMentorTrust     = "mentor_trust"
	FactorRelevance       = "relevance"
	FactorProximity       = "proximity"
)

// DefaultWeights returns the built-in factor weights.
// The caller owns the returned map.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		FactorOfficialQuality: 0.3,
		FactorMentorTrust:     0.2,
		FactorRelevance:       0.3,
		FactorProximity:       0.2,
	}
}

// MergeWeights overlays user preferences on the default weights.
// Unknown preference keys are carried through; they contribute to the
// normalization total and thereby dilute the known factors, which matches
// how the weight vector is treated everywhere downstream.
func MergeWeights(preferences map[string]float64) map[string]float64 {
	weights := DefaultWeights()
	for key, value := range preferences {
		weights[key] = value
	}
	return weights
}

// NormalizeWeights scales weights so they sum to 1.
// Returns core.ErrZeroWeightSum when the sum is zero; a zero-sum vector
// has no defined ranking order. Normalization is idempotent: normalizing
// an already normalized map returns the same values.
func NormalizeWeights(weights map[string]float64) (map[string]float64, error) {
	var total float64
	for _, value := range weights {
		total += value
	}
	if total == 0 {
		return nil, core.ErrZeroWeightSum
	}

	normalized := make(map[string]float64, len(weights))
	for key, value := range weights {
		normalized[key] = value / total
	}
	return normalized, nil
}

// Composite computes the weighted composite for one score quadruple under
// normalized weights.
func Composite(score *core.RecommendationScore, normalized map[string]float64) float64 {
	return score.OfficialQuality*normalized[FactorOfficialQuality] +
		score.MentorTrust*normalized[FactorMentorTrust] +
		score.Relevance*normalized[FactorRelevance] +
		score.Proximity*normalized[FactorProximity]
}

// Rank recomputes composites under the merged preference weights, sorts by
// composite descending, and reassigns ranks 1..N.
//
// The function is deterministic: the sort is stable, so equal composites
// keep their generation order, and re-running with the same inputs yields
// the same order and values. Recommendations are mutated in place and the
// same slice is returned for chaining.
func Rank(recommendations []*core.Recommendation, preferences map[string]float64) ([]*core.Recommendation, error) {
	normalized, err := NormalizeWeights(MergeWeights(preferences))
	if err != nil {
		return nil, err
	}

	for _, rec := range recommendations {
		rec.Score.Composite = Composite(&rec.Score, normalized)
	}

	slices.SortStableFunc(recommendations, func(a, b *core.Recommendation) int {
		if a.Score.Composite > b.Score.Composite {
			return -1
		}
		if a.Score.Composite < b.Score.Composite {
			return 1
		}
		return 0
	})

	for i, rec := range recommendations {
		rec.Rank = i + 1
	}
	return recommendations, nil
}
