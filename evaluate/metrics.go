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
	"slices"

	"github.com/poiesic/counselit/core"
)

// highRelevanceThreshold is the relevance score above which a
// recommendation counts as highly relevant.
const highRelevanceThreshold = 7.0

// ScoreAnalysis summarizes the composite score spread for one case.
type ScoreAnalysis struct {
	AvgScore      float64 `json:"avg_score"`
	MaxScore      float64 `json:"max_score"`
	MinScore      float64 `json:"min_score"`
	ScoreVariance float64 `json:"score_variance"`
}

// RelevanceAnalysis measures how relevant the recommendations are to
// the case profile.
type RelevanceAnalysis struct {
	AvgRelevanceScore  float64 `json:"avg_relevance_score"`
	StreamMatchRate    float64 `json:"stream_match_rate"`
	HighRelevanceCount int     `json:"high_relevance_count"`
}

// VerificationAnalysis counts verification outcomes for one case.
type VerificationAnalysis struct {
	VerifiedCount    int     `json:"verified_count"`
	FlaggedCount     int     `json:"flagged_count"`
	PendingCount     int     `json:"pending_count"`
	VerificationRate float64 `json:"verification_rate"`
}

// BudgetCompliance measures how well recommended colleges fit the case
// budget window.
type BudgetCompliance struct {
	CompliantCount int     `json:"compliant_count"`
	ComplianceRate float64 `json:"compliance_rate"`
	AvgBudgetScore float64 `json:"avg_budget_score"`
}

// StreamAlignment measures program-stream coverage of the preferred
// streams.
type StreamAlignment struct {
	StreamDistribution      map[string]int `json:"stream_distribution"`
	AlignmentScore          float64        `json:"alignment_score"`
	PreferredStreamCoverage float64        `json:"preferred_stream_coverage"`
}

// CaseReport is the evaluation of a single case. The analysis sections
// are nil when the case produced no recommendations.
type CaseReport struct {
	CaseID             string                `json:"case_id"`
	NumRecommendations int                   `json:"num_recommendations"`
	Scores             *ScoreAnalysis        `json:"score_analysis,omitempty"`
	Relevance          *RelevanceAnalysis    `json:"relevance_analysis,omitempty"`
	Verification       *VerificationAnalysis `json:"verification_analysis,omitempty"`
	Budget             *BudgetCompliance     `json:"budget_compliance,omitempty"`
	Streams            *StreamAlignment      `json:"stream_alignment,omitempty"`
}

// OverallMetrics summarizes the scale of an evaluation run.
type OverallMetrics struct {
	TotalCases                int     `json:"total_test_cases"`
	TotalRecommendations      int     `json:"total_recommendations"`
	AvgRecommendationsPerCase float64 `json:"avg_recommendations_per_case"`
}

// QualityMetrics aggregates quality signals across all cases.
type QualityMetrics struct {
	AvgCompositeScore   float64 `json:"avg_composite_score"`
	AvgRelevanceScore   float64 `json:"avg_relevance_score"`
	AvgVerificationRate float64 `json:"avg_verification_rate"`
	ScoreConsistency    float64 `json:"score_consistency"`
}

// VerificationMetrics aggregates verification outcomes across all
// cases.
type VerificationMetrics struct {
	TotalVerified    int     `json:"total_verified"`
	TotalFlagged     int     `json:"total_flagged"`
	TotalPending     int     `json:"total_pending"`
	VerificationRate float64 `json:"verification_rate"`
	FlagRate         float64 `json:"flag_rate"`
}

// Report is the full outcome of an evaluation run.
type Report struct {
	Overall      OverallMetrics         `json:"overall_metrics"`
	PerCase      map[string]*CaseReport `json:"per_test_case"`
	Quality      QualityMetrics         `json:"recommendation_quality"`
	Verification VerificationMetrics    `json:"verification_accuracy"`
}

func evaluateCase(c *Case, recs []*core.Recommendation) *CaseReport {
	report := &CaseReport{
		CaseID:             c.CaseID,
		NumRecommendations: len(recs),
	}
	if len(recs) == 0 {
		return report
	}

	scores := make([]float64, len(recs))
	for i, rec := range recs {
		scores[i] = rec.Score.Composite
	}
	report.Scores = &ScoreAnalysis{
		AvgScore:      mean(scores),
		MaxScore:      slices.Max(scores),
		MinScore:      slices.Min(scores),
		ScoreVariance: variance(scores),
	}

	report.Relevance = analyzeRelevance(&c.Profile, recs)
	report.Verification = analyzeVerification(recs)
	report.Budget = analyzeBudget(&c.Profile, recs)
	report.Streams = analyzeStreams(&c.Profile, recs)
	return report
}

func analyzeRelevance(profile *core.StudentProfile, recs []*core.Recommendation) *RelevanceAnalysis {
	analysis := &RelevanceAnalysis{}
	streamMatches := 0
	for _, rec := range recs {
		analysis.AvgRelevanceScore += rec.Score.Relevance
		if rec.Score.Relevance >= highRelevanceThreshold {
			analysis.HighRelevanceCount++
		}
		if collegeOffersAny(rec.College, profile.PreferredStreams) {
			streamMatches++
		}
	}
	analysis.AvgRelevanceScore /= float64(len(recs))
	analysis.StreamMatchRate = float64(streamMatches) / float64(len(recs))
	return analysis
}

func analyzeVerification(recs []*core.Recommendation) *VerificationAnalysis {
	analysis := &VerificationAnalysis{}
	for _, rec := range recs {
		switch rec.VerificationStatus {
		case core.VerificationVerified:
			analysis.VerifiedCount++
		case core.VerificationFlagged:
			analysis.FlaggedCount++
		case core.VerificationPending:
			analysis.PendingCount++
		}
	}
	analysis.VerificationRate = float64(analysis.VerifiedCount) / float64(len(recs))
	return analysis
}

// analyzeBudget scores each college against the budget window: a
// college whose average fee sits at or below the window midpoint gets a
// full 10, overage is penalized proportionally.
func analyzeBudget(profile *core.StudentProfile, recs []*core.Recommendation) *BudgetCompliance {
	compliance := &BudgetCompliance{}
	preferred := float64(profile.BudgetMin+profile.BudgetMax) / 2
	var budgetScores []float64

	for _, rec := range recs {
		if rec.College == nil || len(rec.College.Programs) == 0 {
			continue
		}
		minFee, maxFee := feeRange(rec.College)
		if minFee <= profile.BudgetMax && maxFee >= profile.BudgetMin {
			compliance.CompliantCount++
		}

		avgFee := float64(minFee+maxFee) / 2
		score := 10.0
		if avgFee > preferred && preferred > 0 {
			overage := avgFee - preferred
			score = 10.0 - (overage/preferred)*5
			if score < 0 {
				score = 0
			}
		}
		budgetScores = append(budgetScores, score)
	}

	compliance.ComplianceRate = float64(compliance.CompliantCount) / float64(len(recs))
	if len(budgetScores) > 0 {
		compliance.AvgBudgetScore = mean(budgetScores)
	}
	return compliance
}

func analyzeStreams(profile *core.StudentProfile, recs []*core.Recommendation) *StreamAlignment {
	alignment := &StreamAlignment{StreamDistribution: map[string]int{}}
	totalPrograms := 0
	for _, rec := range recs {
		if rec.College == nil {
			continue
		}
		for _, program := range rec.College.Programs {
			alignment.StreamDistribution[string(program.Stream)]++
			totalPrograms++
		}
	}

	covered := 0
	for _, stream := range profile.PreferredStreams {
		count, ok := alignment.StreamDistribution[string(stream)]
		if !ok {
			continue
		}
		covered++
		if totalPrograms > 0 {
			alignment.AlignmentScore += float64(count) / float64(totalPrograms)
		}
	}
	if len(profile.PreferredStreams) > 0 {
		alignment.PreferredStreamCoverage = float64(covered) / float64(len(profile.PreferredStreams))
	}
	return alignment
}

func qualityMetrics(perCase map[string]*CaseReport) QualityMetrics {
	var scores, relevance, rates []float64
	for _, report := range perCase {
		if report.Scores != nil {
			scores = append(scores, report.Scores.AvgScore)
		}
		if report.Relevance != nil {
			relevance = append(relevance, report.Relevance.AvgRelevanceScore)
		}
		if report.Verification != nil {
			rates = append(rates, report.Verification.VerificationRate)
		}
	}

	metrics := QualityMetrics{}
	if len(scores) > 0 {
		metrics.AvgCompositeScore = mean(scores)
		metrics.ScoreConsistency = 1 - variance(scores)
	}
	if len(relevance) > 0 {
		metrics.AvgRelevanceScore = mean(relevance)
	}
	if len(rates) > 0 {
		metrics.AvgVerificationRate = mean(rates)
	}
	return metrics
}

func verificationMetrics(perCase map[string]*CaseReport) VerificationMetrics {
	metrics := VerificationMetrics{}
	totalRecs := 0
	for _, report := range perCase {
		if report.Verification == nil {
			continue
		}
		metrics.TotalVerified += report.Verification.VerifiedCount
		metrics.TotalFlagged += report.Verification.FlaggedCount
		metrics.TotalPending += report.Verification.PendingCount
		totalRecs += report.NumRecommendations
	}
	if totalRecs > 0 {
		metrics.VerificationRate = float64(metrics.TotalVerified) / float64(totalRecs)
		metrics.FlagRate = float64(metrics.TotalFlagged) / float64(totalRecs)
	}
	return metrics
}

func collegeOffersAny(college *core.CollegeRecord, streams []core.Stream) bool {
	if college == nil {
		return false
	}
	for _, program := range college.Programs {
		for _, stream := range streams {
			if program.Stream == stream {
				return true
			}
		}
	}
	return false
}

func feeRange(college *core.CollegeRecord) (int, int) {
	minFee := college.Programs[0].AnnualFee
	maxFee := minFee
	for _, program := range college.Programs[1:] {
		if program.AnnualFee < minFee {
			minFee = program.AnnualFee
		}
		if program.AnnualFee > maxFee {
			maxFee = program.AnnualFee
		}
	}
	return minFee, maxFee
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(values))
}
