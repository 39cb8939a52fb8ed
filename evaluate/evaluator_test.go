package evaluate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recommenderFunc func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error)

func (f recommenderFunc) GetRecommendations(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
	return f(ctx, request)
}

func evalCase() *Case {
	return &Case{
		CaseID: "case_001",
		Label:  "Engineering Aspirant",
		Profile: core.StudentProfile{
			Age:              18,
			Board:            "CBSE",
			MarksPercentage:  88.0,
			PreferredStreams: []core.Stream{core.StreamEngineering},
			BudgetMin:        100000,
			BudgetMax:        300000,
			Location:         "Delhi",
		},
	}
}

func makeRec(rank int, stream core.Stream, fee int, composite, relevance float64, status core.VerificationStatus) *core.Recommendation {
	return &core.Recommendation{
		Rank: rank,
		College: &core.CollegeRecord{
			CollegeID: "GOVT001",
			Name:      "Test College",
			Type:      core.CollegeTypeGovernment,
			Programs: []core.Program{
				{Name: "Program", Stream: stream, DurationYears: 4, AnnualFee: fee},
			},
		},
		Score: core.RecommendationScore{
			Relevance:  relevance,
			Composite:  composite,
			Confidence: 0.9,
		},
		VerificationStatus: status,
	}
}

func TestEvaluatorRun(t *testing.T) {
	recommender := recommenderFunc(func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
		return []*core.Recommendation{
			makeRec(1, core.StreamEngineering, 120000, 8.0, 8.0, core.VerificationVerified),
			makeRec(2, core.StreamCommerce, 600000, 6.0, 6.5, core.VerificationFlagged),
		}, nil
	})

	evaluator, err := NewEvaluator(recommender)
	require.NoError(t, err)

	report, err := evaluator.Run(context.Background(), evalCase())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Overall.TotalCases)
	assert.Equal(t, 2, report.Overall.TotalRecommendations)
	assert.Equal(t, 2.0, report.Overall.AvgRecommendationsPerCase)

	caseReport := report.PerCase["case_001"]
	require.NotNil(t, caseReport)
	assert.Equal(t, 2, caseReport.NumRecommendations)

	require.NotNil(t, caseReport.Scores)
	assert.InDelta(t, 7.0, caseReport.Scores.AvgScore, 1e-9)
	assert.Equal(t, 8.0, caseReport.Scores.MaxScore)
	assert.Equal(t, 6.0, caseReport.Scores.MinScore)
	assert.InDelta(t, 1.0, caseReport.Scores.ScoreVariance, 1e-9)

	require.NotNil(t, caseReport.Relevance)
	assert.InDelta(t, 7.25, caseReport.Relevance.AvgRelevanceScore, 1e-9)
	assert.InDelta(t, 0.5, caseReport.Relevance.StreamMatchRate, 1e-9)
	assert.Equal(t, 1, caseReport.Relevance.HighRelevanceCount)

	require.NotNil(t, caseReport.Verification)
	assert.Equal(t, 1, caseReport.Verification.VerifiedCount)
	assert.Equal(t, 1, caseReport.Verification.FlaggedCount)
	assert.Equal(t, 0, caseReport.Verification.PendingCount)
	assert.InDelta(t, 0.5, caseReport.Verification.VerificationRate, 1e-9)

	// 120k average fee sits under the 200k midpoint (full score); 600k
	// overshoots it by 2x (score floored at 0).
	require.NotNil(t, caseReport.Budget)
	assert.Equal(t, 1, caseReport.Budget.CompliantCount)
	assert.InDelta(t, 0.5, caseReport.Budget.ComplianceRate, 1e-9)
	assert.InDelta(t, 5.0, caseReport.Budget.AvgBudgetScore, 1e-9)

	require.NotNil(t, caseReport.Streams)
	assert.Equal(t, map[string]int{"engineering": 1, "commerce": 1}, caseReport.Streams.StreamDistribution)
	assert.InDelta(t, 0.5, caseReport.Streams.AlignmentScore, 1e-9)
	assert.InDelta(t, 1.0, caseReport.Streams.PreferredStreamCoverage, 1e-9)

	assert.InDelta(t, 7.0, report.Quality.AvgCompositeScore, 1e-9)
	assert.InDelta(t, 7.25, report.Quality.AvgRelevanceScore, 1e-9)
	assert.InDelta(t, 0.5, report.Quality.AvgVerificationRate, 1e-9)
	assert.InDelta(t, 1.0, report.Quality.ScoreConsistency, 1e-9)

	assert.Equal(t, 1, report.Verification.TotalVerified)
	assert.Equal(t, 1, report.Verification.TotalFlagged)
	assert.InDelta(t, 0.5, report.Verification.VerificationRate, 1e-9)
	assert.InDelta(t, 0.5, report.Verification.FlagRate, 1e-9)
}

func TestEvaluatorRun_RecommenderFailureScoresAsEmpty(t *testing.T) {
	recommender := recommenderFunc(func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
		return nil, errors.New("backend down")
	})

	evaluator, err := NewEvaluator(recommender)
	require.NoError(t, err)

	report, err := evaluator.Run(context.Background(), evalCase())
	require.NoError(t, err)

	caseReport := report.PerCase["case_001"]
	require.NotNil(t, caseReport)
	assert.Equal(t, 0, caseReport.NumRecommendations)
	assert.Nil(t, caseReport.Scores)
	assert.Equal(t, 0, report.Overall.TotalRecommendations)
}

func TestEvaluatorRun_RequestShape(t *testing.T) {
	var got *core.RecommendationRequest
	recommender := recommenderFunc(func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
		got = request
		return nil, nil
	})

	evaluator, err := NewEvaluator(recommender, WithMaxPerCase(3), WithVerification(true))
	require.NoError(t, err)

	_, err = evaluator.Run(context.Background(), evalCase())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, 3, got.MaxRecommendations)
	assert.True(t, got.IncludeVerification)
	assert.Equal(t, evalCase().Profile, got.Profile)
}

func TestEvaluatorRun_NoCases(t *testing.T) {
	evaluator, err := NewEvaluator(recommenderFunc(func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
		return nil, nil
	}))
	require.NoError(t, err)

	_, err = evaluator.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoCases)
}

func TestNewEvaluator_RequiresRecommender(t *testing.T) {
	_, err := NewEvaluator(nil)
	assert.ErrorIs(t, err, ErrRecommenderRequired)
}

func TestSaveLoadReport(t *testing.T) {
	recommender := recommenderFunc(func(ctx context.Context, request *core.RecommendationRequest) ([]*core.Recommendation, error) {
		return []*core.Recommendation{
			makeRec(1, core.StreamEngineering, 120000, 8.0, 8.0, core.VerificationVerified),
		}, nil
	})
	evaluator, err := NewEvaluator(recommender)
	require.NoError(t, err)

	report, err := evaluator.Run(context.Background(), evalCase())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, SaveReport(path, report))

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}
