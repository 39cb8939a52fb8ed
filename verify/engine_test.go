package verify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iitDelhi = "Indian Institute of Technology Delhi"

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := NewEngine(opts...)
	require.NoError(t, err)
	return engine
}

func TestVerifyPlacement_WithinTolerance(t *testing.T) {
	engine := newTestEngine(t)

	// Reference placement for IIT Delhi is 98.3; claimed 95.0 is 3.3
	// points off, within the 5 point tolerance.
	result := engine.VerifyClaim(context.Background(),
		"Placement percentage: 95.0%", iitDelhi, ClaimPlacement)

	assert.True(t, result.Verified)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, "NIRF", result.Source)
	assert.Contains(t, result.Notes, "98.3")
}

func TestVerifyPlacement_OutsideTolerance(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.VerifyClaim(context.Background(),
		"Placement percentage: 50%", iitDelhi, ClaimPlacement)

	assert.False(t, result.Verified)
	assert.Equal(t, 0.3, result.Confidence)
}

func TestVerifyPlacement_UnknownCollege(t *testing.T) {
	engine := newTestEngine(t)

	result := engine.VerifyClaim(context.Background(),
		"Placement percentage: 90%", "Unknown College", ClaimPlacement)

	assert.False(t, result.Verified)
	assert.Equal(t, 0.3, result.Confidence, "missing reference is weaker evidence than contradiction")
	assert.Contains(t, result.Notes, "not found")
}

func TestVerifyAccreditation(t *testing.T) {
	tests := []struct {
		name       string
		claim      string
		subject    string
		verified   bool
		confidence float64
	}{
		{
			// IIT Delhi reference lists exactly "NBA" but only
			// "NAAC A++", never bare "NAAC".
			name:       "some tokens match",
			claim:      "Accredited by: NAAC A++, NBA",
			subject:    iitDelhi,
			verified:   true,
			confidence: 0.7,
		},
		{
			name:       "no tokens match",
			claim:      "Accredited by: NAAC",
			subject:    "University of Delhi",
			verified:   false,
			confidence: 0.8,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.VerifyClaim(context.Background(), tt.claim, tt.subject, ClaimAccreditation)
			assert.Equal(t, tt.verified, result.Verified)
			assert.Equal(t, tt.confidence, result.Confidence)
		})
	}
}

func TestVerifyAccreditation_AllTokensMatch(t *testing.T) {
	source := NewStaticSource("STATE", 0.7, map[string]*Reference{
		"State College": {Accreditation: []string{"NAAC", "UGC"}},
	})
	engine := newTestEngine(t, WithSources(source))

	result := engine.VerifyClaim(context.Background(),
		"Accredited by: NAAC, UGC", "State College", ClaimAccreditation)

	assert.True(t, result.Verified)
	assert.Equal(t, 0.95, result.Confidence)
	assert.Equal(t, "STATE", result.Source)
}

func TestVerifyProgram(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// AICTE lists Computer Science with 120 seats; 115 is within the
	// seat tolerance of 10.
	result := engine.VerifyClaim(ctx,
		"Offers Computer Science with 115 seats", iitDelhi, ClaimProgram)
	assert.True(t, result.Verified)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Contains(t, result.Notes, "120 seats")

	// Seat count too far off.
	result = engine.VerifyClaim(ctx,
		"Offers Computer Science with 200 seats", iitDelhi, ClaimProgram)
	assert.False(t, result.Verified)
	assert.Equal(t, 0.6, result.Confidence)

	// Unknown program.
	result = engine.VerifyClaim(ctx,
		"Offers Astrology with 50 seats", iitDelhi, ClaimProgram)
	assert.False(t, result.Verified)
	assert.Equal(t, 0.6, result.Confidence)
}

func TestVerifyGeneral(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	// NIRF (trust 0.8) outranks UGC and AICTE (0.7) for a known college.
	result := engine.VerifyClaim(ctx, "A well-regarded institute", iitDelhi, ClaimGeneral)
	assert.True(t, result.Verified)
	assert.Equal(t, 0.8, result.Confidence)
	assert.Equal(t, "NIRF", result.Source)

	// Unknown college corroborated by nothing.
	result = engine.VerifyClaim(ctx, "A well-regarded institute", "Unknown College", ClaimGeneral)
	assert.False(t, result.Verified)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, "verification_failed", result.Source)
}

// failingSource always errors, to exercise the fail-soft paths.
type failingSource struct{}

func (failingSource) Name() string        { return "BROKEN" }
func (failingSource) TrustLevel() float64 { return 0.9 }
func (failingSource) Lookup(context.Context, string) (*Reference, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestVerifyClaim_SourceFailureIsFailSoft(t *testing.T) {
	engine := newTestEngine(t, WithSources(failingSource{}))
	ctx := context.Background()

	for _, claimType := range []ClaimType{ClaimPlacement, ClaimAccreditation, ClaimProgram, ClaimGeneral} {
		result := engine.VerifyClaim(ctx, "Placement percentage: 90%", "Any College", claimType)
		assert.False(t, result.Verified, "claim type %s", claimType)
		assert.Equal(t, 0.0, result.Confidence, "claim type %s", claimType)
	}
}

func TestVerifyClaim_CacheHitReturnsSameResult(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	engine := newTestEngine(t, WithClock(clock.Now))
	ctx := context.Background()

	first := engine.VerifyClaim(ctx, "Placement percentage: 95.0%", iitDelhi, ClaimPlacement)

	clock.Advance(time.Hour)
	second := engine.VerifyClaim(ctx, "Placement percentage: 95.0%", iitDelhi, ClaimPlacement)
	assert.Same(t, first, second, "live cache entry returned unchanged")
	assert.Equal(t, first.VerifiedAt, second.VerifiedAt)

	// Past the TTL the claim is re-evaluated with a fresh timestamp.
	clock.Advance(24 * time.Hour)
	third := engine.VerifyClaim(ctx, "Placement percentage: 95.0%", iitDelhi, ClaimPlacement)
	assert.NotSame(t, first, third)
	assert.True(t, third.VerifiedAt.After(first.VerifiedAt))
}

func collegeWithAllClaims(name string) *core.CollegeRecord {
	return &core.CollegeRecord{
		CollegeID:       "C1",
		Name:            name,
		Type:            core.CollegeTypeGovernment,
		Location:        "Delhi",
		District:        "New Delhi",
		State:           "Delhi",
		EstablishedYear: 1961,
		Accreditation:   []string{"NBA"},
		Programs: []core.Program{
			{Name: "Computer Science", Stream: core.StreamEngineering, SeatsTotal: 120},
		},
		PlacementStats: []core.PlacementStat{
			{Year: 2023, Percentage: 98.3},
		},
	}
}

func TestVerifyRecommendations_AllVerified(t *testing.T) {
	engine := newTestEngine(t)

	rec := &core.Recommendation{
		College:           collegeWithAllClaims(iitDelhi),
		EvidenceCitations: []string{"prior citation"},
	}
	out := engine.VerifyRecommendations(context.Background(), []*core.Recommendation{rec})

	require.Len(t, out, 1)
	assert.Equal(t, core.VerificationVerified, out[0].VerificationStatus)

	// Prior citations preserved, one summary line per checked claim.
	require.Len(t, out[0].EvidenceCitations, 4)
	assert.Equal(t, "prior citation", out[0].EvidenceCitations[0])
	assert.Contains(t, out[0].EvidenceCitations[1], "Verification: true")
}

func TestVerifyRecommendations_AggregateStatus(t *testing.T) {
	// An unknown college fails all three checks.
	engine := newTestEngine(t)
	rec := &core.Recommendation{College: collegeWithAllClaims("Unknown College")}
	engine.VerifyRecommendations(context.Background(), []*core.Recommendation{rec})
	assert.Equal(t, core.VerificationFlagged, rec.VerificationStatus)

	// A college with no checkable claims.
	bare := &core.Recommendation{College: &core.CollegeRecord{
		CollegeID: "C2", Name: "Bare College", Type: core.CollegeTypeGovernment,
		Location: "Pune", District: "Pune", State: "Maharashtra", EstablishedYear: 2020,
	}}
	engine.VerifyRecommendations(context.Background(), []*core.Recommendation{bare})
	assert.Equal(t, core.VerificationNoClaims, bare.VerificationStatus)
}

func TestVerifyRecommendations_TwoOfThreeIsPartial(t *testing.T) {
	// Placement and program verify against IIT Delhi's reference, the
	// accreditation claim only partially matches but still counts as
	// verified, so force a miss with an unknown token set.
	college := collegeWithAllClaims(iitDelhi)
	college.PlacementStats[0].Percentage = 50.0 // fails placement check

	engine := newTestEngine(t)
	rec := &core.Recommendation{College: college}
	engine.VerifyRecommendations(context.Background(), []*core.Recommendation{rec})

	// accreditation (NBA, verified 0.7+) + program verified, placement not: 2/3.
	assert.Equal(t, core.VerificationPartial, rec.VerificationStatus)
}
