package counselit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/counselit/ai/mock"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(collegeID, name, state string, stream core.Stream, fee int) *core.CollegeRecord {
	return &core.CollegeRecord{
		CollegeID: collegeID,
		Name:      name,
		Type:      core.CollegeTypeGovernment,
		Location:  state,
		State:     state,
		Programs: []core.Program{
			{
				Name:          "Degree Program",
				Stream:        stream,
				DurationYears: 3,
				AnnualFee:     fee,
				SeatsTotal:    100,
				SeatsGeneral:  60,
				SeatsReserved: 40,
			},
		},
	}
}

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	records := []*core.CollegeRecord{
		testRecord("GOVT001", "Delhi Engineering College", "Delhi", core.StreamEngineering, 80000),
		testRecord("GOVT002", "Mumbai Engineering College", "Maharashtra", core.StreamEngineering, 120000),
		testRecord("GOVT003", "Delhi Commerce College", "Delhi", core.StreamCommerce, 40000),
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "colleges.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func newTestSystem(t *testing.T) *System {
	t.Helper()
	system, err := NewSystem(writeCatalogFile(t), "",
		WithProvider(mock.NewMockProvider()),
		WithInMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { system.Close() })
	return system
}

func TestNewSystem(t *testing.T) {
	t.Run("create with mock provider", func(t *testing.T) {
		system := newTestSystem(t)
		assert.NotNil(t, system.Catalog())
		assert.NotNil(t, system.Verifier())
		assert.Equal(t, 3, system.Catalog().Len())
	})

	t.Run("error with missing catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.json")
		system, err := NewSystem(path, "",
			WithProvider(mock.NewMockProvider()),
			WithInMemoryStorage())
		assert.Error(t, err)
		assert.Nil(t, system)
	})
}

func TestSystem_BuildIndexAndStats(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()

	stats, err := system.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CatalogColleges)
	assert.Equal(t, 0, stats.IndexedColleges)

	require.NoError(t, system.BuildIndex(ctx))

	stats, err = system.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.IndexedColleges)
}

func TestSystem_GetCollegeDetails(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()

	_, err := system.GetCollegeDetails(ctx, "GOVT001")
	assert.ErrorIs(t, err, storage.ErrIndexNotBuilt)

	require.NoError(t, system.BuildIndex(ctx))

	doc, err := system.GetCollegeDetails(ctx, "GOVT001")
	require.NoError(t, err)
	assert.Equal(t, "Delhi Engineering College", doc.Metadata.Name)
	assert.Contains(t, doc.Text, "Delhi Engineering College")

	_, err = system.GetCollegeDetails(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSystem_SearchByCriteria(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.BuildIndex(ctx))

	t.Run("stream filter", func(t *testing.T) {
		results, err := system.SearchByCriteria(ctx, &SearchCriteria{Stream: "engineering"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			assert.Contains(t, result.Document.Metadata.Streams, "engineering")
		}
	})

	t.Run("state filter", func(t *testing.T) {
		results, err := system.SearchByCriteria(ctx, &SearchCriteria{State: "Delhi"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			assert.Equal(t, "Delhi", result.Document.Metadata.State)
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		results, err := system.SearchByCriteria(ctx, &SearchCriteria{
			Stream: "engineering",
			State:  "Delhi",
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "GOVT001", results[0].Document.Metadata.CollegeID)
	})

	t.Run("no criteria uses default query", func(t *testing.T) {
		results, err := system.SearchByCriteria(ctx, &SearchCriteria{})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("limit", func(t *testing.T) {
		results, err := system.SearchByCriteria(ctx, &SearchCriteria{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestSystem_GetRecommendations(t *testing.T) {
	system := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.BuildIndex(ctx))

	request := &core.RecommendationRequest{
		Profile: core.StudentProfile{
			Age:              18,
			Board:            "CBSE",
			MarksPercentage:  85.0,
			PreferredStreams: []core.Stream{core.StreamEngineering},
			BudgetMin:        50000,
			BudgetMax:        150000,
		},
		MaxRecommendations: 3,
	}

	recommendations, err := system.GetRecommendations(ctx, request)
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)
	for i, rec := range recommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.NotNil(t, rec.College)
	}
}

func TestSystem_Close(t *testing.T) {
	system, err := NewSystem(writeCatalogFile(t), "",
		WithProvider(mock.NewMockProvider()),
		WithInMemoryStorage())
	require.NoError(t, err)
	assert.NoError(t, system.Close())
}
