package evaluate

import (
	"path/filepath"
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCases_Deterministic(t *testing.T) {
	first, err := GenerateCases(10, 42)
	require.NoError(t, err)
	second, err := GenerateCases(10, 42)
	require.NoError(t, err)

	require.Len(t, first, 10)
	assert.Equal(t, first, second, "same seed yields the same case set")
	assert.Equal(t, "case_001", first[0].CaseID)
	assert.Equal(t, "case_010", first[9].CaseID)

	other, err := GenerateCases(10, 7)
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "different seeds vary the cases")
}

func TestGenerateCases_ValidProfiles(t *testing.T) {
	cases, err := GenerateCases(50, 42)
	require.NoError(t, err)

	for _, c := range cases {
		require.NoError(t, core.ValidateStudentProfile(&c.Profile), "case %s", c.CaseID)
		assert.GreaterOrEqual(t, c.Profile.MarksPercentage, 60.0)
		assert.LessOrEqual(t, c.Profile.MarksPercentage, 100.0)
		assert.LessOrEqual(t, c.Profile.BudgetMin, c.Profile.BudgetMax)
		assert.NotEmpty(t, c.Profile.Interests)
	}
}

func TestGenerateCases_InvalidCount(t *testing.T) {
	_, err := GenerateCases(0, 42)
	assert.ErrorIs(t, err, ErrInvalidCaseCount)
}

func TestSaveLoadCases(t *testing.T) {
	cases, err := GenerateCases(5, 42)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, SaveCases(path, cases))

	loaded, err := LoadCases(path)
	require.NoError(t, err)
	assert.Equal(t, cases, loaded)

	_, err = LoadCases(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
