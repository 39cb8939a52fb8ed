package retrieval

import (
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildQuery_FullProfile(t *testing.T) {
	profile := &core.StudentProfile{
		Age:              18,
		MarksPercentage:  85.5,
		PreferredStreams: []core.Stream{core.StreamScience, core.StreamEngineering},
		BudgetMin:        10000,
		BudgetMax:        50000,
		Location:         "Delhi",
		Interests:        []string{"robotics", "mathematics"},
		CareerGoals:      []string{"research scientist"},
	}

	query := BuildQuery(profile)
	assert.Equal(t,
		"programs in science, engineering "+
			"fees between 10000 and 50000 "+
			"near Delhi "+
			"cutoff around 85.5% "+
			"interests in robotics, mathematics "+
			"career goals: research scientist",
		query)
}

func TestBuildQuery_OmitsEmptyFields(t *testing.T) {
	profile := &core.StudentProfile{
		PreferredStreams: []core.Stream{core.StreamCommerce},
	}

	query := BuildQuery(profile)
	assert.Equal(t, "programs in commerce", query)
	assert.NotContains(t, query, "near")
	assert.NotContains(t, query, "fees")
	assert.NotContains(t, query, "None")
}

func TestBuildQuery_ClauseOrder(t *testing.T) {
	// Location before marks, even though marks precede location in the struct.
	profile := &core.StudentProfile{
		MarksPercentage: 72.0,
		Location:        "Mumbai",
	}

	query := BuildQuery(profile)
	assert.Equal(t, "near Mumbai cutoff around 72.0%", query)
}

func TestBuildQuery_EmptyProfile(t *testing.T) {
	assert.Equal(t, "", BuildQuery(&core.StudentProfile{}))
}
