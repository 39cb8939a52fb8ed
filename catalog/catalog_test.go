package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord(id string) *core.CollegeRecord {
	return &core.CollegeRecord{
		CollegeID:       id,
		Name:            "Government Science College",
		Type:            core.CollegeTypeGovernment,
		Location:        "Delhi",
		District:        "New Delhi",
		State:           "Delhi",
		EstablishedYear: 1952,
		Programs: []core.Program{
			{
				Name:          "B.Sc. Physics",
				Stream:        core.StreamScience,
				DurationYears: 3,
				AnnualFee:     12000,
				SeatsTotal:    60,
				SeatsGeneral:  30,
				SeatsReserved: 30,
			},
		},
	}
}

func TestFromRecords(t *testing.T) {
	cat, err := FromRecords(validRecord("GOVT001"), validRecord("GOVT002"))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	record, err := cat.Get("GOVT001")
	require.NoError(t, err)
	assert.Equal(t, "GOVT001", record.CollegeID)

	_, err = cat.Get("GOVT999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFromRecords_Empty(t *testing.T) {
	_, err := FromRecords()
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestFromRecords_DuplicateID(t *testing.T) {
	_, err := FromRecords(validRecord("GOVT001"), validRecord("GOVT001"))
	assert.ErrorIs(t, err, ErrDuplicateCollegeID)
}

func TestFromRecords_InvalidRecord(t *testing.T) {
	bad := validRecord("GOVT001")
	bad.Programs[0].SeatsGeneral = 50
	bad.Programs[0].SeatsReserved = 50 // exceeds total of 60

	_, err := FromRecords(bad)
	assert.ErrorIs(t, err, core.ErrInvalidCollegeRecord)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colleges.json")
	data := `[
		{
			"college_id": "GOVT001",
			"name": "Government Science College",
			"college_type": "government",
			"location": "Delhi",
			"district": "New Delhi",
			"state": "Delhi",
			"established_year": 1952,
			"accreditation": ["NAAC", "UGC"],
			"programs": [
				{
					"program_name": "B.Sc. Physics",
					"stream": "science",
					"duration_years": 3,
					"fees_annual": 12000,
					"seats_total": 60,
					"seats_general": 30,
					"seats_reserved": 30,
					"eligibility_criteria": "10+2 with PCM"
				}
			]
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	record, err := cat.Get("GOVT001")
	require.NoError(t, err)
	assert.Equal(t, core.CollegeTypeGovernment, record.Type)
	assert.Equal(t, []string{"NAAC", "UGC"}, record.Accreditation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colleges.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
