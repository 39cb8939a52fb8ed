package storage

import (
	"testing"

	"github.com/poiesic/counselit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("GOVT001")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalSearchDocument(t *testing.T) {
	doc := &core.SearchDocument{
		Id:   core.IDFromContent("GOVT001"),
		Text: "College: Government Science College\nType: government",
		Metadata: core.DocumentMetadata{
			CollegeID:       "GOVT001",
			Name:            "Government Science College",
			Type:            "government",
			Location:        "Delhi",
			District:        "New Delhi",
			State:           "Delhi",
			EstablishedYear: 1952,
			Streams:         []string{"science", "commerce"},
			Accreditation:   []string{"NAAC", "UGC"},
			MinFee:          12000,
			MaxFee:          45000,
			AvgRating:       4.2,
			PlacementPct:    87.5,
			AvgSalary:       450000,
			SourceLinks:     []string{"https://example.gov.in/govt001"},
		},
		Vector: []float32{0.1, 0.2, 0.3},
	}

	data := MarshalSearchDocument(doc)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalSearchDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Id, decoded.Id)
	assert.Equal(t, doc.Text, decoded.Text)
	assert.Equal(t, doc.Metadata, decoded.Metadata)
	assert.Equal(t, doc.Vector, decoded.Vector)
}

func TestUnmarshalSearchDocument_Truncated(t *testing.T) {
	doc := &core.SearchDocument{
		Id:   core.IDFromContent("GOVT001"),
		Text: "College: Government Science College",
	}
	data := MarshalSearchDocument(doc)

	_, err := UnmarshalSearchDocument(data[:len(data)/2])
	assert.Error(t, err)
}
