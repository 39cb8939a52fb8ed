package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strictResponse = `{"recommendations": [
  {"rank": 1, "college_name": "IIT Delhi", "official_quality": 9.5, "mentor_trust": 8.0, "relevance": 9.0, "proximity": 6.5, "composite_score": 8.5, "confidence": 0.9, "rationale": "Strong match for engineering.", "evidence_citations": ["NIRF 2024"], "source_links": ["https://home.iitd.ac.in"]},
  {"rank": 2, "college_name": "University of Delhi", "official_quality": 8.0, "mentor_trust": 7.5, "relevance": 7.0, "proximity": 9.0, "rationale": "Close to home."}
]}`

func TestParseResponse_StrictJSON(t *testing.T) {
	parsed := ParseResponse(strictResponse)
	require.Len(t, parsed, 2)

	first := parsed[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "IIT Delhi", first.CollegeName)
	assert.Equal(t, 9.5, first.OfficialQuality)
	assert.Equal(t, 0.9, first.Confidence)
	assert.Equal(t, []string{"NIRF 2024"}, first.EvidenceCitations)
	assert.Equal(t, []string{"https://home.iitd.ac.in"}, first.SourceLinks)

	second := parsed[1]
	assert.Equal(t, "University of Delhi", second.CollegeName)
	assert.Equal(t, "Close to home.", second.Rationale)
}

func TestParseResponse_CodeFenced(t *testing.T) {
	fenced := "```json\n" + strictResponse + "\n```"
	parsed := ParseResponse(fenced)
	require.Len(t, parsed, 2)
	assert.Equal(t, "IIT Delhi", parsed[0].CollegeName)
}

func TestParseResponse_RepairsUnquotedKeys(t *testing.T) {
	broken := `{"recommendations": [{rank": 1, college_name": "IIT Delhi", "official_quality": 8.0, "mentor_trust": 7.0, "relevance": 9.0, "proximity": 6.0, "rationale": "ok"}]}`
	parsed := ParseResponse(broken)
	require.Len(t, parsed, 1)
	assert.Equal(t, 1, parsed[0].Rank)
	assert.Equal(t, "IIT Delhi", parsed[0].CollegeName)
}

func TestParseResponse_EmptyRecommendations(t *testing.T) {
	parsed := ParseResponse(`{"recommendations": []}`)
	assert.Empty(t, parsed)
}

func TestParseResponse_FallbackText(t *testing.T) {
	response := `Here are my recommendations:

Rank: 1
College Name: IIT Delhi
Official Quality Score: 9

Rank: 2
College Name: University of Delhi
Official Quality Score: 8`

	parsed := ParseResponse(response)
	require.Len(t, parsed, 2)

	first := parsed[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "IIT Delhi", first.CollegeName)
	assert.Equal(t, 7.0, first.OfficialQuality)
	assert.Equal(t, 7.0, first.Proximity)
	assert.Equal(t, 0.7, first.Confidence)
	assert.Equal(t, "Recommended based on student profile match", first.Rationale)
	assert.Equal(t, []string{"Source verification pending"}, first.EvidenceCitations)

	assert.Equal(t, 2, parsed[1].Rank)
	assert.Equal(t, "University of Delhi", parsed[1].CollegeName)
}

func TestParseResponse_UnreadableResponse(t *testing.T) {
	assert.Empty(t, ParseResponse("I cannot recommend any colleges."))
	assert.Empty(t, ParseResponse(""))
}

func TestParseResponse_SkipsBlankCollegeNames(t *testing.T) {
	response := `{"recommendations": [
  {"rank": 1, "college_name": "  ", "official_quality": 8.0, "mentor_trust": 7.0, "relevance": 9.0, "proximity": 6.0, "rationale": "bad"},
  {"rank": 2, "college_name": "IIT Delhi", "official_quality": 8.0, "mentor_trust": 7.0, "relevance": 9.0, "proximity": 6.0, "rationale": "ok"}
]}`
	parsed := ParseResponse(response)
	require.Len(t, parsed, 1)
	assert.Equal(t, "IIT Delhi", parsed[0].CollegeName)
}
