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


package recommend

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// GeneratedRecommendation is one entry of a parsed generator response.
// The composite score is carried only as a draft; the scoring engine
// recomputes it from the four sub-scores before ranking.
type GeneratedRecommendation struct {
	Rank              int      `json:"rank"`
	CollegeName       string   `json:"college_name"`
	OfficialQuality   float64  `json:"official_quality"`
	MentorTrust       float64  `json:"mentor_trust"`
	Relevance         float64  `json:"relevance"`
	Proximity         float64  `json:"proximity"`
	Composite         float64  `json:"composite_score"`
	Confidence        float64  `json:"confidence"`
	Rationale         string   `json:"rationale"`
	EvidenceCitations []string `json:"evidence_citations"`
	SourceLinks       []string `json:"source_links"`
}

// generatedSet is the wrapper structure for the generator's JSON response.
type generatedSet struct {
	Recommendations []GeneratedRecommendation `json:"recommendations"`
}

var (
	rankPattern    = regexp.MustCompile(`Rank:\s*(\d+)`)
	collegePattern = regexp.MustCompile(`College Name:\s*([^\n]+)`)
)

// ParseResponse parses a generator response into recommendations.
//
// The strict tier expects the JSON shape requested by the prompt, after
// stripping markdown code fences and repairing common formatting issues.
// When that fails the fallback tier scans the text for "Rank:" and
// "College Name:" lines and fills the remaining fields with neutral
// mid-range defaults. A response neither tier can read yields an empty
// slice, never an error.
func ParseResponse(response string) []GeneratedRecommendation {
	if parsed, ok := parseStrict(response); ok {
		return parsed
	}
	return parseFallback(response)
}

func parseStrict(response string) ([]GeneratedRecommendation, bool) {
	// Strip markdown code fences if present
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var result generatedSet
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, false
	}
	if result.Recommendations == nil {
		return nil, false
	}

	parsed := make([]GeneratedRecommendation, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		rec.CollegeName = strings.TrimSpace(rec.CollegeName)
		if rec.CollegeName == "" {
			continue
		}
		parsed = append(parsed, rec)
	}
	return parsed, true
}

func parseFallback(response string) []GeneratedRecommendation {
	ranks := rankPattern.FindAllStringSubmatch(response, -1)
	colleges := collegePattern.FindAllStringSubmatch(response, -1)

	count := min(len(ranks), len(colleges))
	parsed := make([]GeneratedRecommendation, 0, count)
	for i := 0; i < count; i++ {
		rank, err := strconv.Atoi(ranks[i][1])
		if err != nil {
			continue
		}
		name := strings.TrimSpace(colleges[i][1])
		if name == "" {
			continue
		}
		parsed = append(parsed, GeneratedRecommendation{
			Rank:              rank,
			CollegeName:       name,
			OfficialQuality:   7.0,
			MentorTrust:       7.0,
			Relevance:         7.0,
			Proximity:         7.0,
			Composite:         7.0,
			Confidence:        0.7,
			Rationale:         "Recommended based on student profile match",
			EvidenceCitations: []string{"Source verification pending"},
		})
	}
	return parsed
}
