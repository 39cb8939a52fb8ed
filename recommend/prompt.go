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
	"fmt"
	"strings"

	"github.com/poiesic/counselit/core"
)

const recommendationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "rank": {"type": "integer", "minimum": 1},
          "college_name": {"type": "string"},
          "official_quality": {"type": "number", "minimum": 0, "maximum": 10},
          "mentor_trust": {"type": "number", "minimum": 0, "maximum": 10},
          "relevance": {"type": "number", "minimum": 0, "maximum": 10},
          "proximity": {"type": "number", "minimum": 0, "maximum": 10},
          "composite_score": {"type": "number", "minimum": 0, "maximum": 10},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "rationale": {"type": "string"},
          "evidence_citations": {"type": "array", "items": {"type": "string"}},
          "source_links": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["rank", "college_name", "official_quality", "mentor_trust", "relevance", "proximity", "rationale"],
        "additionalProperties": false
      }
    }
  },
  "required": ["recommendations"],
  "additionalProperties": false
}`

const recommendationPromptTemplate = `Your task is to provide top college recommendations based on a student's profile and retrieved college information.

STUDENT PROFILE:
%s

RETRIEVED COLLEGE DATA:
%s

INSTRUCTIONS:
1. Analyze the student profile and match it with the retrieved college information
2. For each recommended college, provide a score breakdown:
   - Official Quality (0-10): Based on accreditation, NIRF ranking, reputation
   - Mentor Trust (0-10): Based on mentor ratings and reviews
   - Relevance (0-10): How well the college matches the student's preferences
   - Proximity (0-10): Distance and location convenience
3. Provide a one-sentence rationale explaining why each college is recommended
4. Ensure recommendations are realistic and achievable
5. Prioritize government colleges
6. Consider budget constraints and location preferences
7. Provide source links for transparency

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s`

// BuildPrompt renders a student profile and the retrieved college documents
// into the counselor prompt sent to the generator.
func BuildPrompt(profile *core.StudentProfile, results []*core.SearchResult) string {
	return fmt.Sprintf(recommendationPromptTemplate,
		formatProfile(profile),
		formatDocuments(results),
		recommendationResponseSchema)
}

func formatProfile(profile *core.StudentProfile) string {
	streams := make([]string, len(profile.PreferredStreams))
	for i, s := range profile.PreferredStreams {
		streams[i] = string(s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Age: %d\n", profile.Age)
	fmt.Fprintf(&b, "Board: %s\n", profile.Board)
	fmt.Fprintf(&b, "Marks: %.1f%%\n", profile.MarksPercentage)
	fmt.Fprintf(&b, "Preferred Streams: %s\n", strings.Join(streams, ", "))
	fmt.Fprintf(&b, "Budget Range: ₹%d - ₹%d\n", profile.BudgetMin, profile.BudgetMax)
	fmt.Fprintf(&b, "Preferred Language: %s\n", orNotSpecified(profile.PreferredLanguage))
	fmt.Fprintf(&b, "Max Distance: %d km\n", profile.MaxDistanceKM)
	fmt.Fprintf(&b, "Location: %s\n", orNotSpecified(profile.Location))
	fmt.Fprintf(&b, "Interests: %s\n", joinOrNotSpecified(profile.Interests))
	fmt.Fprintf(&b, "Career Goals: %s", joinOrNotSpecified(profile.CareerGoals))
	return b.String()
}

func formatDocuments(results []*core.SearchResult) string {
	if len(results) == 0 {
		return "No matching college documents were retrieved."
	}

	var b strings.Builder
	for i, result := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		doc := result.Document
		meta := &doc.Metadata
		fmt.Fprintf(&b, "Document %d:\n", i+1)
		b.WriteString(doc.Text)
		b.WriteString("\n\nMetadata:\n")
		fmt.Fprintf(&b, "- College: %s\n", meta.Name)
		fmt.Fprintf(&b, "- Location: %s\n", meta.Location)
		fmt.Fprintf(&b, "- Streams: %s\n", strings.Join(meta.Streams, ", "))
		fmt.Fprintf(&b, "- Rating: %.1f\n", meta.AvgRating)
		fmt.Fprintf(&b, "- Placement: %.1f%%\n", meta.PlacementPct)
		fmt.Fprintf(&b, "- Fees: ₹%d - ₹%d", meta.MinFee, meta.MaxFee)
	}
	return b.String()
}

func orNotSpecified(value string) string {
	if value == "" {
		return "Not specified"
	}
	return value
}

func joinOrNotSpecified(values []string) string {
	if len(values) == 0 {
		return "Not specified"
	}
	return strings.Join(values, ", ")
}
