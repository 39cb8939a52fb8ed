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


package retrieval

import (
	"fmt"
	"strings"

	"github.com/poiesic/counselit/core"
)

// BuildQuery renders a student profile as a natural-language search query.
//
// Clauses appear in a fixed order: streams, budget, location, marks,
// interests, career goals. Empty fields are omitted entirely rather than
// rendered as placeholders, so a sparse profile yields a short query and
// never pollutes the embedding with "unknown" tokens.
func BuildQuery(profile *core.StudentProfile) string {
	var parts []string

	if len(profile.PreferredStreams) > 0 {
		streams := make([]string, len(profile.PreferredStreams))
		for i, stream := range profile.PreferredStreams {
			streams[i] = string(stream)
		}
		parts = append(parts, fmt.Sprintf("programs in %s", strings.Join(streams, ", ")))
	}

	if profile.BudgetMax > 0 {
		parts = append(parts, fmt.Sprintf("fees between %d and %d", profile.BudgetMin, profile.BudgetMax))
	}

	if profile.Location != "" {
		parts = append(parts, fmt.Sprintf("near %s", profile.Location))
	}

	if profile.MarksPercentage > 0 {
		parts = append(parts, fmt.Sprintf("cutoff around %.1f%%", profile.MarksPercentage))
	}

	if len(profile.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("interests in %s", strings.Join(profile.Interests, ", ")))
	}

	if len(profile.CareerGoals) > 0 {
		parts = append(parts, fmt.Sprintf("career goals: %s", strings.Join(profile.CareerGoals, ", ")))
	}

	return strings.Join(parts, " ")
}
