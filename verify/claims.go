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


package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/counselit/core"
)

// ClaimType selects the verification strategy for a claim.
type ClaimType string

const (
	ClaimPlacement     ClaimType = "placement"
	ClaimAccreditation ClaimType = "accreditation"
	ClaimProgram       ClaimType = "program"
	ClaimGeneral       ClaimType = "general"
)

// accreditationVocabulary is the fixed set of tokens recognized in
// accreditation claims.
var accreditationVocabulary = []string{"NAAC", "NBA", "AICTE", "UGC"}

var (
	percentagePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	programPattern    = regexp.MustCompile(`Offers (.+?) with (\d+) seats`)
)

// PlacementClaim renders a placement statistic as a verifiable claim.
func PlacementClaim(stat *core.PlacementStat) string {
	return fmt.Sprintf("Placement percentage: %v%%", stat.Percentage)
}

// AccreditationClaim renders a record's accreditation list as a claim.
func AccreditationClaim(record *core.CollegeRecord) string {
	return fmt.Sprintf("Accredited by: %s", strings.Join(record.Accreditation, ", "))
}

// ProgramClaim renders a program's name and seat count as a claim.
func ProgramClaim(program *core.Program) string {
	return fmt.Sprintf("Offers %s with %d seats", program.Name, program.SeatsTotal)
}

// extractPercentage pulls the first percentage figure out of a claim.
func extractPercentage(claim string) (float64, bool) {
	match := percentagePattern.FindStringSubmatch(claim)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// extractProgramClaim pulls the program name and claimed seat count out of
// an "Offers X with N seats" claim.
func extractProgramClaim(claim string) (name string, seats int, ok bool) {
	match := programPattern.FindStringSubmatch(claim)
	if match == nil {
		return "", 0, false
	}
	seats, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, false
	}
	return match[1], seats, true
}

// extractAccreditationTokens returns the vocabulary tokens present in the
// claim text, in vocabulary order.
func extractAccreditationTokens(claim string) []string {
	var tokens []string
	for _, token := range accreditationVocabulary {
		if strings.Contains(claim, token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
