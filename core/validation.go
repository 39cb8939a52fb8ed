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


package core

import (
	"fmt"
	"math"
)

// placementPercentageTolerance bounds how far a reported placement
// percentage may drift from placed/total before the record is rejected.
const placementPercentageTolerance = 0.5

// ValidateStudentProfile validates a StudentProfile according to domain rules.
//
// Validation rules:
//   - Age must be within [16, 30]
//   - MarksPercentage must be within [0, 100]
//   - Budget range must satisfy 0 <= min <= max
//   - At least one preferred stream must be present
//
// Errors name the violated constraint so callers can surface them directly.
func ValidateStudentProfile(profile *StudentProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.Age < 16 || profile.Age > 30 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidProfile, ErrInvalidAge, profile.Age)
	}

	if profile.MarksPercentage < 0 || profile.MarksPercentage > 100 {
		return fmt.Errorf("%w: %w: got %.2f", ErrInvalidProfile, ErrInvalidMarks, profile.MarksPercentage)
	}

	if profile.BudgetMin < 0 || profile.BudgetMin > profile.BudgetMax {
		return fmt.Errorf("%w: %w: got [%d, %d]", ErrInvalidProfile, ErrInvalidBudget,
			profile.BudgetMin, profile.BudgetMax)
	}

	if len(profile.PreferredStreams) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrNoPreferredStreams)
	}

	return nil
}

// ValidateCollegeRecord validates a CollegeRecord according to domain rules.
//
// Validation rules:
//   - CollegeID and Name must not be empty
//   - Program seat counts must satisfy general+reserved <= total
//   - Placement counts must satisfy placed <= total, and the reported
//     percentage must agree with placed/total within tolerance
//   - Mentor ratings must be within [1, 5]
//
// NOT validated: zero programs and zero ratings are legal (the indexer
// defaults the derived metadata to zero for them).
func ValidateCollegeRecord(record *CollegeRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCollegeRecord)
	}

	if record.CollegeID == "" {
		return fmt.Errorf("%w: college_id is empty", ErrInvalidCollegeRecord)
	}
	if record.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidCollegeRecord)
	}

	for _, p := range record.Programs {
		if p.SeatsGeneral+p.SeatsReserved > p.SeatsTotal {
			return fmt.Errorf("%w: %w: program %q has %d+%d > %d",
				ErrInvalidCollegeRecord, ErrInvalidSeats,
				p.Name, p.SeatsGeneral, p.SeatsReserved, p.SeatsTotal)
		}
	}

	for _, s := range record.PlacementStats {
		if err := ValidatePlacementStat(&s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCollegeRecord, err)
		}
	}

	for _, r := range record.MentorRatings {
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("%w: %w: got %.1f", ErrInvalidCollegeRecord, ErrInvalidRating, r.Rating)
		}
	}

	return nil
}

// ValidatePlacementStat cross-checks one year of placement statistics.
// The reported percentage is not trusted blindly: it must match
// placed/total within tolerance.
func ValidatePlacementStat(stat *PlacementStat) error {
	if stat == nil {
		return fmt.Errorf("%w: stat is nil", ErrInvalidPlacement)
	}

	if stat.PlacedStudents > stat.TotalStudents {
		return fmt.Errorf("%w: placed %d exceeds total %d for %d",
			ErrInvalidPlacement, stat.PlacedStudents, stat.TotalStudents, stat.Year)
	}

	if stat.TotalStudents > 0 {
		computed := float64(stat.PlacedStudents) / float64(stat.TotalStudents) * 100
		if math.Abs(computed-stat.Percentage) > placementPercentageTolerance {
			return fmt.Errorf("%w: reported %.2f%% disagrees with %d/%d for %d",
				ErrInvalidPlacement, stat.Percentage,
				stat.PlacedStudents, stat.TotalStudents, stat.Year)
		}
	}

	return nil
}

// ValidateWeights validates a preference weight map: every weight must be
// non-negative. An empty map is valid (defaults apply).
func ValidateWeights(weights map[string]float64) error {
	for factor, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: %q is %.3f", ErrInvalidWeights, factor, w)
		}
	}
	return nil
}

// NormalizeRequest clamps request fields to their supported ranges.
// MaxRecommendations is clamped to [1, 10] at the request boundary.
func NormalizeRequest(req *RecommendationRequest) {
	if req.MaxRecommendations < 1 {
		req.MaxRecommendations = 1
	}
	if req.MaxRecommendations > 10 {
		req.MaxRecommendations = 10
	}
}

// ValidateRequest validates a recommendation request: the embedded profile
// and the preference weights. The request is normalized first.
func ValidateRequest(req *RecommendationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidProfile)
	}
	NormalizeRequest(req)
	if err := ValidateStudentProfile(&req.Profile); err != nil {
		return err
	}
	return ValidateWeights(req.Preferences)
}
