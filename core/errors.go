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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a StudentProfile failed validation.
	ErrInvalidProfile = errors.New("invalid student profile")

	// ErrInvalidAge indicates an age outside the supported 16-30 range.
	ErrInvalidAge = errors.New("age must be between 16 and 30")

	// ErrInvalidMarks indicates a marks percentage outside 0-100.
	ErrInvalidMarks = errors.New("marks percentage must be between 0 and 100")

	// ErrInvalidBudget indicates a negative or inverted budget range.
	ErrInvalidBudget = errors.New("budget range must satisfy 0 <= min <= max")

	// ErrNoPreferredStreams indicates a profile without any preferred stream.
	ErrNoPreferredStreams = errors.New("at least one preferred stream is required")

	// ErrInvalidCollegeRecord indicates a CollegeRecord failed validation.
	ErrInvalidCollegeRecord = errors.New("invalid college record")

	// ErrInvalidSeats indicates general+reserved seats exceed total seats.
	ErrInvalidSeats = errors.New("general plus reserved seats exceed total seats")

	// ErrInvalidPlacement indicates placed students exceed total students or
	// the reported percentage disagrees with the counts.
	ErrInvalidPlacement = errors.New("invalid placement statistics")

	// ErrInvalidRating indicates a mentor rating outside 1-5.
	ErrInvalidRating = errors.New("mentor rating must be between 1 and 5")

	// ErrInvalidWeights indicates a negative preference weight.
	ErrInvalidWeights = errors.New("preference weights must be non-negative")

	// ErrZeroWeightSum indicates a weight vector that sums to zero and
	// therefore cannot be normalized.
	ErrZeroWeightSum = errors.New("preference weights sum to zero")
)
