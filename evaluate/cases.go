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


package evaluate

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"slices"

	"github.com/poiesic/counselit/core"
)

// Case is one synthetic student scenario used to probe recommendation
// quality.
type Case struct {
	CaseID  string              `json:"case_id"`
	Label   string              `json:"label"`
	Profile core.StudentProfile `json:"student_profile"`
}

type caseTemplate struct {
	label   string
	profile core.StudentProfile
}

var caseTemplates = []caseTemplate{
	{
		label: "High Performer - Engineering",
		profile: core.StudentProfile{
			Age:              18,
			Board:            "CBSE",
			MarksPercentage:  95.5,
			PreferredStreams: []core.Stream{core.StreamEngineering},
			BudgetMin:        200000,
			BudgetMax:        500000,
			Location:         "Delhi",
			Interests:        []string{"Technology", "Programming", "Robotics"},
			CareerGoals:      []string{"Software Engineer", "Tech Entrepreneur"},
		},
	},
	{
		label: "Average Performer - Science",
		profile: core.StudentProfile{
			Age:              19,
			Board:            "State Board",
			MarksPercentage:  78.0,
			PreferredStreams: []core.Stream{core.StreamScience},
			BudgetMin:        50000,
			BudgetMax:        150000,
			Location:         "Bangalore",
			Interests:        []string{"Research", "Biology", "Chemistry"},
			CareerGoals:      []string{"Research Scientist", "Lab Technician"},
		},
	},
	{
		label: "Commerce Student",
		profile: core.StudentProfile{
			Age:              18,
			Board:            "ICSE",
			MarksPercentage:  82.0,
			PreferredStreams: []core.Stream{core.StreamCommerce},
			BudgetMin:        30000,
			BudgetMax:        100000,
			Location:         "Mumbai",
			Interests:        []string{"Business", "Finance", "Economics"},
			CareerGoals:      []string{"Chartered Accountant", "Investment Banker"},
		},
	},
	{
		label: "Arts Student",
		profile: core.StudentProfile{
			Age:              20,
			Board:            "CBSE",
			MarksPercentage:  75.0,
			PreferredStreams: []core.Stream{core.StreamArts},
			BudgetMin:        20000,
			BudgetMax:        80000,
			Location:         "Kolkata",
			Interests:        []string{"Literature", "History", "Psychology"},
			CareerGoals:      []string{"Writer", "Teacher", "Counselor"},
		},
	},
	{
		label: "Medical Aspirant",
		profile: core.StudentProfile{
			Age:              18,
			Board:            "CBSE",
			MarksPercentage:  92.0,
			PreferredStreams: []core.Stream{core.StreamMedical},
			BudgetMin:        100000,
			BudgetMax:        300000,
			Location:         "Chennai",
			Interests:        []string{"Medicine", "Biology", "Healthcare"},
			CareerGoals:      []string{"Doctor", "Medical Researcher"},
		},
	},
}

var extraInterests = []string{
	"Sports", "Music", "Art", "Volunteering", "Debate",
	"Photography", "Dance", "Theater", "Gaming", "Reading",
}

// GenerateCases produces count synthetic cases by varying the profile
// templates. The same seed always yields the same case set. Every
// generated profile satisfies the student-profile validation rules.
func GenerateCases(count int, seed int64) ([]*Case, error) {
	if count <= 0 {
		return nil, ErrInvalidCaseCount
	}

	rng := rand.New(rand.NewSource(seed))
	cases := make([]*Case, 0, count)
	for i := 0; i < count; i++ {
		tmpl := caseTemplates[rng.Intn(len(caseTemplates))]

		profile := tmpl.profile
		profile.PreferredStreams = slices.Clone(tmpl.profile.PreferredStreams)
		profile.CareerGoals = slices.Clone(tmpl.profile.CareerGoals)

		profile.Age = 17 + rng.Intn(6)
		marks := tmpl.profile.MarksPercentage + rng.Float64()*10 - 5
		profile.MarksPercentage = math.Max(60.0, math.Min(100.0, marks))

		// The 0.8-1.2 spread never inverts the budget window for any
		// template (min*1.2 stays below max*0.8 for all of them).
		profile.BudgetMin = int(float64(tmpl.profile.BudgetMin) * (0.8 + rng.Float64()*0.4))
		profile.BudgetMax = int(float64(tmpl.profile.BudgetMax) * (0.8 + rng.Float64()*0.4))

		profile.Interests = slices.Clone(tmpl.profile.Interests)
		perm := rng.Perm(len(extraInterests))
		for _, j := range perm[:2] {
			profile.Interests = append(profile.Interests, extraInterests[j])
		}

		cases = append(cases, &Case{
			CaseID:  fmt.Sprintf("case_%03d", i+1),
			Label:   fmt.Sprintf("%s - Variation %d", tmpl.label, i+1),
			Profile: profile,
		})
	}
	return cases, nil
}

// SaveCases writes a case set to path as indented JSON.
func SaveCases(path string, cases []*Case) error {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cases: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cases: %w", err)
	}
	return nil
}

// LoadCases reads a case set previously written by SaveCases.
func LoadCases(path string) ([]*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cases: %w", err)
	}
	var cases []*Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing cases: %w", err)
	}
	return cases, nil
}
