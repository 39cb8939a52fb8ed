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


package index

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/counselit/core"
)

// BuildDocument converts a college record into its searchable document form.
//
// The text blob is a human-readable rendering of the record that the
// embedding model sees; the metadata is the flat projection used for
// filtering. Sections for placement, ratings, infrastructure and faculty
// are emitted only when the record carries them, so a sparse record still
// produces a valid document.
func BuildDocument(record *core.CollegeRecord) *core.SearchDocument {
	var b strings.Builder

	fmt.Fprintf(&b, "College: %s\n", record.Name)
	fmt.Fprintf(&b, "Type: %s\n", record.Type)
	fmt.Fprintf(&b, "Location: %s, %s, %s\n", record.Location, record.District, record.State)
	fmt.Fprintf(&b, "Established: %d\n", record.EstablishedYear)
	if len(record.Accreditation) > 0 {
		fmt.Fprintf(&b, "Accreditation: %s\n", strings.Join(record.Accreditation, ", "))
	}

	if len(record.Programs) > 0 {
		b.WriteString("\nPrograms:\n")
		for _, program := range record.Programs {
			fmt.Fprintf(&b, "- %s (%s)\n", program.Name, program.Stream)
			fmt.Fprintf(&b, "  Duration: %d years\n", program.DurationYears)
			fmt.Fprintf(&b, "  Annual Fees: INR %d\n", program.AnnualFee)
			fmt.Fprintf(&b, "  Total Seats: %d\n", program.SeatsTotal)
			if program.Eligibility != "" {
				fmt.Fprintf(&b, "  Eligibility: %s\n", program.Eligibility)
			}
			if program.EntranceExam != "" {
				fmt.Fprintf(&b, "  Entrance Exam: %s\n", program.EntranceExam)
			}
			if program.CutoffPercentage > 0 {
				fmt.Fprintf(&b, "  Cutoff: %.1f%%\n", program.CutoffPercentage)
			}
		}
	}

	latest := record.LatestPlacement()
	if latest != nil {
		fmt.Fprintf(&b, "\nPlacement Statistics (%d):\n", latest.Year)
		fmt.Fprintf(&b, "- Total Students: %d\n", latest.TotalStudents)
		fmt.Fprintf(&b, "- Placed Students: %d\n", latest.PlacedStudents)
		fmt.Fprintf(&b, "- Placement Percentage: %.1f%%\n", latest.Percentage)
		fmt.Fprintf(&b, "- Average Salary: INR %.0f\n", latest.AverageSalary)
		fmt.Fprintf(&b, "- Highest Salary: INR %.0f\n", latest.HighestSalary)
		if len(latest.TopRecruiters) > 0 {
			fmt.Fprintf(&b, "- Top Recruiters: %s\n", strings.Join(latest.TopRecruiters, ", "))
		}
		if len(latest.JobRoles) > 0 {
			fmt.Fprintf(&b, "- Job Roles: %s\n", strings.Join(latest.JobRoles, ", "))
		}
	}

	if len(record.MentorRatings) > 0 {
		fmt.Fprintf(&b, "\nMentor Ratings:\n")
		fmt.Fprintf(&b, "- Average Rating: %.1f/5.0\n", record.AverageRating())
		fmt.Fprintf(&b, "- Total Reviews: %d\n", len(record.MentorRatings))
		lastReview := record.MentorRatings[len(record.MentorRatings)-1]
		if lastReview.ReviewText != "" {
			fmt.Fprintf(&b, "- Latest Review: %s\n", lastReview.ReviewText)
		}
	}

	writeDetailSection(&b, "Infrastructure", record.Infrastructure)
	writeDetailSection(&b, "Faculty", record.FacultyInfo)

	if phone, email := record.ContactInfo["phone"], record.ContactInfo["email"]; phone != "" || email != "" {
		fmt.Fprintf(&b, "\nContact: %s | %s\n", phone, email)
	}
	if record.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", record.Website)
	}

	minFee, maxFee := record.FeeRange()
	streams := record.DistinctStreams()
	streamNames := make([]string, len(streams))
	for i, stream := range streams {
		streamNames[i] = string(stream)
	}

	meta := core.DocumentMetadata{
		CollegeID:       record.CollegeID,
		Name:            record.Name,
		Type:            string(record.Type),
		Location:        record.Location,
		District:        record.District,
		State:           record.State,
		EstablishedYear: int64(record.EstablishedYear),
		Streams:         streamNames,
		Accreditation:   record.Accreditation,
		MinFee:          minFee,
		MaxFee:          maxFee,
		AvgRating:       record.AverageRating(),
		SourceLinks:     record.SourceLinks,
	}
	if latest != nil {
		meta.PlacementPct = latest.Percentage
		meta.AvgSalary = latest.AverageSalary
	}

	return &core.SearchDocument{
		Id:       record.Id(),
		Text:     b.String(),
		Metadata: meta,
	}
}

// writeDetailSection renders a free-form detail map as a bulleted section.
// Keys are emitted in sorted order so document text is deterministic.
func writeDetailSection(b *strings.Builder, title string, details map[string]any) {
	if len(details) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, key := range sortedKeys(details) {
		label := strings.ReplaceAll(key, "_", " ")
		switch v := details[key].(type) {
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(parts, ", "))
		default:
			fmt.Fprintf(b, "- %s: %v\n", label, v)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
