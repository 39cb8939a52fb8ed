package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/poiesic/counselit/core"
)

var (
	outFileName = flag.String("out", "colleges.json", "output catalog file")
	count       = flag.Int("count", 25, "number of colleges to generate")
	seed        = flag.Int64("seed", 42, "random seed")
)

var regions = []struct {
	state    string
	district string
}{
	{"Delhi", "New Delhi"},
	{"Maharashtra", "Mumbai"},
	{"Maharashtra", "Pune"},
	{"Karnataka", "Bangalore Urban"},
	{"Tamil Nadu", "Chennai"},
	{"West Bengal", "Kolkata"},
	{"Uttar Pradesh", "Lucknow"},
	{"Rajasthan", "Jaipur"},
	{"Gujarat", "Ahmedabad"},
	{"Kerala", "Thiruvananthapuram"},
}

var namePrefixes = []string{
	"Government", "National", "State", "Rajiv Gandhi", "Netaji Subhas",
	"Maharaja", "Central", "Dr. Ambedkar",
}

var streamPrograms = map[core.Stream][]string{
	core.StreamEngineering: {"B.Tech Computer Science", "B.Tech Electronics", "B.Tech Mechanical"},
	core.StreamMedical:     {"MBBS", "B.Sc Nursing"},
	core.StreamCommerce:    {"B.Com Honours", "B.Com Accounting"},
	core.StreamScience:     {"B.Sc Physics", "B.Sc Chemistry", "B.Sc Mathematics"},
	core.StreamArts:        {"B.A. History", "B.A. Economics"},
	core.StreamManagement:  {"BBA", "BMS"},
}

var streamSuffixes = map[core.Stream]string{
	core.StreamEngineering: "Engineering College",
	core.StreamMedical:     "Medical College",
	core.StreamCommerce:    "College of Commerce",
	core.StreamScience:     "Science College",
	core.StreamArts:        "Arts College",
	core.StreamManagement:  "Institute of Management",
}

var recruiters = []string{"TCS", "Infosys", "Wipro", "HCL", "L&T", "BHEL", "ISRO", "SBI"}

var reviewTexts = []string{
	"Strong faculty and good lab infrastructure.",
	"Placement support has improved every year.",
	"Affordable fees for the quality of teaching.",
	"Hostel facilities are basic but the academics are solid.",
	"Great peer group and active student societies.",
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func streams() []core.Stream {
	return []core.Stream{
		core.StreamEngineering,
		core.StreamMedical,
		core.StreamCommerce,
		core.StreamScience,
		core.StreamArts,
		core.StreamManagement,
	}
}

func makeCollege(r *rand.Rand, i int) *core.CollegeRecord {
	region := regions[r.Intn(len(regions))]
	stream := streams()[r.Intn(len(streams()))]
	name := fmt.Sprintf("%s %s %s",
		namePrefixes[r.Intn(len(namePrefixes))], region.district, streamSuffixes[stream])

	programNames := streamPrograms[stream]
	programCount := 1 + r.Intn(len(programNames))
	programs := make([]core.Program, 0, programCount)
	for p := 0; p < programCount; p++ {
		total := 60 + r.Intn(5)*30
		general := total / 2
		programs = append(programs, core.Program{
			Name:             programNames[p],
			Stream:           stream,
			DurationYears:    3 + r.Intn(2),
			AnnualFee:        20000 + r.Intn(19)*10000,
			SeatsTotal:       total,
			SeatsGeneral:     general,
			SeatsReserved:    total - general,
			Eligibility:      "10+2 with 50% aggregate",
			CutoffPercentage: 60.0 + float64(r.Intn(35)),
		})
	}

	years := 2 + r.Intn(2)
	placements := make([]core.PlacementStat, 0, years)
	for y := 0; y < years; y++ {
		total := 100 + r.Intn(10)*20
		placed := total * (60 + r.Intn(36)) / 100
		placements = append(placements, core.PlacementStat{
			Year:           2022 + y,
			TotalStudents:  total,
			PlacedStudents: placed,
			Percentage:     float64(placed) / float64(total) * 100,
			AverageSalary:  300000 + float64(r.Intn(50))*10000,
			HighestSalary:  800000 + float64(r.Intn(100))*10000,
			TopRecruiters:  []string{recruiters[r.Intn(len(recruiters))], recruiters[r.Intn(len(recruiters))]},
		})
	}

	ratingCount := 1 + r.Intn(3)
	ratings := make([]core.MentorRating, 0, ratingCount)
	for m := 0; m < ratingCount; m++ {
		ratings = append(ratings, core.MentorRating{
			MentorID:   fmt.Sprintf("mentor_%03d_%d", i, m),
			MentorName: fmt.Sprintf("Mentor %d", m+1),
			Rating:     3.0 + float64(r.Intn(21))/10.0,
			ReviewText: reviewTexts[r.Intn(len(reviewTexts))],
			ReviewDate: time.Date(2024, time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
			Verified:   r.Intn(2) == 0,
		})
	}

	accreditation := []string{"NAAC"}
	if stream == core.StreamEngineering {
		accreditation = append(accreditation, "AICTE")
	}

	return &core.CollegeRecord{
		CollegeID:       fmt.Sprintf("GOVT%03d", i+1),
		Name:            name,
		Type:            core.CollegeTypeGovernment,
		Location:        region.district,
		District:        region.district,
		State:           region.state,
		EstablishedYear: 1950 + r.Intn(70),
		Accreditation:   accreditation,
		Programs:        programs,
		PlacementStats:  placements,
		MentorRatings:   ratings,
		Website:         fmt.Sprintf("https://govt%03d.ac.in", i+1),
		LastUpdated:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SourceLinks:     []string{fmt.Sprintf("https://govt%03d.ac.in/admissions", i+1)},
	}
}

func main() {
	r := rand.New(rand.NewSource(*seed))

	records := make([]*core.CollegeRecord, 0, *count)
	for i := 0; i < *count; i++ {
		record := makeCollege(r, i)
		if err := core.ValidateCollegeRecord(record); err != nil {
			panic(err)
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(*outFileName, data, 0644); err != nil {
		panic(err)
	}

	slog.Info("wrote catalog", "file", *outFileName, "colleges", len(records))
}
