package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical content
// always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Stream is an academic stream offered by a college program.
type Stream string

const (
	StreamEngineering Stream = "engineering"
	StreamMedical     Stream = "medical"
	StreamCommerce    Stream = "commerce"
	StreamArts        Stream = "arts"
	StreamScience     Stream = "science"
	StreamManagement  Stream = "management"
	StreamLaw         Stream = "law"
	StreamAgriculture Stream = "agriculture"
)

// CollegeType classifies the governance model of a college.
type CollegeType string

const (
	CollegeTypeGovernment CollegeType = "government"
	CollegeTypePrivate    CollegeType = "private"
	CollegeTypeDeemed     CollegeType = "deemed"
	CollegeTypeAutonomous CollegeType = "autonomous"
)

// StudentProfile describes the student a recommendation request is made for.
// A profile is immutable once built; the pipeline consumes it but never
// mutates it.
type StudentProfile struct {
	Age               int      `json:"age"`
	Board             string   `json:"board"`
	MarksPercentage   float64  `json:"marks_percentage"`
	PreferredStreams  []Stream `json:"preferred_streams"`
	BudgetMin         int      `json:"budget_min"`
	BudgetMax         int      `json:"budget_max"`
	PreferredLanguage string   `json:"preferred_language"`
	MaxDistanceKM     int      `json:"max_distance_km"`
	Location          string   `json:"location,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	CareerGoals       []string `json:"career_goals,omitempty"`
}

// Program is a single degree program offered by a college.
type Program struct {
	Name             string  `json:"program_name"`
	Stream           Stream  `json:"stream"`
	DurationYears    int     `json:"duration_years"`
	AnnualFee        int     `json:"fees_annual"`
	SeatsTotal       int     `json:"seats_total"`
	SeatsGeneral     int     `json:"seats_general"`
	SeatsReserved    int     `json:"seats_reserved"`
	Eligibility      string  `json:"eligibility_criteria"`
	EntranceExam     string  `json:"entrance_exam,omitempty"`
	CutoffPercentage float64 `json:"cutoff_percentage,omitempty"`
}

// PlacementStat is one year of placement statistics. The last entry of a
// college's placement series is the current one.
type PlacementStat struct {
	Year           int      `json:"year"`
	TotalStudents  int      `json:"total_students"`
	PlacedStudents int      `json:"placed_students"`
	Percentage     float64  `json:"placement_percentage"`
	AverageSalary  float64  `json:"average_salary"`
	HighestSalary  float64  `json:"highest_salary"`
	TopRecruiters  []string `json:"top_recruiters,omitempty"`
	JobRoles       []string `json:"job_roles,omitempty"`
}

// MentorRating is a single mentor review of a college.
type MentorRating struct {
	MentorID   string    `json:"mentor_id"`
	MentorName string    `json:"mentor_name"`
	Rating     float64   `json:"rating"` // 1-5
	ReviewText string    `json:"review_text"`
	ReviewDate time.Time `json:"review_date"`
	Verified   bool      `json:"verified"`
	Categories []string  `json:"categories,omitempty"`
}

// CollegeRecord is the canonical record for a college. Records are owned by
// the catalog, loaded once at startup, and read-only for the lifetime of a
// session.
type CollegeRecord struct {
	CollegeID       string            `json:"college_id"`
	Name            string            `json:"name"`
	Type            CollegeType       `json:"college_type"`
	Location        string            `json:"location"`
	District        string            `json:"district"`
	State           string            `json:"state"`
	EstablishedYear int               `json:"established_year"`
	Accreditation   []string          `json:"accreditation,omitempty"`
	Programs        []Program         `json:"programs"`
	PlacementStats  []PlacementStat   `json:"placement_stats,omitempty"`
	MentorRatings   []MentorRating    `json:"mentor_ratings,omitempty"`
	Infrastructure  map[string]any    `json:"infrastructure,omitempty"`
	FacultyInfo     map[string]any    `json:"faculty_info,omitempty"`
	Website         string            `json:"official_website,omitempty"`
	ContactInfo     map[string]string `json:"contact_info,omitempty"`
	LastUpdated     time.Time         `json:"last_updated"`
	SourceLinks     []string          `json:"source_links,omitempty"`
}

// Id returns the content-based identifier for the record.
func (c *CollegeRecord) Id() ID {
	return IDFromContent(c.CollegeID)
}

// AverageRating returns the mean mentor rating, or 0 when the college has
// no ratings.
func (c *CollegeRecord) AverageRating() float64 {
	if len(c.MentorRatings) == 0 {
		return 0.0
	}
	var sum float64
	for _, r := range c.MentorRatings {
		sum += r.Rating
	}
	return sum / float64(len(c.MentorRatings))
}

// LatestPlacement returns the most recent placement statistics, or nil when
// the college has none.
func (c *CollegeRecord) LatestPlacement() *PlacementStat {
	if len(c.PlacementStats) == 0 {
		return nil
	}
	return &c.PlacementStats[len(c.PlacementStats)-1]
}

// FeeRange returns the minimum and maximum annual fee across programs.
// Both are 0 for a college with no programs.
func (c *CollegeRecord) FeeRange() (minFee, maxFee int64) {
	if len(c.Programs) == 0 {
		return 0, 0
	}
	minFee = int64(c.Programs[0].AnnualFee)
	maxFee = minFee
	for _, p := range c.Programs[1:] {
		fee := int64(p.AnnualFee)
		if fee < minFee {
			minFee = fee
		}
		if fee > maxFee {
			maxFee = fee
		}
	}
	return minFee, maxFee
}

// DistinctStreams returns the set of streams across programs, in first-seen
// order.
func (c *CollegeRecord) DistinctStreams() []Stream {
	seen := make(map[Stream]bool, len(c.Programs))
	streams := make([]Stream, 0, len(c.Programs))
	for _, p := range c.Programs {
		if !seen[p.Stream] {
			seen[p.Stream] = true
			streams = append(streams, p.Stream)
		}
	}
	return streams
}

// SearchDocument is the searchable form of a CollegeRecord: a denormalized
// human-readable text blob plus flat metadata used for filtering. Documents
// are derived and ephemeral; they are regenerated whenever the source record
// changes and never hand-edited.
type SearchDocument struct {
	Id       ID
	Text     string
	Metadata DocumentMetadata
	Vector   []float32 // Embedding vector for semantic search (populated by the index pipeline)
}

// DocumentMetadata is the flat filterable projection of a college record.
type DocumentMetadata struct {
	CollegeID       string
	Name            string
	Type            string
	Location        string
	District        string
	State           string
	EstablishedYear int64
	Streams         []string
	Accreditation   []string
	MinFee          int64
	MaxFee          int64
	AvgRating       float64
	PlacementPct    float64
	AvgSalary       float64
	SourceLinks     []string
}

// Field resolves a metadata key to its value. The second return is false for
// keys the metadata does not carry, so unknown filter keys simply never match.
func (m *DocumentMetadata) Field(key string) (any, bool) {
	switch key {
	case "college_id":
		return m.CollegeID, true
	case "name":
		return m.Name, true
	case "type":
		return m.Type, true
	case "location":
		return m.Location, true
	case "district":
		return m.District, true
	case "state":
		return m.State, true
	case "established_year":
		return m.EstablishedYear, true
	case "streams":
		return m.Streams, true
	case "accreditation":
		return m.Accreditation, true
	case "min_fee":
		return m.MinFee, true
	case "max_fee":
		return m.MaxFee, true
	case "avg_rating":
		return m.AvgRating, true
	case "placement_pct":
		return m.PlacementPct, true
	case "avg_salary":
		return m.AvgSalary, true
	default:
		return nil, false
	}
}

// SearchResult pairs a document with its similarity to a query vector.
type SearchResult struct {
	Document   *SearchDocument
	Similarity float32
}

// RecommendationScore is the score breakdown for a single recommendation.
// Composite is always the weighted sum of the four sub-scores under the
// active normalized weight vector; the scoring engine recomputes it and any
// generation-proposed composite is treated as a draft.
type RecommendationScore struct {
	OfficialQuality float64 `json:"official_quality"` // 0-10
	MentorTrust     float64 `json:"mentor_trust"`     // 0-10
	Relevance       float64 `json:"relevance"`        // 0-10
	Proximity       float64 `json:"proximity"`        // 0-10
	Composite       float64 `json:"composite_score"`  // 0-10
	Confidence      float64 `json:"confidence"`       // 0-1
}

// VerificationStatus is the aggregate verification outcome for a
// recommendation.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationPartial  VerificationStatus = "partially_verified"
	VerificationFlagged  VerificationStatus = "flagged"
	VerificationNoClaims VerificationStatus = "no_claims"
)

// Recommendation is one entry of the pipeline's ranked output.
type Recommendation struct {
	Rank               int                 `json:"rank"`
	College            *CollegeRecord      `json:"college"`
	Score              RecommendationScore `json:"score"`
	Rationale          string              `json:"rationale"`
	EvidenceCitations  []string            `json:"evidence_citations"`
	SourceLinks        []string            `json:"source_links"`
	VerificationStatus VerificationStatus  `json:"verification_status"`
}

// RecommendationRequest is a single student request consumed by the
// recommendation service.
type RecommendationRequest struct {
	Profile             StudentProfile     `json:"student_profile"`
	Preferences         map[string]float64 `json:"preferences,omitempty"`
	MaxRecommendations  int                `json:"max_recommendations"`
	IncludeVerification bool               `json:"include_verification"`
}

// VerificationResult is the outcome of checking one claim against the
// reference sources.
type VerificationResult struct {
	Claim      string    `json:"claim"`
	Verified   bool      `json:"verified"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
	VerifiedAt time.Time `json:"verification_date"`
	Notes      string    `json:"notes,omitempty"`
}
