// internal/recommendation/models.go
package recommendation

// AssessmentInput carries whatever assessment results a student has completed.
// A nil field means that assessment was never taken.
type AssessmentInput struct {
	AptitudeScore      *float64           `json:"aptitudeScore,omitempty"`
	InterestProfile    map[string]float64 `json:"interestProfile,omitempty"`
	PersonalityProfile map[string]float64 `json:"personalityProfile,omitempty"`
}

// CareerDefinition is one active entry of the career catalog.
type CareerDefinition struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Stream      string   `json:"stream"`
	Description string   `json:"description"`
	SalaryRange string   `json:"salary_range"`
	Growth      string   `json:"growth"`
	Skills      []string `json:"skills"`
	// MatchKeywords is loaded with the catalog but not used for scoring yet.
	MatchKeywords []string `json:"match_keywords"`
}

type RecommendationEntry struct {
	CareerID        int64   `json:"career_id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Stream          string  `json:"stream"`
	MatchPercentage float64 `json:"match_percentage"`
	SalaryRange     string  `json:"salary_range"`
	Growth          string  `json:"growth"`
}

type Report struct {
	TopRecommendations []RecommendationEntry `json:"recommended_careers"`
	Strengths          []string              `json:"strengths"`
	AreasToImprove     []string              `json:"areas_to_improve"`
	Summary            string                `json:"summary"`
}

// Float64 returns a pointer to v, handy for building an AssessmentInput.
func Float64(v float64) *float64 {
	return &v
}
