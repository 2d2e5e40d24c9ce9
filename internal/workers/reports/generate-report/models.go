// internal/workers/reports/generate-report/models.go
package generatereport

import "career-compass/internal/recommendation"

// Input may carry assessment results directly; they override what is stored for the user.
type Input struct {
	UserID             int64              `json:"userId"`
	AptitudeScore      *float64           `json:"aptitudeScore,omitempty"`
	InterestProfile    map[string]float64 `json:"interestProfile,omitempty"`
	PersonalityProfile map[string]float64 `json:"personalityProfile,omitempty"`
}

type Output struct {
	ReportID           int64                                `json:"reportId"`
	AptitudeScore      *float64                             `json:"aptitudeScore"`
	InterestProfile    map[string]float64                   `json:"interestProfile"`
	PersonalityProfile map[string]float64                   `json:"personalityProfile"`
	RecommendedCareers []recommendation.RecommendationEntry `json:"recommendedCareers"`
	Strengths          []string                             `json:"strengths"`
	AreasToImprove     []string                             `json:"areasToImprove"`
	Summary            string                               `json:"summary"`
	GeneratedAt        string                               `json:"generatedAt"`
}

const generatedAtLayout = "2006-01-02 15:04:05"
