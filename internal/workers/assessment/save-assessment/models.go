// internal/workers/assessment/save-assessment/models.go
package saveassessment

import "encoding/json"

type Input struct {
	UserID         int64           `json:"userId"`
	AssessmentType string          `json:"assessmentType"`
	Responses      json.RawMessage `json:"responses"`
	Score          *float64        `json:"score,omitempty"`
}

type Output struct {
	AssessmentID   int64    `json:"assessmentId"`
	AssessmentType string   `json:"assessmentType"`
	Score          *float64 `json:"score"`
}

const (
	TypeAptitude    = "aptitude"
	TypeInterest    = "interest"
	TypePersonality = "personality"
)

var validTypes = map[string]bool{
	TypeAptitude:    true,
	TypeInterest:    true,
	TypePersonality: true,
}
