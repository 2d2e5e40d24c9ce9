// internal/workers/careers/search-careers/models.go
package searchcareers

import "career-compass/internal/recommendation"

type Input struct {
	Keywords string `json:"keywords,omitempty"`
	Category string `json:"category,omitempty"`
	Stream   string `json:"stream,omitempty"`
	From     int    `json:"from,omitempty"`
	Size     int    `json:"size,omitempty"`
}

type Output struct {
	Careers   []recommendation.CareerDefinition `json:"careers"`
	TotalHits int64                             `json:"totalHits"`
	MaxScore  float64                           `json:"maxScore"`
	Took      int64                             `json:"took"` // milliseconds, as reported by the cluster
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Source recommendation.CareerDefinition `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
