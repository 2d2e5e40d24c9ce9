// internal/workers/reports/review-report/models.go
package reviewreport

import "career-compass/internal/models"

type Input struct {
	ReportID     int64       `json:"reportId"`
	CounsellorID int64       `json:"counsellorId"`
	Role         models.Role `json:"role"`
}

type Output struct {
	ReportID   int64  `json:"reportId"`
	Status     string `json:"status"`
	ReviewedBy int64  `json:"reviewedBy"`
	ReviewedAt string `json:"reviewedAt"`
}
