// internal/workers/reports/list-reports/models.go
package listreports

import (
	"career-compass/internal/models"
	"career-compass/internal/repository"
)

type Input struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
}

type Output struct {
	Reports []repository.ReportSummary `json:"reports"`
	Count   int                        `json:"count"`
}
