// internal/workers/reports/get-report/models.go
package getreport

import (
	"career-compass/internal/models"
	"career-compass/internal/repository"
)

type Input struct {
	ReportID int64       `json:"reportId"`
	UserID   int64       `json:"userId"`
	Role     models.Role `json:"role"`
}

type Output struct {
	Report *repository.Report `json:"report"`
}
