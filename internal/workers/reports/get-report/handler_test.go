// internal/workers/reports/get-report/handler_test.go
package getreport

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"testing"
	"time"

	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/validation"
	"career-compass/internal/models"
	"career-compass/pkg/registry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T, db *sql.DB) *Handler {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)
	v, err := validation.NewSchemaValidator(reg)
	require.NoError(t, err)
	return NewHandler(&Config{Timeout: 5 * time.Second}, db, v, logger.NewTestLogger(t))
}

var reportColumns = []string{
	"id", "user_id", "report_title", "aptitude_score", "interest_profile", "personality_profile",
	"recommended_careers", "summary", "strengths", "areas_to_improve", "status", "generated_at", "reviewed_at", "reviewed_by",
}

func reportRow(extra ...string) *sqlmock.Rows {
	cols := append(append([]string{}, reportColumns...), extra...)
	values := []driver.Value{
		55, 7, nil, 82.0, `{"investigative":80}`, `{"openness":75}`,
		`[{"career_id":2,"title":"Software Engineer","category":"Technology","stream":"Science","match_percentage":84.4,"salary_range":"6-30 LPA","growth":"High"}]`,
		"Based on your comprehensive assessment results, ...", `["Excellent analytical and problem-solving abilities"]`, `[]`,
		"generated", time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC), nil, nil,
	}
	if len(extra) > 0 {
		values = append(values, "Asha Rao", "asha@example.com")
	}
	return sqlmock.NewRows(cols).AddRow(values...)
}

func TestHandler_Execute_Student(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reports r WHERE r.id = $1 AND r.user_id = $2`)).
		WithArgs(55, 7).
		WillReturnRows(reportRow())

	output, err := createTestHandler(t, db).Execute(context.Background(), &Input{ReportID: 55, UserID: 7, Role: models.RoleStudent})
	require.NoError(t, err)

	r := output.Report
	assert.Equal(t, int64(55), r.ID)
	assert.Equal(t, 82.0, *r.AptitudeScore)
	assert.Equal(t, map[string]float64{"openness": 75}, r.PersonalityProfile)
	require.Len(t, r.RecommendedCareers, 1)
	assert.Equal(t, 84.4, r.RecommendedCareers[0].MatchPercentage)
	assert.Equal(t, []string{}, r.AreasToImprove)
	assert.Empty(t, r.StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Staff(t *testing.T) {
	for _, role := range []models.Role{models.RoleCounsellor, models.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON r.user_id = u.id WHERE r.id = $1`)).
				WithArgs(55).
				WillReturnRows(reportRow("name", "email"))

			output, err := createTestHandler(t, db).Execute(context.Background(), &Input{ReportID: 55, UserID: 3, Role: role})
			require.NoError(t, err)
			assert.Equal(t, "Asha Rao", output.Report.StudentName)
			assert.Equal(t, "asha@example.com", output.Report.StudentEmail)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		setup    func(mock sqlmock.Sqlmock)
		wantCode errors.ErrorCode
	}{
		{
			name:  "student asking for someone else's report",
			input: &Input{ReportID: 55, UserID: 8, Role: models.RoleStudent},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM reports r WHERE").WithArgs(55, 8).WillReturnError(sql.ErrNoRows)
			},
			wantCode: errors.ErrCodeReportNotFound,
		},
		{
			name:  "missing report for staff",
			input: &Input{ReportID: 99, UserID: 3, Role: models.RoleAdmin},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("JOIN users").WithArgs(99).WillReturnRows(sqlmock.NewRows(append(append([]string{}, reportColumns...), "name", "email")))
			},
			wantCode: errors.ErrCodeReportNotFound,
		},
		{
			name:     "unknown role",
			input:    &Input{ReportID: 55, UserID: 3, Role: "guest"},
			setup:    func(sqlmock.Sqlmock) {},
			wantCode: errors.ErrCodeReportAccessDenied,
		},
		{
			name:  "database failure",
			input: &Input{ReportID: 55, UserID: 7, Role: models.RoleStudent},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM reports r WHERE").WillReturnError(fmt.Errorf("connection reset by peer"))
			},
			wantCode: errors.ErrCodeQueryExecutionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setup(mock)

			_, err = createTestHandler(t, db).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t, nil)
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: TaskType, Variables: `{"reportId": 55, "userId": 7, "role": "student"}`}}

	input, err := h.parseInput(job)
	require.NoError(t, err)
	assert.Equal(t, &Input{ReportID: 55, UserID: 7, Role: models.RoleStudent}, input)

	job.Variables = `{"reportId": 55, "userId": 7}`
	_, err = h.parseInput(job)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.Normalize(err).Code)
}
