// internal/workers/reports/review-report/handler_test.go
package reviewreport

import (
	"context"
	"database/sql"
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

const reviewQuery = `UPDATE reports SET status = 'reviewed', reviewed_by = $1, reviewed_at = NOW() WHERE id = $2`

func TestHandler_Execute_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reviewedAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(reviewQuery)).
		WithArgs(3, 55).
		WillReturnRows(sqlmock.NewRows([]string{"reviewed_at"}).AddRow(reviewedAt))

	output, err := createTestHandler(t, db).Execute(context.Background(), &Input{ReportID: 55, CounsellorID: 3, Role: models.RoleCounsellor})
	require.NoError(t, err)
	assert.Equal(t, &Output{
		ReportID:   55,
		Status:     "reviewed",
		ReviewedBy: 3,
		ReviewedAt: "2026-03-02T09:30:00Z",
	}, output)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		setup    func(mock sqlmock.Sqlmock)
		wantCode errors.ErrorCode
	}{
		{
			name:     "students cannot review",
			input:    &Input{ReportID: 55, CounsellorID: 7, Role: models.RoleStudent},
			setup:    func(sqlmock.Sqlmock) {},
			wantCode: errors.ErrCodeReportAccessDenied,
		},
		{
			name:  "no such report",
			input: &Input{ReportID: 404, CounsellorID: 3, Role: models.RoleAdmin},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(reviewQuery)).WithArgs(3, 404).WillReturnRows(sqlmock.NewRows([]string{"reviewed_at"}))
			},
			wantCode: errors.ErrCodeReportNotFound,
		},
		{
			name:  "update fails",
			input: &Input{ReportID: 55, CounsellorID: 3, Role: models.RoleCounsellor},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE reports").WillReturnError(fmt.Errorf("lock timeout"))
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
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: TaskType, Variables: `{"reportId": 55, "counsellorId": 3, "role": "counsellor"}`}}

	input, err := h.parseInput(job)
	require.NoError(t, err)
	assert.Equal(t, int64(3), input.CounsellorID)

	job.Variables = `{"reportId": "55", "counsellorId": 3, "role": "counsellor"}`
	_, err = h.parseInput(job)
	require.Error(t, err)
	assert.Contains(t, errors.Normalize(err).Details, "reportId")
}
