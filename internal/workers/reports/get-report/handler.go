// internal/workers/reports/get-report/handler.go
package getreport

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/common/validation"
	"career-compass/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-report"
)

type Handler struct {
	config     *Config
	reports    *repository.ReportStore
	validator  *validation.SchemaValidator
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, db *sql.DB, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		reports:    repository.New(db).Reports,
		validator:  validator,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err == nil {
		var output *Output
		if output, err = h.execute(ctx, input); err == nil {
			h.completeJob(client, job, output)
			timer.Complete()
			return
		}
	}

	timer.Fail(string(errors.Normalize(err).Code))
	h.errHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.validator != nil {
		if result := h.validator.ValidateInput(TaskType, job.Variables); !result.Valid {
			return nil, errors.NewInputValidationFailedError(result.String())
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInputValidationFailedError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// execute scopes the lookup by role; students only ever match their own reports.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		report *repository.Report
		err    error
	)
	switch {
	case input.Role.IsStudent():
		report, err = h.reports.GetForStudent(ctx, input.ReportID, input.UserID)
	case input.Role.IsStaff():
		report, err = h.reports.GetWithStudent(ctx, input.ReportID)
	default:
		return nil, errors.NewReportAccessDeniedError(string(input.Role))
	}

	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewReportNotFoundError(input.ReportID)
		}
		return nil, errors.NewQueryExecutionFailedError("get report", err)
	}

	h.logger.Debug("report retrieved", map[string]interface{}{
		"reportId": report.ID,
		"role":     string(input.Role),
	})
	return &Output{Report: report}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
