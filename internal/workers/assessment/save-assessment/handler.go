// internal/workers/assessment/save-assessment/handler.go
package saveassessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/common/validation"
	"career-compass/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-assessment"
)

type Handler struct {
	config      *Config
	assessments *repository.AssessmentStore
	validator   *validation.SchemaValidator
	errHandler  *errors.ErrorHandler
	logger      logger.Logger
}

func NewHandler(config *Config, db *sql.DB, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		assessments: repository.New(db).Assessments,
		validator:   validator,
		errHandler:  errors.NewErrorHandler(log),
		logger:      log,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !validTypes[input.AssessmentType] {
		return nil, errors.NewInvalidAssessmentTypeError(input.AssessmentType)
	}
	if err := validateResponses(input.AssessmentType, input.Responses); err != nil {
		return nil, err
	}

	responses := input.Responses
	if len(responses) == 0 {
		responses = json.RawMessage("null")
	}

	id, err := h.assessments.Replace(ctx, input.UserID, input.AssessmentType, responses, input.Score)
	if err != nil {
		return nil, errors.NewAssessmentSaveFailedError(err)
	}

	h.logger.Info("assessment saved", map[string]interface{}{
		"userId":         input.UserID,
		"assessmentType": input.AssessmentType,
		"assessmentId":   id,
	})

	return &Output{
		AssessmentID:   id,
		AssessmentType: input.AssessmentType,
		Score:          input.Score,
	}, nil
}

// validateResponses requires interest and personality answers to be trait -> score maps within [0,100].
func validateResponses(assessmentType string, raw json.RawMessage) error {
	if assessmentType == TypeAptitude {
		return nil
	}

	var profile map[string]float64
	if err := json.Unmarshal(raw, &profile); err != nil || profile == nil {
		return errors.NewAssessmentValidationFailedError(assessmentType + " responses must be an object of numeric scores")
	}

	var bad []string
	for trait, v := range profile {
		if v < 0 || v > 100 {
			bad = append(bad, trait)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return errors.NewAssessmentValidationFailedError("scores out of range [0,100]: " + strings.Join(bad, ", "))
	}
	return nil
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
