// internal/workers/reports/generate-report/handler.go
package generatereport

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"career-compass/internal/catalog"
	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/common/validation"
	"career-compass/internal/recommendation"
	"career-compass/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-report"
)

// Recorder receives one call per persisted report.
type Recorder interface {
	RecordReportGenerated(ctx context.Context, recommendations int)
}

type Handler struct {
	config     *Config
	store      *repository.Store
	catalog    *catalog.Cache
	engine     *recommendation.Engine
	validator  *validation.SchemaValidator
	recorder   Recorder
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	db *sql.DB,
	cache *catalog.Cache,
	engine *recommendation.Engine,
	validator *validation.SchemaValidator,
	recorder Recorder,
	log logger.Logger,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      repository.New(db),
		catalog:    cache,
		engine:     engine,
		validator:  validator,
		recorder:   recorder,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	assessment, err := h.loadAssessment(ctx, input)
	if err != nil {
		return nil, err
	}

	careers, err := h.catalog.Load(ctx)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(err)
	}

	report := h.engine.GenerateReport(assessment, careers)

	reportID, generatedAt, err := h.store.Reports.Create(ctx, repository.NewReport{
		UserID:             input.UserID,
		AptitudeScore:      assessment.AptitudeScore,
		InterestProfile:    assessment.InterestProfile,
		PersonalityProfile: assessment.PersonalityProfile,
		Result:             report,
	})
	if err != nil {
		return nil, errors.NewReportPersistFailedError(err)
	}

	h.record(ctx, report)
	h.logger.Info("report generated", map[string]interface{}{
		"userId":          input.UserID,
		"reportId":        reportID,
		"catalogSize":     len(careers),
		"recommendations": len(report.TopRecommendations),
	})

	return &Output{
		ReportID:           reportID,
		AptitudeScore:      assessment.AptitudeScore,
		InterestProfile:    assessment.InterestProfile,
		PersonalityProfile: assessment.PersonalityProfile,
		RecommendedCareers: report.TopRecommendations,
		Strengths:          report.Strengths,
		AreasToImprove:     report.AreasToImprove,
		Summary:            report.Summary,
		GeneratedAt:        generatedAt.Format(generatedAtLayout),
	}, nil
}

// loadAssessment merges stored assessments (newest row per type) with explicit job variables.
func (h *Handler) loadAssessment(ctx context.Context, input *Input) (recommendation.AssessmentInput, error) {
	rows, err := h.store.Assessments.ListForUser(ctx, input.UserID)
	if err != nil {
		return recommendation.AssessmentInput{}, errors.NewQueryExecutionFailedError("list assessments", err)
	}

	var result recommendation.AssessmentInput
	seen := make(map[string]bool, 3)
	for _, a := range rows {
		if seen[a.Type] {
			continue
		}
		seen[a.Type] = true

		switch a.Type {
		case "aptitude":
			result.AptitudeScore = a.Score
		case "interest":
			result.InterestProfile = decodeProfile(a.Responses)
		case "personality":
			result.PersonalityProfile = decodeProfile(a.Responses)
		}
	}

	if input.AptitudeScore != nil {
		result.AptitudeScore = input.AptitudeScore
	}
	if input.InterestProfile != nil {
		result.InterestProfile = input.InterestProfile
	}
	if input.PersonalityProfile != nil {
		result.PersonalityProfile = input.PersonalityProfile
	}
	return result, nil
}

func decodeProfile(raw json.RawMessage) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	var profile map[string]float64
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return profile
}

func (h *Handler) record(ctx context.Context, report recommendation.Report) {
	topCategory := ""
	scores := make([]float64, 0, len(report.TopRecommendations))
	for i, r := range report.TopRecommendations {
		if i == 0 {
			topCategory = r.Category
		}
		scores = append(scores, r.MatchPercentage)
	}
	metrics.RecordReport(topCategory, scores)
	if h.recorder != nil {
		h.recorder.RecordReportGenerated(ctx, len(report.TopRecommendations))
	}
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
