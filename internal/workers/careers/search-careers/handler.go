// internal/workers/careers/search-careers/handler.go
package searchcareers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"career-compass/internal/common/database"
	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/common/validation"
	"career-compass/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "search-careers"
)

type Handler struct {
	config     *Config
	es         *database.ElasticsearchClient
	validator  *validation.SchemaValidator
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, es *database.ElasticsearchClient, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		es:         es,
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
	if job.Variables != "" {
		if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
			return nil, errors.NewInputValidationFailedError(fmt.Sprintf("parse input: %v", err))
		}
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.From < 0 {
		return nil, errors.NewInputValidationFailedError("from must not be negative")
	}

	body, err := json.Marshal(buildQuery(input))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	from := input.From
	size := h.config.pageSize(input.Size)
	req := esapi.SearchRequest{
		Index: []string{h.es.Index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, h.es.Client)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError()
		}
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(h.es.Index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search failed: %s", res.String()))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("decode search response: %w", err))
	}

	careers := make([]recommendation.CareerDefinition, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		careers = append(careers, hit.Source)
	}

	output := &Output{
		Careers:   careers,
		TotalHits: sr.Hits.Total.Value,
		Took:      sr.Took,
	}
	if sr.Hits.MaxScore != nil {
		output.MaxScore = *sr.Hits.MaxScore
	}

	h.logger.Debug("career search finished", map[string]interface{}{
		"totalHits": output.TotalHits,
		"returned":  len(careers),
	})
	return output, nil
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
