// internal/workers/careers/index-careers/handler.go
package indexcareers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"career-compass/internal/catalog"
	"career-compass/internal/common/database"
	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "index-careers"
)

type Handler struct {
	config     *Config
	catalog    *catalog.Cache
	es         *database.ElasticsearchClient
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, cache *catalog.Cache, es *database.ElasticsearchClient, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		catalog:    cache,
		es:         es,
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

	output, err := h.execute(ctx)
	if err != nil {
		timer.Fail(string(errors.Normalize(err).Code))
		h.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
	timer.Complete()
}

func (h *Handler) execute(ctx context.Context) (*Output, error) {
	// Refresh rather than Load so the cache and the index see the same catalog.
	careers, err := h.catalog.Refresh(ctx)
	if err != nil {
		return nil, errors.NewCatalogLoadFailedError(err)
	}

	if err := h.ensureIndex(ctx); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	output := &Output{Index: h.es.Index}
	if len(careers) == 0 {
		h.logger.Warn("active catalog is empty, nothing to index", nil)
		return output, nil
	}

	body, err := bulkBody(careers)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	req := esapi.BulkRequest{
		Index:   h.es.Index,
		Body:    body,
		Refresh: h.config.Refresh,
	}
	res, err := req.Do(ctx, h.es.Client)
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("bulk request: %w", err))
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("bulk request: %s", res.String()))
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("decode bulk response: %w", err))
	}

	for _, item := range br.Items {
		for _, result := range item {
			if result.Status < 300 && result.Error == nil {
				output.Indexed++
				continue
			}
			output.Errors++
			if result.Error != nil {
				h.logger.Warn("career not indexed", map[string]interface{}{
					"careerId": result.ID,
					"type":     result.Error.Type,
					"reason":   result.Error.Reason,
				})
			}
		}
	}

	h.logger.Info("career catalog indexed", map[string]interface{}{
		"index":   output.Index,
		"indexed": output.Indexed,
		"errors":  output.Errors,
	})
	return output, nil
}

// ensureIndex creates the career index with its mapping when it does not exist yet.
func (h *Handler) ensureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{h.es.Index}}.Do(ctx, h.es.Client)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index: %s", res.Status())
	}

	res, err = esapi.IndicesCreateRequest{
		Index: h.es.Index,
		Body:  strings.NewReader(careerMapping),
	}.Do(ctx, h.es.Client)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.String())
	}

	h.logger.Info("created career index", map[string]interface{}{"index": h.es.Index})
	return nil
}

// bulkBody encodes one index action per career, keyed by career id.
func bulkBody(careers []recommendation.CareerDefinition) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range careers {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_id": strconv.FormatInt(c.ID, 10)},
		}
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode career %d: %w", c.ID, err)
		}
	}
	return &buf, nil
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

func (h *Handler) Execute(ctx context.Context) (*Output, error) {
	return h.execute(ctx)
}
