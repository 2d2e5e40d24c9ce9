// internal/common/camunda/instrument.go
package camunda

import (
	"context"
	"time"

	"career-compass/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusBPMNError = "bpmn_error"
	StatusUnknown   = "unknown"
)

// statusClient remembers which terminal command the handler issued for its job.
type statusClient struct {
	worker.JobClient
	status string
}

func (c *statusClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.status = StatusCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *statusClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.status = StatusFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *statusClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.status = StatusBPMNError
	return c.JobClient.NewThrowErrorCommand()
}

// Instrument wraps handler with a span per job and records the outcome and duration.
func Instrument(obs *observability.Observability, taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		ctx, span := obs.StartSpan(context.Background(), taskType, job.Key)
		defer span.End()

		sc := &statusClient{JobClient: client, status: StatusUnknown}
		start := time.Now()
		handler(sc, job)

		obs.RecordJobProcessed(ctx, taskType, sc.status)
		obs.RecordJobDuration(ctx, taskType, time.Since(start), sc.status)
	}
}
