// internal/workers/communication/notify-report/handler.go
package notifyreport

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"career-compass/internal/common/aws"
	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/common/metrics"
	"career-compass/internal/common/validation"
	"career-compass/internal/models"
	"career-compass/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-report"
)

type Handler struct {
	config     *Config
	users      *repository.UserStore
	mailer     *aws.Mailer
	texter     *aws.Texter
	validator  *validation.SchemaValidator
	errHandler *errors.ErrorHandler
	logger     logger.Logger
	now        func() time.Time
}

// NewHandler builds the worker. A nil mailer or texter disables that channel.
func NewHandler(config *Config, db *sql.DB, mailer *aws.Mailer, texter *aws.Texter, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		users:      repository.New(db).Users,
		mailer:     mailer,
		texter:     texter,
		validator:  validator,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
		now:        time.Now,
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
	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         models.NotificationDisabled,
		SentAt:         h.now().UTC().Format(time.RFC3339),
		Channels:       []models.Notification{},
	}

	contact, err := h.users.GetContact(ctx, input.UserID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("recipient not found", map[string]interface{}{"userId": input.UserID})
			return output, nil
		}
		return nil, errors.NewQueryExecutionFailedError("get user contact", err)
	}

	email, phone := contact.Email, contact.Phone
	if result := validation.ValidateStruct(contact); !result.Valid {
		h.logger.Warn("recipient contact failed validation", map[string]interface{}{
			"userId": input.UserID,
			"errors": result.String(),
		})
		if result.HasErrors("email") {
			email = ""
		}
		if result.HasErrors("phone") {
			phone = ""
		}
	}

	msg, err := render(input.Event, templateData{Name: contact.Name, ReportID: input.ReportID, TopCareer: input.TopCareer})
	if err != nil {
		return nil, errors.NewInputValidationFailedError(err.Error())
	}

	var sendErr error
	if h.config.EmailEnabled && h.mailer != nil && email != "" {
		messageID, err := h.mailer.Send(ctx, email, msg.Subject, msg.Body)
		output.Channels = append(output.Channels, h.record(input, ChannelEmail, messageID, err))
		if err != nil {
			sendErr = err
		}
	}

	// Texts go out only once a counsellor has looked at the report.
	if h.config.SMSEnabled && h.texter != nil && phone != "" && input.Event == models.EventReportReviewed {
		messageID, err := h.texter.Send(ctx, phone, msg.SMS)
		output.Channels = append(output.Channels, h.record(input, ChannelSMS, messageID, err))
		if err != nil && sendErr == nil {
			sendErr = err
		}
	}

	switch {
	case sendErr != nil:
		if h.config.FailJobOnError {
			return nil, errors.NewNotificationSendFailedError(string(input.Event), sendErr)
		}
		output.Status = models.NotificationFailed
	case len(output.Channels) > 0:
		output.Status = models.NotificationSent
	}

	h.logger.Info("report notification processed", map[string]interface{}{
		"notificationId": output.NotificationID,
		"reportId":       input.ReportID,
		"event":          string(input.Event),
		"status":         output.Status,
		"channels":       len(output.Channels),
	})
	return output, nil
}

func (h *Handler) record(input *Input, channel, messageID string, err error) models.Notification {
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ReportID:  input.ReportID,
		Event:     input.Event,
		Channel:   channel,
		Status:    models.NotificationSent,
		MessageID: messageID,
		SentAt:    h.now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		n.Status = models.NotificationFailed
		h.logger.Error("notification send failed", map[string]interface{}{
			"channel": channel,
			"userId":  input.UserID,
			"error":   err.Error(),
		})
	}
	return n
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
