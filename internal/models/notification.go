// internal/models/notification.go
package models

// ReportEvent is what happened to a report that the student should hear about.
type ReportEvent string

const (
	EventReportGenerated ReportEvent = "generated"
	EventReportReviewed  ReportEvent = "reviewed"
)

const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

type Notification struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"userId"`
	ReportID  int64       `json:"reportId"`
	Event     ReportEvent `json:"event"`
	Channel   string      `json:"channel"` // "email" or "sms"
	Status    string      `json:"status"`
	MessageID string      `json:"messageId,omitempty"`
	SentAt    string      `json:"sentAt"`
}

// NotificationTemplate is the rendered subject and body for one event.
type NotificationTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SMS     string `json:"sms,omitempty"`
}
