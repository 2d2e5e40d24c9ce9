// internal/workers/communication/notify-report/models.go
package notifyreport

import "career-compass/internal/models"

type Input struct {
	UserID    int64              `json:"userId"`
	ReportID  int64              `json:"reportId"`
	Event     models.ReportEvent `json:"event"`
	TopCareer string             `json:"topCareer,omitempty"`
}

type Output struct {
	NotificationID string                `json:"notificationId"`
	Status         string                `json:"status"`
	SentAt         string                `json:"sentAt"`
	Channels       []models.Notification `json:"channels"`
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
