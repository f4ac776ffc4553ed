package telegram

import "time"

// NotificationType distinguishes P2H alerts from document expiry alerts.
type NotificationType string

const (
	TypeP2HAbnormal NotificationType = "p2h_abnormal"
	TypeP2HWarning  NotificationType = "p2h_warning"
	TypeSTNKExpiry  NotificationType = "stnk_expiry"
	TypeKIRExpiry   NotificationType = "kir_expiry"
)

// Notification is one message sent (or attempted) to Telegram. Acts as the
// audit log proving alerts reached stakeholders, and as the retry queue for
// ones that did not.
type Notification struct {
	NotificationID uint64
	Type           NotificationType
	VehicleID      *uint64
	ReportID       *uint64 // nil for expiry alerts
	Message        string
	IsSent         bool
	SentAt         *time.Time
	ErrorMessage   *string
	RetryCount     int
	CreatedAt      time.Time
}
