package model

import "time"

// NotificationType classifies an advisory message.
type NotificationType string

const (
	NotificationReminder   NotificationType = "reminder"
	NotificationOverdue    NotificationType = "overdue"
	NotificationAssignment NotificationType = "assignment"
	NotificationCompletion NotificationType = "completion"
	NotificationEscalation NotificationType = "escalation"
)

// Notification is an ephemeral advisory message produced by the notification
// service. Notifications are never deleted; IsRead flips one way only.
type Notification struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	TaskID         string           `json:"task_id,omitempty"`
	UserID         string           `json:"user_id,omitempty"`
	Priority       Priority         `json:"priority"`
	CreatedAt      time.Time        `json:"created_at"`
	IsRead         bool             `json:"is_read"`
	ActionRequired bool             `json:"action_required,omitempty"`
}
