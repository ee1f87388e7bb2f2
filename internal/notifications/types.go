package notifications

import "time"

// NotificationType categorises the event that triggered the notification.
type NotificationType string

const (
	TypeContactReceived NotificationType = "contact_received"
	TypeTest            NotificationType = "test"
)

// Notification is a single owner-facing notification record. Source holds
// the id of the record that caused it, e.g. a contact message.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Source    string           `json:"source,omitempty"`
	Delivered bool             `json:"delivered"`
	Attempts  int              `json:"attempts"`
	LastError string           `json:"last_error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
