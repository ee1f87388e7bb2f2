package contact

import "time"

// Message is a stored contact form submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"message"`
	Newsletter bool      `json:"newsletter"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListFilter controls which messages to return.
type ListFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
