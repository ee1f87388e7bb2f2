package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorToken  ActorType = "token"
	ActorCLI    ActorType = "cli"
	ActorSystem ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionAdminRequest   Action = "admin_request"
	ActionTokenCreated   Action = "token_created"
	ActionTokenRevoked   Action = "token_revoked"
	ActionProjectsSeeded Action = "projects_seeded"
)

// Entry is a single audit trail record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorType ActorType `json:"actor_type"`
	ActorID   string    `json:"actor_id"`
	Action    Action    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Status    int       `json:"status,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
