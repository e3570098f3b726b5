package domain

import "time"

// DirectoryAction identifies the kind of mutation recorded in the audit trail.
type DirectoryAction string

const (
	ActionCreated DirectoryAction = "created"
	ActionUpdated DirectoryAction = "updated"
	ActionDeleted DirectoryAction = "deleted"
)

// DirectoryEvent records a single mutation of a user record.
type DirectoryEvent struct {
	UserID    string          `json:"user_id" bson:"user_id"`
	Action    DirectoryAction `json:"action" bson:"action"`
	Actor     string          `json:"actor,omitempty" bson:"actor,omitempty"` // empty for anonymous self-registration
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
}
