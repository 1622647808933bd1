package auditlog

import "time"

// Action names what an admin did to an entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event represents one admin mutation, published to the audit queue for
// downstream consumers.
type Event struct {
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	Action     Action    `json:"action"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`

	// Payload is the entity after the mutation, or its last known state
	// for deletes.
	Payload any `json:"payload,omitempty"`
}
