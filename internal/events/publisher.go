// Package events carries entity lifecycle notifications to interested
// consumers. The publisher is an explicit capability handed to each entity
// service; deployments without a broker inject Noop.
package events

import (
	"context"
	"time"
)

// Event describes one entity mutation.
type Event struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityId"`
	SchoolID   string    `json:"schoolId,omitempty"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Actions emitted by the entity services.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionTransferred = "transferred"
)

// Publisher delivers events best effort. Publish failures must not fail the
// originating operation.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Noop satisfies Publisher without a broker.
type Noop struct{}

// Publish discards the event.
func (Noop) Publish(context.Context, Event) error { return nil }
