// Package events publishes committed workflow transitions to downstream consumers.
package events

import (
	"context"
	"time"
)

// TransitionEvent describes one committed task record transition.
type TransitionEvent struct {
	TaskID     string    `json:"task_id"`
	AssetID    string    `json:"asset_id"`
	Action     string    `json:"action"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ActorID    string    `json:"actor_id"`
	AssignedTo *string   `json:"assigned_to,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers transition events.
type Publisher interface {
	Publish(ctx context.Context, event TransitionEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TransitionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
