package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCheckStart EventType = "check_start"
	EventCheckEnd   EventType = "check_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CheckEvent describes one check of one input against one machine.
type CheckEvent struct {
	EventBase
	Machine string `json:"machine"`
	Kind    string `json:"kind"`
	Input   string `json:"input"`

	// Outcome is nil on EventCheckStart.
	Outcome *Outcome `json:"outcome,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks may run concurrently when checks do.
type LifecycleHooks struct {
	OnCheckStart func(context.Context, *CheckEvent)
	OnCheckEnd   func(context.Context, *CheckEvent)
}
