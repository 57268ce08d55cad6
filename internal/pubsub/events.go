// Package pubsub fans session notifications out to in-process listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType names what changed.
type EventType string

const (
	// ModeEvent is published when the engine mode changes.
	ModeEvent EventType = "mode"
	// CmdlineEvent is published when only the command line changes.
	CmdlineEvent EventType = "cmdline"
	// ReloadEvent is published after the rc script is re-sourced.
	ReloadEvent EventType = "reload"
)

// Event wraps a payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels that close when ctx is done.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events without blocking.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
