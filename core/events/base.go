package events

import "time"

// Kind identifies an event type within its namespace, e.g. "capture.started".
type Kind string

// Event is the contract every game event satisfies.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and creation time shared by all events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase creates a Base stamped with the current time.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
