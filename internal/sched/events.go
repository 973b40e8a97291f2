package sched

// Event represents a scheduler lifecycle event.
// Minimal and stable: name + animation/target IDs and optional fields via key/values.
type Event struct {
	Name     string
	ID       string
	TargetID string
	Fields   map[string]any
}

// Event names published by the scheduler.
const (
	EventEnqueued  = "enqueued"
	EventStarted   = "started"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
	EventCleared   = "cleared"
	EventMode      = "mode"
)

// EventPublisher receives events from the scheduler. Implementations should be
// lightweight and non-blocking; Publish must not panic and must not call back
// into the Scheduler.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
