package sched

import "time"

// Kind identifies one of the closed set of marker effects.
type Kind string

const (
	KindAppear     Kind = "appear"
	KindDisappear  Kind = "disappear"
	KindHoverEnter Kind = "hoverEnter"
	KindHoverExit  Kind = "hoverExit"
	KindClick      Kind = "click"
)

// validKind reports whether k belongs to the closed effect set.
func validKind(k Kind) bool {
	switch k {
	case KindAppear, KindDisappear, KindHoverEnter, KindHoverExit, KindClick:
		return true
	}
	return false
}

// Status is the lifecycle state of an animation request. Transitions are
// monotonic: queued -> running -> completed|cancelled, or queued -> cancelled.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// terminal reports whether s admits no further transitions.
func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// QualityLevel classifies measured frame performance into render tiers.
type QualityLevel string

const (
	QualityHigh    QualityLevel = "high"
	QualityMedium  QualityLevel = "medium"
	QualityReduced QualityLevel = "reduced"
)

// Priority bounds; out-of-range values are clamped on enqueue.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Spec describes one animation to enqueue. Zero Duration and empty Easing
// pick up the catalog defaults for the kind.
type Spec struct {
	TargetID string
	Kind     Kind
	Priority int
	Delay    time.Duration
	Duration time.Duration
	Easing   string
	// OnComplete fires exactly once when the animation completes naturally.
	// It is never invoked for cancelled animations. Panics are recovered
	// and logged; they do not disturb the scheduler.
	OnComplete func()
}

// request is the scheduler's internal unit of work.
type request struct {
	id         string
	targetID   string
	kind       Kind
	priority   int
	delay      time.Duration
	duration   time.Duration
	easing     string
	onComplete func()
	enqueuedAt time.Time
	startedAt  time.Time
	status     Status
}

// readyAt is the earliest instant the request may be promoted.
func (r *request) readyAt() time.Time { return r.enqueuedAt.Add(r.delay) }

// Effect is the descriptor handed to the renderer when a request starts.
type Effect struct {
	Kind     Kind
	Duration time.Duration
	Easing   string
	// Curve is the CSS timing function resolved from Easing; empty when the
	// catalog has no entry for the easing name.
	Curve string
	// Speed and Quality carry the standing display mode so renderers can
	// scale playback without a round trip.
	Speed   float64
	Quality string
}
