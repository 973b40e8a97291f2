package types

// EnqueueRequest is the payload for POST /animations.
type EnqueueRequest struct {
	// Identifier of the marker/element the effect applies to.
	// example: marker-42
	TargetID string `json:"target_id" example:"marker-42"`
	// Effect kind: appear, disappear, hoverEnter, hoverExit or click.
	// example: appear
	Kind string `json:"kind" example:"appear"`
	// Urgency 1-5, 5 highest. Out-of-range values are clamped.
	// example: 3
	Priority int `json:"priority,omitempty" example:"3"`
	// Minimum wait before the animation may start, measured from enqueue.
	// example: 120
	DelayMs int64 `json:"delay_ms,omitempty" example:"120"`
	// Visual duration. Zero uses the catalog default for the kind.
	// example: 400
	DurationMs int64 `json:"duration_ms,omitempty" example:"400"`
	// Named easing curve passed through to the renderer.
	// example: backOut
	Easing string `json:"easing,omitempty" example:"backOut"`
}

// EnqueueResponse carries the id assigned to an accepted animation.
type EnqueueResponse struct {
	// Unique animation id, usable with DELETE /animations/{id}.
	// example: 7d65c953-2f3e-44f6-9f1e-0a9f8e6b4c21
	ID string `json:"id" example:"7d65c953-2f3e-44f6-9f1e-0a9f8e6b4c21"`
}

// PlanAppearRequest is the payload for POST /plan/appear.
type PlanAppearRequest struct {
	// Targets to animate in, in display order.
	Targets []string `json:"targets"`
	// Base stagger between consecutive targets. Zero uses the quality default.
	// example: 100
	StaggerMs int64 `json:"stagger_ms,omitempty" example:"100"`
	// Upper bound on the accumulated stagger offset.
	// example: 1000
	MaxStaggerMs int64 `json:"max_stagger_ms,omitempty" example:"1000"`
	// When true, earlier targets get higher priority (5 down to 1).
	// example: true
	QualityOrdered bool `json:"quality_ordered,omitempty" example:"true"`
	// Visual duration per item. Zero uses the catalog default.
	// example: 400
	DurationMs int64 `json:"duration_ms,omitempty" example:"400"`
	// Named easing curve for every item.
	// example: backOut
	Easing string `json:"easing,omitempty" example:"backOut"`
}

// PlanDisappearRequest is the payload for POST /plan/disappear.
type PlanDisappearRequest struct {
	// Targets to animate out.
	Targets []string `json:"targets"`
	// Stagger between consecutive removals.
	// example: 60
	StaggerMs int64 `json:"stagger_ms,omitempty" example:"60"`
	// Removal order: forward (default) or random.
	// example: random
	Order string `json:"order,omitempty" example:"random"`
	// Visual duration per item. Zero uses the catalog default.
	// example: 300
	DurationMs int64 `json:"duration_ms,omitempty" example:"300"`
}

// ZoomTransitionRequest is the payload for POST /plan/zoom.
type ZoomTransitionRequest struct {
	// Targets that become visible at the new zoom level.
	Visible []string `json:"visible"`
	// Targets that must fade out before the new ones come in.
	Hidden []string `json:"hidden"`
	// New map zoom level; >= 16 selects the bounce entrance.
	// example: 15
	ZoomLevel int `json:"zoom_level" example:"15"`
}

// PlanResponse reports the animations created by a plan endpoint.
type PlanResponse struct {
	// Ids of the enqueued animations, in planning order.
	IDs []string `json:"ids"`
	// Convenience count of enqueued animations.
	// example: 8
	Count int `json:"count" example:"8"`
}

// HoverRequest is the payload for POST /hover.
type HoverRequest struct {
	// Target the pointer entered or left.
	// example: marker-42
	TargetID string `json:"target_id" example:"marker-42"`
	// True on pointer enter, false on pointer leave.
	// example: true
	Entering bool `json:"entering" example:"true"`
}

// ClickRequest is the payload for POST /click.
type ClickRequest struct {
	// Target that was clicked.
	// example: marker-42
	TargetID string `json:"target_id" example:"marker-42"`
}

// ModeRequest toggles cinematic display mode via POST /mode/cinematic.
type ModeRequest struct {
	// True enables cinematic mode (slower, high-fidelity effects).
	// example: true
	Enabled bool `json:"enabled" example:"true"`
}

// QueuedAnimation previews one pending entry in GET /status.
type QueuedAnimation struct {
	// Animation id.
	// example: 7d65c953-2f3e-44f6-9f1e-0a9f8e6b4c21
	ID string `json:"id" example:"7d65c953-2f3e-44f6-9f1e-0a9f8e6b4c21"`
	// Target the effect will play on.
	// example: marker-42
	TargetID string `json:"target_id" example:"marker-42"`
	// Effect kind.
	// example: appear
	Kind string `json:"kind" example:"appear"`
	// Urgency 1-5.
	// example: 4
	Priority int `json:"priority" example:"4"`
	// Remaining configured delay from its enqueue baseline.
	// example: 140
	DelayMs int64 `json:"delay_ms" example:"140"`
}

// PerfSample is the most recent frame-rate measurement.
type PerfSample struct {
	// Estimated frame rate derived from tick spacing, capped at 60.
	// example: 58.2
	FrameEstimateHz float64 `json:"frame_estimate_hz" example:"58.2"`
	// Animations running when the sample was taken.
	// example: 3
	ActiveCount int `json:"active_count" example:"3"`
	// Sample time in unix milliseconds.
	// example: 1700000000000
	SampledAtUnixMs int64 `json:"sampled_at_unix_ms" example:"1700000000000"`
}

// DisplayMode is the standing display preference consumed by renderers.
type DisplayMode struct {
	// True while cinematic mode is enabled.
	// example: false
	Cinematic bool `json:"cinematic" example:"false"`
	// Duration multiplier renderers apply to effects.
	// example: 1.0
	SpeedMultiplier float64 `json:"speed_multiplier" example:"1.0"`
	// Default render fidelity: auto, high, medium or reduced.
	// example: auto
	DefaultQuality string `json:"default_quality" example:"auto"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Number of animations waiting in the queue.
	// example: 12
	QueueLength int `json:"queue_length" example:"12"`
	// Number of animations currently running.
	// example: 3
	ActiveAnimations int `json:"active_animations" example:"3"`
	// Quality tier derived from the last perf sample.
	// example: high
	Quality string `json:"quality" example:"high"`
	// Concurrency cap implied by the quality tier.
	// example: 8
	ConcurrencyCap int `json:"concurrency_cap" example:"8"`
	// Most recent performance sample.
	Performance PerfSample `json:"performance"`
	// Preview of the first queued animations (at most 5).
	Queued []QueuedAnimation `json:"queued"`
	// Current display mode.
	Mode DisplayMode `json:"mode"`
	// Renderer targets currently known to the bridge.
	// example: 57
	KnownTargets int `json:"known_targets" example:"57"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unknown kind: wobble
	Error string `json:"error" example:"unknown kind: wobble"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
