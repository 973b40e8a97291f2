package wsbridge

import "animd/pkg/types"

// Envelope types sent to renderer clients.
const (
	TypeHello = "hello"
	TypeApply = "apply"
	TypeClear = "clear"
	TypeMode  = "mode"
	TypeEvent = "event"
)

// Envelope types received from renderer clients.
const (
	TypeTargets = "targets"
	TypeBye     = "bye"
)

// Envelope is the JSON frame exchanged with renderer clients over /ws.
// One shape serves both directions; unused fields are omitted.
type Envelope struct {
	Type string `json:"type"`
	// Target carries the marker id for apply/clear frames.
	Target string `json:"target,omitempty"`
	// Effect describes what to play on an apply frame.
	Effect *EffectPayload `json:"effect,omitempty"`
	// Mode carries the standing display mode on mode frames.
	Mode *types.DisplayMode `json:"mode,omitempty"`
	// Event and Fields relay scheduler lifecycle events for diagnostics.
	Event  string         `json:"event,omitempty"`
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
	// Targets is the full managed-marker set in a client announcement.
	Targets []string `json:"targets,omitempty"`
	// ConnID identifies the connection in the hello frame.
	ConnID string `json:"conn_id,omitempty"`
}

// EffectPayload is the renderer-facing effect descriptor on the wire.
type EffectPayload struct {
	Kind       string  `json:"kind"`
	DurationMs int64   `json:"duration_ms"`
	Easing     string  `json:"easing,omitempty"`
	Curve      string  `json:"curve,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Quality    string  `json:"quality,omitempty"`
}
