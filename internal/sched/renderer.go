package sched

// Renderer is the collaborator that paints effects onto targets. Apply and
// Clear run inside scheduler ticks, so implementations must return quickly
// and must not call back into the Scheduler from these methods.
type Renderer interface {
	// Apply starts the effect on the target and reports whether the target
	// is currently known to the renderer. A false return makes the scheduler
	// skip the animation as an immediate completion.
	Apply(targetID string, effect Effect) bool
	// Clear resets a target to its resting visual state.
	Clear(targetID string)
	// LocateAll lists every target the renderer currently manages.
	LocateAll() []string
}

// NopRenderer accepts every effect and manages no targets. Useful as a
// placeholder while no real renderer is connected.
type NopRenderer struct{}

func (NopRenderer) Apply(string, Effect) bool { return true }
func (NopRenderer) Clear(string)              {}
func (NopRenderer) LocateAll() []string       { return nil }
