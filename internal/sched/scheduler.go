package sched

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"animd/internal/catalog"
	"animd/pkg/types"
)

// Scheduler owns the pending queue, the in-flight registry, and the polling
// loop that moves work between them. A single mutex serializes all state.
// Renderer calls happen under it (see Renderer); completion callbacks run
// outside it and may safely re-enter the public API.
type Scheduler struct {
	mu sync.Mutex

	renderer Renderer
	catalog  *catalog.Catalog
	clock    Clock
	log      zerolog.Logger
	events   EventPublisher

	frameInterval    time.Duration
	backoff          time.Duration
	completionBuffer time.Duration
	queuePreview     int

	queue  *animQueue
	active *activeSet
	// hover maps a target to its latest hover animation so a new pointer
	// transition can preempt the old one.
	hover map[string]string
	perf  monitor
	mode  types.DisplayMode

	tickTimer Timer
	tickAt    time.Time
	closed    bool
}

// Enqueue admits one animation request and wakes the polling loop.
// It returns the assigned id.
func (s *Scheduler) Enqueue(spec Spec) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.enqueueLocked(spec)
	if err != nil {
		return "", err
	}
	s.armTickLocked(0)
	return id, nil
}

// enqueueLocked validates spec, fills catalog defaults, and inserts the
// request into the pending queue.
func (s *Scheduler) enqueueLocked(spec Spec) (string, error) {
	if s.closed {
		return "", closedError{}
	}
	if spec.TargetID == "" {
		return "", emptyTargetError{}
	}
	if !validKind(spec.Kind) {
		return "", ErrUnknownKind(string(spec.Kind))
	}
	def, _ := s.catalog.Lookup(string(spec.Kind))
	r := &request{
		id:         uuid.NewString(),
		targetID:   spec.TargetID,
		kind:       spec.Kind,
		priority:   normalizePriority(spec.Priority),
		delay:      spec.Delay,
		duration:   spec.Duration,
		easing:     spec.Easing,
		onComplete: spec.OnComplete,
		enqueuedAt: s.clock.Now(),
		status:     StatusQueued,
	}
	if r.delay < 0 {
		r.delay = 0
	}
	if r.duration <= 0 {
		r.duration = def.Duration
	}
	if r.easing == "" {
		r.easing = def.Easing
	}
	s.queue.insert(r)
	enqueuedTotal.WithLabelValues(string(r.kind)).Inc()
	s.syncGaugesLocked()
	s.log.Debug().
		Str("id", r.id).
		Str("target", r.targetID).
		Str("kind", string(r.kind)).
		Int("priority", r.priority).
		Dur("delay", r.delay).
		Msg("animation enqueued")
	s.events.Publish(Event{Name: EventEnqueued, ID: r.id, TargetID: r.targetID,
		Fields: map[string]any{"kind": string(r.kind), "priority": r.priority}})
	return r.id, nil
}

// normalizePriority applies the default tier for unset values and clamps
// everything else into range.
func normalizePriority(p int) int {
	if p == 0 {
		return batchPriority
	}
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Cancel stops the animation with the given id, whether queued or running.
// Unknown and already-finished ids are no-ops.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	s.cancelLocked(id)
	s.mu.Unlock()
}

// ClearAll cancels every queued and running animation, resets every target
// the renderer can locate, and stops the polling loop until the next enqueue.
func (s *Scheduler) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	n := 0
	for _, id := range s.active.ids() {
		if s.cancelLocked(id) {
			n++
		}
	}
	for _, id := range s.queue.ids() {
		if s.cancelLocked(id) {
			n++
		}
	}
	for _, target := range s.renderer.LocateAll() {
		s.renderer.Clear(target)
	}
	s.hover = make(map[string]string)
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
	s.perf.reset()
	s.syncGaugesLocked()
	s.log.Info().Int("cancelled", n).Msg("cleared all animations")
	s.events.Publish(Event{Name: EventCleared, Fields: map[string]any{"cancelled": n}})
}

// Status reports queue depth, in-flight count, the current quality tier and
// cap, the latest performance sample, and a bounded preview of the queue head.
func (s *Scheduler) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.perf.quality()
	resp := types.StatusResponse{
		QueueLength:      s.queue.len(),
		ActiveAnimations: s.active.len(),
		Quality:          string(q),
		ConcurrencyCap:   capFor(q),
		Mode:             s.mode,
	}
	if sample, ok := s.perf.last(); ok {
		resp.Performance = types.PerfSample{
			FrameEstimateHz: sample.estimate,
			ActiveCount:     sample.active,
			SampledAtUnixMs: sample.at.UnixMilli(),
		}
	}
	for _, r := range s.queue.head(s.queuePreview) {
		resp.Queued = append(resp.Queued, types.QueuedAnimation{
			ID:       r.id,
			TargetID: r.targetID,
			Kind:     string(r.kind),
			Priority: r.priority,
			DelayMs:  r.delay.Milliseconds(),
		})
	}
	return resp
}

// SetCinematicMode switches between standard and cinematic display modes and
// returns the mode now in force. The knobs ride along on every subsequent
// effect descriptor; in-flight animations are not retouched.
func (s *Scheduler) SetCinematicMode(enabled bool) types.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		s.mode = cinematicMode()
	} else {
		s.mode = standardMode()
	}
	mode := s.mode
	s.log.Info().Bool("cinematic", enabled).Msg("display mode changed")
	s.events.Publish(Event{Name: EventMode, Fields: map[string]any{
		"cinematic": mode.Cinematic,
		"speed":     mode.SpeedMultiplier,
		"quality":   mode.DefaultQuality,
	}})
	return mode
}

// Mode returns the standing display mode.
func (s *Scheduler) Mode() types.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Ready reports whether the scheduler still accepts work.
func (s *Scheduler) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Close stops the polling loop and every pending deadline timer. Queued and
// running animations are dropped without callbacks; later calls fail with a
// closed error.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.tickTimer != nil {
		s.tickTimer.Stop()
		s.tickTimer = nil
	}
	s.active.stopAll()
	s.log.Debug().Msg("scheduler closed")
}

// lookupLocked finds a request by id in the registry or the queue.
func (s *Scheduler) lookupLocked(id string) *request {
	if r := s.active.get(id); r != nil {
		return r
	}
	return s.queue.find(id)
}

// effectLocked resolves the renderer-facing descriptor for r under the
// standing display mode.
func (s *Scheduler) effectLocked(r *request) Effect {
	return Effect{
		Kind:     r.kind,
		Duration: r.duration,
		Easing:   r.easing,
		Curve:    s.catalog.Curve(r.easing),
		Speed:    s.mode.SpeedMultiplier,
		Quality:  s.mode.DefaultQuality,
	}
}
