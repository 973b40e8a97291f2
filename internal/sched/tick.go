package sched

import "time"

// armTickLocked schedules the next tick after d, keeping whichever of the
// already-armed and requested deadlines is sooner.
func (s *Scheduler) armTickLocked(d time.Duration) {
	if s.closed {
		return
	}
	at := s.clock.Now().Add(d)
	if s.tickTimer != nil {
		if !s.tickAt.After(at) {
			return
		}
		s.tickTimer.Stop()
	}
	s.tickAt = at
	s.tickTimer = s.clock.AfterFunc(d, s.tick)
}

// tick is the single entry point of the polling loop.
func (s *Scheduler) tick() {
	s.mu.Lock()
	s.tickTimer = nil
	if s.closed {
		s.mu.Unlock()
		return
	}
	cb := s.tickLocked()
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// tickLocked runs one scheduling pass: sample performance, enforce the cap,
// promote at most one ready request, and rearm. It returns a completion
// callback to run outside the lock when the promotion collapsed into an
// immediate completion.
func (s *Scheduler) tickLocked() func() {
	now := s.clock.Now()
	level := s.perf.observe(now, s.active.len())
	sample, _ := s.perf.last()
	frameEstimate.Set(sample.estimate)

	if s.active.len() >= capFor(level) {
		s.armTickLocked(s.backoff)
		return nil
	}
	r := s.queue.firstReady(now)
	if r == nil {
		if s.queue.len() > 0 {
			s.armTickLocked(s.backoff)
		} else {
			// Idle: the loop stops until the next enqueue kicks it.
			s.perf.reset()
		}
		return nil
	}
	cb := s.promoteLocked(r, now)
	s.armTickLocked(s.frameInterval)
	return cb
}

// promoteLocked moves r from the queue into the running registry and hands
// the effect to the renderer. It returns a callback only when the promotion
// skipped (missing target or unsupported kind) and the request carries an
// OnComplete.
func (s *Scheduler) promoteLocked(r *request, now time.Time) func() {
	s.queue.remove(r.id)
	// Kinds are validated at enqueue; this guards requests that bypassed it.
	if !validKind(r.kind) {
		s.log.Error().
			Str("id", r.id).
			Str("kind", string(r.kind)).
			Msg("unsupported kind reached promotion, skipping")
		return s.finishSkippedLocked(r, reasonUnknownKind)
	}
	r.status = StatusRunning
	r.startedAt = now
	if !s.renderer.Apply(r.targetID, s.effectLocked(r)) {
		s.log.Warn().
			Str("id", r.id).
			Str("target", r.targetID).
			Msg("target not found, skipping animation")
		return s.finishSkippedLocked(r, reasonTargetMissing)
	}
	deadline := r.duration + s.completionBuffer
	id := r.id
	s.active.add(r, s.clock.AfterFunc(deadline, func() { s.complete(id) }))
	promotionsTotal.Inc()
	s.syncGaugesLocked()
	s.log.Debug().
		Str("id", r.id).
		Str("target", r.targetID).
		Str("kind", string(r.kind)).
		Dur("deadline", deadline).
		Msg("animation started")
	s.events.Publish(Event{Name: EventStarted, ID: r.id, TargetID: r.targetID,
		Fields: map[string]any{"kind": string(r.kind)}})
	return nil
}
