package sched

// complete finalizes a running animation. Fired by its deadline timer, and
// once more per id at most: duplicate completions are absorbed.
func (s *Scheduler) complete(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	cb := s.completeLocked(id, reasonNatural)
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// completeLocked transitions id to completed and returns the isolated
// OnComplete callback, or nil. Terminal requests are left untouched.
func (s *Scheduler) completeLocked(id, reason string) func() {
	r := s.lookupLocked(id)
	if r == nil || r.status.terminal() {
		return nil
	}
	s.active.remove(id)
	s.queue.remove(id)
	r.status = StatusCompleted
	if r.kind == KindHoverExit {
		// Settle the resting state once the exit effect has played out.
		s.renderer.Clear(r.targetID)
	}
	s.dropHoverLocked(r)
	completedTotal.WithLabelValues(reason).Inc()
	s.syncGaugesLocked()
	s.log.Debug().Str("id", id).Str("target", r.targetID).Msg("animation completed")
	s.events.Publish(Event{Name: EventCompleted, ID: id, TargetID: r.targetID,
		Fields: map[string]any{"reason": reason}})
	// The freed slot may unblock the queue.
	s.armTickLocked(0)
	return s.callbackFor(r)
}

// cancelLocked transitions id to cancelled. Running animations get their
// target cleared; OnComplete never fires. Reports whether state changed.
func (s *Scheduler) cancelLocked(id string) bool {
	r := s.lookupLocked(id)
	if r == nil || r.status.terminal() {
		return false
	}
	wasRunning := r.status == StatusRunning
	s.active.remove(id)
	s.queue.remove(id)
	r.status = StatusCancelled
	r.onComplete = nil
	s.dropHoverLocked(r)
	if wasRunning {
		s.renderer.Clear(r.targetID)
	}
	cancelledTotal.Inc()
	s.syncGaugesLocked()
	s.log.Debug().
		Str("id", id).
		Str("target", r.targetID).
		Bool("was_running", wasRunning).
		Msg("animation cancelled")
	s.events.Publish(Event{Name: EventCancelled, ID: id, TargetID: r.targetID,
		Fields: map[string]any{"was_running": wasRunning}})
	return true
}

// finishSkippedLocked completes r on the spot when promotion cannot hand it
// to the renderer. The request never occupies a concurrency slot.
func (s *Scheduler) finishSkippedLocked(r *request, reason string) func() {
	r.status = StatusCompleted
	s.dropHoverLocked(r)
	completedTotal.WithLabelValues(reason).Inc()
	s.syncGaugesLocked()
	s.events.Publish(Event{Name: EventCompleted, ID: r.id, TargetID: r.targetID,
		Fields: map[string]any{"reason": reason}})
	return s.callbackFor(r)
}

// dropHoverLocked clears the hover bookkeeping entry if it points at r.
func (s *Scheduler) dropHoverLocked(r *request) {
	if cur, ok := s.hover[r.targetID]; ok && cur == r.id {
		delete(s.hover, r.targetID)
	}
}

// callbackFor detaches r's OnComplete and wraps it so a panicking callback
// cannot take down the scheduler. The wrapper runs outside the mutex.
func (s *Scheduler) callbackFor(r *request) func() {
	cb := r.onComplete
	if cb == nil {
		return nil
	}
	r.onComplete = nil
	id := r.id
	return func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().
					Str("id", id).
					Interface("panic", rec).
					Msg("completion callback panicked")
			}
		}()
		cb()
	}
}
