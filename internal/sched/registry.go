package sched

// activeEntry pairs a running request with its completion deadline timer.
type activeEntry struct {
	req      *request
	deadline Timer
}

// activeSet tracks in-flight animations. It is the sole input to the
// concurrency admission check. Callers hold the scheduler mutex.
type activeSet struct {
	entries map[string]*activeEntry
}

func newActiveSet() *activeSet {
	return &activeSet{entries: make(map[string]*activeEntry)}
}

func (s *activeSet) add(r *request, deadline Timer) {
	s.entries[r.id] = &activeEntry{req: r, deadline: deadline}
}

func (s *activeSet) get(id string) *request {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	return e.req
}

// remove deletes the entry and stops its deadline timer.
func (s *activeSet) remove(id string) *request {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	delete(s.entries, id)
	if e.deadline != nil {
		e.deadline.Stop()
	}
	return e.req
}

func (s *activeSet) len() int { return len(s.entries) }

func (s *activeSet) ids() []string {
	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	return out
}

// stopAll stops every deadline timer without touching request state.
func (s *activeSet) stopAll() {
	for _, e := range s.entries {
		if e.deadline != nil {
			e.deadline.Stop()
		}
	}
}
