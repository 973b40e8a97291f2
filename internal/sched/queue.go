package sched

import "time"

// animQueue holds pending requests ordered by descending priority, FIFO
// within a priority tier. Callers hold the scheduler mutex.
type animQueue struct {
	items []*request
}

// insert places r after every queued entry of equal or higher priority.
func (q *animQueue) insert(r *request) {
	at := len(q.items)
	for i, it := range q.items {
		if it.priority < r.priority {
			at = i
			break
		}
	}
	q.items = append(q.items, nil)
	copy(q.items[at+1:], q.items[at:])
	q.items[at] = r
}

// firstReady returns the highest-priority entry whose delay has elapsed,
// without removing it.
func (q *animQueue) firstReady(now time.Time) *request {
	for _, it := range q.items {
		if !it.readyAt().After(now) {
			return it
		}
	}
	return nil
}

// find returns the entry with the given id, or nil.
func (q *animQueue) find(id string) *request {
	for _, it := range q.items {
		if it.id == id {
			return it
		}
	}
	return nil
}

// remove deletes and returns the entry with the given id, or nil.
func (q *animQueue) remove(id string) *request {
	for i, it := range q.items {
		if it.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return it
		}
	}
	return nil
}

func (q *animQueue) len() int { return len(q.items) }

// head returns up to n entries from the front in queue order.
func (q *animQueue) head(n int) []*request {
	if n > len(q.items) {
		n = len(q.items)
	}
	out := make([]*request, n)
	copy(out, q.items[:n])
	return out
}

// ids lists every queued id in queue order.
func (q *animQueue) ids() []string {
	out := make([]string, len(q.items))
	for i, it := range q.items {
		out[i] = it.id
	}
	return out
}
