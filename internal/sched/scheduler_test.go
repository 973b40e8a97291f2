package sched

import (
	"sync"
	"testing"
	"time"
)

// recordRenderer captures renderer calls and lets tests script missing targets.
type recordRenderer struct {
	mu      sync.Mutex
	clk     *ManualClock
	applied []appliedEffect
	cleared []string
	missing map[string]bool
	known   []string
}

type appliedEffect struct {
	target string
	effect Effect
	at     time.Time
}

func (r *recordRenderer) Apply(target string, e Effect) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missing[target] {
		return false
	}
	var at time.Time
	if r.clk != nil {
		at = r.clk.Now()
	}
	r.applied = append(r.applied, appliedEffect{target: target, effect: e, at: at})
	return true
}

func (r *recordRenderer) Clear(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, target)
}

func (r *recordRenderer) LocateAll() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.known...)
}

func (r *recordRenderer) applies() []appliedEffect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]appliedEffect(nil), r.applied...)
}

func (r *recordRenderer) applyOrder() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.applied))
	for i, a := range r.applied {
		out[i] = a.target
	}
	return out
}

func (r *recordRenderer) appliesFor(target string) []appliedEffect {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []appliedEffect
	for _, a := range r.applied {
		if a.target == target {
			out = append(out, a)
		}
	}
	return out
}

func (r *recordRenderer) clearCount(target string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cleared {
		if c == target {
			n++
		}
	}
	return n
}

func newTestScheduler(t *testing.T, rr *recordRenderer) (*Scheduler, *ManualClock) {
	t.Helper()
	clk := NewManualClock(time.Unix(1700000000, 0))
	rr.clk = clk
	s := NewWithConfig(Config{Renderer: rr, Clock: clk})
	t.Cleanup(s.Close)
	return s, clk
}

func TestPromotionFollowsPriorityOrder(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	for _, c := range []struct {
		target   string
		priority int
	}{
		{"m-low", 1},
		{"m-high", 5},
		{"m-mid", 3},
	} {
		if _, err := s.Enqueue(Spec{TargetID: c.target, Kind: KindAppear, Priority: c.priority}); err != nil {
			t.Fatalf("enqueue %s: %v", c.target, err)
		}
	}
	clk.Advance(0)
	clk.Advance(16 * time.Millisecond)
	clk.Advance(16 * time.Millisecond)

	got := rr.applyOrder()
	want := []string{"m-high", "m-mid", "m-low"}
	if len(got) != len(want) {
		t.Fatalf("applied %d effects, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("apply order = %v, want %v", got, want)
		}
	}
}

func TestEqualPriorityIsFIFO(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	for _, target := range []string{"m-a", "m-b", "m-c"} {
		if _, err := s.Enqueue(Spec{TargetID: target, Kind: KindAppear, Priority: 3}); err != nil {
			t.Fatal(err)
		}
	}
	clk.Advance(0)
	clk.Advance(16 * time.Millisecond)
	clk.Advance(16 * time.Millisecond)

	got := rr.applyOrder()
	want := []string{"m-a", "m-b", "m-c"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("apply order = %v, want %v", got, want)
		}
	}
}

func TestEnqueueRejectsUnknownKind(t *testing.T) {
	s, _ := newTestScheduler(t, &recordRenderer{})
	_, err := s.Enqueue(Spec{TargetID: "m-1", Kind: Kind("wobble")})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !IsUnknownKind(err) {
		t.Fatalf("IsUnknownKind(%v) = false", err)
	}
	st := s.Status()
	if st.QueueLength != 0 {
		t.Fatalf("queue length = %d after rejected enqueue", st.QueueLength)
	}
}

func TestEnqueueRejectsEmptyTarget(t *testing.T) {
	s, _ := newTestScheduler(t, &recordRenderer{})
	_, err := s.Enqueue(Spec{Kind: KindAppear})
	if err == nil || !IsEmptyTarget(err) {
		t.Fatalf("expected empty target error, got %v", err)
	}
}

func TestEnqueueAfterCloseFails(t *testing.T) {
	s, _ := newTestScheduler(t, &recordRenderer{})
	s.Close()
	_, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear})
	if err == nil || !IsClosed(err) {
		t.Fatalf("expected closed error, got %v", err)
	}
}

func TestPriorityNormalization(t *testing.T) {
	s, _ := newTestScheduler(t, &recordRenderer{})
	cases := []struct {
		in, want int
	}{
		{9, 5},
		{-2, 1},
		{0, 3},
		{4, 4},
	}
	for _, c := range cases {
		if got := normalizePriority(c.in); got != c.want {
			t.Errorf("normalizePriority(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	if _, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear, Priority: 9, Delay: time.Hour}); err != nil {
		t.Fatal(err)
	}
	st := s.Status()
	if len(st.Queued) != 1 || st.Queued[0].Priority != 5 {
		t.Fatalf("queued preview = %+v, want priority 5", st.Queued)
	}
}

func TestDelayDefersPromotion(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	if _, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear, Delay: 300 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(299 * time.Millisecond)
	if n := len(rr.applies()); n != 0 {
		t.Fatalf("applied %d effects before delay elapsed", n)
	}
	clk.Advance(100 * time.Millisecond)
	if n := len(rr.applies()); n != 1 {
		t.Fatalf("applied %d effects after delay elapsed, want 1", n)
	}
}

func TestCatalogDefaultsFillDurationAndEasing(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	if _, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	applies := rr.applies()
	if len(applies) != 1 {
		t.Fatalf("applied %d effects, want 1", len(applies))
	}
	eff := applies[0].effect
	if eff.Duration != 400*time.Millisecond {
		t.Errorf("duration = %v, want catalog default 400ms", eff.Duration)
	}
	if eff.Easing != "backOut" {
		t.Errorf("easing = %q, want catalog default backOut", eff.Easing)
	}
	if eff.Curve == "" {
		t.Error("curve not resolved for default easing")
	}
}

func TestCancelQueuedNeverTouchesRenderer(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	fired := false
	id, err := s.Enqueue(Spec{
		TargetID:   "m-1",
		Kind:       KindAppear,
		Delay:      500 * time.Millisecond,
		OnComplete: func() { fired = true },
	})
	if err != nil {
		t.Fatal(err)
	}
	clk.Advance(100 * time.Millisecond)
	s.Cancel(id)
	clk.Advance(2 * time.Second)

	if fired {
		t.Error("OnComplete fired for a cancelled queued animation")
	}
	if n := len(rr.applies()); n != 0 {
		t.Errorf("renderer applied %d effects, want 0", n)
	}
	if n := rr.clearCount("m-1"); n != 0 {
		t.Errorf("renderer cleared a never-started target %d times", n)
	}
	st := s.Status()
	if st.QueueLength != 0 || st.ActiveAnimations != 0 {
		t.Errorf("state not drained: %+v", st)
	}
}

func TestCancelRunningClearsTarget(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	fired := false
	id, err := s.Enqueue(Spec{
		TargetID:   "m-1",
		Kind:       KindAppear,
		Duration:   time.Second,
		OnComplete: func() { fired = true },
	})
	if err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	if st := s.Status(); st.ActiveAnimations != 1 {
		t.Fatalf("active = %d, want 1", st.ActiveAnimations)
	}
	s.Cancel(id)
	if n := rr.clearCount("m-1"); n != 1 {
		t.Errorf("cancel cleared target %d times, want 1", n)
	}
	clk.Advance(3 * time.Second)
	if fired {
		t.Error("OnComplete fired for a cancelled running animation")
	}
	if st := s.Status(); st.ActiveAnimations != 0 {
		t.Errorf("active = %d after cancel", st.ActiveAnimations)
	}
}

func TestCompletionFiresCallbackExactlyOnce(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	count := 0
	id, err := s.Enqueue(Spec{
		TargetID:   "m-1",
		Kind:       KindAppear,
		Duration:   100 * time.Millisecond,
		OnComplete: func() { count++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	clk.Advance(200 * time.Millisecond)
	if count != 1 {
		t.Fatalf("OnComplete ran %d times, want 1", count)
	}
	// Late cancels of a completed animation are absorbed.
	s.Cancel(id)
	s.Cancel(id)
	clk.Advance(time.Second)
	if count != 1 {
		t.Fatalf("OnComplete ran %d times after duplicate cancel, want 1", count)
	}
	if n := rr.clearCount("m-1"); n != 0 {
		t.Errorf("completed target cleared %d times by late cancel", n)
	}
}

func TestCompletionDeadlineIncludesBuffer(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	done := false
	if _, err := s.Enqueue(Spec{
		TargetID:   "m-1",
		Kind:       KindAppear,
		Duration:   100 * time.Millisecond,
		OnComplete: func() { done = true },
	}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	clk.Advance(149 * time.Millisecond)
	if done {
		t.Fatal("completed before duration plus buffer elapsed")
	}
	clk.Advance(time.Millisecond)
	if !done {
		t.Fatal("not completed at duration plus buffer")
	}
}

func TestMissingTargetSkipsAsImmediateCompletion(t *testing.T) {
	rr := &recordRenderer{missing: map[string]bool{"ghost": true}}
	s, clk := newTestScheduler(t, rr)
	fired := false
	if _, err := s.Enqueue(Spec{TargetID: "ghost", Kind: KindAppear, OnComplete: func() { fired = true }}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	if !fired {
		t.Error("OnComplete did not fire for a skipped animation")
	}
	st := s.Status()
	if st.QueueLength != 0 || st.ActiveAnimations != 0 {
		t.Errorf("skipped animation left state behind: %+v", st)
	}
	if n := len(rr.appliesFor("ghost")); n != 0 {
		t.Errorf("renderer recorded %d applies for a missing target", n)
	}
}

func TestCallbackPanicIsIsolated(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	if _, err := s.Enqueue(Spec{
		TargetID:   "m-1",
		Kind:       KindAppear,
		Duration:   50 * time.Millisecond,
		OnComplete: func() { panic("boom") },
	}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	clk.Advance(200 * time.Millisecond)
	// The scheduler must keep working after the panic.
	if _, err := s.Enqueue(Spec{TargetID: "m-2", Kind: KindClick}); err != nil {
		t.Fatalf("enqueue after panicking callback: %v", err)
	}
	clk.Advance(0)
	if n := len(rr.appliesFor("m-2")); n != 1 {
		t.Fatalf("follow-up animation applied %d times, want 1", n)
	}
}

func TestClearAllResetsEverything(t *testing.T) {
	rr := &recordRenderer{known: []string{"m-0", "m-1", "m-2", "m-3", "m-4"}}
	s, clk := newTestScheduler(t, rr)
	targets := []string{"m-0", "m-1", "m-2", "m-3", "m-4"}
	if _, err := s.PlanAppear(targets, AppearOptions{Stagger: 100 * time.Millisecond, Duration: time.Second}); err != nil {
		t.Fatal(err)
	}
	// Let the first two start while the rest wait on their stagger.
	clk.Advance(150 * time.Millisecond)
	st := s.Status()
	if st.ActiveAnimations == 0 || st.QueueLength == 0 {
		t.Fatalf("want a mix of running and queued before clear, got %+v", st)
	}

	s.ClearAll()
	st = s.Status()
	if st.QueueLength != 0 || st.ActiveAnimations != 0 {
		t.Fatalf("clear-all left state: %+v", st)
	}
	for _, target := range targets {
		if rr.clearCount(target) == 0 {
			t.Errorf("target %s not cleared", target)
		}
	}

	// The scheduler accepts work again afterwards.
	if _, err := s.Enqueue(Spec{TargetID: "m-0", Kind: KindClick}); err != nil {
		t.Fatalf("enqueue after clear-all: %v", err)
	}
	clk.Advance(0)
	if n := len(rr.appliesFor("m-0")); n != 1 {
		t.Fatalf("post-clear animation applied %d times, want 1", n)
	}
}

func TestCinematicModeRidesOnEffects(t *testing.T) {
	rr := &recordRenderer{}
	s, clk := newTestScheduler(t, rr)
	mode := s.SetCinematicMode(true)
	if !mode.Cinematic || mode.SpeedMultiplier != 1.5 || mode.DefaultQuality != "high" {
		t.Fatalf("cinematic mode = %+v", mode)
	}
	if _, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear}); err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	applies := rr.applies()
	if len(applies) != 1 {
		t.Fatalf("applied %d effects, want 1", len(applies))
	}
	if got := applies[0].effect; got.Speed != 1.5 || got.Quality != "high" {
		t.Errorf("effect mode knobs = speed %v quality %q", got.Speed, got.Quality)
	}

	mode = s.SetCinematicMode(false)
	if mode.Cinematic || mode.SpeedMultiplier != 1.0 || mode.DefaultQuality != "auto" {
		t.Fatalf("standard mode = %+v", mode)
	}
	if st := s.Status(); st.Mode.Cinematic {
		t.Error("status still reports cinematic after disable")
	}
}

func TestEventsPublishedInLifecycleOrder(t *testing.T) {
	rr := &recordRenderer{}
	clk := NewManualClock(time.Unix(1700000000, 0))
	rr.clk = clk
	pub := NewMemoryPublisher()
	s := NewWithConfig(Config{Renderer: rr, Clock: clk, Events: pub})
	defer s.Close()

	id, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear, Duration: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	clk.Advance(0)
	clk.Advance(150 * time.Millisecond)

	var names []string
	for _, e := range pub.Events() {
		if e.ID == id {
			names = append(names, e.Name)
		}
	}
	want := []string{EventEnqueued, EventStarted, EventCompleted}
	if len(names) != len(want) {
		t.Fatalf("event names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("event names = %v, want %v", names, want)
		}
	}
}

func TestStatusPreviewIsBounded(t *testing.T) {
	s, _ := newTestScheduler(t, &recordRenderer{})
	for i := 0; i < 9; i++ {
		if _, err := s.Enqueue(Spec{TargetID: "m-1", Kind: KindAppear, Delay: time.Hour}); err != nil {
			t.Fatal(err)
		}
	}
	st := s.Status()
	if st.QueueLength != 9 {
		t.Fatalf("queue length = %d, want 9", st.QueueLength)
	}
	if len(st.Queued) != defaultQueuePreview {
		t.Fatalf("preview size = %d, want %d", len(st.Queued), defaultQueuePreview)
	}
}
