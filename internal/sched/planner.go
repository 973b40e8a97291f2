package sched

import (
	"math/rand"
	"time"
)

// Priority tiers handed out by the planners.
const (
	batchPriority     = 3
	disappearPriority = 4
	interactPriority  = 5
)

const (
	defaultMaxStagger = 1 * time.Second
	// zoomSettle pads the reveal so departing markers finish fading first.
	zoomSettle = 200 * time.Millisecond
)

// Ordering choices for departure batches.
const (
	OrderForward = "forward"
	OrderRandom  = "random"
)

// defaultStagger picks the per-slot spacing for batches that do not set one,
// based on the current quality tier.
func defaultStagger(q QualityLevel) time.Duration {
	switch q {
	case QualityReduced:
		return 160 * time.Millisecond
	case QualityMedium:
		return 120 * time.Millisecond
	default:
		return 80 * time.Millisecond
	}
}

// appearDelay computes the promotion delay for the index-th target of an
// entrance batch. Early slots are compressed (70%, then 85%) so large
// batches start briskly and spread out toward the tail. Integer ratios keep
// the delays exact.
func appearDelay(index int, stagger, maxStagger time.Duration) time.Duration {
	d := time.Duration(index) * stagger
	if d > maxStagger {
		d = maxStagger
	}
	switch {
	case index < 5:
		return d * 7 / 10
	case index < 10:
		return d * 17 / 20
	default:
		return d
	}
}

// appearPriority ranks the first slots of a quality-ordered batch from
// MaxPriority downward; later slots share the floor tier.
func appearPriority(index int, qualityOrdered bool) int {
	if !qualityOrdered {
		return batchPriority
	}
	p := MaxPriority - index
	if p < MinPriority {
		p = MinPriority
	}
	return p
}

// zoomTuning derives stagger, duration and easing for a zoom transition.
func zoomTuning(q QualityLevel, zoomLevel int) (stagger, duration time.Duration, easing string) {
	switch q {
	case QualityMedium:
		stagger = 60 * time.Millisecond
	case QualityReduced:
		stagger = 150 * time.Millisecond
	default:
		stagger = 100 * time.Millisecond
	}
	duration = 250 * time.Millisecond
	if q == QualityHigh {
		duration = 350 * time.Millisecond
	}
	easing = "slide"
	if zoomLevel >= 16 {
		easing = "bounce"
	}
	return stagger, duration, easing
}

// AppearOptions tunes a staggered entrance batch. Zero values fall back to
// quality-derived defaults.
type AppearOptions struct {
	Stagger    time.Duration
	MaxStagger time.Duration
	// QualityOrdered ranks earlier targets at higher priority so the most
	// relevant markers win contended slots.
	QualityOrdered bool
	Duration       time.Duration
	Easing         string
}

// DisappearOptions tunes a staggered departure batch.
type DisappearOptions struct {
	Stagger time.Duration
	// Order is OrderForward (default) or OrderRandom.
	Order    string
	Duration time.Duration
	Easing   string
}

// ZoomPlan reports the ids scheduled by a zoom transition.
type ZoomPlan struct {
	HiddenIDs  []string
	VisibleIDs []string
}

// PlanAppear enqueues one appear animation per target with staggered delays.
// The batch is admitted atomically; returned ids follow target order.
func (s *Scheduler) PlanAppear(targets []string, opts AppearOptions) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, closedError{}
	}
	for _, t := range targets {
		if t == "" {
			return nil, emptyTargetError{}
		}
	}
	if opts.Stagger <= 0 {
		opts.Stagger = defaultStagger(s.perf.quality())
	}
	if opts.MaxStagger <= 0 {
		opts.MaxStagger = defaultMaxStagger
	}
	ids := make([]string, 0, len(targets))
	for i, target := range targets {
		id, err := s.enqueueLocked(Spec{
			TargetID: target,
			Kind:     KindAppear,
			Priority: appearPriority(i, opts.QualityOrdered),
			Delay:    appearDelay(i, opts.Stagger, opts.MaxStagger),
			Duration: opts.Duration,
			Easing:   opts.Easing,
		})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		s.armTickLocked(0)
	}
	return ids, nil
}

// PlanDisappear enqueues one disappear animation per target. Random order
// shuffles the stagger sequence so dense clusters thin out evenly.
func (s *Scheduler) PlanDisappear(targets []string, opts DisappearOptions) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, closedError{}
	}
	for _, t := range targets {
		if t == "" {
			return nil, emptyTargetError{}
		}
	}
	if opts.Stagger <= 0 {
		opts.Stagger = defaultStagger(s.perf.quality())
	}
	order := append([]string(nil), targets...)
	if opts.Order == OrderRandom {
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	ids := make([]string, 0, len(order))
	for i, target := range order {
		id, err := s.enqueueLocked(Spec{
			TargetID: target,
			Kind:     KindDisappear,
			Priority: disappearPriority,
			Delay:    time.Duration(i) * opts.Stagger,
			Duration: opts.Duration,
			Easing:   opts.Easing,
		})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		s.armTickLocked(0)
	}
	return ids, nil
}

// PlanZoomTransition fades hidden targets out immediately and staggers the
// reveal of visible targets after the departures have had time to settle.
// Tuning follows the current quality tier; easing follows the zoom level.
func (s *Scheduler) PlanZoomTransition(visible, hidden []string, zoomLevel int) (ZoomPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var plan ZoomPlan
	if s.closed {
		return plan, closedError{}
	}
	for _, t := range visible {
		if t == "" {
			return plan, emptyTargetError{}
		}
	}
	for _, t := range hidden {
		if t == "" {
			return plan, emptyTargetError{}
		}
	}
	stagger, duration, easing := zoomTuning(s.perf.quality(), zoomLevel)
	exitStagger := stagger * 7 / 10
	for i, target := range hidden {
		id, err := s.enqueueLocked(Spec{
			TargetID: target,
			Kind:     KindDisappear,
			Priority: disappearPriority,
			Delay:    time.Duration(i) * exitStagger,
			Duration: duration,
		})
		if err != nil {
			return plan, err
		}
		plan.HiddenIDs = append(plan.HiddenIDs, id)
	}
	revealAt := time.Duration(len(hidden))*exitStagger + zoomSettle
	for i, target := range visible {
		id, err := s.enqueueLocked(Spec{
			TargetID: target,
			Kind:     KindAppear,
			Priority: appearPriority(i, true),
			Delay:    revealAt + appearDelay(i, stagger, defaultMaxStagger),
			Duration: duration,
			Easing:   easing,
		})
		if err != nil {
			return plan, err
		}
		plan.VisibleIDs = append(plan.VisibleIDs, id)
	}
	if len(plan.HiddenIDs)+len(plan.VisibleIDs) > 0 {
		s.armTickLocked(0)
	}
	return plan, nil
}

// Hover schedules the enter or exit flourish for a pointer transition. Any
// previous hover animation on the same target is cancelled first, so at most
// one hover effect is live per target.
func (s *Scheduler) Hover(targetID string, entering bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", closedError{}
	}
	if prev, ok := s.hover[targetID]; ok {
		s.cancelLocked(prev)
	}
	kind := KindHoverEnter
	if !entering {
		kind = KindHoverExit
	}
	id, err := s.enqueueLocked(Spec{TargetID: targetID, Kind: kind, Priority: interactPriority})
	if err != nil {
		return "", err
	}
	s.hover[targetID] = id
	s.armTickLocked(0)
	return id, nil
}

// Click schedules the fixed click pulse at top priority.
func (s *Scheduler) Click(targetID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", closedError{}
	}
	id, err := s.enqueueLocked(Spec{TargetID: targetID, Kind: KindClick, Priority: interactPriority})
	if err != nil {
		return "", err
	}
	s.armTickLocked(0)
	return id, nil
}
