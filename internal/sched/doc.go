// Package sched coordinates queued visual effects for map markers: requests
// are admitted by priority under an adaptive concurrency cap derived from
// measured tick timing. It is structured into small files by concern:
//
//   - scheduler.go: core Scheduler type, constructor, public API surface.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: effect kinds, lifecycle statuses, Spec and internal request.
//   - clock.go: Clock/Timer abstraction, system clock, manual clock for tests.
//   - queue.go: priority-ordered pending queue with FIFO tie-breaking.
//   - registry.go: in-flight animation registry and completion deadlines.
//   - perf.go: tick-interval frame estimation and quality classification.
//   - tick.go: the cooperative polling loop (sample, admit, promote, rearm).
//   - lifecycle.go: completion, cancellation, and callback isolation.
//   - planner.go: batch planners (appear, disappear, zoom) and interactions.
//   - errors.go: error types and helpers (IsUnknownKind, IsClosed).
//   - events.go: lifecycle events and the EventPublisher contract.
//   - eventpub_memory.go: in-memory publisher for tests and embedding.
//   - renderer.go: the Renderer collaborator contract.
//   - metrics.go: Prometheus collectors.
//
// External packages should treat this package as the scheduling core and use
// public methods only (e.g., New/NewWithConfig, Enqueue, Cancel, PlanAppear,
// Status, Close). Internal types are subject to change.
package sched
