package sched

import "github.com/prometheus/client_golang/prometheus"

var (
	enqueuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "enqueued_total",
			Help:      "Total animations accepted into the queue",
		},
		[]string{"kind"},
	)

	completedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "completed_total",
			Help:      "Total animations completed, by completion reason",
		},
		[]string{"reason"},
	)

	cancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "cancelled_total",
			Help:      "Total animations cancelled before completing",
		},
	)

	promotionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "promotions_total",
			Help:      "Total queue-to-running promotions",
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "queue_depth",
			Help:      "Animations currently waiting in the queue",
		},
	)

	activeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "active_animations",
			Help:      "Animations currently running",
		},
	)

	frameEstimate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "animd",
			Subsystem: "sched",
			Name:      "frame_estimate_hz",
			Help:      "Latest estimated tick rate used for quality classification",
		},
	)
)

func init() {
	prometheus.MustRegister(
		enqueuedTotal,
		completedTotal,
		cancelledTotal,
		promotionsTotal,
		queueDepth,
		activeGauge,
		frameEstimate,
	)
}

// Completion reason labels.
const (
	reasonNatural       = "natural"
	reasonTargetMissing = "target_missing"
	reasonUnknownKind   = "unknown_kind"
)

// syncGaugesLocked refreshes the depth gauges after any queue/registry change.
func (s *Scheduler) syncGaugesLocked() {
	queueDepth.Set(float64(s.queue.len()))
	activeGauge.Set(float64(s.active.len()))
}
