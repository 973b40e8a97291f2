package sched

import "time"

// maxFrameEstimate caps the reported rate: intervals shorter than one frame
// at 60Hz still read as a full-speed tick.
const maxFrameEstimate = 60.0

// Quality thresholds in estimated ticks per second.
const (
	reducedBelow = 30.0
	mediumBelow  = 45.0
)

// perfSample is the most recent frame measurement; each tick overwrites it.
type perfSample struct {
	estimate float64
	active   int
	at       time.Time
}

// monitor estimates frame performance from the spacing of scheduler ticks.
// The first observation after a reset reports full speed since there is no
// interval to measure yet.
type monitor struct {
	lastTick time.Time
	sample   perfSample
	sampled  bool
}

// observe records a tick at now with the given active count and returns the
// quality classification of the fresh estimate.
func (m *monitor) observe(now time.Time, active int) QualityLevel {
	est := maxFrameEstimate
	if !m.lastTick.IsZero() {
		if elapsed := now.Sub(m.lastTick); elapsed > 0 {
			est = float64(time.Second) / float64(elapsed)
			if est > maxFrameEstimate {
				est = maxFrameEstimate
			}
		}
	}
	m.lastTick = now
	m.sample = perfSample{estimate: est, active: active, at: now}
	m.sampled = true
	return qualityFor(est)
}

// reset clears the measurement window. Called when the loop goes idle so the
// idle gap does not read as a stall on the next wake.
func (m *monitor) reset() {
	m.lastTick = time.Time{}
}

// quality classifies the latest sample, defaulting to high before any tick.
func (m *monitor) quality() QualityLevel {
	if !m.sampled {
		return QualityHigh
	}
	return qualityFor(m.sample.estimate)
}

// last returns the latest sample and whether one exists.
func (m *monitor) last() (perfSample, bool) {
	return m.sample, m.sampled
}

// qualityFor classifies an estimated tick rate into a render tier.
func qualityFor(estimate float64) QualityLevel {
	switch {
	case estimate < reducedBelow:
		return QualityReduced
	case estimate < mediumBelow:
		return QualityMedium
	default:
		return QualityHigh
	}
}

// capFor returns the concurrency cap for a quality tier.
func capFor(q QualityLevel) int {
	switch q {
	case QualityReduced:
		return capReduced
	case QualityMedium:
		return capMedium
	default:
		return capHigh
	}
}
