package input

import (
	"sync/atomic"
	"time"
)

// Metrics tracks interceptor decisions.
type Metrics struct {
	// Event counters
	eventsTotal   atomic.Uint64
	handledTotal  atomic.Uint64
	passedTotal   atomic.Uint64
	stringsSent   atomic.Uint64
	substitutions atomic.Uint64
	repeats       atomic.Uint64

	// Latency tracking
	totalLatency atomic.Int64
	peakLatency  atomic.Int64

	// Start time for uptime calculation
	startTime time.Time

	// Enable flag
	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordEvent records one processed event and its processing time.
func (m *Metrics) RecordEvent(latency time.Duration, handled bool) {
	if !m.enabled.Load() {
		return
	}

	m.eventsTotal.Add(1)
	if handled {
		m.handledTotal.Add(1)
	} else {
		m.passedTotal.Add(1)
	}

	ns := latency.Nanoseconds()
	m.totalLatency.Add(ns)
	for {
		current := m.peakLatency.Load()
		if ns <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

// RecordString records a string action being typed.
func (m *Metrics) RecordString() {
	if m.enabled.Load() {
		m.stringsSent.Add(1)
	}
}

// RecordSubstitution records a Backspace press turned into Delete.
func (m *Metrics) RecordSubstitution() {
	if m.enabled.Load() {
		m.substitutions.Add(1)
	}
}

// RecordRepeat records a Backspace press ignored while Delete was held.
func (m *Metrics) RecordRepeat() {
	if m.enabled.Load() {
		m.repeats.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	EventsTotal    uint64
	HandledTotal   uint64
	PassedTotal    uint64
	StringsSent    uint64
	Substitutions  uint64
	IgnoredRepeats uint64
	AvgLatency     time.Duration
	PeakLatency    time.Duration
	Uptime         time.Duration
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		EventsTotal:    m.eventsTotal.Load(),
		HandledTotal:   m.handledTotal.Load(),
		PassedTotal:    m.passedTotal.Load(),
		StringsSent:    m.stringsSent.Load(),
		Substitutions:  m.substitutions.Load(),
		IgnoredRepeats: m.repeats.Load(),
		PeakLatency:    time.Duration(m.peakLatency.Load()),
		Uptime:         time.Since(m.startTime),
	}
	if s.EventsTotal > 0 {
		s.AvgLatency = time.Duration(m.totalLatency.Load() / int64(s.EventsTotal))
	}
	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.eventsTotal.Store(0)
	m.handledTotal.Store(0)
	m.passedTotal.Store(0)
	m.stringsSent.Store(0)
	m.substitutions.Store(0)
	m.repeats.Store(0)
	m.totalLatency.Store(0)
	m.peakLatency.Store(0)
	m.startTime = time.Now()
}
