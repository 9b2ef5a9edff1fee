package observability

import (
	"sync/atomic"
	"time"
)

// ReconcileMetrics are in-process counters for the favorites reconciler,
// served on the worker's health endpoint.
type ReconcileMetrics struct {
	runs    atomic.Uint64
	failed  atomic.Uint64
	deleted atomic.Uint64

	// duration stats (nanoseconds)
	durationCount atomic.Uint64
	durationTotal atomic.Int64
	durationMax   atomic.Int64

	lastSuccessUnix atomic.Int64
}

func NewReconcileMetrics() *ReconcileMetrics {
	return &ReconcileMetrics{}
}

func (m *ReconcileMetrics) IncRuns() {
	m.runs.Add(1)
}

func (m *ReconcileMetrics) IncFailed() {
	m.failed.Add(1)
}

func (m *ReconcileMetrics) AddDeleted(n int64) {
	if n > 0 {
		m.deleted.Add(uint64(n))
	}
}

func (m *ReconcileMetrics) MarkSuccess(at time.Time) {
	m.lastSuccessUnix.Store(at.Unix())
}

func (m *ReconcileMetrics) ObserveDuration(d time.Duration) {
	ns := d.Nanoseconds()
	m.durationCount.Add(1)
	m.durationTotal.Add(ns)

	for {
		curr := m.durationMax.Load()

		if ns <= curr {
			return
		}

		if m.durationMax.CompareAndSwap(curr, ns) {
			return
		}
	}
}

type ReconcileMetricsSnapshot struct {
	Runs            uint64        `json:"runs"`
	Failed          uint64        `json:"failed"`
	Deleted         uint64        `json:"deleted"`
	AverageDuration time.Duration `json:"averageDurationNs"`
	MaxDuration     time.Duration `json:"maxDurationNs"`
	LastSuccess     *time.Time    `json:"lastSuccess,omitempty"`
}

func (m *ReconcileMetrics) Snapshot() ReconcileMetricsSnapshot {
	count := m.durationCount.Load()
	total := m.durationTotal.Load()

	var avg time.Duration
	if count > 0 {
		avg = time.Duration(total / int64(count))
	}

	s := ReconcileMetricsSnapshot{
		Runs:            m.runs.Load(),
		Failed:          m.failed.Load(),
		Deleted:         m.deleted.Load(),
		AverageDuration: avg,
		MaxDuration:     time.Duration(m.durationMax.Load()),
	}

	if unix := m.lastSuccessUnix.Load(); unix > 0 {
		t := time.Unix(unix, 0).UTC()
		s.LastSuccess = &t
	}

	return s
}
