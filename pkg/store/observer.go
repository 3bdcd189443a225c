package store

import (
	"sync/atomic"
	"time"
)

// Observer defines hooks for observability around store dispatches.
// Implementations can use these hooks to collect metrics or log commit
// traffic without coupling the store to an observability platform.
type Observer interface {
	// OnDispatch is called when an action enters the store. pending reports
	// whether the payload still had to be awaited.
	OnDispatch(actionType string, pending bool)

	// OnCommit is called after an update action has been reduced.
	OnCommit(resource string, entities int, duration time.Duration)

	// OnError is called when awaiting or reducing a payload fails.
	OnError(actionType string, err error)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (n *NoopObserver) OnDispatch(actionType string, pending bool)                     {}
func (n *NoopObserver) OnCommit(resource string, entities int, duration time.Duration) {}
func (n *NoopObserver) OnError(actionType string, err error)                           {}

// MetricsObserver collects basic dispatch metrics. All counters use atomic
// operations so it can be shared across goroutines.
type MetricsObserver struct {
	dispatchCount  atomic.Int64
	pendingCount   atomic.Int64
	commitCount    atomic.Int64
	entityCount    atomic.Int64
	errorCount     atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewMetricsObserver creates a new thread-safe metrics observer.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) OnDispatch(actionType string, pending bool) {
	m.dispatchCount.Add(1)
	if pending {
		m.pendingCount.Add(1)
	}
}

func (m *MetricsObserver) OnCommit(resource string, entities int, duration time.Duration) {
	m.commitCount.Add(1)
	m.entityCount.Add(int64(entities))
	m.totalLatencyNs.Add(int64(duration))
}

func (m *MetricsObserver) OnError(actionType string, err error) {
	m.errorCount.Add(1)
}

// MetricsSnapshot is a point-in-time snapshot of dispatch metrics.
type MetricsSnapshot struct {
	DispatchCount int64         `json:"dispatchCount"`
	PendingCount  int64         `json:"pendingCount"`
	CommitCount   int64         `json:"commitCount"`
	EntityCount   int64         `json:"entityCount"`
	ErrorCount    int64         `json:"errorCount"`
	CommitLatency time.Duration `json:"commitLatencyNs"`
}

// Snapshot returns a thread-safe copy of the current metrics.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		DispatchCount: m.dispatchCount.Load(),
		PendingCount:  m.pendingCount.Load(),
		CommitCount:   m.commitCount.Load(),
		EntityCount:   m.entityCount.Load(),
		ErrorCount:    m.errorCount.Load(),
		CommitLatency: time.Duration(m.totalLatencyNs.Load()),
	}
}

// Reset clears all metrics counters to zero.
func (m *MetricsObserver) Reset() {
	m.dispatchCount.Store(0)
	m.pendingCount.Store(0)
	m.commitCount.Store(0)
	m.entityCount.Store(0)
	m.errorCount.Store(0)
	m.totalLatencyNs.Store(0)
}
