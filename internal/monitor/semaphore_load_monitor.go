package monitor

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// SemaphoreLoadMonitor bounds concurrent streams with a weighted semaphore.
type SemaphoreLoadMonitor struct {
	sem       *semaphore.Weighted
	maxWeight int64
	active    atomic.Int64
	threshold float64
}

// NewSemaphoreLoadMonitor allows up to maxStreams concurrent streams. The
// monitor reports unhealthy once the used fraction exceeds healthThreshold,
// which is clamped to [0, 1].
func NewSemaphoreLoadMonitor(maxStreams int64, healthThreshold float64) *SemaphoreLoadMonitor {
	return &SemaphoreLoadMonitor{
		sem:       semaphore.NewWeighted(maxStreams),
		maxWeight: maxStreams,
		threshold: min(max(healthThreshold, 0), 1),
	}
}

func (m *SemaphoreLoadMonitor) GetMetrics() LoadMetrics {
	active := m.active.Load()
	loadPct := 0.0
	if m.maxWeight > 0 {
		loadPct = float64(active) / float64(m.maxWeight) * 100.0
	}

	return LoadMetrics{
		ActiveStreams:  active,
		MaxStreams:     m.maxWeight,
		LoadPercentage: loadPct,
	}
}

func (m *SemaphoreLoadMonitor) IsHealthy() bool {
	return m.GetMetrics().LoadPercentage/100.0 <= m.threshold
}

func (m *SemaphoreLoadMonitor) TryAcquire() bool {
	if !m.sem.TryAcquire(1) {
		return false
	}
	m.active.Add(1)
	return true
}

func (m *SemaphoreLoadMonitor) Release() {
	m.active.Add(-1)
	m.sem.Release(1)
}

var _ LoadMonitor = (*SemaphoreLoadMonitor)(nil)
