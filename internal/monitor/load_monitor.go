package monitor

// LoadMetrics describes how many streaming subscribers are attached.
type LoadMetrics struct {
	// ActiveStreams is the number of open Watch/Notifications streams
	ActiveStreams int64
	// MaxStreams is the configured stream capacity
	MaxStreams int64
	// LoadPercentage is ActiveStreams/MaxStreams as a percentage (0-100)
	LoadPercentage float64
}

// LoadMonitor tracks stream slots. Every successful TryAcquire must be paired
// with a Release.
type LoadMonitor interface {
	GetMetrics() LoadMetrics
	// IsHealthy reports whether the load is at or below the health threshold
	IsHealthy() bool
	TryAcquire() bool
	Release()
}
