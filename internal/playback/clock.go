package playback

import (
	"context"
	"sync"
	"time"
)

// DefaultTickInterval is the nominal clock period. Each tick advances the
// cursor by exactly this amount; wall-clock drift is not corrected.
const DefaultTickInterval = 100 * time.Millisecond

// Timer is a running repeating timer.
type Timer interface {
	// Stop cancels the timer. It does not wait for an in-flight callback.
	Stop()
}

// Clock creates repeating timers.
type Clock interface {
	Every(interval time.Duration, fn func()) Timer
}

// TickerClock is a Clock backed by time.Ticker.
type TickerClock struct{}

func (TickerClock) Every(interval time.Duration, fn func()) Timer {
	ctx, cancel := context.WithCancel(context.Background())
	t := &tickerTimer{cancel: cancel}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Stop may race with the ticker firing.
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()

	return t
}

type tickerTimer struct {
	cancel context.CancelFunc
}

func (t *tickerTimer) Stop() {
	t.cancel()
}

// ManualClock is a Clock driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Every(interval time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTimer{clock: c, interval: interval, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer once per elapsed
// interval.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	timers := append([]*manualTimer(nil), c.timers...)
	c.mu.Unlock()

	for _, t := range timers {
		t.advance(d)
	}
}

// Active returns the number of timers that have not been stopped.
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *ManualClock) remove(t *manualTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cur := range c.timers {
		if cur == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

type manualTimer struct {
	clock    *ManualClock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	elapsed time.Duration
	stopped bool
}

func (t *manualTimer) advance(d time.Duration) {
	t.mu.Lock()
	t.elapsed += d
	t.mu.Unlock()

	for {
		t.mu.Lock()
		if t.stopped || t.interval <= 0 || t.elapsed < t.interval {
			t.mu.Unlock()
			return
		}
		t.elapsed -= t.interval
		t.mu.Unlock()

		t.fn()
	}
}

func (t *manualTimer) Stop() {
	t.mu.Lock()
	already := t.stopped
	t.stopped = true
	t.mu.Unlock()

	if !already {
		t.clock.remove(t)
	}
}
