package word

import (
	"time"
)

// Word is a single transcript token. It is "current" while the playback time
// is inside [Start, Start+Duration).
type Word struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// End returns the exclusive end of the word interval.
func (w Word) End() time.Duration {
	return w.Start + w.Duration
}

// Contains reports whether t falls inside the word interval.
func (w Word) Contains(t time.Duration) bool {
	return t >= w.Start && t < w.End()
}
