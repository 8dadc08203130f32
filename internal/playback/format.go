package playback

import (
	"fmt"
	"time"
)

// FormatTime renders d as minutes:seconds, seconds zero-padded to two digits.
// Sub-second remainders are truncated.
func FormatTime(d time.Duration) string {
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
