package highlight

import (
	"time"

	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/samber/lo"
)

// Index returns the lowest index whose interval contains t. Overlapping and
// zero-duration words resolve to the first match in transcript order.
func Index(words []word.Word, t time.Duration) (int, bool) {
	_, i, ok := lo.FindIndexOf(words, func(w word.Word) bool {
		return w.Contains(t)
	})
	return i, ok
}
