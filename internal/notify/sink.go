package notify

import (
	"log/slog"

	"github.com/ciricc/go-transcript-player/internal/validate"
)

// Event reports a rejected word edit. The core only emits these; rendering
// them is up to whoever listens.
type Event struct {
	Kind     validate.Kind
	Message  string
	Index    int
	Proposed string
}

// Sink receives rejection events.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Multi forwards each event to every sink in order.
type Multi []Sink

func (m Multi) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

// Hub is a Sink that broadcasts events to subscribers.
type Hub struct {
	*Broadcaster[Event]
}

func NewHub(buffer int) *Hub {
	return &Hub{Broadcaster: NewBroadcaster[Event](buffer)}
}

func (h *Hub) Notify(e Event) {
	h.Publish(e)
}

// LogSink writes events to a logger.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("method", "notify")}
}

func (s *LogSink) Notify(e Event) {
	s.log.Warn("edit rejected",
		"kind", e.Kind,
		"index", e.Index,
		"proposed", e.Proposed,
		"message", e.Message,
	)
}

var (
	_ Sink = (*Hub)(nil)
	_ Sink = (*LogSink)(nil)
	_ Sink = Multi(nil)
	_ Sink = SinkFunc(nil)
)
