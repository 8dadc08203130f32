package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/playback"
)

type Opts struct {
	Clock        playback.Clock
	TickInterval *time.Duration
	Sink         notify.Sink
	Logger       *slog.Logger
	WatchBuffer  *int
}

type Opt func(opts *Opts)

func WithClock(c playback.Clock) Opt {
	return func(opts *Opts) { opts.Clock = c }
}

func WithTickInterval(v time.Duration) Opt {
	return func(opts *Opts) { opts.TickInterval = &v }
}

func WithSink(s notify.Sink) Opt {
	return func(opts *Opts) { opts.Sink = s }
}

func WithLogger(l *slog.Logger) Opt {
	return func(opts *Opts) { opts.Logger = l }
}

func WithWatchBuffer(v int) Opt {
	return func(opts *Opts) { opts.WatchBuffer = &v }
}

func buildOpts(defaultOpts Opts, opts ...Opt) Opts {
	o := defaultOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func defaultOpts() Opts {
	interval := playback.DefaultTickInterval
	buffer := 16
	return Opts{
		Clock:        playback.TickerClock{},
		TickInterval: &interval,
		Sink:         notify.SinkFunc(func(notify.Event) {}),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		WatchBuffer:  &buffer,
	}
}
