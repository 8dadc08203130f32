package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ciricc/go-transcript-player/internal/edit"
	"github.com/ciricc/go-transcript-player/internal/highlight"
	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/playback"
	"github.com/ciricc/go-transcript-player/internal/transcript"
)

// Snapshot is the observable engine state at one instant.
type Snapshot struct {
	Mode          playback.Mode
	CurrentTime   time.Duration
	TotalDuration time.Duration
	// Finished is true only after playback ran to the end on its own.
	Finished bool
	// AtEnd is true whenever CurrentTime >= TotalDuration.
	AtEnd bool
	// HighlightIndex is -1 when no word contains CurrentTime.
	HighlightIndex int
	Editing        bool
	EditIndex      int
}

// Engine is one transcript player. All methods are safe for concurrent use;
// commands and clock ticks are serialized by a single mutex.
type Engine struct {
	mu  sync.Mutex
	log *slog.Logger

	store   *transcript.Store
	machine *playback.Machine
	editor  *edit.Editor

	clock    playback.Clock
	interval time.Duration
	timer    playback.Timer
	// generation identifies the live timer; ticks from older timers are dropped.
	generation uint64

	changes *notify.Broadcaster[Snapshot]
	closed  bool
}

func New(words []word.Word, opts ...Opt) *Engine {
	o := buildOpts(defaultOpts(), opts...)

	store := transcript.NewStore(words)
	log := o.Logger.With("component", "engine")

	e := &Engine{
		log:      log,
		store:    store,
		machine:  playback.NewMachine(store.TotalDuration()),
		editor:   edit.NewEditor(store, o.Sink, log),
		clock:    o.Clock,
		interval: *o.TickInterval,
		changes:  notify.NewBroadcaster[Snapshot](*o.WatchBuffer),
	}

	log.Debug("engine created",
		"words", store.Len(),
		"totalDuration", store.TotalDuration(),
		"tickInterval", e.interval,
	)

	return e
}

func (e *Engine) Play() {
	e.transition("play", (*playback.Machine).Play)
}

func (e *Engine) Pause() {
	e.transition("pause", (*playback.Machine).Pause)
}

// Stop rewinds to zero. It is also the restart command.
func (e *Engine) Stop() {
	e.transition("stop", (*playback.Machine).Stop)
}

// SeekBegin starts a drag. The clock is suspended until SeekEnd.
func (e *Engine) SeekBegin() {
	e.transition("seekBegin", (*playback.Machine).SeekBegin)
}

// SeekTo moves the cursor, clamped to the transcript bounds. It may be called
// during a drag or as an instantaneous scrub in any mode.
func (e *Engine) SeekTo(t time.Duration) {
	e.transition("seekTo", func(m *playback.Machine) { m.SeekTo(t) })
}

func (e *Engine) SeekEnd() {
	e.transition("seekEnd", (*playback.Machine).SeekEnd)
}

// BeginEdit pauses playback and opens an edit session on word index,
// committing any session that is already open.
func (e *Engine) BeginEdit(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.Get(index); err != nil {
		return fmt.Errorf("begin edit: %w", err)
	}

	e.machine.Pause()
	e.syncTimer()

	if err := e.editor.Begin(index); err != nil {
		return fmt.Errorf("begin edit: %w", err)
	}

	e.publish()
	return nil
}

// ChangeText proposes text for the open session and reports whether it was
// accepted. Rejections are delivered to the notification sink.
func (e *Engine) ChangeText(text string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	accepted, err := e.editor.Change(text)
	if err != nil {
		return false, err
	}
	if accepted {
		e.publish()
	}
	return accepted, nil
}

// CommitEdit writes the pending text back. It is a no-op with no open session.
func (e *Engine) CommitEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, open := e.editor.Session()
	if err := e.editor.Commit(); err != nil {
		return fmt.Errorf("commit edit: %w", err)
	}
	if open {
		e.publish()
	}
	return nil
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// HighlightIndex returns the word containing the current time, if any.
func (e *Engine) HighlightIndex() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return highlight.Index(e.store.Words(), e.machine.CurrentTime())
}

// DisplayText is the text shown for word index: pending text while it is
// under edit, stored text otherwise.
func (e *Engine) DisplayText(index int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.DisplayText(index)
}

// Words returns the transcript as displayed.
func (e *Engine) Words() []word.Word {
	e.mu.Lock()
	defer e.mu.Unlock()

	words := e.store.Words()
	if s, ok := e.editor.Session(); ok {
		words[s.Index].Text = s.PendingText
	}
	return words
}

// TimeLabel renders "current - total".
func (e *Engine) TimeLabel() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return playback.FormatTime(e.machine.CurrentTime()) + " - " + playback.FormatTime(e.machine.TotalDuration())
}

// Subscribe delivers a snapshot after every state change. Slow subscribers
// lose intermediate snapshots but always see the latest one.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	return e.changes.Subscribe()
}

// Close stops the clock. The engine must not be used afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.stopTimer()
	return nil
}

func (e *Engine) transition(command string, apply func(m *playback.Machine)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.machine.Mode()
	apply(e.machine)
	e.syncTimer()

	e.log.Debug("transition",
		"command", command,
		"from", before,
		"to", e.machine.Mode(),
		"currentTime", e.machine.CurrentTime(),
	)
	e.publish()
}

func (e *Engine) onTick(generation uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if generation != e.generation || e.timer == nil {
		return
	}

	e.machine.Tick(e.interval)
	e.syncTimer()
	if e.machine.Finished() {
		e.log.Debug("playback finished", "currentTime", e.machine.CurrentTime())
	}
	e.publish()
}

// syncTimer keeps exactly one timer alive while Playing and none otherwise.
// Must be called with mu held.
func (e *Engine) syncTimer() {
	playing := e.machine.Mode() == playback.ModePlaying

	switch {
	case playing && e.timer == nil && !e.closed:
		e.generation++
		gen := e.generation
		e.timer = e.clock.Every(e.interval, func() { e.onTick(gen) })
	case !playing && e.timer != nil:
		e.stopTimer()
	}
}

func (e *Engine) stopTimer() {
	if e.timer == nil {
		return
	}
	e.timer.Stop()
	e.timer = nil
	e.generation++
}

func (e *Engine) publish() {
	e.changes.Publish(e.snapshot())
}

func (e *Engine) snapshot() Snapshot {
	idx, ok := highlight.Index(e.store.Words(), e.machine.CurrentTime())
	if !ok {
		idx = -1
	}

	s := Snapshot{
		Mode:           e.machine.Mode(),
		CurrentTime:    e.machine.CurrentTime(),
		TotalDuration:  e.machine.TotalDuration(),
		Finished:       e.machine.Finished(),
		AtEnd:          e.machine.AtEnd(),
		HighlightIndex: idx,
		EditIndex:      -1,
	}
	if session, open := e.editor.Session(); open {
		s.Editing = true
		s.EditIndex = session.Index
	}
	return s
}
