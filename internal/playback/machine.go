package playback

import (
	"time"
)

// Mode is the transport state.
type Mode int

const (
	ModeStopped Mode = iota
	ModePlaying
	ModePaused
	ModeSeeking
	// ModeFinished is entered when playback runs to the end on its own.
	// It differs from ModeStopped, which is entered only by Stop.
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModeStopped:
		return "stopped"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeSeeking:
		return "seeking"
	case ModeFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Machine is the transport state machine. It knows nothing about words, only
// about the current time and the total duration it is clamped to.
//
// Machine is not safe for concurrent use.
type Machine struct {
	mode            Mode
	current         time.Duration
	total           time.Duration
	resumeAfterSeek bool
}

func NewMachine(total time.Duration) *Machine {
	return &Machine{
		mode:  ModeStopped,
		total: max(total, 0),
	}
}

func (m *Machine) Mode() Mode                   { return m.mode }
func (m *Machine) CurrentTime() time.Duration   { return m.current }
func (m *Machine) TotalDuration() time.Duration { return m.total }

// Finished reports whether playback ran to the end and has not been restarted.
func (m *Machine) Finished() bool {
	return m.mode == ModeFinished
}

// AtEnd reports whether the cursor sits at (or past) the total duration.
func (m *Machine) AtEnd() bool {
	return m.current >= m.total
}

// Play starts playback. From Stopped or Finished it restarts at zero, from
// Paused it resumes in place. Playing and Seeking are left alone.
func (m *Machine) Play() {
	switch m.mode {
	case ModeStopped, ModeFinished:
		m.current = 0
		m.mode = ModePlaying
	case ModePaused:
		m.mode = ModePlaying
	}
}

// Pause freezes the cursor. Only has an effect while Playing.
func (m *Machine) Pause() {
	if m.mode == ModePlaying {
		m.mode = ModePaused
	}
}

// Stop rewinds to zero from any state.
func (m *Machine) Stop() {
	m.mode = ModeStopped
	m.current = 0
	m.resumeAfterSeek = false
}

// Tick advances the cursor by elapsed while Playing. Reaching the total
// duration clamps the cursor and enters Finished.
func (m *Machine) Tick(elapsed time.Duration) {
	if m.mode != ModePlaying {
		return
	}

	m.current += elapsed
	if m.current >= m.total {
		m.current = m.total
		m.mode = ModeFinished
	}
}

// SeekBegin enters Seeking and remembers whether playback should resume when
// the seek ends. A repeated SeekBegin keeps the original decision.
func (m *Machine) SeekBegin() {
	if m.mode == ModeSeeking {
		return
	}
	m.resumeAfterSeek = m.mode == ModePlaying
	m.mode = ModeSeeking
}

// SeekTo moves the cursor, clamped to [0, total]. The mode is not changed.
func (m *Machine) SeekTo(t time.Duration) {
	m.current = m.clamp(t)
}

// SeekEnd leaves Seeking, resuming playback if it was running before.
func (m *Machine) SeekEnd() {
	if m.mode != ModeSeeking {
		return
	}

	if m.resumeAfterSeek {
		m.mode = ModePlaying
	} else {
		m.mode = ModePaused
	}
	m.resumeAfterSeek = false
}

func (m *Machine) clamp(t time.Duration) time.Duration {
	return min(max(t, 0), m.total)
}
