package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(n int64) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func tickN(m *Machine, n int) {
	for range n {
		m.Tick(DefaultTickInterval)
	}
}

func TestMachine_Initial(t *testing.T) {
	m := NewMachine(ms(1000))
	assert.Equal(t, ModeStopped, m.Mode())
	assert.Equal(t, time.Duration(0), m.CurrentTime())
	assert.Equal(t, ms(1000), m.TotalDuration())
	assert.False(t, m.Finished())
}

func TestMachine_StopFromAnyState(t *testing.T) {
	setups := map[string]func(m *Machine){
		"stopped": func(m *Machine) {},
		"playing": func(m *Machine) { m.Play(); tickN(m, 3) },
		"paused":  func(m *Machine) { m.Play(); tickN(m, 3); m.Pause() },
		"seeking": func(m *Machine) { m.Play(); m.SeekBegin(); m.SeekTo(ms(700)) },
		"finished": func(m *Machine) {
			m.Play()
			tickN(m, 20)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			m := NewMachine(ms(1000))
			setup(m)
			m.Stop()
			assert.Equal(t, ModeStopped, m.Mode())
			assert.Equal(t, time.Duration(0), m.CurrentTime())
			assert.False(t, m.Finished())
		})
	}
}

func TestMachine_PlayFromStoppedResets(t *testing.T) {
	m := NewMachine(ms(1000))
	m.SeekTo(ms(400))
	require.Equal(t, ModeStopped, m.Mode())

	m.Play()
	assert.Equal(t, ModePlaying, m.Mode())
	assert.Equal(t, time.Duration(0), m.CurrentTime())
}

func TestMachine_PlayFromPausedPreserves(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Play()
	tickN(m, 4)
	m.Pause()
	require.Equal(t, ms(400), m.CurrentTime())

	m.Play()
	assert.Equal(t, ModePlaying, m.Mode())
	assert.Equal(t, ms(400), m.CurrentTime())
}

func TestMachine_PlayIsIdempotent(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Play()
	tickN(m, 2)
	m.Play()
	assert.Equal(t, ModePlaying, m.Mode())
	assert.Equal(t, ms(200), m.CurrentTime())

	m.SeekBegin()
	m.Play()
	assert.Equal(t, ModeSeeking, m.Mode())
}

func TestMachine_PauseOnlyFromPlaying(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Pause()
	assert.Equal(t, ModeStopped, m.Mode())

	m.SeekBegin()
	m.Pause()
	assert.Equal(t, ModeSeeking, m.Mode())
}

func TestMachine_TickOnlyWhilePlaying(t *testing.T) {
	m := NewMachine(ms(1000))
	tickN(m, 3)
	assert.Equal(t, time.Duration(0), m.CurrentTime())

	m.Play()
	tickN(m, 3)
	m.Pause()
	tickN(m, 3)
	assert.Equal(t, ms(300), m.CurrentTime())

	m.SeekBegin()
	tickN(m, 3)
	assert.Equal(t, ms(300), m.CurrentTime())
}

func TestMachine_TickClampsAndFinishes(t *testing.T) {
	m := NewMachine(ms(950))
	m.Play()

	for range 50 {
		m.Tick(DefaultTickInterval)
		require.LessOrEqual(t, m.CurrentTime(), m.TotalDuration())
	}

	assert.Equal(t, ModeFinished, m.Mode())
	assert.Equal(t, ms(950), m.CurrentTime())
	assert.True(t, m.Finished())
	assert.True(t, m.AtEnd())

	m.Tick(DefaultTickInterval)
	assert.Equal(t, ms(950), m.CurrentTime())
}

func TestMachine_FinishedAndStoppedAreDistinct(t *testing.T) {
	m := NewMachine(ms(500))
	m.Play()
	tickN(m, 5)
	require.True(t, m.Finished())
	require.True(t, m.AtEnd())

	m.Stop()
	assert.False(t, m.Finished())
	assert.False(t, m.AtEnd())
	assert.Equal(t, ModeStopped, m.Mode())
}

func TestMachine_PlayAfterFinishedRestarts(t *testing.T) {
	m := NewMachine(ms(300))
	m.Play()
	tickN(m, 3)
	require.Equal(t, ModeFinished, m.Mode())

	m.Play()
	assert.Equal(t, ModePlaying, m.Mode())
	assert.Equal(t, time.Duration(0), m.CurrentTime())
}

func TestMachine_ZeroDuration(t *testing.T) {
	m := NewMachine(0)
	assert.True(t, m.AtEnd())

	m.Play()
	m.Tick(DefaultTickInterval)
	assert.Equal(t, ModeFinished, m.Mode())
	assert.Equal(t, time.Duration(0), m.CurrentTime())
}

func TestMachine_SeekRestoresMode(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
		want  Mode
	}{
		{name: "from playing", setup: func(m *Machine) { m.Play() }, want: ModePlaying},
		{name: "from paused", setup: func(m *Machine) { m.Play(); m.Pause() }, want: ModePaused},
		{name: "from stopped", setup: func(m *Machine) {}, want: ModePaused},
		{name: "from finished", setup: func(m *Machine) { m.Play(); tickN(m, 20) }, want: ModePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(ms(1000))
			tt.setup(m)

			m.SeekBegin()
			assert.Equal(t, ModeSeeking, m.Mode())
			m.SeekTo(ms(250))
			m.SeekEnd()

			assert.Equal(t, tt.want, m.Mode())
			assert.Equal(t, ms(250), m.CurrentTime())
		})
	}
}

func TestMachine_RepeatedSeekBeginKeepsResume(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Play()
	m.SeekBegin()
	m.SeekBegin()
	m.SeekEnd()
	assert.Equal(t, ModePlaying, m.Mode())
}

func TestMachine_SeekEndOutsideSeekingIsNoop(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Play()
	m.SeekEnd()
	assert.Equal(t, ModePlaying, m.Mode())
}

func TestMachine_SeekToClamps(t *testing.T) {
	m := NewMachine(ms(1000))

	m.SeekTo(-ms(5))
	assert.Equal(t, time.Duration(0), m.CurrentTime())

	m.SeekTo(ms(5000))
	assert.Equal(t, ms(1000), m.CurrentTime())

	m.SeekTo(ms(600))
	assert.Equal(t, ms(600), m.CurrentTime())
	assert.Equal(t, ModeStopped, m.Mode())
}

func TestMachine_StopDuringSeekForgetsResume(t *testing.T) {
	m := NewMachine(ms(1000))
	m.Play()
	m.SeekBegin()
	m.Stop()
	m.SeekBegin()
	m.SeekEnd()
	assert.Equal(t, ModePaused, m.Mode())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "stopped", ModeStopped.String())
	assert.Equal(t, "playing", ModePlaying.String())
	assert.Equal(t, "paused", ModePaused.String())
	assert.Equal(t, "seeking", ModeSeeking.String())
	assert.Equal(t, "finished", ModeFinished.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
