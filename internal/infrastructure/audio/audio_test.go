package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			peak = math.Max(peak, math.Abs(v[0]))
			assert.Equal(t, v[0], v[1])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestTone_Length(t *testing.T) {
	sr := beep.SampleRate(8000)
	total, _ := drain(t, Tone(Cue{Freq: 440, Duration: 100 * time.Millisecond, Volume: 1}, sr))
	assert.Equal(t, 800, total)
}

func TestTone_VolumeScales(t *testing.T) {
	sr := beep.SampleRate(8000)
	_, loud := drain(t, Tone(Cue{Freq: 440, Duration: 50 * time.Millisecond, Volume: 1}, sr))
	_, quiet := drain(t, Tone(Cue{Freq: 440, Duration: 50 * time.Millisecond, Volume: 0.25}, sr))

	assert.LessOrEqual(t, loud, 1.0)
	assert.InDelta(t, loud*0.25, quiet, 1e-9)
}

func TestTone_Silent(t *testing.T) {
	_, peak := drain(t, Tone(Cue{Freq: 440, Duration: 10 * time.Millisecond}, beep.SampleRate(8000)))
	assert.Zero(t, peak)
}

func TestPlayer_NilAndDisabledAreSilent(t *testing.T) {
	var p *Player
	assert.NotPanics(t, func() { p.Play(CueKill) })
	assert.NoError(t, p.Close())

	disabled := &Player{mixer: &beep.Mixer{}}
	disabled.Play(CueLeak)
	assert.Equal(t, 0, disabled.mixer.Len())
	assert.NoError(t, disabled.Close())
}
