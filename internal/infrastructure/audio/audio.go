// Package audio plays short sine cues for battlefield events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short tone
type Cue struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // linear, 0..1
}

var (
	// CueKill is the high blip played when an enemy dies
	CueKill = Cue{Freq: 880, Duration: 60 * time.Millisecond, Volume: 0.25}
	// CueLeak is the low tone played when a life is lost
	CueLeak = Cue{Freq: 196, Duration: 220 * time.Millisecond, Volume: 0.4}
)

// Player mixes cues onto the speaker. The zero value and a Player whose
// speaker failed to start are silent.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

// NewPlayer starts the speaker. On error the returned Player is still usable and silent.
func NewPlayer() (*Player, error) {
	p := &Player{mixer: &beep.Mixer{}}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return p, err
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return p, nil
}

// Play queues c
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Add(Tone(c, sampleRate))
	speaker.Unlock()
}

// Close stops playback and releases the device
func (p *Player) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
	return nil
}

// Tone renders c as a finite sine with a linear fade out
func Tone(c Cue, sr beep.SampleRate) beep.Streamer {
	s := &sine{step: c.Freq / float64(sr), total: sr.N(c.Duration)}
	if c.Volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(c.Volume)}
}

type sine struct {
	phase float64
	step  float64
	pos   int
	total int
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		fade := 1 - float64(s.pos)/float64(s.total)
		v := math.Sin(2*math.Pi*s.phase) * fade
		samples[i][0], samples[i][1] = v, v

		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }
