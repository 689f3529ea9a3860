// Package audio plays short synthesized cues for simulation events.
// Every sound is generated, so there are no asset files to ship.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
)

// SampleRate is the playback rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Player mixes cues onto the speaker. A nil *Player is silent, so callers
// that failed to open audio can keep calling Play.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// Open initializes the speaker. Volume is a linear gain in [0, 1].
func Open(volume float64) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	p := &Player{mixer: &beep.Mixer{}, volume: clampGain(volume)}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues the cue for an event kind. Unknown kinds are ignored.
func (p *Player) Play(kind sim.EventKind) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s := Cue(kind, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending cues and releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Cue builds the finite streamer for an event kind at the given gain,
// or nil for kinds without a sound.
func Cue(kind sim.EventKind, gain float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case sim.EventPickup:
		// B5 then E6, a short coin chime
		s = beep.Seq(
			tone(987.77, 60*time.Millisecond, 5*time.Millisecond),
			tone(1318.51, 140*time.Millisecond, 80*time.Millisecond),
		)
	case sim.EventFell:
		s = sweep(440, 110, 350*time.Millisecond)
	case sim.EventVictory:
		// C major arpeggio
		s = beep.Seq(
			tone(523.25, 110*time.Millisecond, 20*time.Millisecond),
			tone(659.25, 110*time.Millisecond, 20*time.Millisecond),
			tone(783.99, 110*time.Millisecond, 20*time.Millisecond),
			tone(1046.50, 320*time.Millisecond, 200*time.Millisecond),
		)
	default:
		return nil
	}
	return withGain(s, gain)
}

// tone is a sine note of fixed length whose last release fades to zero.
func tone(freq float64, length, release time.Duration) beep.Streamer {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return beep.Silence(SampleRate.N(length))
	}
	return fadeOut(beep.Take(SampleRate.N(length), sine), SampleRate.N(length), SampleRate.N(release))
}

// sweep glides a sine from one frequency to another with a linear fade.
func sweep(from, to float64, length time.Duration) beep.Streamer {
	total := SampleRate.N(length)
	pos, phase := 0, 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(total)
			freq := from + (to-from)*t
			v := math.Sin(2*math.Pi*phase) * (1 - t)
			samples[i][0], samples[i][1] = v, v
			phase += freq / float64(SampleRate)
			phase -= math.Floor(phase)
			pos++
			n++
		}
		return n, true
	})
}

// fadeOut scales the last release samples of a total-sample stream down to zero.
func fadeOut(s beep.Streamer, total, release int) beep.Streamer {
	pos := 0
	start := total - release
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range n {
			if release > 0 && pos >= start {
				g := float64(total-pos) / float64(release)
				samples[i][0] *= g
				samples[i][1] *= g
			}
			pos++
		}
		return n, ok
	})
}

// withGain applies a linear gain. effects.Volume works in log2 steps and
// log2(0) is -Inf, so zero gain is handled as silence.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	gain = clampGain(gain)
	if gain == 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func clampGain(g float64) float64 {
	return math.Max(0, math.Min(g, 1))
}
