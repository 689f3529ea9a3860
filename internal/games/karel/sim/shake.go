package sim

import (
	"math/rand"

	"github.com/vovakirdan/karel-quest/internal/core"
)

// Shake is a decaying random render offset. It never touches world state.
type Shake struct {
	Offset core.Vec2

	remaining int
	duration  int
	intensity float64
	rng       *rand.Rand
}

func newShake(duration int, intensity float64, seed int64) *Shake {
	return &Shake{
		duration:  duration,
		intensity: intensity,
		rng:       rand.New(rand.NewSource(seed)), //#nosec G404 -- cosmetic jitter
	}
}

// Start (re)starts the shake at full amplitude.
func (s *Shake) Start() {
	s.remaining = s.duration
}

// Active reports whether the shake still has ticks left.
func (s *Shake) Active() bool {
	return s.remaining > 0
}

// Update rolls this tick's offset and decays the amplitude.
func (s *Shake) Update() {
	if s.remaining <= 0 || s.duration <= 0 {
		s.Offset = core.Vec2{}
		return
	}
	amp := s.intensity * float64(s.remaining) / float64(s.duration)
	s.Offset = core.Vec2{
		X: (s.rng.Float64()*2 - 1) * amp,
		Y: (s.rng.Float64()*2 - 1) * amp,
	}
	s.remaining--
}
