package sim

import (
	"math"

	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
)

// Particle is a short-lived cosmetic spark.
type Particle struct {
	Pos       core.Vec2
	Vel       core.Vec2
	Remaining int
	Lifetime  int
}

// Burst spawns cfg.Count particles radiating from at, evenly spaced in angle.
func Burst(at core.Vec2, cfg config.Particles) []Particle {
	if !cfg.Enabled || cfg.Count <= 0 || cfg.Lifetime <= 0 {
		return nil
	}
	out := make([]Particle, 0, cfg.Count)
	for i := range cfg.Count {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Count)
		out = append(out, Particle{
			Pos:       at,
			Vel:       core.Vec2{X: math.Cos(angle) * cfg.Speed, Y: math.Sin(angle) * cfg.Speed},
			Remaining: cfg.Lifetime,
			Lifetime:  cfg.Lifetime,
		})
	}
	return out
}

// Update moves the particle and burns one tick of lifetime.
func (p *Particle) Update(gravity float64) {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel.Y += gravity
	p.Remaining--
}

// Alive reports whether the particle has lifetime left.
func (p *Particle) Alive() bool {
	return p.Remaining > 0
}

// FadeRatio is the remaining fraction of lifetime in [0, 1].
func (p *Particle) FadeRatio() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return float64(p.Remaining) / float64(p.Lifetime)
}

// sweepParticles advances every particle and drops expired ones,
// keeping insertion order.
func sweepParticles(ps []Particle, gravity float64) []Particle {
	alive := ps[:0]
	for i := range ps {
		ps[i].Update(gravity)
		if ps[i].Alive() {
			alive = append(alive, ps[i])
		}
	}
	return alive
}
