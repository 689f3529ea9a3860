package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// Beeper is a collectible. Collected only flips back on restart.
type Beeper struct {
	Pos       core.Vec2 // center
	Radius    float64
	Points    int
	Collected bool
}

// TryCollect collects the beeper when center is strictly closer than dist.
// Already collected beepers are ignored.
func (b *Beeper) TryCollect(center core.Vec2, dist float64) bool {
	if b.Collected {
		return false
	}
	if b.Pos.Dist(center) >= dist {
		return false
	}
	b.Collected = true
	return true
}

// Bounds returns the beeper's bounding square.
func (b *Beeper) Bounds() core.Rect {
	return core.RectAround(b.Pos, b.Radius)
}
