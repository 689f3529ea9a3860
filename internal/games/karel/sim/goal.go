package sim

import (
	"math"

	"github.com/vovakirdan/karel-quest/internal/core"
)

// goalBands are the marker colors from no progress to all beepers collected.
var goalBands = []core.RGB{
	{R: 255, G: 0, B: 0},   // red
	{R: 255, G: 255, B: 0}, // yellow
	{R: 0, G: 255, B: 0},   // green
	{R: 0, G: 255, B: 255}, // cyan
	{R: 0, G: 0, B: 255},   // blue
}

// GoalMarker is the level exit. Reaching it wins the session once.
type GoalMarker struct {
	Rect    core.Rect
	Reached bool
}

// TryReach marks the goal reached when r overlaps it for the first time.
func (g *GoalMarker) TryReach(r core.Rect) bool {
	if g.Reached || !g.Rect.Intersects(r) {
		return false
	}
	g.Reached = true
	return true
}

// VisualRect is the drawn marker: 0.5x to 1.5x the base height depending on
// progress, sharing the base rect's bottom edge.
func (g *GoalMarker) VisualRect(progress float64) core.Rect {
	h := g.Rect.H * (0.5 + core.ClampF(progress, 0, 1))
	return core.NewRect(g.Rect.X, g.Rect.Bottom()-h, g.Rect.W, h)
}

// GoalColor interpolates the marker color across the progress bands.
func GoalColor(progress float64) core.RGB {
	p := core.ClampF(progress, 0, 1)
	segments := float64(len(goalBands) - 1)
	band := int(math.Min(math.Floor(p*segments), segments-1))
	t := p*segments - float64(band)
	return core.LerpRGB(goalBands[band], goalBands[band+1], t)
}
