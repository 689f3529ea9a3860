package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// Camera is a forward-only horizontal scroller. Its target never decreases,
// and its position eases toward the target, so walking left never scrolls back.
type Camera struct {
	X      float64
	Target float64

	viewport core.Vec2
	maxX     float64
	follow   float64
}

func newCamera(viewportW, viewportH, worldW, follow float64) *Camera {
	maxX := worldW - viewportW
	if maxX < 0 {
		maxX = 0
	}
	return &Camera{
		viewport: core.Vec2{X: viewportW, Y: viewportH},
		maxX:     maxX,
		follow:   follow,
	}
}

// Update moves the camera toward keeping characterX at the viewport center.
func (c *Camera) Update(characterX float64) {
	if ideal := characterX - c.viewport.X/2; ideal > c.Target {
		c.Target = ideal
	}
	c.Target = core.ClampF(c.Target, 0, c.maxX)

	c.X += (c.Target - c.X) * c.follow
	c.X = core.ClampF(c.X, 0, c.maxX)
}

// WorldToScreen converts a world point to viewport coordinates.
// The camera only scrolls horizontally; shake applies to both axes.
func (c *Camera) WorldToScreen(p, shake core.Vec2) core.Vec2 {
	return core.Vec2{X: p.X - c.X + shake.X, Y: p.Y + shake.Y}
}

// RectToScreen converts a world rectangle to viewport coordinates.
func (c *Camera) RectToScreen(r core.Rect, shake core.Vec2) core.Rect {
	p := c.WorldToScreen(core.Vec2{X: r.X, Y: r.Y}, shake)
	return core.NewRect(p.X, p.Y, r.W, r.H)
}

// Visible reports whether a screen-space rectangle intersects the viewport.
func (c *Camera) Visible(screen core.Rect) bool {
	return screen.Intersects(core.NewRect(0, 0, c.viewport.X, c.viewport.Y))
}
