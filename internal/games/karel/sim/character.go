package sim

import (
	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
)

// Input is the per-tick command snapshot supplied by a shell.
type Input struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool
}

// Character is Karel: a box moved by input and gravity and resolved
// against the level's obstacles every tick.
type Character struct {
	Pos        core.Vec2 // top-left corner in world pixels
	VY         float64   // vertical velocity, positive is down
	Grounded   bool
	FacingLeft bool

	width, height float64
	phys          config.Physics
	viewportH     float64
}

func newCharacter(spawn core.Vec2, cfg config.KarelConfig) *Character {
	return &Character{
		Pos:       spawn,
		width:     cfg.Character.Width,
		height:    cfg.Character.Height,
		phys:      cfg.Physics,
		viewportH: cfg.Viewport.Height,
	}
}

// Rect returns the character's bounding box in world space.
func (c *Character) Rect() core.Rect {
	return core.NewRect(c.Pos.X, c.Pos.Y, c.width, c.height)
}

// Center returns the center of the bounding box.
func (c *Character) Center() core.Vec2 {
	return c.Rect().Center()
}

// Bottom returns the y-coordinate of the character's feet.
func (c *Character) Bottom() float64 {
	return c.Pos.Y + c.height
}

// Update advances the character one tick and reports whether it fell out
// of the world and was respawned.
func (c *Character) Update(in Input, lvl *Level) (fell bool) {
	if in.MoveLeft {
		c.moveHorizontal(-c.phys.MoveSpeed, lvl)
		c.FacingLeft = true
	}
	if in.MoveRight {
		c.moveHorizontal(c.phys.MoveSpeed, lvl)
		c.FacingLeft = false
	}

	if in.Jump && c.Grounded {
		c.VY = c.phys.JumpVelocity
		c.Grounded = false
	}

	if !c.Grounded {
		c.VY += c.phys.Gravity
		if c.VY > c.phys.TerminalVelocity {
			c.VY = c.phys.TerminalVelocity
		}
	}

	c.Pos.Y += c.VY
	c.resolveVertical(lvl)

	if c.Pos.Y > c.viewportH+c.phys.FallBuffer {
		c.respawn(lvl.Spawn)
		return true
	}
	return false
}

// moveHorizontal applies a clamped lateral step, reverting it if the new
// position overlaps an obstacle that blocks lateral movement.
func (c *Character) moveHorizontal(dx float64, lvl *Level) {
	prev := c.Pos.X
	maxX := lvl.WorldWidth - c.width
	if maxX < 0 {
		maxX = 0
	}
	c.Pos.X = core.ClampF(c.Pos.X+dx, 0, maxX)

	r := c.Rect()
	for _, ob := range lvl.Obstacles {
		if ob.BlocksLateral && r.Intersects(ob.Rect) {
			c.Pos.X = prev
			return
		}
	}
}

// resolveVertical snaps the character onto the first obstacle it landed on
// or under the first obstacle it bumped, in obstacle order. The swept
// interval covers the whole tick's displacement, so a fall faster than an
// obstacle's thickness still lands.
func (c *Character) resolveVertical(lvl *Level) {
	c.Grounded = false
	r := c.Rect()
	top, bottom := r.Y, r.Bottom()

	for _, ob := range lvl.Obstacles {
		if !r.OverlapsX(ob.Rect) {
			continue
		}
		obTop, obBottom := ob.Rect.Y, ob.Rect.Bottom()

		if c.VY >= 0 && bottom >= obTop && bottom-c.VY <= obBottom {
			c.Pos.Y = obTop - c.height
			c.VY = 0
			c.Grounded = true
			return
		}
		if c.VY < 0 && top <= obBottom && top-c.VY >= obTop {
			c.Pos.Y = obBottom
			c.VY = 0
			return
		}
	}

	if lvl.InfiniteGround && bottom >= lvl.GroundY {
		c.Pos.Y = lvl.GroundY - c.height
		c.VY = 0
		c.Grounded = true
	}
}

func (c *Character) respawn(spawn core.Vec2) {
	c.Pos = spawn
	c.VY = 0
	c.Grounded = false
}
