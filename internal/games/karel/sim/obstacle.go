package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// ObstacleKind tags the static geometry variants.
type ObstacleKind int

const (
	KindPlatform ObstacleKind = iota // can be landed on and bumped from below
	KindWall                         // additionally blocks horizontal movement
	KindGround                       // ground segment; gaps between segments are pits
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindWall:
		return "wall"
	case KindGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Obstacle is an immutable axis-aligned rectangle of level geometry.
// All kinds share one collision routine; BlocksLateral selects wall behavior.
type Obstacle struct {
	Kind          ObstacleKind
	Rect          core.Rect
	BlocksLateral bool
}

// Platform returns a platform obstacle.
func Platform(x, y, w, h float64) Obstacle {
	return Obstacle{Kind: KindPlatform, Rect: core.NewRect(x, y, w, h)}
}

// Wall returns a wall obstacle that blocks lateral movement.
func Wall(x, y, w, h float64) Obstacle {
	return Obstacle{Kind: KindWall, Rect: core.NewRect(x, y, w, h), BlocksLateral: true}
}

// Ground returns a ground segment.
func Ground(x, y, w, h float64) Obstacle {
	return Obstacle{Kind: KindGround, Rect: core.NewRect(x, y, w, h)}
}
