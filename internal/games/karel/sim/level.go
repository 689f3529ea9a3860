package sim

import (
	"fmt"

	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
)

// LevelSpec is hand-authored level data. Beeper positions are centers and
// may overlap geometry; Build nudges them clear.
type LevelSpec struct {
	ID         string
	Name       string
	WorldWidth float64
	Spawn      core.Vec2 // character top-left at start and after a fall
	Obstacles  []Obstacle
	Beepers    []core.Vec2
	Goal       *core.Vec2 // goal top-left; nil for levels without an exit

	// InfiniteGround adds an implicit floor at GroundY under the whole world,
	// turning a gap level into a closed arena.
	InfiniteGround bool
	GroundY        float64
}

// LevelBuildError reports level data that cannot be turned into a playable level.
type LevelBuildError struct {
	LevelID string
	Entity  string // "level", "obstacle", "beeper", "spawn" or "goal"
	Index   int    // entity index, -1 when not applicable
	Reason  string
}

func (e *LevelBuildError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("level %q: %s: %s", e.LevelID, e.Entity, e.Reason)
	}
	return fmt.Sprintf("level %q: %s %d: %s", e.LevelID, e.Entity, e.Index, e.Reason)
}

// Level is a built level. Obstacles are shared and never mutated; beepers
// and goal are rebuilt from the resolved placements by Reset.
type Level struct {
	ID             string
	Name           string
	WorldWidth     float64
	Spawn          core.Vec2
	Obstacles      []Obstacle
	Beepers        []Beeper
	Goal           *GoalMarker
	InfiniteGround bool
	GroundY        float64

	placements []core.Vec2
	goalRect   *core.Rect
	beeperTmpl Beeper
}

// Build validates spec and resolves beeper placements against the geometry.
func Build(spec LevelSpec, cfg config.KarelConfig) (*Level, error) {
	fail := func(entity string, index int, format string, args ...any) error {
		return &LevelBuildError{LevelID: spec.ID, Entity: entity, Index: index, Reason: fmt.Sprintf(format, args...)}
	}

	if spec.WorldWidth < cfg.Character.Width {
		return nil, fail("level", -1, "world width %.0f is narrower than the character", spec.WorldWidth)
	}
	for i, ob := range spec.Obstacles {
		if ob.Rect.W <= 0 || ob.Rect.H <= 0 {
			return nil, fail("obstacle", i, "%s has non-positive extent %.0fx%.0f", ob.Kind, ob.Rect.W, ob.Rect.H)
		}
	}

	sp := spec.Spawn
	if sp.X < 0 || sp.X+cfg.Character.Width > spec.WorldWidth ||
		sp.Y < 0 || sp.Y+cfg.Character.Height > cfg.Viewport.Height {
		return nil, fail("spawn", -1, "(%.0f, %.0f) is outside the world", sp.X, sp.Y)
	}

	lvl := &Level{
		ID:             spec.ID,
		Name:           spec.Name,
		WorldWidth:     spec.WorldWidth,
		Spawn:          spec.Spawn,
		Obstacles:      spec.Obstacles,
		InfiniteGround: spec.InfiniteGround,
		GroundY:        spec.GroundY,
		beeperTmpl: Beeper{
			Radius: cfg.Collectibles.Radius,
			Points: cfg.Collectibles.Points,
		},
	}

	if spec.Goal != nil {
		r := core.NewRect(spec.Goal.X, spec.Goal.Y, cfg.Goal.Width, cfg.Goal.Height)
		if r.X < 0 || r.Right() > spec.WorldWidth {
			return nil, fail("goal", -1, "x %.0f is outside the world", r.X)
		}
		lvl.goalRect = &r
	}

	lvl.placements = make([]core.Vec2, 0, len(spec.Beepers))
	for i, p := range spec.Beepers {
		resolved, ok := lvl.place(p, cfg.Collectibles)
		if !ok {
			return nil, fail("beeper", i, "no clear position near (%.0f, %.0f)", p.X, p.Y)
		}
		lvl.placements = append(lvl.placements, resolved)
	}

	lvl.Reset()
	return lvl, nil
}

// place returns p, or the first nudged position clear of geometry:
// horizontal offsets first, then vertical.
func (l *Level) place(p core.Vec2, cfg config.Collectibles) (core.Vec2, bool) {
	candidates := make([]core.Vec2, 0, 1+len(cfg.HorizontalNudges)+len(cfg.VerticalNudges))
	candidates = append(candidates, p)
	for _, dx := range cfg.HorizontalNudges {
		candidates = append(candidates, core.Vec2{X: p.X + dx, Y: p.Y})
	}
	for _, dy := range cfg.VerticalNudges {
		candidates = append(candidates, core.Vec2{X: p.X, Y: p.Y + dy})
	}

	for _, c := range candidates {
		if c.X < 0 || c.X > l.WorldWidth {
			continue
		}
		if !l.Conflicts(c, cfg.Neighborhood) {
			return c, true
		}
	}
	return core.Vec2{}, false
}

// Conflicts reports whether a beeper at p would sit in solid geometry: its
// neighborhood touches a wall, or its center is inside any other obstacle
// or below the implicit ground.
func (l *Level) Conflicts(p core.Vec2, neighborhood float64) bool {
	area := core.RectAround(p, neighborhood)
	for _, ob := range l.Obstacles {
		if ob.BlocksLateral {
			if area.Intersects(ob.Rect) {
				return true
			}
			continue
		}
		if ob.Rect.Contains(p.X, p.Y) {
			return true
		}
	}
	return l.InfiniteGround && p.Y >= l.GroundY
}

// Reset rebuilds beepers and goal in their initial state.
func (l *Level) Reset() {
	l.Beepers = make([]Beeper, len(l.placements))
	for i, p := range l.placements {
		b := l.beeperTmpl
		b.Pos = p
		l.Beepers[i] = b
	}

	l.Goal = nil
	if l.goalRect != nil {
		l.Goal = &GoalMarker{Rect: *l.goalRect}
	}
}

// Collected returns how many beepers have been collected.
func (l *Level) Collected() int {
	n := 0
	for i := range l.Beepers {
		if l.Beepers[i].Collected {
			n++
		}
	}
	return n
}

// Total returns the number of beepers in the level.
func (l *Level) Total() int {
	return len(l.Beepers)
}

// Progress is collected/total, or 0 for a level without beepers.
func (l *Level) Progress() float64 {
	if len(l.Beepers) == 0 {
		return 0
	}
	return float64(l.Collected()) / float64(len(l.Beepers))
}
