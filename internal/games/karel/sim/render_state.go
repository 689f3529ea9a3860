package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// RenderState is everything a shell needs to draw one frame.
// All rects and positions are in screen space with shake applied.
type RenderState struct {
	Tick      uint64
	LevelName string
	Viewport  core.Vec2

	Character CharacterView
	Obstacles []ObstacleView
	Beepers   []BeeperView
	Goal      *GoalView
	Particles []ParticleView

	Score     int
	Collected int
	Total     int
	Progress  float64

	Won               bool
	WinTimer          int
	ShowRestartPrompt bool

	CameraX float64
	Shake   core.Vec2
	Events  []Event
}

// CharacterView is the drawn character.
type CharacterView struct {
	Rect       core.Rect
	FacingLeft bool
	Grounded   bool
}

// ObstacleView is a visible obstacle.
type ObstacleView struct {
	Kind ObstacleKind
	Rect core.Rect
}

// BeeperView is a visible uncollected beeper.
type BeeperView struct {
	Pos    core.Vec2
	Radius float64
}

// GoalView is the goal marker's drawn rect and color.
type GoalView struct {
	Rect    core.Rect
	Color   core.RGB
	Reached bool
}

// ParticleView is a live particle.
type ParticleView struct {
	Pos  core.Vec2
	Fade float64
}

func (s *Session) renderState() RenderState {
	shake := s.shake.Offset
	cam := s.camera
	progress := s.level.Progress()

	rs := RenderState{
		Tick:      s.tick,
		LevelName: s.level.Name,
		Viewport:  core.Vec2{X: s.cfg.Viewport.Width, Y: s.cfg.Viewport.Height},
		Character: CharacterView{
			Rect:       cam.RectToScreen(s.karel.Rect(), shake),
			FacingLeft: s.karel.FacingLeft,
			Grounded:   s.karel.Grounded,
		},
		Score:             s.score,
		Collected:         s.level.Collected(),
		Total:             s.level.Total(),
		Progress:          progress,
		Won:               s.won,
		WinTimer:          s.winTimer,
		ShowRestartPrompt: s.won && s.winTimer < s.cfg.Goal.RestartPromptBelow,
		CameraX:           cam.X,
		Shake:             shake,
		Events:            s.events,
	}

	for _, ob := range s.level.Obstacles {
		r := cam.RectToScreen(ob.Rect, shake)
		if cam.Visible(r) {
			rs.Obstacles = append(rs.Obstacles, ObstacleView{Kind: ob.Kind, Rect: r})
		}
	}

	for i := range s.level.Beepers {
		b := &s.level.Beepers[i]
		if b.Collected {
			continue
		}
		if cam.Visible(cam.RectToScreen(b.Bounds(), shake)) {
			rs.Beepers = append(rs.Beepers, BeeperView{Pos: cam.WorldToScreen(b.Pos, shake), Radius: b.Radius})
		}
	}

	if g := s.level.Goal; g != nil {
		r := cam.RectToScreen(g.VisualRect(progress), shake)
		if cam.Visible(r) {
			rs.Goal = &GoalView{Rect: r, Color: GoalColor(progress), Reached: g.Reached}
		}
	}

	for i := range s.particles {
		p := &s.particles[i]
		rs.Particles = append(rs.Particles, ParticleView{Pos: cam.WorldToScreen(p.Pos, shake), Fade: p.FadeRatio()})
	}

	return rs
}
