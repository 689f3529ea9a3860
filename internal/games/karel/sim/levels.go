package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// groundTop is the y of the ground surface in both built-in levels.
const groundTop = 430

// Classic is the original single-screen arena: four platforms over a
// full-width floor.
func Classic() LevelSpec {
	return LevelSpec{
		ID:         "classic",
		Name:       "Karel's World",
		WorldWidth: 640,
		Spawn:      core.Vec2{X: 50, Y: 380},
		Obstacles: []Obstacle{
			Platform(200, 400, 100, 20),
			Platform(350, 320, 80, 20),
			Platform(480, 240, 120, 20),
			Platform(600, 160, 100, 20),
			Ground(0, groundTop, 640, 50),
		},
		Beepers: []core.Vec2{
			{X: 250, Y: 380},
			{X: 390, Y: 300},
			{X: 540, Y: 220},
			{X: 620, Y: 140},
		},
		InfiniteGround: true,
		GroundY:        groundTop,
	}
}

// Quest is the scrolling level: ground segments with pits, walls to jump,
// platforms carrying beepers and the goal at the far end.
func Quest() LevelSpec {
	goal := core.Vec2{X: 3100, Y: groundTop - 80}
	return LevelSpec{
		ID:         "quest",
		Name:       "Code Quest",
		WorldWidth: 3200,
		Spawn:      core.Vec2{X: 50, Y: groundTop - 32},
		Obstacles: []Obstacle{
			Ground(0, groundTop, 800, 50),
			Ground(900, groundTop, 700, 50),
			Ground(1720, groundTop, 600, 50),
			Ground(2420, groundTop, 780, 50),

			Wall(500, 350, 30, 80),
			Wall(1300, 330, 30, 100),
			Wall(2700, 340, 30, 90),

			Platform(300, 340, 120, 20),
			Platform(650, 300, 100, 20),
			Platform(1050, 330, 120, 20),
			Platform(1200, 250, 100, 20),
			Platform(1450, 300, 120, 20),
			Platform(1900, 320, 120, 20),
			Platform(2100, 260, 100, 20),
			Platform(2550, 320, 100, 20),
			Platform(2850, 300, 120, 20),
		},
		Beepers: []core.Vec2{
			{X: 150, Y: 400},
			{X: 360, Y: 315},
			{X: 515, Y: 400}, // against the first wall
			{X: 700, Y: 275},
			{X: 850, Y: 380},
			{X: 1110, Y: 305},
			{X: 1250, Y: 225},
			{X: 1315, Y: 400}, // against the second wall
			{X: 1510, Y: 275},
			{X: 1960, Y: 295},
			{X: 2150, Y: 235},
			{X: 2380, Y: 380},
			{X: 2600, Y: 295},
			{X: 2910, Y: 275},
			{X: 3000, Y: 400},
		},
		Goal:    &goal,
		GroundY: groundTop,
	}
}
