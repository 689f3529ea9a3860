package core

// RuntimeConfig is what a shell hands a game on Reset.
type RuntimeConfig struct {
	// ScreenW and ScreenH are the cell grid size for terminal shells.
	// The window shell leaves them zero.
	ScreenW int
	ScreenH int

	TickRate int   // simulation ticks per second
	Seed     int64 // screen shake RNG seed; 0 lets the shell pick one
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the coarse status a shell needs after each tick.
type GameState struct {
	Score    int
	GameOver bool // Karel reached the goal
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
