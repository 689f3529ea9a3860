// Package config provides YAML-based tunables for the Karel simulation.
// Values are loaded once and passed by value into the simulation constructor,
// so independently tuned sessions can coexist in one process.
package config

// KarelConfig contains all configuration for Karel's Code Quest.
type KarelConfig struct {
	Viewport     Viewport     `yaml:"viewport"`
	Physics      Physics      `yaml:"physics"`
	Character    Character    `yaml:"character"`
	Camera       Camera       `yaml:"camera"`
	Collectibles Collectibles `yaml:"collectibles"`
	Goal         Goal         `yaml:"goal"`
	Particles    Particles    `yaml:"particles"`
	Shake        Shake        `yaml:"shake"`
}

// Viewport defines the visible area in world pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines the per-tick movement constants.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	MoveSpeed        float64 `yaml:"move_speed"`
	FallBuffer       float64 `yaml:"fall_buffer"` // distance below the viewport that triggers a respawn
}

// Character defines Karel's bounding box.
type Character struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Camera defines scroll smoothing.
type Camera struct {
	FollowFactor float64 `yaml:"follow_factor"`
}

// Collectibles defines beeper pickup and placement parameters.
type Collectibles struct {
	CollectDistance  float64   `yaml:"collect_distance"`
	Radius           float64   `yaml:"radius"`
	Points           int       `yaml:"points"`
	Neighborhood     float64   `yaml:"neighborhood"`
	HorizontalNudges []float64 `yaml:"horizontal_nudges"`
	VerticalNudges   []float64 `yaml:"vertical_nudges"`
}

// Goal defines the goal marker and the win sequence.
type Goal struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	WinTimerTicks      int     `yaml:"win_timer_ticks"`
	RestartPromptBelow int     `yaml:"restart_prompt_below"`
}

// Particles defines the pickup burst.
type Particles struct {
	Enabled  bool    `yaml:"enabled"`
	Count    int     `yaml:"count"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	Lifetime int     `yaml:"lifetime"`
}

// Shake defines the screen shake played after a fall.
type Shake struct {
	DurationTicks int     `yaml:"duration_ticks"`
	Intensity     float64 `yaml:"intensity"`
}
