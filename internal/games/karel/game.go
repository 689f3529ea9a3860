// Package karel adapts the platformer simulation to the registry.Game
// interface used by the terminal shells, and registers the built-in levels.
package karel

import (
	"fmt"

	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
	"github.com/vovakirdan/karel-quest/internal/registry"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

// Game runs one level through a sim.Session.
type Game struct {
	id      string
	title   string
	spec    sim.LevelSpec
	cfg     config.KarelConfig
	session *sim.Session
	runtime core.RuntimeConfig
	last    sim.RenderState
	paused  bool
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// LoadConfig loads the Karel configuration from the configured search path.
func LoadConfig() (config.KarelConfig, error) {
	return config.LoadKarel(configPath)
}

// New creates a game for the given level. It fails when the configuration
// or the level data is invalid.
func New(id, title string, spec sim.LevelSpec) (*Game, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("karel: load config: %w", err)
	}
	return NewWithConfig(id, title, spec, cfg)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(id, title string, spec sim.LevelSpec, cfg config.KarelConfig) (*Game, error) {
	session, err := sim.New(spec, cfg, 0)
	if err != nil {
		return nil, fmt.Errorf("karel: %w", err)
	}
	return &Game{
		id:      id,
		title:   title,
		spec:    spec,
		cfg:     cfg,
		session: session,
		runtime: core.DefaultConfig(),
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a fresh session seeded from the runtime config.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	// The level was validated in New, so a rebuild with the same data only
	// changes the shake seed.
	if s, err := sim.New(g.spec, g.cfg, runtime.Seed); err == nil {
		g.session = s
	} else {
		g.session.Restart()
	}
	g.last = sim.RenderState{}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	won := g.session.Won()

	if in.Has(core.ActionPause) && !won {
		g.paused = !g.paused
	}
	if g.paused {
		g.last.Events = nil
		return core.StepResult{State: g.State()}
	}

	if won && in.Has(core.ActionRestart) {
		g.session.Restart()
	}

	g.last = g.session.AdvanceTick(Input(in))
	return core.StepResult{State: g.State()}
}

// Input maps platform actions to the simulation's command snapshot.
func Input(in core.InputFrame) sim.Input {
	return sim.Input{
		MoveLeft:  in.Has(core.ActionLeft),
		MoveRight: in.Has(core.ActionRight),
		Jump:      in.Has(core.ActionJump),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Won(),
		Paused:   g.paused,
	}
}

// Frame returns the render state produced by the last tick.
func (g *Game) Frame() sim.RenderState {
	return g.last
}

// Events returns the events of the last tick.
func (g *Game) Events() []sim.Event {
	return g.last.Events
}

// Ticks returns the number of ticks played since the last restart.
func (g *Game) Ticks() uint64 {
	return g.session.Tick()
}

// RunRecord summarizes the current run for the score store.
func (g *Game) RunRecord() storage.RunRecord {
	lvl := g.session.Level()
	return storage.RunRecord{
		GameID:    g.id,
		Score:     g.session.Score(),
		Collected: lvl.Collected(),
		Total:     lvl.Total(),
		Ticks:     int64(g.session.Tick()),
		Won:       g.session.Won(),
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Levels lists the built-in levels in menu order.
var Levels = []struct {
	ID    string
	Title string
	Spec  func() sim.LevelSpec
}{
	{"karel", "Karel's Code Quest", sim.Quest},
	{"karel_classic", "Karel's World (Classic)", sim.Classic},
}

// Register the built-in levels with the registry
func init() {
	for _, lvl := range Levels {
		registry.Register(lvl.ID, lvl.Title, func() (registry.Game, error) {
			return New(lvl.ID, lvl.Title, lvl.Spec())
		})
	}
}
