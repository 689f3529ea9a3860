package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
	"github.com/vovakirdan/karel-quest/internal/registry"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

// runReporter is implemented by games that expose per-tick events and
// run statistics. The model logs the events and records finished runs.
type runReporter interface {
	Ticks() uint64
	Events() []sim.Event
	RunRecord() storage.RunRecord
}

// Model is the Bubble Tea model for running a level.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	logger    *log.Logger
	keyMapper *KeyMapper
	hold      *HoldState
	gameState core.GameState
	tickGen   uint64

	embedded   bool // running inside a SessionModel; Back returns to its menu
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards all output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		hold:      NewHoldState(DefaultHoldTicks),
		tickGen:   nextTickGen(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("level started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales the viewport, so a resize never resets the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.recordRun()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	m.hold.Press(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	frame := m.hold.Frame()
	restarting := m.gameState.GameOver && frame.Has(core.ActionRestart)

	result := m.game.Step(frame)
	m.gameState = result.State

	if restarting {
		m.logger.Info("level restarted", "game", m.game.ID())
		m.runSaved = false
	}

	m.logEvents()

	// Record the run once when the goal is reached
	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// logEvents writes the last tick's gameplay events at debug level.
func (m Model) logEvents() {
	rr, ok := m.game.(runReporter)
	if !ok {
		return
	}
	for _, ev := range rr.Events() {
		switch ev.Kind {
		case sim.EventPickup:
			m.logger.Debug("beeper collected", "x", ev.Pos.X, "y", ev.Pos.Y, "points", ev.Points)
		case sim.EventFell:
			m.logger.Debug("karel fell", "x", ev.Pos.X)
		case sim.EventVictory:
			m.logger.Info("goal reached", "game", m.game.ID(), "score", m.gameState.Score, "ticks", rr.Ticks())
		}
	}
}

// recordRun saves the current run to the store, at most once per run.
// Runs that never advanced are not recorded.
func (m *Model) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	rr, ok := m.game.(runReporter)
	if !ok || rr.Ticks() == 0 {
		return
	}
	if m.store == nil {
		return
	}

	run := rr.RunRecord()
	if run.Won && run.Score > 0 {
		if _, err := m.store.SaveScore(run.GameID, run.Score); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}

	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run recorded", "game", run.GameID, "score", run.Score, "won", run.Won)
}

// saveScreenshot saves the current screen to ~/.karel/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".karel", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: create directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: write", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the player asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays one level in the alternate screen. backToMenu reports whether
// the player left with Back rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	final, err := tea.NewProgram(NewModel(game, store, cfg, logger), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
