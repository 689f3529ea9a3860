// Package window runs a level in a desktop window using Ebiten.
// It reads real held-key state, so movement needs no hold emulation.
package window

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

// Options configures the desktop window.
type Options struct {
	Title    string
	TickRate int     // simulation ticks per second, default 60
	Scale    float64 // window size relative to the logical viewport, default 1
	Seed     int64
	Cues     CuePlayer // nil plays nothing
}

// CuePlayer sounds simulation events.
type CuePlayer interface {
	Play(kind sim.EventKind)
}

// keySource abstracts Ebiten's keyboard state.
type keySource interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Window is an ebiten.Game driving a karel.Game.
type Window struct {
	game     *karel.Game
	store    *storage.Store
	logger   *log.Logger
	keys     keySource
	opts     Options
	frame    sim.RenderState
	runSaved bool
}

// New creates a window for the given game. Store and logger may be nil.
func New(game *karel.Game, store *storage.Store, logger *log.Logger, opts Options) *Window {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Title == "" {
		opts.Title = game.Title()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(core.RuntimeConfig{TickRate: opts.TickRate, Seed: opts.Seed})

	return &Window{
		game:   game,
		store:  store,
		logger: logger,
		keys:   ebitenKeys{},
		opts:   opts,
		frame:  game.Session().Preview(),
	}
}

// readInput builds the input frame for one tick from the keyboard.
// Movement and jump follow held state; pause, restart and quit are edges.
func readInput(keys keySource) core.InputFrame {
	in := core.NewInputFrame()
	anyPressed := func(ks ...ebiten.Key) bool {
		for _, k := range ks {
			if keys.Pressed(k) {
				return true
			}
		}
		return false
	}

	if anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA) {
		in.Set(core.ActionLeft)
	}
	if anyPressed(ebiten.KeyArrowRight, ebiten.KeyD) {
		in.Set(core.ActionRight)
	}
	if anyPressed(ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW) {
		in.Set(core.ActionJump)
	}
	if keys.JustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	if keys.JustPressed(ebiten.KeyR) {
		in.Set(core.ActionRestart)
	}
	if keys.JustPressed(ebiten.KeyEscape) || keys.JustPressed(ebiten.KeyQ) {
		in.Set(core.ActionQuit)
	}
	return in
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	in := readInput(w.keys)
	if in.Has(core.ActionQuit) || ebiten.IsWindowBeingClosed() {
		w.recordRun()
		return ebiten.Termination
	}

	restarting := w.game.State().GameOver && in.Has(core.ActionRestart)
	res := w.game.Step(in)
	if restarting {
		w.logger.Info("level restarted", "game", w.game.ID())
		w.runSaved = false
	}
	if !res.State.Paused {
		w.frame = w.game.Frame()
	}

	for _, ev := range w.game.Events() {
		if w.opts.Cues != nil {
			w.opts.Cues.Play(ev.Kind)
		}
		switch ev.Kind {
		case sim.EventPickup:
			w.logger.Debug("beeper collected", "x", ev.Pos.X, "y", ev.Pos.Y, "points", ev.Points)
		case sim.EventFell:
			w.logger.Debug("karel fell", "x", ev.Pos.X)
		case sim.EventVictory:
			w.logger.Info("goal reached", "game", w.game.ID(), "score", res.State.Score, "ticks", w.game.Ticks())
		}
	}

	if res.State.GameOver && !w.runSaved {
		w.recordRun()
	}
	return nil
}

// recordRun stores the current run once. Runs with no ticks are skipped.
func (w *Window) recordRun() {
	if w.runSaved {
		return
	}
	w.runSaved = true
	if w.store == nil || w.game.Ticks() == 0 {
		return
	}

	run := w.game.RunRecord()
	if run.Won && run.Score > 0 {
		if _, err := w.store.SaveScore(run.GameID, run.Score); err != nil {
			w.logger.Warn("could not save score", "error", err)
		}
	}
	if _, err := w.store.SaveRun(run); err != nil {
		w.logger.Warn("could not save run", "error", err)
	}
}

// Draw renders the last frame.
func (w *Window) Draw(screen *ebiten.Image) {
	drawFrame(screen, w.frame, w.game.Title(), w.game.State().Paused)
}

// Layout keeps the logical screen at the configured viewport size.
func (w *Window) Layout(_, _ int) (int, int) {
	vw, vh := viewportSize(w.frame)
	return vw, vh
}

func viewportSize(rs sim.RenderState) (int, int) {
	if rs.Viewport.X <= 0 || rs.Viewport.Y <= 0 {
		return 640, 480
	}
	return int(rs.Viewport.X), int(rs.Viewport.Y)
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	vw, vh := viewportSize(w.frame)
	ebiten.SetWindowSize(int(float64(vw)*w.opts.Scale), int(float64(vh)*w.opts.Scale))
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetTPS(w.opts.TickRate)
	ebiten.SetWindowClosingHandled(true)

	w.logger.Info("window opened", "game", w.game.ID(), "tps", w.opts.TickRate)
	return ebiten.RunGame(w)
}
