package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/karel-quest/internal/config"
	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel"
	"github.com/vovakirdan/karel-quest/internal/games/karel/sim"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

// shortSpec is won on the first tick: Karel spawns on a beeper inside the goal.
func shortSpec() sim.LevelSpec {
	goal := core.Vec2{X: 60, Y: 350}
	return sim.LevelSpec{
		ID:         "short",
		Name:       "Short",
		WorldWidth: 640,
		Spawn:      core.Vec2{X: 50, Y: 398},
		Obstacles:  []sim.Obstacle{sim.Ground(0, 430, 640, 50)},
		Beepers:    []core.Vec2{{X: 66, Y: 414}},
		Goal:       &goal,
	}
}

func newTestModel(t *testing.T, spec sim.LevelSpec) (Model, *storage.Store) {
	t.Helper()

	game, err := karel.NewWithConfig(spec.ID, spec.Name, spec, config.DefaultKarelConfig())
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, nil)
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	return update(t, m, TickMsg{Gen: m.tickGen})
}

func TestModelRecordsWinOnce(t *testing.T) {
	m, store := newTestModel(t, shortSpec())

	m = tick(t, m)
	if !m.State().GameOver {
		t.Fatal("expected the level to be won on the first tick")
	}
	m = tick(t, m)
	m = tick(t, m)

	runs, err := store.RecentRuns("short", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if !r.Won || r.Score != 10 || r.Collected != 1 || r.Total != 1 || r.Ticks != 1 {
		t.Errorf("unexpected run %+v", r)
	}

	hs, err := store.HighScore("short")
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if hs != 10 {
		t.Errorf("high score = %d, expected 10", hs)
	}

	// A restart starts a new run that is recorded again.
	m = update(t, m, runeKey('r'))
	m = tick(t, m)
	runs, _ = store.RecentRuns("short", 10)
	if len(runs) != 2 {
		t.Errorf("expected a second run after restart, got %d", len(runs))
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, _ := newTestModel(t, sim.Quest())

	m = update(t, m, TickMsg{Gen: m.tickGen + 1})
	rr := m.game.(runReporter)
	if rr.Ticks() != 0 {
		t.Errorf("ticks = %d, expected a foreign tick loop to be ignored", rr.Ticks())
	}

	m = tick(t, m)
	if rr.Ticks() != 1 {
		t.Errorf("ticks = %d, expected 1", rr.Ticks())
	}
}

func TestModelHeldMovement(t *testing.T) {
	m, _ := newTestModel(t, sim.Quest())
	g := m.game.(*karel.Game)

	for range 5 {
		m = tick(t, m)
	}
	x := g.Session().Character().Pos.X

	// One key event keeps Karel walking through the hold window.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for range DefaultHoldTicks + 5 {
		m = tick(t, m)
	}
	moved := g.Session().Character().Pos.X - x
	want := float64(DefaultHoldTicks) * config.DefaultKarelConfig().Physics.MoveSpeed
	if moved != want {
		t.Errorf("moved %v, expected %v", moved, want)
	}
}

func TestModelQuitRecordsAbandonedRun(t *testing.T) {
	m, store := newTestModel(t, sim.Quest())

	for range 3 {
		m = tick(t, m)
	}
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("expected quitting")
	}

	runs, err := store.RecentRuns("quest", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 || runs[0].Won || runs[0].Ticks != 3 {
		t.Errorf("expected one abandoned 3-tick run, got %+v", runs)
	}
}

func TestModelBackOnlyWhenPausedOrWon(t *testing.T) {
	m, _ := newTestModel(t, sim.Quest())
	m.embedded = true

	m = tick(t, m)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	m = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("expected the game to be paused")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should return to the menu while paused")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, sim.Quest())
	m = tick(t, m)

	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Errorf("expected the HUD in the view, got:\n%s", view)
	}
}

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks int64
		rate  int
		want  string
	}{
		{60, 60, "1.0s"},
		{90, 60, "1.5s"},
		{30, 30, "1.0s"},
		{120, 0, "2.0s"},
	}
	for _, tt := range tests {
		if got := FormatTicks(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("FormatTicks(%d, %d) = %q, expected %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}
