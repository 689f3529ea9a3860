package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuListsLevelsWithHighScores(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("karel", 120); err != nil {
		t.Fatalf("SaveScore() error: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	view := m.View()
	for _, want := range []string{"Karel's Code Quest", "Karel's World (Classic)", "best: 120"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestScoreboardToggleAndSummary(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.RunRecord{GameID: "karel", Score: 40, Collected: 4, Total: 15, Ticks: 600, Won: true}); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	if _, err := store.SaveRun(storage.RunRecord{GameID: "karel", Score: 10, Collected: 1, Total: 15, Ticks: 90}); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30, 60)
	for i, lv := range m.levels {
		if lv.ID == "karel" {
			m.cursor = i
			m.load(lv.ID)
		}
	}

	if got := m.summary(); got != "Runs: 2  Wins: 1  Fastest: 10.0s" {
		t.Errorf("summary() = %q", got)
	}

	next, _ := m.Update(runeKey('v'))
	m = next.(ScoreboardModel)
	if m.view != viewRecentRuns {
		t.Fatal("v should switch to recent runs")
	}
	if view := m.View(); !strings.Contains(view, "RECENT RUNS") || !strings.Contains(view, "gave up") {
		t.Errorf("expected the runs table, got:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	store := openStore(t)
	s := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	// The first item is the side-scroller ("karel" sorts first).
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatal("enter should start the selected level")
	}

	step(TickMsg{Gen: s.game.tickGen})
	step(runeKey('p'))
	step(TickMsg{Gen: s.game.tickGen})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc while paused should return to the menu")
	}
	if s.quitting {
		t.Error("returning to the menu must not end the session")
	}

	runs, err := store.RecentRuns("karel", 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 || runs[0].Won {
		t.Errorf("expected one abandoned run, got %+v", runs)
	}

	// A tick from the finished level is ignored by the menu.
	step(TickMsg{Gen: 0})
	if s.screen != screenMenu {
		t.Error("stale ticks should not leave the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Error("esc should leave the scoreboard")
	}

	if cmd := step(runeKey('q')); cmd == nil || !s.quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestMenuItemRecord(t *testing.T) {
	tests := []struct {
		name string
		item MenuItem
		want string
	}{
		{"never played", MenuItem{}, ""},
		{"score only", MenuItem{HighScore: 120}, "(best: 120)"},
		{"abandoned runs", MenuItem{Runs: 2}, "(best: 0, 0/2 won)"},
		{"won", MenuItem{HighScore: 40, Runs: 3, Wins: 1, BestTicks: 600}, "(best: 40, 1/3 won, fastest 10.0s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.record(60); got != tt.want {
				t.Errorf("record() = %q, expected %q", got, tt.want)
			}
		})
	}
}
