package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.karel/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".karel", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200, 300, 150} {
		if _, err := store.SaveScore("karel", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("karel_classic", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("karel", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 300 || scores[1].Score != 200 || scores[2].Score != 150 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].GameID != "karel" {
		t.Errorf("GameID = %q", scores[0].GameID)
	}

	high, err := store.HighScore("karel")
	if err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v, expected 300", high, err)
	}
	high, err = store.HighScore("unknown")
	if err != nil || high != 0 {
		t.Errorf("HighScore(unknown) = %d, %v, expected 0", high, err)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{GameID: "karel", Score: 100, Collected: 10, Total: 15, Ticks: 2400, Won: true},
		{GameID: "karel", Score: 30, Collected: 3, Total: 15, Ticks: 700, Won: false},
		{GameID: "karel", Score: 150, Collected: 15, Total: 15, Ticks: 1900, Won: true},
		{GameID: "karel_classic", Score: 40, Collected: 4, Total: 4, Ticks: 300, Won: false},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns("karel", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 150 || recent[1].Score != 30 {
		t.Errorf("RecentRuns() = %+v, expected newest first", recent)
	}

	fastest, err := store.FastestWin("karel")
	if err != nil {
		t.Fatalf("FastestWin() failed: %v", err)
	}
	if fastest == nil || fastest.Ticks != 1900 || !fastest.Won || fastest.Collected != 15 {
		t.Errorf("FastestWin() = %+v, expected the 1900-tick win", fastest)
	}

	none, err := store.FastestWin("karel_classic")
	if err != nil || none != nil {
		t.Errorf("FastestWin() for a never-won game = %+v, %v", none, err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("karel")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for an unplayed game = %+v", empty)
	}

	store.SaveScore("karel", 100)
	store.SaveScore("karel", 200)
	store.SaveRun(RunRecord{GameID: "karel", Score: 100, Ticks: 900, Won: true})
	store.SaveRun(RunRecord{GameID: "karel", Score: 200, Ticks: 600, Won: true})
	store.SaveRun(RunRecord{GameID: "karel", Score: 10, Ticks: 100})

	stats, err := store.GetGameStats("karel")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 200 || stats.AvgScore != 150 || stats.TotalScore != 300 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.Runs != 3 || stats.Wins != 2 || stats.BestTicks != 600 {
		t.Errorf("run stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["karel"].HighScore != 200 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("karel", 100)
	store.SaveRun(RunRecord{GameID: "karel", Score: 100, Won: true})
	store.SaveScore("karel_classic", 300)

	if err := store.ClearScores("karel"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("karel", 10)
	runs, _ := store.RecentRuns("karel", 10)
	if len(scores) != 0 || len(runs) != 0 {
		t.Errorf("Expected karel history cleared, got %d scores and %d runs", len(scores), len(runs))
	}

	classic, _ := store.TopScores("karel_classic", 10)
	if len(classic) != 1 {
		t.Errorf("karel_classic scores should not be affected")
	}
}

func TestAllStatsIncludeRunOnlyLevels(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("karel", 90)
	store.SaveRun(RunRecord{GameID: "karel_classic", Score: 5, Ticks: 120})

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both levels, got %+v", all)
	}
	classic := all["karel_classic"]
	if classic.GamesCount != 0 || classic.Runs != 1 || classic.Wins != 0 || classic.BestTicks != 0 {
		t.Errorf("run-only stats = %+v", classic)
	}
	if all["karel"].Runs != 0 || all["karel"].HighScore != 90 {
		t.Errorf("score-only stats = %+v", all["karel"])
	}
}
