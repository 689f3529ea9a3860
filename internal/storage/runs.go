package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunRecord is one finished or abandoned play-through of a level.
type RunRecord struct {
	ID        int64
	GameID    string
	Score     int
	Collected int
	Total     int
	Ticks     int64 // simulation ticks from start to the end of the run
	Won       bool
	CreatedAt time.Time
}

const runColumns = `id, game_id, score, collected, total, ticks, won, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var created any
	err := row.Scan(&r.ID, &r.GameID, &r.Score, &r.Collected, &r.Total, &r.Ticks, &r.Won, &created)
	r.CreatedAt = parseTime(created)
	return r, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveRun records a play-through and returns its row ID.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	id, err := insert(s.db,
		`INSERT INTO runs (game_id, score, collected, total, ticks, won) VALUES (?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Score, run.Collected, run.Total, run.Ticks, boolInt(run.Won),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs of a level, newest first.
// A non-positive limit means 10.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	runs, err := collect(rows, func(r *sql.Rows) (RunRecord, error) { return scanRun(r) })
	if err != nil {
		return nil, fmt.Errorf("storage: read runs: %w", err)
	}
	return runs, nil
}

// FastestWin returns the winning run with the fewest ticks, or nil if the
// level has never been won.
func (s *Store) FastestWin(levelID string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? AND won = 1 ORDER BY ticks, id LIMIT 1`,
		levelID,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("storage: query fastest win: %w", err)
	}
	return &r, nil
}
