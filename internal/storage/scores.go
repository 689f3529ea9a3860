package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one saved high score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// SaveScore records a score for a level and returns its row ID.
func (s *Store) SaveScore(levelID string, score int) (int64, error) {
	id, err := insert(s.db, `INSERT INTO scores (game_id, score) VALUES (?, ?)`, levelID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit scores for a level, best first. Ties keep
// the earlier score ahead. A non-positive limit means 10.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at FROM scores
		 WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	entries, err := collect(rows, func(r *sql.Rows) (ScoreEntry, error) {
		var e ScoreEntry
		var created any
		err := r.Scan(&e.ID, &e.GameID, &e.Score, &created)
		e.CreatedAt = parseTime(created)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("storage: read scores: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a level, or 0 if it has none.
func (s *Store) HighScore(levelID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE game_id = ?`, levelID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every score and run of a level in one transaction.
func (s *Store) ClearScores(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: clear %s: %w", levelID, err)
	}
	for _, table := range []string{"scores", "runs"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE game_id = ?`, levelID); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: clear %s %s: %w", levelID, table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: clear %s: %w", levelID, err)
	}
	return nil
}
