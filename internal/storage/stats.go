package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameStats aggregates a level's scores and runs.
type GameStats struct {
	GameID     string
	GamesCount int // saved scores
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Runs       int
	Wins       int
	BestTicks  int64 // fewest ticks of a winning run, 0 if never won
	LastPlayed time.Time
}

// statsQuery aggregates both tables per level. The level list is the union
// of levels with scores and levels with runs.
const statsQuery = `
WITH levels AS (
	SELECT game_id FROM scores UNION SELECT game_id FROM runs
),
sc AS (
	SELECT game_id, COUNT(*) AS n, MAX(score) AS hi, AVG(score) AS avg, SUM(score) AS total, MAX(created_at) AS last
	FROM scores GROUP BY game_id
),
rn AS (
	SELECT game_id, COUNT(*) AS n, SUM(won) AS wins,
	       MIN(CASE WHEN won = 1 THEN ticks END) AS best, MAX(created_at) AS last
	FROM runs GROUP BY game_id
)
SELECT l.game_id,
       COALESCE(sc.n, 0), COALESCE(sc.hi, 0), COALESCE(sc.avg, 0), COALESCE(sc.total, 0),
       COALESCE(rn.n, 0), COALESCE(rn.wins, 0), COALESCE(rn.best, 0),
       MAX(COALESCE(sc.last, ''), COALESCE(rn.last, ''))
FROM levels l
LEFT JOIN sc ON sc.game_id = l.game_id
LEFT JOIN rn ON rn.game_id = l.game_id
`

func scanStats(r scanner) (*GameStats, error) {
	var st GameStats
	var last any
	err := r.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore,
		&st.Runs, &st.Wins, &st.BestTicks, &last)
	st.LastPlayed = parseTime(last)
	return &st, err
}

// GetGameStats aggregates one level. A level never played yields zero stats.
func (s *Store) GetGameStats(levelID string) (*GameStats, error) {
	st, err := scanStats(s.db.QueryRow(statsQuery+` WHERE l.game_id = ?`, levelID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &GameStats{GameID: levelID}, nil
	case err != nil:
		return nil, fmt.Errorf("storage: stats for %s: %w", levelID, err)
	}
	return st, nil
}

// GetAllGamesStats aggregates every level that has a score or a run.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsQuery)
	if err != nil {
		return nil, fmt.Errorf("storage: query stats: %w", err)
	}
	list, err := collect(rows, func(r *sql.Rows) (*GameStats, error) { return scanStats(r) })
	if err != nil {
		return nil, fmt.Errorf("storage: read stats: %w", err)
	}
	out := make(map[string]*GameStats, len(list))
	for _, st := range list {
		out[st.GameID] = st
	}
	return out, nil
}
