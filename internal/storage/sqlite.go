// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one leaderboard line. For survivor runs the score is the
// kill count.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// RunRecord is a finished run.
type RunRecord struct {
	ID        int64
	RunID     string
	GameID    string
	Player    string
	Outcome   string  // "victorious" or "defeated"
	GameTime  float64 // seconds survived, or the clear time of a win
	Level     int
	Kills     int
	Seed      int64
	CreatedAt time.Time
}

// Won reports whether the run ended with the boss dead.
func (r RunRecord) Won() bool {
	return r.Outcome == "victorious"
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			game_time REAL NOT NULL,
			level INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(game_id, outcome, game_time);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveRun records a finished run and its kill count as a score, in one
// transaction. Returns the generated run ID.
func (s *Store) SaveRun(gameID, player string, sum core.RunSummary) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, game_id, player, outcome, game_time, level, kills, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, gameID, player, sum.Outcome, sum.GameTime, sum.Level, sum.Kills, sum.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, sum.Kills); err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `id, run_id, game_id, player, outcome, game_time, level, kills, seed, created_at`

// RunByID retrieves a run by its run ID.
// Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs. An empty gameID means every
// game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// BestRuns ranks runs for the leaderboard: wins first by fastest clear,
// then losses by longest survival. Kills break ties.
func (s *Store) BestRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE game_id = ?
		 ORDER BY outcome = 'victorious' DESC,
		          CASE WHEN outcome = 'victorious' THEN game_time ELSE -game_time END ASC,
		          kills DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := sc.Scan(&r.ID, &r.RunID, &r.GameID, &r.Player, &r.Outcome, &r.GameTime,
		&r.Level, &r.Kills, &r.Seed, &createdAt)
	if err != nil {
		return RunRecord{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and the string form of DATETIME columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores and runs for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Runs       int
	Wins       int
	BestClear  float64 // fastest win in seconds, 0 without wins
	LongestRun float64
	MostKills  int
	AvgKills   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'victorious'), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'victorious' THEN game_time END), 0),
		        COALESCE(MAX(game_time), 0),
		        COALESCE(MAX(kills), 0),
		        COALESCE(AVG(kills), 0),
		        MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestClear, &stats.LongestRun,
		&stats.MostKills, &stats.AvgKills, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
