// Package storage provides SQLite-based persistence for finished maze runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one finished maze: how long it took on which layout.
type Run struct {
	ID           string // uuid, assigned by SaveRun when empty
	GameID       string
	Player       string
	Seed         int64
	Fingerprint  string // hex layout fingerprint
	Duration     time.Duration
	DoorsToggled int
	Score        int
	CreatedAt    time.Time
}

// RunStats contains aggregated statistics for a game.
type RunStats struct {
	GameID      string
	RunsCount   int
	BestTime    time.Duration
	AverageTime time.Duration
	BestScore   int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			fingerprint TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			doors_toggled INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON runs(game_id, duration_ms);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
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

// SaveRun records a finished run and returns its ID.
// A missing ID or timestamp is filled in.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, player, seed, fingerprint, duration_ms, doors_toggled, score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.GameID,
		r.Player,
		r.Seed,
		r.Fingerprint,
		r.Duration.Milliseconds(),
		r.DoorsToggled,
		r.Score,
		r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, game_id, player, seed, fingerprint, duration_ms, doors_toggled, score, created_at`

// FastestRuns returns the quickest runs for a game, fastest first.
func (s *Store) FastestRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY duration_ms ASC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RunsForSeed returns runs on one seed across all variants, fastest first.
func (s *Store) RunsForSeed(seed int64, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE seed = ?
		 ORDER BY duration_ms ASC, created_at ASC
		 LIMIT ?`,
		seed, limit,
	)
}

// BestRun returns the fastest run for a game, or nil when there are none.
func (s *Store) BestRun(gameID string) (*Run, error) {
	runs, err := s.FastestRuns(gameID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS, createdMS int64
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Player,
			&r.Seed,
			&r.Fingerprint,
			&durationMS,
			&r.DoorsToggled,
			&r.Score,
			&createdMS,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdMS)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for one game.
// A game without runs yields zero values.
func (s *Store) Stats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}

	var best, last sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(duration_ms), AVG(duration_ms), COALESCE(MAX(score), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &best, &avg, &stats.BestScore, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	if best.Valid {
		stats.BestTime = time.Duration(best.Int64) * time.Millisecond
	}
	if avg.Valid {
		stats.AverageTime = time.Duration(avg.Float64 * float64(time.Millisecond))
	}
	if last.Valid {
		stats.LastPlayed = time.UnixMilli(last.Int64)
	}
	return stats, nil
}

// AllStats retrieves statistics for every game that has runs.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT game_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	all := make(map[string]*RunStats, len(ids))
	for _, id := range ids {
		st, err := s.Stats(id)
		if err != nil {
			return nil, err
		}
		all[id] = st
	}
	return all, nil
}
