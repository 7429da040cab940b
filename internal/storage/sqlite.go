// Package storage provides SQLite-based persistence for engine run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-engine/internal/timing"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is a single recorded run of a scene.
type RunEntry struct {
	ID         int64
	SceneID    string
	Backend    string // "desktop" or "headless"
	Frames     uint64
	TotalNanos uint64
	LastFPS    int
	CreatedAt  time.Time
}

// AverageFPS returns frames per second over the whole run.
func (r RunEntry) AverageFPS() float64 {
	if r.TotalNanos == 0 {
		return 0
	}
	return float64(r.Frames) / (float64(r.TotalNanos) / 1e9)
}

// Runtime returns the run length as a duration.
func (r RunEntry) Runtime() time.Duration {
	return time.Duration(r.TotalNanos)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			backend TEXT NOT NULL,
			frames INTEGER NOT NULL,
			total_nanos INTEGER NOT NULL,
			last_fps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
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

// SaveRun records the frame clock summary of a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(sceneID, backend string, sample timing.Sample) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (scene_id, backend, frames, total_nanos, last_fps) VALUES (?, ?, ?, ?, ?)",
		sceneID, backend, int64(sample.Frames), int64(sample.TotalNanos), sample.FPS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest N runs for the given scene, newest first.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, backend, frames, total_nanos, last_fps, created_at
		 FROM runs
		 WHERE scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var frames, totalNanos int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SceneID, &e.Backend, &frames, &totalNanos, &e.LastFPS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Frames = uint64(frames)
		e.TotalNanos = uint64(totalNanos)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestFPS returns the highest average frame rate recorded for the scene.
// Returns 0 if no runs with a measurable runtime exist.
func (s *Store) BestFPS(sceneID string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT MAX(CAST(frames AS REAL) * 1e9 / total_nanos)
		 FROM runs
		 WHERE scene_id = ? AND total_nanos > 0`,
		sceneID,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best fps: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearRuns deletes all runs for the given scene.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
