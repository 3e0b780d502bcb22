// Package storage provides SQLite-based persistence for the run history
// and the progression key-value table, plus a gdata-backed progression
// backend for single-player installs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-hoops/internal/progress"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished session: the level a profile reached before
// running out of shots.
type RunEntry struct {
	ID        int64
	Profile   string
	Level     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions write concurrently; one connection serializes them
	// instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

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

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			level INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(profile, level DESC);

		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveRun records the level a profile reached in a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(profile string, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (profile, level) VALUES (?, ?)",
		profile, level,
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

// TopRuns retrieves the best N runs of a profile, highest level first.
func (s *Store) TopRuns(profile string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, level, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY level DESC, id ASC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves every run of a profile, newest first.
func (s *Store) AllRuns(profile string) ([]RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, profile, level, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY id DESC`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.Level, &createdAt); err != nil {
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

// parseTime handles both driver time values and SQLite's text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestLevel returns the highest level a profile reached in a finished run.
// Returns 0 if the profile has no runs.
func (s *Store) BestLevel(profile string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM runs WHERE profile = ?",
		profile,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}

	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// ClearRuns deletes the run history of a profile.
func (s *Store) ClearRuns(profile string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Profiles lists every profile with at least one run, alphabetically.
func (s *Store) Profiles() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT profile FROM runs ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// ProfileStats contains aggregated statistics for a profile.
type ProfileStats struct {
	Profile    string
	RunsCount  int
	BestLevel  int
	AvgLevel   float64
	LastPlayed time.Time
}

// GetProfileStats retrieves aggregated statistics for a profile.
func (s *Store) GetProfileStats(profile string) (*ProfileStats, error) {
	stats := &ProfileStats{Profile: profile}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(AVG(level), 0), MAX(created_at)
		 FROM runs WHERE profile = ?`,
		profile,
	).Scan(&stats.RunsCount, &stats.BestLevel, &stats.AvgLevel, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Get reads a progression value. It implements progress.Backend.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a progression value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Delete removes a progression value. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

var _ progress.Backend = (*Store)(nil)
