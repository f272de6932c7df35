// Package storage provides SQLite-based persistence for the run journal.
// Every finished run is stored with its seed and moves so it can be
// replayed later. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hexlanes/internal/core"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID          int64
	GameID      string // Registry ID the run was started from
	Catalog     string // Pattern source ID
	Seed        int64
	Lanes       int
	IntroLength int
	LevelLength int
	Actions     []core.Action
	Distance    int
	Cause       string // What ended the run: wall, hurdle, mistimed hurdle, quit, restart
	CreatedAt   time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			game_id TEXT NOT NULL,
			catalog TEXT NOT NULL,
			seed INTEGER NOT NULL,
			lanes INTEGER NOT NULL,
			intro_length INTEGER NOT NULL,
			level_length INTEGER NOT NULL,
			actions TEXT NOT NULL,
			distance INTEGER NOT NULL,
			cause TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(game_id, created_at DESC);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (game_id, catalog, seed, lanes, intro_length, level_length, actions, distance, cause)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Catalog, r.Seed, r.Lanes, r.IntroLength, r.LevelLength,
		EncodeActions(r.Actions), r.Distance, r.Cause,
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

const runColumns = `id, game_id, catalog, seed, lanes, intro_length, level_length, actions, distance, cause, created_at`

// RecentRuns retrieves the most recent runs, newest first.
// An empty gameID returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if gameID == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 ORDER BY created_at DESC, id DESC
			 LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+`
			 FROM runs
			 WHERE game_id = ?
			 ORDER BY created_at DESC, id DESC
			 LIMIT ?`,
			gameID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ID.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRuns deletes all runs of the given game.
func (s *Store) DeleteRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	TotalRuns  int
	TotalMoves int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var totalMoves sql.NullInt64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(distance), MAX(created_at)
		 FROM runs
		 WHERE game_id = ?`,
		gameID,
	).Scan(&stats.TotalRuns, &totalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	stats.TotalMoves = int(totalMoves.Int64)
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var actions string
	var createdAt any
	err := sc.Scan(&r.ID, &r.GameID, &r.Catalog, &r.Seed, &r.Lanes, &r.IntroLength, &r.LevelLength,
		&actions, &r.Distance, &r.Cause, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.Actions, err = DecodeActions(actions)
	if err != nil {
		return r, fmt.Errorf("storage: run %d: %w", r.ID, err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

// Move letters used in the actions column.
var actionLetters = map[core.Action]byte{
	core.ActionRotateCCW: 'l',
	core.ActionRotateCW:  'r',
	core.ActionStep:      's',
	core.ActionHurdle:    'h',
}

// EncodeActions packs moves into one letter each. Non-move actions are skipped.
func EncodeActions(actions []core.Action) string {
	var sb strings.Builder
	sb.Grow(len(actions))
	for _, a := range actions {
		if c, ok := actionLetters[a]; ok {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// DecodeActions reverses EncodeActions.
func DecodeActions(s string) ([]core.Action, error) {
	if s == "" {
		return nil, nil
	}
	actions := make([]core.Action, 0, len(s))
	for i := 0; i < len(s); i++ {
		var found bool
		for a, c := range actionLetters {
			if c == s[i] {
				actions = append(actions, a)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("storage: unknown move %q at %d", s[i], i)
		}
	}
	return actions, nil
}
