// Package history records validate/build runs in a local SQLite database
// so regressions in content quality can be traced across edits.
//
// Recording is best-effort: a history write failure must never break the
// run it is describing, so errors are reported to stderr and otherwise
// ignored.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded validate or build run.
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"` // "validate" or "build"
	Document  string    `json:"document"`
	Started   time.Time `json:"started"`
	Duration  int64     `json:"durationMs"`
	Total     int       `json:"total"`
	Valid     int       `json:"valid"`
	Failed    int       `json:"failed"`
	FailedIDs []string  `json:"failedIds"`
	Success   bool      `json:"success"`
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// dbPathFunc returns the database path. Tests override it to use a temp
// directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	return filepath.Join(".calcpress", "history.db")
}

// Open opens (creating if needed) the history store.
func Open() (*Store, error) {
	path := dbPathFunc()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the runs table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			command    TEXT NOT NULL,
			document   TEXT NOT NULL,
			started    INTEGER NOT NULL,
			duration   INTEGER NOT NULL,
			total      INTEGER NOT NULL,
			valid      INTEGER NOT NULL,
			failed     INTEGER NOT NULL,
			failed_ids TEXT,
			success    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate history database: %w", err)
	}
	return nil
}

// Record writes one run. Best-effort: failures are reported to stderr and
// swallowed so the caller's exit code reflects validation, not logging.
func Record(run Run) {
	store, err := Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "calcpress: history write failed: %v\n", err)
		return
	}
	defer store.Close()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	var failedIDs *string
	if len(run.FailedIDs) > 0 {
		if b, err := json.Marshal(run.FailedIDs); err == nil {
			s := string(b)
			failedIDs = &s
		}
	}

	success := 0
	if run.Success {
		success = 1
	}

	_, err = store.db.Exec(`
		INSERT INTO runs (id, command, document, started, duration, total, valid, failed, failed_ids, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.Document, run.Started.UnixMilli(), run.Duration,
		run.Total, run.Valid, run.Failed, failedIDs, success,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calcpress: history write failed: %v\n", err)
	}
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, command, document, started, duration, total, valid, failed, failed_ids, success
		FROM runs ORDER BY started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started int64
		var failedIDs sql.NullString
		var success int
		if err := rows.Scan(&run.ID, &run.Command, &run.Document, &started, &run.Duration,
			&run.Total, &run.Valid, &run.Failed, &failedIDs, &success); err != nil {
			return nil, err
		}
		run.Started = time.UnixMilli(started)
		run.Success = success == 1
		if failedIDs.Valid && failedIDs.String != "" {
			if err := json.Unmarshal([]byte(failedIDs.String), &run.FailedIDs); err != nil {
				// Legacy or hand-edited rows: fall back to a comma split.
				run.FailedIDs = strings.Split(failedIDs.String, ",")
			}
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
