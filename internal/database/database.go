package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryDB manages the SQLite database for removal history
type HistoryDB struct {
	db *sql.DB
}

// Event actions recorded to the history database
const (
	ActionRemove = "REMOVE"
	ActionDryRun = "DRY_RUN"
	ActionSkip   = "SKIP"
	ActionError  = "ERROR"
)

// Event represents a single skip/remove/dry-run/error occurrence
type Event struct {
	ID           int64
	Timestamp    time.Time
	Action       string
	Path         string
	FileName     string
	Mode         string
	Reason       string
	ErrorMessage string
	CreatedAt    time.Time
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*HistoryDB, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Exercise the connection so the file gets created right away
	if _, err = db.Exec("SELECT 1"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database (check permissions on %s): %w", dbPath, err)
	}

	// WAL mode allows the query CLI to read while a run is writing
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	hdb := &HistoryDB{db: db}
	if err := hdb.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return hdb, nil
}

// initSchema creates tables and indexes if they don't exist
func (h *HistoryDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		file_name TEXT,
		mode TEXT,
		reason TEXT,
		error_message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_action ON events(action);
	CREATE INDEX IF NOT EXISTS idx_events_path ON events(path);
	`

	_, err := h.db.Exec(schema)
	return err
}

// RecordEvent inserts one skip/remove/dry-run/error event
func (h *HistoryDB) RecordEvent(action, path, mode, reason, errorMsg string) error {
	query := `
	INSERT INTO events (timestamp, action, path, file_name, mode, reason, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := h.db.Exec(
		query,
		time.Now().UTC(),
		action,
		path,
		filepath.Base(path),
		mode,
		reason,
		errorMsg,
	)
	return err
}

// Close closes the database connection
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Vacuum optimizes the database (run periodically)
func (h *HistoryDB) Vacuum() error {
	_, err := h.db.Exec("VACUUM")
	return err
}

// DeleteOldRecords removes events older than the given number of days
// and returns the number of rows deleted.
func (h *HistoryDB) DeleteOldRecords(olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := h.db.Exec("DELETE FROM events WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
