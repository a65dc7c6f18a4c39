// Package history keeps a local log of executed statements in a SQLite
// database, independent of the audit log (which is append-only JSON Lines
// meant for compliance, not recall).
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sadopc/termdba/internal/config"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	statement     TEXT NOT NULL,
	adapter       TEXT,
	database_name TEXT,
	executed_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
	duration_ms   INTEGER,
	row_count     INTEGER,
	is_error      BOOLEAN DEFAULT FALSE
)`

// Entry is one executed statement in the history log.
type Entry struct {
	ID           int64
	Statement    string
	Adapter      string
	DatabaseName string
	ExecutedAt   time.Time
	DurationMS   int64
	RowCount     int64
	IsError      bool
}

// History is a SQLite-backed statement log.
type History struct {
	db *sql.DB
}

// DefaultPath returns the default history database location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("history: config dir: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (or creates) the history database at path and ensures the
// schema exists.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}

	return &History{db: db}, nil
}

// Add inserts a new entry. A nil receiver is a no-op so callers need not
// guard every call when history could not be opened.
func (h *History) Add(e Entry) error {
	if h == nil {
		return nil
	}
	_, err := h.db.Exec(
		`INSERT INTO history (statement, adapter, database_name, executed_at, duration_ms, row_count, is_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Statement,
		e.Adapter,
		e.DatabaseName,
		e.ExecutedAt,
		e.DurationMS,
		e.RowCount,
		e.IsError,
	)
	if err != nil {
		return fmt.Errorf("history add: %w", err)
	}
	return nil
}

// Search returns entries whose statement text contains the given substring,
// most recent first, limited to limit rows.
func (h *History) Search(substr string, limit int) ([]Entry, error) {
	rows, err := h.db.Query(
		`SELECT id, statement, adapter, database_name, executed_at, duration_ms, row_count, is_error
		 FROM history
		 WHERE statement LIKE ?
		 ORDER BY executed_at DESC, id DESC
		 LIMIT ?`,
		"%"+substr+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history search: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Recent returns the most recent entries, limited to limit rows.
func (h *History) Recent(limit int) ([]Entry, error) {
	rows, err := h.db.Query(
		`SELECT id, statement, adapter, database_name, executed_at, duration_ms, row_count, is_error
		 FROM history
		 ORDER BY executed_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history recent: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear deletes all entries.
func (h *History) Clear() error {
	if _, err := h.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("history clear: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.Statement,
			&e.Adapter,
			&e.DatabaseName,
			&e.ExecutedAt,
			&e.DurationMS,
			&e.RowCount,
			&e.IsError,
		); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return entries, nil
}
