package history

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()

	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestOpenCreatesSchema(t *testing.T) {
	h := newTestHistory(t)

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent() on new DB error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on new DB = %d entries, want 0", len(entries))
	}
}

func TestDefaultPath(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpHome, ".config"))

	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if filepath.Base(p) != "history.db" {
		t.Errorf("DefaultPath() = %q, want a history.db path", p)
	}
	if !strings.Contains(p, "termdba") {
		t.Errorf("DefaultPath() = %q, want a termdba config path", p)
	}
}

func TestAddAndRecent(t *testing.T) {
	h := newTestHistory(t)

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := range 5 {
		err := h.Add(Entry{
			Statement:    "SELECT " + string(rune('A'+i)),
			Adapter:      "postgres",
			DatabaseName: "testdb",
			ExecutedAt:   base.Add(time.Duration(i) * time.Minute),
			DurationMS:   int64(10 * (i + 1)),
			RowCount:     int64(i + 1),
		})
		if err != nil {
			t.Fatalf("Add() entry %d error = %v", i, err)
		}
	}

	entries, err := h.Recent(3)
	if err != nil {
		t.Fatalf("Recent(3) error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent(3) returned %d entries, want 3", len(entries))
	}

	// Most recent first: E, D, C
	want := []string{"SELECT E", "SELECT D", "SELECT C"}
	for i, w := range want {
		if entries[i].Statement != w {
			t.Errorf("entries[%d].Statement = %q, want %q", i, entries[i].Statement, w)
		}
	}
}

func TestSearch(t *testing.T) {
	h := newTestHistory(t)

	now := time.Now().UTC()
	stmts := []string{
		"SELECT * FROM users",
		"INSERT INTO users (name) VALUES ('alice')",
		"SELECT * FROM orders",
		"UPDATE users SET name='bob'",
		"SELECT count(*) FROM users",
	}
	for i, s := range stmts {
		err := h.Add(Entry{
			Statement:  s,
			Adapter:    "postgres",
			ExecutedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	entries, err := h.Search("users", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("Search(\"users\") returned %d entries, want 4", len(entries))
	}
	if entries[0].Statement != "SELECT count(*) FROM users" {
		t.Errorf("entries[0].Statement = %q, want most recent match first", entries[0].Statement)
	}

	entries, err = h.Search("no_such_table", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Search(no match) returned %d entries, want 0", len(entries))
	}
}

func TestSearchLimit(t *testing.T) {
	h := newTestHistory(t)

	now := time.Now().UTC()
	for i := range 10 {
		err := h.Add(Entry{
			Statement:  "SELECT 1",
			Adapter:    "mysql",
			ExecutedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	entries, err := h.Search("SELECT", 4)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Search() with limit 4 returned %d entries", len(entries))
	}
}

func TestClear(t *testing.T) {
	h := newTestHistory(t)

	for i := range 3 {
		err := h.Add(Entry{
			Statement:  "SELECT " + string(rune('A'+i)),
			Adapter:    "mysql",
			ExecutedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if err := h.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	after, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent() after clear error = %v", err)
	}
	if len(after) != 0 {
		t.Errorf("Recent() after clear = %d entries, want 0", len(after))
	}
}

func TestEntryRoundtrip(t *testing.T) {
	h := newTestHistory(t)

	execAt := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	entry := Entry{
		Statement:    "SELECT * FROM big_table WHERE id > 1000",
		Adapter:      "postgres",
		DatabaseName: "analytics",
		ExecutedAt:   execAt,
		DurationMS:   1234,
		RowCount:     5678,
		IsError:      false,
	}

	if err := h.Add(entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	entries, err := h.Recent(1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent(1) returned %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.ID == 0 {
		t.Error("ID should be non-zero after insert")
	}
	if got.Statement != entry.Statement {
		t.Errorf("Statement = %q, want %q", got.Statement, entry.Statement)
	}
	if got.Adapter != entry.Adapter {
		t.Errorf("Adapter = %q, want %q", got.Adapter, entry.Adapter)
	}
	if got.DatabaseName != entry.DatabaseName {
		t.Errorf("DatabaseName = %q, want %q", got.DatabaseName, entry.DatabaseName)
	}
	if got.DurationMS != entry.DurationMS {
		t.Errorf("DurationMS = %d, want %d", got.DurationMS, entry.DurationMS)
	}
	if got.RowCount != entry.RowCount {
		t.Errorf("RowCount = %d, want %d", got.RowCount, entry.RowCount)
	}
	// SQLite may lose sub-second precision.
	if got.ExecutedAt.Sub(execAt).Abs() > time.Second {
		t.Errorf("ExecutedAt = %v, want approximately %v", got.ExecutedAt, execAt)
	}
}

func TestCloseAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for i := range 3 {
		err := h1.Add(Entry{
			Statement:  "query_" + string(rune('A'+i)),
			Adapter:    "postgres",
			ExecutedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if err := h1.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	h2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer h2.Close()

	entries, err := h2.Recent(10)
	if err != nil {
		t.Fatalf("Recent() after reopen error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() after reopen = %d entries, want 3", len(entries))
	}
	if entries[0].Statement != "query_C" {
		t.Errorf("entries[0].Statement = %q, want %q", entries[0].Statement, "query_C")
	}
}

func TestNilReceiver(t *testing.T) {
	var h *History

	if err := h.Add(Entry{Statement: "SELECT 1"}); err != nil {
		t.Errorf("Add() on nil History error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() on nil History error = %v", err)
	}
}
