package render

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/termdba/internal/adapter"
)

// Styles render as plain text without a TTY, so table layout can be asserted
// directly on the output string.

func selectResult() *adapter.QueryResult {
	return &adapter.QueryResult{
		Columns: []adapter.ColumnMeta{
			{Name: "id", Type: "INT"},
			{Name: "name", Type: "VARCHAR", Nullable: true},
		},
		Rows: [][]string{
			{"1", "Alice"},
			{"2", "NULL"},
		},
		RowCount: 2,
		Duration: 3 * time.Millisecond,
		IsSelect: true,
	}
}

func TestTable_Select(t *testing.T) {
	out := Table(selectResult(), Get("default"), 50)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Table() produced %d lines, want 5:\n%s", len(lines), out)
	}

	if got, want := lines[0], "id | name "; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if got, want := lines[1], "---+------"; got != want {
		t.Errorf("separator = %q, want %q", got, want)
	}
	if got, want := lines[2], "1  | Alice"; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
	if got, want := lines[3], "2  | NULL "; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}
	if got, want := lines[4], "2 row(s) in 3ms"; got != want {
		t.Errorf("footer = %q, want %q", got, want)
	}
}

func TestTable_Truncation(t *testing.T) {
	res := &adapter.QueryResult{
		Columns:  []adapter.ColumnMeta{{Name: "description"}},
		Rows:     [][]string{{"a cell value that is far too wide to display"}},
		RowCount: 1,
		IsSelect: true,
	}

	out := Table(res, Get("default"), 10)

	if strings.Contains(out, "far too wide") {
		t.Errorf("wide cell should be truncated:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("truncated cell should end with an ellipsis:\n%s", out)
	}
	// "description" is 11 characters, over the limit of 10.
	if !strings.Contains(out, "descripti…") {
		t.Errorf("wide header should be truncated:\n%s", out)
	}
}

func TestTable_TruncatedResult(t *testing.T) {
	res := selectResult()
	res.Truncated = true

	out := Table(res, Get("default"), 50)
	if !strings.Contains(out, "(truncated)") {
		t.Errorf("footer should flag a truncated result:\n%s", out)
	}
}

func TestTable_NonSelect(t *testing.T) {
	res := &adapter.QueryResult{
		RowCount: 3,
		Message:  "3 row(s) affected",
		IsSelect: false,
	}

	out := Table(res, Get("default"), 50)
	if got, want := strings.TrimRight(out, "\n"), "3 row(s) affected"; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestTable_NonSelectWithoutMessage(t *testing.T) {
	res := &adapter.QueryResult{RowCount: 1, IsSelect: false}

	out := Table(res, Get("default"), 50)
	if !strings.Contains(out, "1 row(s) affected") {
		t.Errorf("Table() = %q, want row count fallback", out)
	}
}

func TestTable_Nil(t *testing.T) {
	if got := Table(nil, Get("default"), 50); got != "" {
		t.Errorf("Table(nil) = %q, want empty", got)
	}
}

func TestTable_NoColumns(t *testing.T) {
	res := &adapter.QueryResult{IsSelect: true}

	out := Table(res, Get("default"), 50)
	if !strings.Contains(out, "(no columns)") {
		t.Errorf("Table() = %q, want no-columns placeholder", out)
	}
}

func TestTable_EmptyRows(t *testing.T) {
	res := &adapter.QueryResult{
		Columns:  []adapter.ColumnMeta{{Name: "id"}},
		IsSelect: true,
	}

	out := Table(res, Get("default"), 50)
	if !strings.Contains(out, "id") {
		t.Errorf("header should render even with no rows:\n%s", out)
	}
	if !strings.Contains(out, "0 row(s)") {
		t.Errorf("footer should report zero rows:\n%s", out)
	}
}
