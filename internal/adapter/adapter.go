// Package adapter defines the dialect-neutral surface the CLI talks to.
// Concrete adapters register themselves from their package init, the way
// database/sql drivers do.
package adapter

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotConnected = errors.New("not connected to database")
	ErrCancelled    = errors.New("query cancelled")
)

// DefaultMaxRows caps the rows buffered by Execute for result sets.
const DefaultMaxRows = 10000

// Adapter creates database connections.
type Adapter interface {
	Connect(ctx context.Context, dsn string) (Connection, error)
	Name() string
	DefaultPort() int
}

// Connection is an active connection to one server. The dialect-specific
// catalog methods live on the concrete connection types; this interface
// carries what every dialect can answer.
type Connection interface {
	// Databases lists the database names visible to the connected account.
	Databases(ctx context.Context) ([]string, error)
	// Tables lists the base tables of one database (MySQL) or of one
	// schema (PostgreSQL; db is the catalog, schemaName the namespace).
	Tables(ctx context.Context, db, schemaName string) ([]string, error)
	// TableDDL introspects one table and synthesizes the statements that
	// would recreate it: the CREATE TABLE itself, secondary indexes,
	// triggers, and for PostgreSQL the COMMENT ON statements.
	TableDDL(ctx context.Context, db, schemaName, table string) ([]string, error)

	// Execute runs one statement and buffers its result.
	Execute(ctx context.Context, query string) (*QueryResult, error)
	// Cancel aborts the statement Execute is currently running, if any.
	Cancel() error

	Ping(ctx context.Context) error
	Close() error

	DatabaseName() string
	AdapterName() string
}

// QueryResult holds the result of a statement execution.
type QueryResult struct {
	Columns   []ColumnMeta
	Rows      [][]string
	RowCount  int64 // -1 if unknown
	Duration  time.Duration
	IsSelect  bool
	Truncated bool
	Message   string
}

// ColumnMeta holds metadata about a result column.
type ColumnMeta struct {
	Name     string
	Type     string
	Nullable bool
}

// Registry holds registered adapters by name.
var Registry = map[string]Adapter{}

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	Registry[a.Name()] = a
}
