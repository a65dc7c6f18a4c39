// Package model holds the pieces shared by both dialect object models:
// object identity, submitted-form values, error types, and the generic
// alteration differ.
//
// Every catalog object (column, index, constraint, trigger, role, ...)
// carries an opaque id assigned when the instance is first materialized,
// either by an introspection parser or by a "new object" constructor. The id
// is never derived from the name; diffing matches old and new instances by
// id and treats a differing name as a rename.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Dialect identifies one of the two supported SQL engines.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// Object is the capability every catalog object exposes: a stable identity
// and a rendering name. Identity matches instances across an edit session;
// the name is what DDL quotes.
type Object interface {
	ObjectID() uuid.UUID
	ObjectName() string
}

// NewID returns a fresh object identity.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseError reports a provider-rendered definition string that did not match
// the expected grammar. The object is unusable; no partially-populated
// instance is produced.
type ParseError struct {
	Dialect Dialect
	Kind    string // object kind, e.g. "index", "rule"
	Name    string // object name as reported by the catalog
	Input   string // the definition text that failed to parse
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %s %q definition: %q", e.Dialect, e.Kind, e.Name, e.Input)
}

// ValidationError reports a submitted form map missing a required value.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Key)
}
