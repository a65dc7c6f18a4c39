package pg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// Unique is a UNIQUE constraint over one or more columns.
type Unique struct {
	ID      uuid.UUID
	Name    string
	Fields  []string
	Comment string
}

func (u *Unique) ObjectID() uuid.UUID { return u.ID }
func (u *Unique) ObjectName() string  { return u.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE, plus the
// COMMENT ON CONSTRAINT statement ("" when uncommented).
func (u *Unique) CreateDDL(schema, table string) (string, string) {
	cols := make([]string, len(u.Fields))
	for i, f := range u.Fields {
		cols[i] = QuoteIdent(f)
	}
	ddl := fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)",
		QuoteIdent(u.Name), strings.Join(cols, ", "))

	var comment string
	if u.Comment != "" {
		comment = u.commentDDL(schema, table)
	}
	return ddl, comment
}

// AddDDL renders the ADD CONSTRAINT clause plus the comment statement.
func (u *Unique) AddDDL(schema, table string) (string, string) {
	ddl, comment := u.CreateDDL(schema, table)
	return "ADD " + ddl, comment
}

// DropDDL renders the DROP CONSTRAINT clause.
func (u *Unique) DropDDL() string {
	return "DROP CONSTRAINT " + QuoteIdent(u.Name)
}

func (u *Unique) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON CONSTRAINT %s ON %s IS %s;",
		QuoteIdent(u.Name), QuoteQualified(schema, table), quoteLiteral(u.Comment))
}

// AlterDDL diffs two revisions of the same unique constraint into ALTER
// TABLE clauses.
func (u *Unique) AlterDDL(old *Unique, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*Unique]{
		Equal: func(cur, old *Unique) bool {
			if len(cur.Fields) != len(old.Fields) {
				return false
			}
			for i := range cur.Fields {
				if cur.Fields[i] != old.Fields[i] {
					return false
				}
			}
			return true
		},
		Rename: func(cur, old *Unique) string {
			return fmt.Sprintf("RENAME CONSTRAINT %s TO %s",
				QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *Unique) string { return old.DropDDL() },
		Add: func(cur *Unique) string {
			ddl, _ := cur.AddDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *Unique) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema, table), true
		},
	}, u, old)
}

// UniqueRow is one row of the unique constraint introspection query: the
// constraint name joined with its ordered column list.
type UniqueRow struct {
	Name    string
	Columns []string
	Comment string
}

// ParseUniqueRows converts introspection rows into constraints with fresh
// identities.
func ParseUniqueRows(rows []UniqueRow) []*Unique {
	uniques := make([]*Unique, 0, len(rows))
	for _, r := range rows {
		uniques = append(uniques, &Unique{
			ID:      model.NewID(),
			Name:    r.Name,
			Fields:  r.Columns,
			Comment: r.Comment,
		})
	}
	return uniques
}
