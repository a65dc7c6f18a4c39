package pg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// Check is a CHECK constraint.
type Check struct {
	ID         uuid.UUID
	Name       string
	Expression string
	NoInherit  bool
	Comment    string
}

func (c *Check) ObjectID() uuid.UUID { return c.ID }
func (c *Check) ObjectName() string  { return c.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE, plus the
// COMMENT ON CONSTRAINT statement ("" when uncommented).
func (c *Check) CreateDDL(schema, table string) (string, string) {
	ddl := fmt.Sprintf("CONSTRAINT %s CHECK (%s)", QuoteIdent(c.Name), c.Expression)
	if c.NoInherit {
		ddl += " NO INHERIT"
	}

	var comment string
	if c.Comment != "" {
		comment = c.commentDDL(schema, table)
	}
	return ddl, comment
}

// AddDDL renders the ADD CONSTRAINT clause plus the comment statement.
func (c *Check) AddDDL(schema, table string) (string, string) {
	ddl, comment := c.CreateDDL(schema, table)
	return "ADD " + ddl, comment
}

// DropDDL renders the DROP CONSTRAINT clause.
func (c *Check) DropDDL() string {
	return "DROP CONSTRAINT " + QuoteIdent(c.Name)
}

func (c *Check) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON CONSTRAINT %s ON %s IS %s;",
		QuoteIdent(c.Name), QuoteQualified(schema, table), quoteLiteral(c.Comment))
}

// AlterDDL diffs two revisions of the same check constraint into ALTER TABLE
// clauses. Expressions cannot be altered in place, so any change beyond the
// name drops and re-adds the constraint.
func (c *Check) AlterDDL(old *Check, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*Check]{
		Equal: func(cur, old *Check) bool {
			return cur.Expression == old.Expression && cur.NoInherit == old.NoInherit
		},
		Rename: func(cur, old *Check) string {
			return fmt.Sprintf("RENAME CONSTRAINT %s TO %s",
				QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *Check) string { return old.DropDDL() },
		Add: func(cur *Check) string {
			ddl, _ := cur.AddDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *Check) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema, table), true
		},
	}, c, old)
}

// ParseCheckDef parses the pg_get_constraintdef text of a check constraint.
func ParseCheckDef(name, def, comment string) (*Check, error) {
	start := strings.Index(def, "(")
	end := strings.LastIndex(def, ")")
	if !strings.HasPrefix(def, "CHECK") || start < 0 || end <= start {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "check",
			Name:    name,
			Input:   def,
		}
	}
	return &Check{
		ID:         model.NewID(),
		Name:       name,
		Expression: def[start+1 : end],
		NoInherit:  strings.Contains(def, "NO INHERIT"),
		Comment:    comment,
	}, nil
}
