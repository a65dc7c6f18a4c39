package mysql

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// Check is a table check constraint.
type Check struct {
	ID          uuid.UUID
	Name        string
	Expression  string
	NotEnforced bool
}

func (c *Check) ObjectID() uuid.UUID { return c.ID }
func (c *Check) ObjectName() string  { return c.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE and ADD.
func (c *Check) CreateDDL() string {
	sql := fmt.Sprintf("CONSTRAINT %s CHECK (%s)", QuoteIdent(c.Name), c.Expression)
	if c.NotEnforced {
		sql += " NOT ENFORCED"
	}
	return sql
}

// AddDDL renders the ADD clause.
func (c *Check) AddDDL() string {
	return "ADD " + c.CreateDDL()
}

// DropDDL renders the DROP CHECK clause.
func (c *Check) DropDDL() string {
	return "DROP CHECK " + QuoteIdent(c.Name)
}

// AlterDDL diffs two revisions of the same constraint. Flipping only the
// enforcement bit alters the check in place; touching the expression or the
// name rebuilds it.
func (c *Check) AlterDDL(old *Check) []string {
	if c.Name == old.Name && c.Expression == old.Expression {
		if c.NotEnforced == old.NotEnforced {
			return nil
		}
		state := "ENFORCED"
		if c.NotEnforced {
			state = "NOT ENFORCED"
		}
		return []string{fmt.Sprintf("ALTER CHECK %s %s", QuoteIdent(c.Name), state)}
	}
	stmts, _ := model.Alter(model.Strategy[*Check]{
		Equal: func(cur, old *Check) bool {
			return cur.Expression == old.Expression && cur.NotEnforced == old.NotEnforced
		},
		Drop: func(old *Check) string { return old.DropDDL() },
		Add:  func(cur *Check) string { return cur.AddDDL() },
	}, c, old)
	return stmts
}

// CheckRow is one row of information_schema.CHECK_CONSTRAINTS joined with
// TABLE_CONSTRAINTS.
type CheckRow struct {
	ConstraintName string
	CheckClause    string
	Enforced       string // "YES" or "NO"
}

// ParseCheckRows converts the introspection rows into checks with fresh
// identities.
func ParseCheckRows(rows []CheckRow) []*Check {
	checks := make([]*Check, len(rows))
	for i, r := range rows {
		checks[i] = &Check{
			ID:          model.NewID(),
			Name:        r.ConstraintName,
			Expression:  r.CheckClause,
			NotEnforced: r.Enforced == "NO",
		}
	}
	return checks
}
