package mysql

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// TriggerTime is the firing moment.
type TriggerTime string

const (
	TriggerBefore TriggerTime = "BEFORE"
	TriggerAfter  TriggerTime = "AFTER"
)

// TriggerAction is the statement kind the trigger fires on.
type TriggerAction string

const (
	TriggerInsert TriggerAction = "INSERT"
	TriggerUpdate TriggerAction = "UPDATE"
	TriggerDelete TriggerAction = "DELETE"
)

// Trigger is a row trigger on one table. Table carries the owning table name
// so the trigger can render its own DDL.
type Trigger struct {
	ID        uuid.UUID
	Name      string
	Table     string
	Time      TriggerTime
	Action    TriggerAction
	Statement string
}

func (t *Trigger) ObjectID() uuid.UUID { return t.ID }
func (t *Trigger) ObjectName() string  { return t.Name }

// CreateDDL renders the full CREATE TRIGGER statement.
func (t *Trigger) CreateDDL() string {
	return fmt.Sprintf("CREATE TRIGGER %s %s %s ON %s FOR EACH ROW %s;",
		QuoteIdent(t.Name), t.Time, t.Action, QuoteIdent(t.Table), t.Statement)
}

// DropDDL renders the DROP TRIGGER statement.
func (t *Trigger) DropDDL() string {
	return fmt.Sprintf("DROP TRIGGER %s;", QuoteIdent(t.Name))
}

// AlterDDL diffs two revisions of the same trigger. MySQL cannot edit a
// trigger in place, so any change drops and recreates it.
func (t *Trigger) AlterDDL(old *Trigger) []string {
	stmts, _ := model.Alter(model.Strategy[*Trigger]{
		Equal: func(cur, old *Trigger) bool {
			return cur.Time == old.Time && cur.Action == old.Action &&
				cur.Statement == old.Statement
		},
		Drop: func(old *Trigger) string { return old.DropDDL() },
		Add:  func(cur *Trigger) string { return cur.CreateDDL() },
	}, t, old)
	return stmts
}

// TriggerRow is one row of information_schema.TRIGGERS.
type TriggerRow struct {
	Name      string
	Table     string
	Timing    string // "BEFORE" or "AFTER"
	Event     string // "INSERT", "UPDATE" or "DELETE"
	Statement string
}

// ParseTriggerRows converts the introspection rows into triggers with fresh
// identities.
func ParseTriggerRows(rows []TriggerRow) []*Trigger {
	triggers := make([]*Trigger, len(rows))
	for i, r := range rows {
		triggers[i] = &Trigger{
			ID:        model.NewID(),
			Name:      r.Name,
			Table:     r.Table,
			Time:      TriggerTime(r.Timing),
			Action:    TriggerAction(r.Event),
			Statement: r.Statement,
		}
	}
	return triggers
}
