package pg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// TriggerTime is when a trigger fires relative to its statement.
type TriggerTime string

const (
	TriggerBefore TriggerTime = "BEFORE"
	TriggerAfter  TriggerTime = "AFTER"
)

// TriggerForEach is the trigger granularity.
type TriggerForEach string

const (
	ForEachRow       TriggerForEach = "ROW"
	ForEachStatement TriggerForEach = "STATEMENT"
)

// pg_trigger.tgtype bit layout.
const (
	tgTypeRow      = 1 << 0
	tgTypeBefore   = 1 << 1
	tgTypeInsert   = 1 << 2
	tgTypeDelete   = 1 << 3
	tgTypeUpdate   = 1 << 4
	tgTypeTruncate = 1 << 5
)

// Trigger is a table trigger backed by a trigger function.
type Trigger struct {
	ID           uuid.UUID
	Name         string
	ForEach      TriggerForEach
	Fires        TriggerTime
	Insert       bool
	Update       bool
	Delete       bool
	Truncate     bool
	UpdateFields []string
	Enabled      bool
	Condition    string
	FnSchema     string
	FnName       string
	FnArgs       string
}

func (t *Trigger) ObjectID() uuid.UUID { return t.ID }
func (t *Trigger) ObjectName() string  { return t.Name }

// events renders the "INSERT OR UPDATE OF ... OR DELETE" action list.
func (t *Trigger) events() string {
	var parts []string
	if t.Insert {
		parts = append(parts, "INSERT")
	}
	if t.Update {
		ev := "UPDATE"
		if len(t.UpdateFields) > 0 {
			cols := make([]string, len(t.UpdateFields))
			for i, f := range t.UpdateFields {
				cols[i] = QuoteIdent(f)
			}
			ev += " OF " + strings.Join(cols, ", ")
		}
		parts = append(parts, ev)
	}
	if t.Delete {
		parts = append(parts, "DELETE")
	}
	if t.Truncate {
		parts = append(parts, "TRUNCATE")
	}
	return strings.Join(parts, " OR ")
}

// CreateDDL renders the full CREATE TRIGGER statement.
func (t *Trigger) CreateDDL(schema, table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s FOR EACH %s",
		QuoteIdent(t.Name), t.Fires, t.events(), QuoteQualified(schema, table), t.ForEach)
	if t.Condition != "" {
		fmt.Fprintf(&b, " WHEN (%s)", t.Condition)
	}
	fmt.Fprintf(&b, " EXECUTE PROCEDURE %s(%s);", QuoteQualified(t.FnSchema, t.FnName), t.FnArgs)
	return b.String()
}

// DropDDL renders the DROP TRIGGER statement.
func (t *Trigger) DropDDL(schema, table string) string {
	return fmt.Sprintf("DROP TRIGGER %s ON %s;", QuoteIdent(t.Name), QuoteQualified(schema, table))
}

func (t *Trigger) equal(old *Trigger) bool {
	if t.ForEach != old.ForEach || t.Fires != old.Fires ||
		t.Insert != old.Insert || t.Update != old.Update ||
		t.Delete != old.Delete || t.Truncate != old.Truncate ||
		t.Condition != old.Condition ||
		t.FnSchema != old.FnSchema || t.FnName != old.FnName || t.FnArgs != old.FnArgs {
		return false
	}
	if len(t.UpdateFields) != len(old.UpdateFields) {
		return false
	}
	for i := range t.UpdateFields {
		if t.UpdateFields[i] != old.UpdateFields[i] {
			return false
		}
	}
	return true
}

// AlterDDL diffs two revisions of the same trigger. A bare rename keeps the
// trigger; any other change drops and recreates it.
func (t *Trigger) AlterDDL(old *Trigger, schema, table string) []string {
	stmts, _ := model.Alter(model.Strategy[*Trigger]{
		Equal: func(cur, old *Trigger) bool { return cur.equal(old) },
		Rename: func(cur, old *Trigger) string {
			return fmt.Sprintf("ALTER TRIGGER %s ON %s RENAME TO %s;",
				QuoteIdent(old.Name), QuoteQualified(schema, table), QuoteIdent(cur.Name))
		},
		Drop: func(old *Trigger) string { return old.DropDDL(schema, table) },
		Add:  func(cur *Trigger) string { return cur.CreateDDL(schema, table) },
	}, t, old)
	return stmts
}

// TriggerRow is one row of the pg_trigger introspection query.
type TriggerRow struct {
	Name         string
	Type         int16  // tgtype bitmask
	Enabled      string // tgenabled flag, 'D' means disabled
	UpdateFields []string
	Condition    string
	FnSchema     string
	FnName       string
	FnArgs       string
}

// ParseTriggerRow decodes the tgtype bitmask into a Trigger with a fresh
// identity.
func ParseTriggerRow(row TriggerRow) *Trigger {
	forEach := ForEachStatement
	if row.Type&tgTypeRow != 0 {
		forEach = ForEachRow
	}
	fires := TriggerAfter
	if row.Type&tgTypeBefore != 0 {
		fires = TriggerBefore
	}
	return &Trigger{
		ID:           model.NewID(),
		Name:         row.Name,
		ForEach:      forEach,
		Fires:        fires,
		Insert:       row.Type&tgTypeInsert != 0,
		Update:       row.Type&tgTypeUpdate != 0,
		Delete:       row.Type&tgTypeDelete != 0,
		Truncate:     row.Type&tgTypeTruncate != 0,
		UpdateFields: row.UpdateFields,
		Enabled:      row.Enabled != "D",
		Condition:    row.Condition,
		FnSchema:     row.FnSchema,
		FnName:       row.FnName,
		FnArgs:       row.FnArgs,
	}
}

// ParseTriggerRows converts a whole trigger introspection result.
func ParseTriggerRows(rows []TriggerRow) []*Trigger {
	triggers := make([]*Trigger, 0, len(rows))
	for _, r := range rows {
		triggers = append(triggers, ParseTriggerRow(r))
	}
	return triggers
}
