package pg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// RuleEvent is the command a rewrite rule fires on.
type RuleEvent string

const (
	RuleSelect RuleEvent = "SELECT"
	RuleInsert RuleEvent = "INSERT"
	RuleUpdate RuleEvent = "UPDATE"
	RuleDelete RuleEvent = "DELETE"
)

// RuleEvents lists the selectable rule events.
var RuleEvents = []RuleEvent{RuleSelect, RuleInsert, RuleUpdate, RuleDelete}

// Rule is a query rewrite rule on one table.
type Rule struct {
	ID         uuid.UUID
	Name       string
	Event      RuleEvent
	DoInstead  bool // false means DO ALSO
	Enabled    bool
	Condition  string
	Definition string // "" means DO NOTHING
	Comment    string
}

func (r *Rule) ObjectID() uuid.UUID { return r.ID }
func (r *Rule) ObjectName() string  { return r.Name }

// CreateDDL renders the full CREATE RULE statement plus the COMMENT ON RULE
// statement ("" when uncommented).
func (r *Rule) CreateDDL(schema, table string) (string, string) {
	action := "ALSO"
	if r.DoInstead {
		action = "INSTEAD"
	}
	body := r.Definition
	if body == "" {
		body = "NOTHING"
	}
	ddl := fmt.Sprintf("CREATE RULE %s AS ON %s TO %s",
		QuoteIdent(r.Name), r.Event, QuoteQualified(schema, table))
	if r.Condition != "" {
		ddl += fmt.Sprintf(" WHERE (%s)", r.Condition)
	}
	ddl += fmt.Sprintf(" DO %s %s;", action, body)

	var comment string
	if r.Comment != "" {
		comment = r.commentDDL(schema, table)
	}
	return ddl, comment
}

// DropDDL renders the DROP RULE statement.
func (r *Rule) DropDDL(schema, table string) string {
	return fmt.Sprintf("DROP RULE %s ON %s;", QuoteIdent(r.Name), QuoteQualified(schema, table))
}

func (r *Rule) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON RULE %s ON %s IS %s;",
		QuoteIdent(r.Name), QuoteQualified(schema, table), quoteLiteral(r.Comment))
}

// AlterDDL diffs two revisions of the same rule. A bare rename keeps the
// rule; any other change drops and recreates it.
func (r *Rule) AlterDDL(old *Rule, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*Rule]{
		Equal: func(cur, old *Rule) bool {
			return cur.Event == old.Event && cur.DoInstead == old.DoInstead &&
				cur.Condition == old.Condition && cur.Definition == old.Definition
		},
		Rename: func(cur, old *Rule) string {
			return fmt.Sprintf("ALTER RULE %s ON %s RENAME TO %s;",
				QuoteIdent(old.Name), QuoteQualified(schema, table), QuoteIdent(cur.Name))
		},
		Drop: func(old *Rule) string { return old.DropDDL(schema, table) },
		Add: func(cur *Rule) string {
			ddl, _ := cur.CreateDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *Rule) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema, table), true
		},
	}, r, old)
}

var ruleDefRe = regexp.MustCompile(`(?s)CREATE\sRULE\s(?:\w+)\sAS\s+ON\s(?P<event>SELECT|INSERT|UPDATE|DELETE)\sTO\s(?:[\w.]+)(\s+WHERE\s\((?P<condition>.+)\))?\sDO\s(?P<action>ALSO|INSTEAD)\s+(?P<definition>.+)`)

// ParseRuleDef parses the pg_rules definition text. A definition that does
// not match the expected shape is a hard error, never a silently skipped
// rule.
func ParseRuleDef(name, def, enabled, comment string) (*Rule, error) {
	m := ruleDefRe.FindStringSubmatch(strings.ReplaceAll(def, `"`, ""))
	if m == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "rule",
			Name:    name,
			Input:   def,
		}
	}
	group := func(name string) string { return m[ruleDefRe.SubexpIndex(name)] }

	definition := group("definition")
	if definition == "NOTHING;" || definition == "NOTHING" {
		definition = ""
	}
	return &Rule{
		ID:         model.NewID(),
		Name:       name,
		Event:      RuleEvent(group("event")),
		DoInstead:  group("action") == "INSTEAD",
		Enabled:    enabled != "D",
		Condition:  group("condition"),
		Definition: definition,
		Comment:    comment,
	}, nil
}
