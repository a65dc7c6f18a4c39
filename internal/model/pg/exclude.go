package pg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// ExcludeElement is one excluded expression with its comparison operator.
type ExcludeElement struct {
	Element    string
	Order      string // "" or "DESC"
	NullsOrder string // "" or "FIRST" / "LAST"
	Operator   string
}

func (e ExcludeElement) String() string {
	s := QuoteIdent(e.Element)
	if e.Order != "" {
		s += " " + e.Order
	}
	if e.NullsOrder != "" {
		s += " NULLS " + e.NullsOrder
	}
	if e.Operator != "" {
		s += " WITH " + e.Operator
	}
	return s
}

// Exclude is an EXCLUDE constraint.
type Exclude struct {
	ID       uuid.UUID
	Name     string
	Method   IndexMethod
	Elements []ExcludeElement
	Comment  string
}

func (e *Exclude) ObjectID() uuid.UUID { return e.ID }
func (e *Exclude) ObjectName() string  { return e.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE, plus the
// COMMENT ON CONSTRAINT statement ("" when uncommented).
func (e *Exclude) CreateDDL(schema, table string) (string, string) {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	ddl := fmt.Sprintf("CONSTRAINT %s EXCLUDE USING %s (%s)",
		QuoteIdent(e.Name), e.Method, strings.Join(parts, ", "))

	var comment string
	if e.Comment != "" {
		comment = e.commentDDL(schema, table)
	}
	return ddl, comment
}

// AddDDL renders the ADD CONSTRAINT clause plus the comment statement.
func (e *Exclude) AddDDL(schema, table string) (string, string) {
	ddl, comment := e.CreateDDL(schema, table)
	return "ADD " + ddl, comment
}

// DropDDL renders the DROP CONSTRAINT clause.
func (e *Exclude) DropDDL() string {
	return "DROP CONSTRAINT " + QuoteIdent(e.Name)
}

func (e *Exclude) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON CONSTRAINT %s ON %s IS %s;",
		QuoteIdent(e.Name), QuoteQualified(schema, table), quoteLiteral(e.Comment))
}

// AlterDDL diffs two revisions of the same exclude constraint into ALTER
// TABLE clauses.
func (e *Exclude) AlterDDL(old *Exclude, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*Exclude]{
		Equal: func(cur, old *Exclude) bool {
			if cur.Method != old.Method || len(cur.Elements) != len(old.Elements) {
				return false
			}
			for i := range cur.Elements {
				if cur.Elements[i] != old.Elements[i] {
					return false
				}
			}
			return true
		},
		Rename: func(cur, old *Exclude) string {
			return fmt.Sprintf("RENAME CONSTRAINT %s TO %s",
				QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *Exclude) string { return old.DropDDL() },
		Add: func(cur *Exclude) string {
			ddl, _ := cur.AddDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *Exclude) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema, table), true
		},
	}, e, old)
}

var (
	excludeDefRe     = regexp.MustCompile(`EXCLUDE\sUSING\s(?P<method>btree|hash|gist|spgist|gin|brin)\s\((?P<elements>.+)\)`)
	excludeElementRe = regexp.MustCompile(`(?P<element>\w+)\s?(?P<order>DESC)?\s?(NULLS\s(?P<nulls>FIRST|LAST))?(\sWITH\s(?P<operator>\S+))?`)
)

// ParseExcludeDef parses the pg_get_constraintdef text of an exclude
// constraint.
func ParseExcludeDef(name, def, comment string) (*Exclude, error) {
	clean := strings.ReplaceAll(def, `"`, "")
	m := excludeDefRe.FindStringSubmatch(clean)
	if m == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "exclude",
			Name:    name,
			Input:   def,
		}
	}

	ex := &Exclude{
		ID:      model.NewID(),
		Name:    name,
		Method:  IndexMethod(m[excludeDefRe.SubexpIndex("method")]),
		Comment: comment,
	}
	for _, part := range strings.Split(m[excludeDefRe.SubexpIndex("elements")], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		em := excludeElementRe.FindStringSubmatch(part)
		if em == nil || em[excludeElementRe.SubexpIndex("element")] == "" {
			return nil, &model.ParseError{
				Dialect: model.DialectPostgres,
				Kind:    "exclude",
				Name:    name,
				Input:   part,
			}
		}
		ex.Elements = append(ex.Elements, ExcludeElement{
			Element:    em[excludeElementRe.SubexpIndex("element")],
			Order:      em[excludeElementRe.SubexpIndex("order")],
			NullsOrder: em[excludeElementRe.SubexpIndex("nulls")],
			Operator:   em[excludeElementRe.SubexpIndex("operator")],
		})
	}
	return ex, nil
}
