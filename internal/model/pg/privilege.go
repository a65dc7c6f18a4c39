package pg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// Privilege is one role's table privilege set, one flag per grantable
// action.
type Privilege struct {
	ID      uuid.UUID
	DB      string
	Schema  string
	Table   string
	Grantee string

	Delete     bool
	Insert     bool
	References bool
	Select     bool
	Trigger    bool
	Truncate   bool
	Update     bool
}

func (p *Privilege) ObjectID() uuid.UUID { return p.ID }
func (p *Privilege) ObjectName() string  { return p.Table }

// flags pins a stable action order for rendering and diffing.
func (p *Privilege) flags() []struct {
	name string
	set  bool
} {
	return []struct {
		name string
		set  bool
	}{
		{"DELETE", p.Delete},
		{"INSERT", p.Insert},
		{"REFERENCES", p.References},
		{"SELECT", p.Select},
		{"TRIGGER", p.Trigger},
		{"TRUNCATE", p.Truncate},
		{"UPDATE", p.Update},
	}
}

func (p *Privilege) target() string {
	return QuoteIdent(p.Schema) + "." + QuoteIdent(p.Table)
}

// GrantDDL renders one GRANT statement covering every set flag, or "" when
// nothing is granted.
func (p *Privilege) GrantDDL() string {
	var actions []string
	for _, f := range p.flags() {
		if f.set {
			actions = append(actions, f.name)
		}
	}
	if len(actions) == 0 {
		return ""
	}
	return fmt.Sprintf("GRANT %s ON %s TO %s;",
		strings.Join(actions, ", "), p.target(), QuoteIdent(p.Grantee))
}

// RevokeAllDDL renders the statement stripping every table privilege from
// the grantee.
func (p *Privilege) RevokeAllDDL() string {
	return fmt.Sprintf("REVOKE ALL PRIVILEGES ON %s FROM %s;", p.target(), QuoteIdent(p.Grantee))
}

// AlterDDL compares every flag against old and aggregates the flips into at
// most one GRANT and one REVOKE statement.
func (p *Privilege) AlterDDL(old *Privilege) []string {
	var granted, revoked []string
	oldFlags := old.flags()
	for i, f := range p.flags() {
		switch {
		case f.set && !oldFlags[i].set:
			granted = append(granted, f.name)
		case !f.set && oldFlags[i].set:
			revoked = append(revoked, f.name)
		}
	}

	var ddl []string
	if len(granted) > 0 {
		ddl = append(ddl, fmt.Sprintf("GRANT %s ON %s TO %s;",
			strings.Join(granted, ", "), p.target(), QuoteIdent(p.Grantee)))
	}
	if len(revoked) > 0 {
		ddl = append(ddl, fmt.Sprintf("REVOKE %s ON %s FROM %s;",
			strings.Join(revoked, ", "), p.target(), QuoteIdent(p.Grantee)))
	}
	return ddl
}

// GrantRow is one row of information_schema.role_table_grants.
type GrantRow struct {
	Grantee   string
	Catalog   string
	Schema    string
	Table     string
	Privilege string
}

// BuildPrivileges folds per-action grant rows into one Privilege per
// (catalog, schema, table, grantee), preserving first-seen order.
func BuildPrivileges(rows []GrantRow) []*Privilege {
	var (
		out  []*Privilege
		byID = map[[4]string]*Privilege{}
	)
	for _, r := range rows {
		key := [4]string{r.Catalog, r.Schema, r.Table, r.Grantee}
		p, ok := byID[key]
		if !ok {
			p = &Privilege{
				ID:      model.NewID(),
				DB:      r.Catalog,
				Schema:  r.Schema,
				Table:   r.Table,
				Grantee: r.Grantee,
			}
			byID[key] = p
			out = append(out, p)
		}
		switch strings.ToUpper(r.Privilege) {
		case "DELETE":
			p.Delete = true
		case "INSERT":
			p.Insert = true
		case "REFERENCES":
			p.References = true
		case "SELECT":
			p.Select = true
		case "TRIGGER":
			p.Trigger = true
		case "TRUNCATE":
			p.Truncate = true
		case "UPDATE":
			p.Update = true
		}
	}
	return out
}
