package mysql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// Privilege is the set of table-level grants one user holds on one table.
type Privilege struct {
	ID         uuid.UUID
	DB         string
	Table      string
	Alter      bool
	Create     bool
	CreateView bool
	Delete     bool
	Drop       bool
	GrantOpt   bool
	Index      bool
	Insert     bool
	References bool
	Select     bool
	ShowView   bool
	Trigger    bool
	Update     bool
}

func (p *Privilege) ObjectID() uuid.UUID { return p.ID }
func (p *Privilege) ObjectName() string  { return p.Table }

// flags pins the flag ordering used in every rendered action list.
func (p *Privilege) flags() []struct {
	name string
	set  bool
} {
	return []struct {
		name string
		set  bool
	}{
		{"Alter", p.Alter},
		{"Create", p.Create},
		{"Create View", p.CreateView},
		{"Delete", p.Delete},
		{"Drop", p.Drop},
		{"Grant Option", p.GrantOpt},
		{"Index", p.Index},
		{"Insert", p.Insert},
		{"References", p.References},
		{"Select", p.Select},
		{"Show View", p.ShowView},
		{"Trigger", p.Trigger},
		{"Update", p.Update},
	}
}

func (p *Privilege) actions() []string {
	var names []string
	for _, f := range p.flags() {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}

// GrantDDL renders one GRANT statement covering every set flag.
func (p *Privilege) GrantDDL(userName, userHost string) string {
	return fmt.Sprintf("GRANT %s ON %s.%s TO %s@%s",
		strings.Join(p.actions(), ","),
		QuoteIdent(p.DB), QuoteIdent(p.Table),
		QuoteIdent(userName), QuoteIdent(userHost))
}

// RevokeAllDDL renders one REVOKE statement covering every set flag.
func (p *Privilege) RevokeAllDDL(userName, userHost string) string {
	return fmt.Sprintf("REVOKE %s ON TABLE %s.%s FROM %s@%s",
		strings.Join(p.actions(), ","),
		QuoteIdent(p.DB), QuoteIdent(p.Table),
		QuoteIdent(userName), QuoteIdent(userHost))
}

// AlterDDL aggregates all flag flips between two revisions into at most one
// GRANT and one REVOKE statement.
func (p *Privilege) AlterDDL(old *Privilege, userName, userHost string) []string {
	var grants, revokes []string
	oldFlags := old.flags()
	for i, f := range p.flags() {
		if f.set == oldFlags[i].set {
			continue
		}
		if f.set {
			grants = append(grants, f.name)
		} else {
			revokes = append(revokes, f.name)
		}
	}

	var ddl []string
	if len(grants) > 0 {
		ddl = append(ddl, fmt.Sprintf("GRANT %s ON %s.%s TO %s@%s",
			strings.Join(grants, ","),
			QuoteIdent(p.DB), QuoteIdent(p.Table),
			QuoteIdent(userName), QuoteIdent(userHost)))
	}
	if len(revokes) > 0 {
		ddl = append(ddl, fmt.Sprintf("REVOKE %s ON %s.%s FROM %s@%s",
			strings.Join(revokes, ","),
			QuoteIdent(p.DB), QuoteIdent(p.Table),
			QuoteIdent(userName), QuoteIdent(userHost)))
	}
	return ddl
}

// grantLineRe matches the table-level lines of SHOW GRANTS output, e.g.
// "GRANT SELECT, INSERT ON `shop`.`orders` TO `app`@`%`". Global and
// database-wide grants do not match and are skipped.
var grantLineRe = regexp.MustCompile("^GRANT (?P<privs>.+) ON `(?P<db>[^`]+)`\\.`(?P<table>[^`]+)`")

// ParseGrantLine turns one SHOW GRANTS line into a Privilege. The second
// result is false for lines that are not table-level grants.
func ParseGrantLine(line string) (*Privilege, bool) {
	m := grantLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	privs := m[grantLineRe.SubexpIndex("privs")]

	set := make(map[string]bool)
	for _, a := range strings.Split(privs, ",") {
		set[strings.ToUpper(strings.TrimSpace(a))] = true
	}
	// WITH GRANT OPTION trails the ON clause rather than the action list.
	if strings.Contains(line, "WITH GRANT OPTION") {
		set["GRANT OPTION"] = true
	}
	all := set["ALL"] || set["ALL PRIVILEGES"]

	return &Privilege{
		ID:         model.NewID(),
		DB:         m[grantLineRe.SubexpIndex("db")],
		Table:      m[grantLineRe.SubexpIndex("table")],
		Alter:      all || set["ALTER"],
		Create:     all || set["CREATE"],
		CreateView: all || set["CREATE VIEW"],
		Delete:     all || set["DELETE"],
		Drop:       all || set["DROP"],
		GrantOpt:   set["GRANT OPTION"],
		Index:      all || set["INDEX"],
		Insert:     all || set["INSERT"],
		References: all || set["REFERENCES"],
		Select:     all || set["SELECT"],
		ShowView:   all || set["SHOW VIEW"],
		Trigger:    all || set["TRIGGER"],
		Update:     all || set["UPDATE"],
	}, true
}

// ParseGrantLines converts a whole SHOW GRANTS result, skipping lines that
// are not table-level grants.
func ParseGrantLines(lines []string) []*Privilege {
	var privs []*Privilege
	for _, l := range lines {
		if p, ok := ParseGrantLine(l); ok {
			privs = append(privs, p)
		}
	}
	return privs
}
