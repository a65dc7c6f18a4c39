package pg

import "fmt"

// Schema is one namespace within a database.
type Schema struct {
	Name  string
	Owner string
}

// CreateDDL renders the CREATE SCHEMA statement.
func (s *Schema) CreateDDL() string {
	ddl := "CREATE SCHEMA " + QuoteIdent(s.Name)
	if s.Owner != "" {
		ddl += " AUTHORIZATION " + QuoteIdent(s.Owner)
	}
	return ddl + ";"
}

// DropDDL renders the DROP SCHEMA statement.
func (s *Schema) DropDDL() string {
	return "DROP SCHEMA " + QuoteIdent(s.Name) + ";"
}

// AlterDDL diffs two revisions of the same schema.
func (s *Schema) AlterDDL(old *Schema) []string {
	var ddl []string
	if s.Name != old.Name {
		ddl = append(ddl, fmt.Sprintf("ALTER SCHEMA %s RENAME TO %s;",
			QuoteIdent(old.Name), QuoteIdent(s.Name)))
	}
	if s.Owner != old.Owner {
		owner := "CURRENT_USER"
		if s.Owner != "" {
			owner = QuoteIdent(s.Owner)
		}
		ddl = append(ddl, fmt.Sprintf("ALTER SCHEMA %s OWNER TO %s;",
			QuoteIdent(s.Name), owner))
	}
	return ddl
}
