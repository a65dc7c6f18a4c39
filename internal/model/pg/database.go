package pg

import (
	"fmt"
	"strings"
)

// Database mirrors one pg_database row.
type Database struct {
	Name            string
	Owner           string
	Collation       string
	CharacterClass  string
	Template        string
	Tablespace      string
	ConnectionLimit int
	AllowConnection bool
	IsTemplate      bool
}

// CreateDDL renders the CREATE DATABASE statement.
func (d *Database) CreateDDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE DATABASE %s", QuoteIdent(d.Name))
	if d.Owner != "" {
		fmt.Fprintf(&b, " OWNER = %s", QuoteIdent(d.Owner))
	}
	if d.Template != "" {
		fmt.Fprintf(&b, " TEMPLATE = %s", QuoteIdent(d.Template))
	}
	if d.Collation != "" {
		fmt.Fprintf(&b, " LC_COLLATE = %s", quoteLiteral(d.Collation))
	}
	if d.CharacterClass != "" {
		fmt.Fprintf(&b, " LC_CTYPE = %s", quoteLiteral(d.CharacterClass))
	}
	if d.Tablespace != "" {
		fmt.Fprintf(&b, " TABLESPACE = %s", QuoteIdent(d.Tablespace))
	}
	if d.ConnectionLimit != 0 {
		fmt.Fprintf(&b, " CONNECTION LIMIT = %d", d.ConnectionLimit)
	}
	fmt.Fprintf(&b, " ALLOW_CONNECTIONS = %t IS_TEMPLATE = %t;", d.AllowConnection, d.IsTemplate)
	return b.String()
}

// DropDDL renders the DROP DATABASE statement.
func (d *Database) DropDDL() string {
	return "DROP DATABASE " + QuoteIdent(d.Name) + ";"
}

// AlterDDL diffs two revisions of the same database into one statement per
// changed attribute. The collation, character class and template cannot be
// altered after creation and are ignored here.
func (d *Database) AlterDDL(old *Database) []string {
	var ddl []string
	if d.Name != old.Name {
		ddl = append(ddl, fmt.Sprintf("ALTER DATABASE %s RENAME TO %s;",
			QuoteIdent(old.Name), QuoteIdent(d.Name)))
	}
	if d.Owner != old.Owner {
		ddl = append(ddl, fmt.Sprintf("ALTER DATABASE %s OWNER TO %s;",
			QuoteIdent(d.Name), QuoteIdent(d.Owner)))
	}
	if d.Tablespace != old.Tablespace {
		ddl = append(ddl, fmt.Sprintf("ALTER DATABASE %s SET TABLESPACE %s;",
			QuoteIdent(d.Name), QuoteIdent(d.Tablespace)))
	}
	if d.ConnectionLimit != old.ConnectionLimit ||
		d.AllowConnection != old.AllowConnection ||
		d.IsTemplate != old.IsTemplate {
		ddl = append(ddl, fmt.Sprintf(
			"ALTER DATABASE %s WITH CONNECTION LIMIT %d ALLOW_CONNECTIONS %t IS_TEMPLATE %t;",
			QuoteIdent(d.Name), d.ConnectionLimit, d.AllowConnection, d.IsTemplate))
	}
	return ddl
}
