package mysql

import "fmt"

// Database is one schema on the server.
type Database struct {
	Name      string
	Charset   string
	Collation string
}

// CreateDDL renders the CREATE DATABASE statement.
func (d *Database) CreateDDL() string {
	sql := "CREATE DATABASE " + QuoteIdent(d.Name)
	if d.Charset != "" {
		sql += fmt.Sprintf(" CHARACTER SET = '%s'", d.Charset)
	}
	if d.Collation != "" {
		sql += fmt.Sprintf(" COLLATE = '%s'", d.Collation)
	}
	return sql
}

// DropDDL renders the DROP DATABASE statement.
func (d *Database) DropDDL() string {
	return "DROP DATABASE " + QuoteIdent(d.Name)
}

// AlterDDL renders an ALTER DATABASE statement covering the changed
// defaults, or "" when neither charset nor collation moved.
func (d *Database) AlterDDL(old *Database) string {
	var clauses string
	if d.Charset != old.Charset && d.Charset != "" {
		clauses += " DEFAULT CHARACTER SET " + d.Charset
	}
	if d.Collation != old.Collation && d.Collation != "" {
		clauses += " DEFAULT COLLATE " + d.Collation
	}
	if clauses == "" {
		return ""
	}
	return "ALTER DATABASE " + QuoteIdent(d.Name) + clauses
}
