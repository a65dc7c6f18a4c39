package mysql

import "time"

// Table is the information_schema metadata shown in the table inspector.
type Table struct {
	Name         string
	Rows         uint64
	Engine       string
	Collation    string
	CreateDate   time.Time
	ModifiedDate time.Time
	DataLength   uint64
	Comment      string
}

// View is the information_schema metadata shown for a view.
type View struct {
	Name        string
	CheckOption string
	Definer     string
	SQLSecurity string
}
