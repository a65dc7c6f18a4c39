package pg

// Table mirrors one pg_tables row, the metadata shown in the table browser.
type Table struct {
	Name        string
	Owner       string
	Tablespace  string
	HasIndexes  bool
	HasRules    bool
	HasTriggers bool
	RowSecurity bool
}
