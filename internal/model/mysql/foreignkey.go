package mysql

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// ReferenceOption is a foreign key ON DELETE / ON UPDATE action.
type ReferenceOption string

const (
	RefCascade    ReferenceOption = "CASCADE"
	RefSetNull    ReferenceOption = "SET NULL"
	RefNoAction   ReferenceOption = "NO ACTION"
	RefRestrict   ReferenceOption = "RESTRICT"
	RefSetDefault ReferenceOption = "SET DEFAULT"
)

// ReferenceOptions lists the selectable referential actions.
var ReferenceOptions = []ReferenceOption{
	RefCascade, RefSetNull, RefNoAction, RefRestrict, RefSetDefault,
}

// ForeignKey is a single-column foreign key constraint. MySQL has no way to
// alter one in place, so any change drops and re-adds it.
type ForeignKey struct {
	ID       uuid.UUID
	Name     string
	Field    string
	RefDB    string
	RefTable string
	RefField string
	OnDelete ReferenceOption // empty means engine default
	OnUpdate ReferenceOption
}

func (fk *ForeignKey) ObjectID() uuid.UUID { return fk.ID }
func (fk *ForeignKey) ObjectName() string  { return fk.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE and ADD.
func (fk *ForeignKey) CreateDDL() string {
	sql := fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s.%s (%s)",
		QuoteIdent(fk.Name), QuoteIdent(fk.Field),
		QuoteIdent(fk.RefDB), QuoteIdent(fk.RefTable), QuoteIdent(fk.RefField))
	if fk.OnDelete != "" {
		sql += " ON DELETE " + string(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		sql += " ON UPDATE " + string(fk.OnUpdate)
	}
	return sql
}

// AddDDL renders the ADD clause.
func (fk *ForeignKey) AddDDL() string {
	return "ADD " + fk.CreateDDL()
}

// DropDDL renders the DROP FOREIGN KEY clause.
func (fk *ForeignKey) DropDDL() string {
	return "DROP FOREIGN KEY " + QuoteIdent(fk.Name)
}

// AlterDDL diffs two revisions of the same constraint. Foreign keys cannot
// be renamed or edited in place, so every observable change becomes a
// drop-and-add pair.
func (fk *ForeignKey) AlterDDL(old *ForeignKey) []string {
	stmts, _ := model.Alter(model.Strategy[*ForeignKey]{
		Equal: func(cur, old *ForeignKey) bool {
			return cur.Field == old.Field && cur.RefDB == old.RefDB &&
				cur.RefTable == old.RefTable && cur.RefField == old.RefField &&
				cur.OnDelete == old.OnDelete && cur.OnUpdate == old.OnUpdate
		},
		Drop: func(old *ForeignKey) string { return old.DropDDL() },
		Add:  func(cur *ForeignKey) string { return cur.AddDDL() },
	}, fk, old)
	return stmts
}

// ForeignKeyRow is one row of the information_schema join between
// KEY_COLUMN_USAGE and REFERENTIAL_CONSTRAINTS.
type ForeignKeyRow struct {
	ConstraintName string
	ColumnName     string
	RefSchema      string
	RefTable       string
	RefColumn      string
	UpdateRule     string
	DeleteRule     string
}

// ParseForeignKeyRows converts the introspection rows into constraints with
// fresh identities.
func ParseForeignKeyRows(rows []ForeignKeyRow) []*ForeignKey {
	fks := make([]*ForeignKey, len(rows))
	for i, r := range rows {
		fks[i] = &ForeignKey{
			ID:       model.NewID(),
			Name:     r.ConstraintName,
			Field:    r.ColumnName,
			RefDB:    r.RefSchema,
			RefTable: r.RefTable,
			RefField: r.RefColumn,
			OnDelete: ReferenceOption(r.DeleteRule),
			OnUpdate: ReferenceOption(r.UpdateRule),
		}
	}
	return fks
}
