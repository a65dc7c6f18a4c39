package pg

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// ReferenceOption is a foreign key ON DELETE / ON UPDATE action.
type ReferenceOption string

const (
	RefCascade    ReferenceOption = "CASCADE"
	RefRestrict   ReferenceOption = "RESTRICT"
	RefNoAction   ReferenceOption = "NO ACTION"
	RefSetNull    ReferenceOption = "SET NULL"
	RefSetDefault ReferenceOption = "SET DEFAULT"
)

// ReferenceOptions lists the selectable referential actions.
var ReferenceOptions = []ReferenceOption{
	RefCascade, RefRestrict, RefNoAction, RefSetNull, RefSetDefault,
}

// ForeignKey is a single-column foreign key constraint.
type ForeignKey struct {
	ID        uuid.UUID
	Name      string
	Field     string
	RefSchema string
	RefTable  string
	RefField  string
	OnDelete  ReferenceOption
	OnUpdate  ReferenceOption
	Comment   string
}

func (fk *ForeignKey) ObjectID() uuid.UUID { return fk.ID }
func (fk *ForeignKey) ObjectName() string  { return fk.Name }

// CreateDDL renders the constraint clause used inside CREATE TABLE, plus the
// COMMENT ON CONSTRAINT statement ("" when uncommented).
func (fk *ForeignKey) CreateDDL(schema, table string) (string, string) {
	ddl := fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		QuoteIdent(fk.Name), QuoteIdent(fk.Field),
		QuoteQualified(fk.RefSchema, fk.RefTable), QuoteIdent(fk.RefField))
	if fk.OnDelete != "" {
		ddl += " ON DELETE " + string(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		ddl += " ON UPDATE " + string(fk.OnUpdate)
	}

	var comment string
	if fk.Comment != "" {
		comment = fk.commentDDL(schema, table)
	}
	return ddl, comment
}

// AddDDL renders the ADD CONSTRAINT clause plus the comment statement.
func (fk *ForeignKey) AddDDL(schema, table string) (string, string) {
	ddl, comment := fk.CreateDDL(schema, table)
	return "ADD " + ddl, comment
}

// DropDDL renders the DROP CONSTRAINT clause.
func (fk *ForeignKey) DropDDL() string {
	return "DROP CONSTRAINT " + QuoteIdent(fk.Name)
}

func (fk *ForeignKey) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON CONSTRAINT %s ON %s IS %s;",
		QuoteIdent(fk.Name), QuoteQualified(schema, table), quoteLiteral(fk.Comment))
}

func (fk *ForeignKey) equal(old *ForeignKey) bool {
	return fk.Field == old.Field &&
		fk.RefSchema == old.RefSchema &&
		fk.RefTable == old.RefTable &&
		fk.RefField == old.RefField &&
		fk.OnDelete == old.OnDelete &&
		fk.OnUpdate == old.OnUpdate
}

// AlterDDL diffs two revisions of the same foreign key into ALTER TABLE
// clauses. A bare rename uses RENAME CONSTRAINT; other changes drop and
// re-add the constraint.
func (fk *ForeignKey) AlterDDL(old *ForeignKey, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*ForeignKey]{
		Equal: func(cur, old *ForeignKey) bool { return cur.equal(old) },
		Rename: func(cur, old *ForeignKey) string {
			return fmt.Sprintf("RENAME CONSTRAINT %s TO %s",
				QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *ForeignKey) string { return old.DropDDL() },
		Add: func(cur *ForeignKey) string {
			ddl, _ := cur.AddDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *ForeignKey) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema, table), true
		},
	}, fk, old)
}

var foreignKeyDefRe = regexp.MustCompile(`FOREIGN\sKEY\s\((?P<field>\w+)\)\sREFERENCES\s(?P<ref_table>\w+)\((?P<ref_field>\w+)\)(\sON\sUPDATE\s(?P<on_update>CASCADE|RESTRICT|NO ACTION|SET NULL|SET DEFAULT))?(\sON\sDELETE\s(?P<on_delete>CASCADE|RESTRICT|NO ACTION|SET NULL|SET DEFAULT))?`)

// ParseForeignKeyDef parses the pg_get_constraintdef text of a foreign key.
// schema is the schema the referenced table was resolved against.
func ParseForeignKeyDef(name, def, schema, comment string) (*ForeignKey, error) {
	m := foreignKeyDefRe.FindStringSubmatch(def)
	if m == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "foreign key",
			Name:    name,
			Input:   def,
		}
	}
	group := func(name string) string { return m[foreignKeyDefRe.SubexpIndex(name)] }

	return &ForeignKey{
		ID:        model.NewID(),
		Name:      name,
		Field:     group("field"),
		RefSchema: schema,
		RefTable:  group("ref_table"),
		RefField:  group("ref_field"),
		OnDelete:  ReferenceOption(group("on_delete")),
		OnUpdate:  ReferenceOption(group("on_update")),
		Comment:   comment,
	}, nil
}
