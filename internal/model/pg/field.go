// Package pg models the catalog objects of PostgreSQL-family servers and
// renders their DDL. Column comments never travel inline: every comment is a
// separate COMMENT ON statement, which the functions here return alongside
// the structural DDL.
package pg

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// FieldKind is the column type as pg_catalog's udt_name reports it.
type FieldKind string

const (
	KindBigSerial   FieldKind = "bigserial"
	KindBit         FieldKind = "bit"
	KindBool        FieldKind = "bool"
	KindBox         FieldKind = "box"
	KindBytea       FieldKind = "bytea"
	KindChar        FieldKind = "char"
	KindCidr        FieldKind = "cidr"
	KindCircle      FieldKind = "circle"
	KindDate        FieldKind = "date"
	KindDecimal     FieldKind = "decimal"
	KindFloat4      FieldKind = "float4"
	KindFloat8      FieldKind = "float8"
	KindInet        FieldKind = "inet"
	KindInt2        FieldKind = "int2"
	KindInt4        FieldKind = "int4"
	KindInt8        FieldKind = "int8"
	KindInterval    FieldKind = "interval"
	KindJSON        FieldKind = "json"
	KindJSONB       FieldKind = "jsonb"
	KindLine        FieldKind = "line"
	KindLseg        FieldKind = "lseg"
	KindMacaddr     FieldKind = "macaddr"
	KindMoney       FieldKind = "money"
	KindNumeric     FieldKind = "numeric"
	KindPath        FieldKind = "path"
	KindPoint       FieldKind = "point"
	KindPolygon     FieldKind = "polygon"
	KindSerial      FieldKind = "serial"
	KindSerial2     FieldKind = "serial2"
	KindSerial4     FieldKind = "serial4"
	KindSerial8     FieldKind = "serial8"
	KindSmallSerial FieldKind = "smallserial"
	KindText        FieldKind = "text"
	KindTime        FieldKind = "time"
	KindTimestamp   FieldKind = "timestamp"
	KindTimestampTz FieldKind = "timestamptz"
	KindTimeTz      FieldKind = "timetz"
	KindTsQuery     FieldKind = "tsquery"
	KindTsVector    FieldKind = "tsvector"
	KindUUID        FieldKind = "uuid"
	KindVarBit      FieldKind = "varbit"
	KindVarChar     FieldKind = "varchar"
	KindXML         FieldKind = "xml"
)

// FieldKinds lists every supported column kind, in the order a type picker
// shows them.
var FieldKinds = []FieldKind{
	KindBigSerial, KindBit, KindBool, KindBox, KindBytea, KindChar,
	KindCidr, KindCircle, KindDate, KindDecimal, KindFloat4, KindFloat8,
	KindInet, KindInt2, KindInt4, KindInt8, KindInterval, KindJSON,
	KindJSONB, KindLine, KindLseg, KindMacaddr, KindMoney, KindNumeric,
	KindPath, KindPoint, KindPolygon, KindSerial, KindSerial2,
	KindSerial4, KindSerial8, KindSmallSerial, KindText, KindTime,
	KindTimestamp, KindTimestampTz, KindTimeTz, KindTsQuery, KindTsVector,
	KindUUID, KindVarBit, KindVarChar, KindXML,
}

// knownKinds backs kind validation on the introspection path.
var knownKinds = func() map[FieldKind]struct{} {
	m := make(map[FieldKind]struct{}, len(FieldKinds))
	for _, k := range FieldKinds {
		m[k] = struct{}{}
	}
	return m
}()

// QuoteIdent wraps an identifier in double quotes.
func QuoteIdent(name string) string {
	return `"` + name + `"`
}

// QuoteQualified renders schema.name with both parts quoted.
func QuoteQualified(schema, name string) string {
	return QuoteIdent(schema) + "." + QuoteIdent(name)
}

func quoteLiteral(v string) string {
	return "'" + v + "'"
}

// Field is a single table column. Unlike the MySQL model, one struct covers
// every kind; Length and Decimal are 0 when the kind does not carry them.
type Field struct {
	ID      uuid.UUID
	Name    string
	Kind    FieldKind
	NotNull bool
	Key     bool
	Comment string
	Default string
	Length  int
	Decimal int
}

func (f *Field) ObjectID() uuid.UUID { return f.ID }
func (f *Field) ObjectName() string  { return f.Name }

// kindDDL renders the type with its length suffix where the kind takes one.
func (f *Field) kindDDL() string {
	switch f.Kind {
	case KindVarChar, KindChar, KindInterval, KindTime, KindTimestamp,
		KindTimestampTz, KindTimeTz, KindVarBit, KindBit:
		if f.Length > 0 {
			return string(f.Kind) + "(" + strconv.Itoa(f.Length) + ")"
		}
	case KindDecimal, KindNumeric:
		if f.Length > 0 {
			if f.Decimal > 0 {
				return fmt.Sprintf("%s(%d,%d)", f.Kind, f.Length, f.Decimal)
			}
			return fmt.Sprintf("%s(%d)", f.Kind, f.Length)
		}
	}
	return string(f.Kind)
}

// CreateDDL renders the column clause used inside CREATE TABLE, plus the
// COMMENT ON COLUMN statement ("" when the column has no comment).
func (f *Field) CreateDDL(schema, table string) (string, string) {
	ddl := QuoteIdent(f.Name) + " " + f.kindDDL()
	if f.NotNull {
		ddl += " NOT NULL"
	}
	if f.Default != "" {
		ddl += " DEFAULT " + f.Default
	}

	var comment string
	if f.Comment != "" {
		comment = f.commentDDL(schema, table)
	}
	return ddl, comment
}

// AddDDL renders the ADD COLUMN clause plus the comment statement.
func (f *Field) AddDDL(schema, table string) (string, string) {
	ddl, comment := f.CreateDDL(schema, table)
	return "ADD COLUMN " + ddl, comment
}

// DropDDL renders the DROP COLUMN clause.
func (f *Field) DropDDL() string {
	return "DROP COLUMN " + QuoteIdent(f.Name)
}

// AlterDDL diffs two revisions of the same column into targeted ALTER COLUMN
// clauses, one per changed attribute, plus the COMMENT ON COLUMN statement
// when the comment moved ("" otherwise). The name is handled by RenameDDL,
// never here.
func (f *Field) AlterDDL(old *Field, schema, table string) ([]string, string) {
	var ddl []string
	if old.Kind != f.Kind || old.Length != f.Length || old.Decimal != f.Decimal {
		ddl = append(ddl, fmt.Sprintf("ALTER COLUMN %s TYPE %s", QuoteIdent(f.Name), f.kindDDL()))
	}
	if old.Default != f.Default {
		if f.Default != "" {
			ddl = append(ddl, fmt.Sprintf("ALTER COLUMN %s SET DEFAULT %s", QuoteIdent(f.Name), f.Default))
		} else {
			ddl = append(ddl, fmt.Sprintf("ALTER COLUMN %s DROP DEFAULT", QuoteIdent(f.Name)))
		}
	}
	if old.NotNull != f.NotNull {
		verb := "DROP"
		if f.NotNull {
			verb = "SET"
		}
		ddl = append(ddl, fmt.Sprintf("ALTER COLUMN %s %s NOT NULL", QuoteIdent(f.Name), verb))
	}

	var comment string
	if old.Comment != f.Comment {
		comment = f.commentDDL(schema, table)
	}
	return ddl, comment
}

// RenameDDL renders the standalone rename statement, or "" when the name did
// not change.
func (f *Field) RenameDDL(old *Field, schema, table string) string {
	if old.Name == f.Name {
		return ""
	}
	return fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s;",
		QuoteQualified(schema, table), QuoteIdent(old.Name), QuoteIdent(f.Name))
}

func (f *Field) commentDDL(schema, table string) string {
	return fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;",
		QuoteQualified(schema, table), QuoteIdent(f.Name), quoteLiteral(f.Comment))
}

// ColumnRow is one row of information_schema.columns joined with the primary
// key column list and the column comment.
type ColumnRow struct {
	Name             string
	UdtName          string
	IsNullable       string // "YES" or "NO"
	Default          string
	Comment          string
	NumericPrecision int
	NumericScale     int
	CharMaxLength    int
}

// ParseColumnRow turns one introspection row into a Field with a fresh
// identity. keys lists the table's primary key columns. An unknown udt_name
// yields a ParseError.
func ParseColumnRow(row ColumnRow, keys []string) (*Field, error) {
	kind := FieldKind(row.UdtName)
	if _, ok := knownKinds[kind]; !ok {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "column",
			Name:    row.Name,
			Input:   row.UdtName,
		}
	}

	var length, decimal int
	switch kind {
	case KindInt2, KindInt4, KindDecimal, KindNumeric:
		length = row.NumericPrecision
	case KindVarChar, KindChar:
		length = row.CharMaxLength
	}
	if kind == KindDecimal || kind == KindNumeric {
		decimal = row.NumericScale
	}

	key := false
	for _, k := range keys {
		if k == row.Name {
			key = true
			break
		}
	}

	return &Field{
		ID:      model.NewID(),
		Name:    row.Name,
		Kind:    kind,
		NotNull: row.IsNullable != "YES",
		Key:     key,
		Comment: row.Comment,
		Default: row.Default,
		Length:  length,
		Decimal: decimal,
	}, nil
}

// ParseColumnRows converts a whole column introspection result. Rows that
// fail to parse are skipped and reported; the parsed fields keep row order.
func ParseColumnRows(rows []ColumnRow, keys []string) ([]*Field, []error) {
	var (
		fields []*Field
		errs   []error
	)
	for _, r := range rows {
		f, err := ParseColumnRow(r, keys)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, f)
	}
	return fields, errs
}

// FieldFromForm builds a column from a submitted dialog map. "name" and
// "kind" are required.
func FieldFromForm(v model.FormValues) (*Field, error) {
	name, err := v.Required("name")
	if err != nil {
		return nil, err
	}
	kindStr, err := v.Required("kind")
	if err != nil {
		return nil, err
	}
	kind := FieldKind(kindStr)
	if _, ok := knownKinds[kind]; !ok {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "column",
			Name:    name,
			Input:   kindStr,
		}
	}

	length, _ := strconv.Atoi(v.Get("length"))
	decimal, _ := strconv.Atoi(v.Get("decimal"))

	return &Field{
		ID:      model.NewID(),
		Name:    name,
		Kind:    kind,
		NotNull: v.Bool("not_null"),
		Key:     v.Bool("key"),
		Comment: v.Get("comment"),
		Default: v.Get("default"),
		Length:  length,
		Decimal: decimal,
	}, nil
}
