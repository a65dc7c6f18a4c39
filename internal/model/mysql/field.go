// Package mysql models the catalog objects of MySQL-family servers and
// renders their DDL. Everything here is pure: introspection rows come in as
// plain structs, statements go out as strings, and no database handle is
// touched.
package mysql

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FieldKind is the column type keyword as SHOW COLUMNS reports it.
type FieldKind string

const (
	KindBigInt          FieldKind = "bigint"
	KindBinary          FieldKind = "binary"
	KindBit             FieldKind = "bit"
	KindBlob            FieldKind = "blob"
	KindChar            FieldKind = "char"
	KindDate            FieldKind = "date"
	KindDateTime        FieldKind = "datetime"
	KindDecimal         FieldKind = "decimal"
	KindDouble          FieldKind = "double"
	KindEnum            FieldKind = "enum"
	KindFloat           FieldKind = "float"
	KindGeometry        FieldKind = "geometry"
	KindGeomCollection  FieldKind = "geomcollection"
	KindInt             FieldKind = "int"
	KindInteger         FieldKind = "integer"
	KindJSON            FieldKind = "json"
	KindLineString      FieldKind = "linestring"
	KindLongBlob        FieldKind = "longblob"
	KindLongText        FieldKind = "longtext"
	KindMediumBlob      FieldKind = "mediumblob"
	KindMediumInt       FieldKind = "mediumint"
	KindMediumText      FieldKind = "mediumtext"
	KindMultiLineString FieldKind = "multilinestring"
	KindMultiPoint      FieldKind = "multipoint"
	KindMultiPolygon    FieldKind = "multipolygon"
	KindNumeric         FieldKind = "numeric"
	KindPoint           FieldKind = "point"
	KindPolygon         FieldKind = "polygon"
	KindReal            FieldKind = "real"
	KindSet             FieldKind = "set"
	KindSmallInt        FieldKind = "smallint"
	KindText            FieldKind = "text"
	KindTime            FieldKind = "time"
	KindTimestamp       FieldKind = "timestamp"
	KindTinyBlob        FieldKind = "tinyblob"
	KindTinyInt         FieldKind = "tinyint"
	KindTinyText        FieldKind = "tinytext"
	KindVarBinary       FieldKind = "varbinary"
	KindVarChar         FieldKind = "varchar"
	KindYear            FieldKind = "year"
)

// FieldKinds lists every supported column kind, in the order a type picker
// shows them.
var FieldKinds = []FieldKind{
	KindBigInt, KindBinary, KindBit, KindBlob, KindChar, KindDate,
	KindDateTime, KindDecimal, KindDouble, KindEnum, KindFloat,
	KindGeometry, KindGeomCollection, KindInt, KindInteger, KindJSON,
	KindLineString, KindLongBlob, KindLongText, KindMediumBlob,
	KindMediumInt, KindMediumText, KindMultiLineString, KindMultiPoint,
	KindMultiPolygon, KindNumeric, KindPoint, KindPolygon, KindReal,
	KindSet, KindSmallInt, KindText, KindTime, KindTimestamp,
	KindTinyBlob, KindTinyInt, KindTinyText, KindVarBinary, KindVarChar,
	KindYear,
}

// Field is a single table column. The concrete type behind the interface is
// one of the attribute families below; dissimilar families never produce a
// change clause against each other.
type Field interface {
	Meta() *FieldMeta
	// CreateStr renders the column clause used inside CREATE TABLE and
	// ADD/CHANGE COLUMN.
	CreateStr() string
	// ChangeStr renders a CHANGE COLUMN clause against the old revision of
	// the same column, or reports false when nothing observable differs.
	ChangeStr(old Field) (string, bool)
}

// FieldMeta carries the attributes every column family shares.
type FieldMeta struct {
	ID      uuid.UUID
	Name    string
	Kind    FieldKind
	NotNull bool
	Key     bool
	Comment string
	Default string
}

func (m *FieldMeta) Meta() *FieldMeta    { return m }
func (m *FieldMeta) ObjectID() uuid.UUID { return m.ID }
func (m *FieldMeta) ObjectName() string  { return m.Name }

// AddStr renders the ADD clause for a column.
func AddStr(f Field) string {
	return "ADD " + f.CreateStr()
}

// DropStr renders the DROP COLUMN clause for a column.
func DropStr(f Field) string {
	return "DROP COLUMN " + QuoteIdent(f.Meta().Name)
}

// QuoteIdent wraps an identifier in backticks.
func QuoteIdent(name string) string {
	return "`" + name + "`"
}

// quoteLiteral wraps a value in single quotes for use in DDL.
func quoteLiteral(v string) string {
	return "'" + v + "'"
}

// ---------- clause helpers ----------
//
// Each helper returns either an empty string or a clause with its leading
// space, so CreateStr renderers can concatenate them unconditionally.

func lengthClause(l string) string {
	if l == "" {
		return ""
	}
	return "(" + l + ")"
}

func lengthDecimalClause(l, d string) string {
	if l == "" {
		return ""
	}
	if d == "" {
		return "(" + l + ")"
	}
	return "(" + l + "," + d + ")"
}

func charsetClause(c string) string {
	if c == "" {
		return ""
	}
	return " CHARACTER SET " + c
}

func collateClause(c string) string {
	if c == "" {
		return ""
	}
	return " COLLATE " + c
}

func unsignedClause(u bool) string {
	if u {
		return " UNSIGNED"
	}
	return ""
}

func zerofillClause(z bool) string {
	if z {
		return " ZEROFILL"
	}
	return ""
}

func nullClause(notNull bool) string {
	if notNull {
		return " NOT NULL"
	}
	return " NULL"
}

func defaultClause(v string, quote bool) string {
	if v == "" {
		return ""
	}
	if quote {
		return " DEFAULT " + quoteLiteral(v)
	}
	return " DEFAULT " + v
}

func autoIncrementClause(ai bool) string {
	if ai {
		return " AUTO_INCREMENT"
	}
	return ""
}

func onUpdateClause(on bool, length string) string {
	if !on {
		return ""
	}
	if length != "" {
		return " ON UPDATE CURRENT_TIMESTAMP (" + length + ")"
	}
	return " ON UPDATE CURRENT_TIMESTAMP"
}

func commentClause(c string) string {
	if c == "" {
		return ""
	}
	return " COMMENT " + quoteLiteral(c)
}

// charsetOf derives the character set from a collation name, which always
// starts with its charset followed by an underscore.
func charsetOf(collation string) string {
	if cs, _, ok := strings.Cut(collation, "_"); ok {
		return cs
	}
	return collation
}

func changeClause(oldName, createStr string) string {
	return fmt.Sprintf("CHANGE COLUMN %s %s", QuoteIdent(oldName), createStr)
}
