package mysql

import (
	"regexp"
	"strings"

	"github.com/sadopc/termdba/internal/model"
)

// ShowColumnRow is one row of SHOW FULL COLUMNS.
type ShowColumnRow struct {
	Field     string
	Type      string
	Collation string // empty for non-collatable kinds
	Null      string // "YES" or "NO"
	Key       string // "PRI", "UNI", "MUL" or empty
	Default   string
	Extra     string
	Comment   string
}

// columnTypeRe dissects the Type column of SHOW COLUMNS, e.g.
// "decimal(10,2) unsigned zerofill" or "enum('a','b')". Longer keywords sit
// before their prefixes in the alternation so "integer" is not consumed as
// "int".
var columnTypeRe = regexp.MustCompile(`^(?P<kind>multilinestring|geomcollection|multipolygon|mediumblob|mediumtext|linestring|multipoint|timestamp|mediumint|tinytext|varbinary|geometry|longblob|longtext|smallint|datetime|tinyblob|tinyint|varchar|decimal|integer|numeric|polygon|bigint|binary|double|float|point|real|text|time|json|blob|char|date|enum|year|set|int|bit)(\((?P<length>\d+)\))?(\((?P<num>\d+),(?P<decimal>\d+)\))?(\((?P<options>('[^)]*',?)+)\))?( (?P<unsigned>unsigned))?( (?P<zerofill>zerofill))?`)

// ParseShowColumn turns one SHOW FULL COLUMNS row into a Field with a fresh
// identity. A Type value that does not match the column grammar yields a
// ParseError.
func ParseShowColumn(row ShowColumnRow) (Field, error) {
	m := columnTypeRe.FindStringSubmatch(row.Type)
	if m == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectMySQL,
			Kind:    "column",
			Name:    row.Field,
			Input:   row.Type,
		}
	}
	group := func(name string) string {
		return m[columnTypeRe.SubexpIndex(name)]
	}

	kind := FieldKind(group("kind"))
	f := NewField(kind, row.Field)
	if f == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectMySQL,
			Kind:    "column",
			Name:    row.Field,
			Input:   row.Type,
		}
	}

	meta := f.Meta()
	meta.NotNull = row.Null == "NO"
	meta.Key = row.Key == "PRI"
	meta.Comment = row.Comment
	meta.Default = row.Default

	switch f := f.(type) {
	case *IntField:
		f.Length = group("length")
		f.Unsigned = group("unsigned") != ""
		f.Zerofill = group("zerofill") != ""
		f.AutoIncrement = strings.Contains(row.Extra, "auto_increment")
	case *DecimalField:
		f.Length = group("num")
		f.Decimal = group("decimal")
		f.Unsigned = group("unsigned") != ""
		f.Zerofill = group("zerofill") != ""
	case *FloatField:
		f.Length = group("num")
		f.Decimal = group("decimal")
		f.Unsigned = group("unsigned") != ""
		f.Zerofill = group("zerofill") != ""
		f.AutoIncrement = strings.Contains(row.Extra, "auto_increment")
	case *CharField:
		f.Length = group("length")
		f.Collation = row.Collation
		f.Charset = charsetOf(row.Collation)
	case *TextField:
		f.Collation = row.Collation
		f.Charset = charsetOf(row.Collation)
	case *EnumField:
		f.Options = splitOptions(group("options"))
		f.Collation = row.Collation
		f.Charset = charsetOf(row.Collation)
	case *TimeField:
		f.Length = group("length")
	case *DateTimeField:
		f.Length = group("length")
		f.OnUpdate = strings.Contains(row.Extra, "on update")
	case *BinaryField:
		f.Length = group("length")
	}
	return f, nil
}

// ParseShowColumns converts a whole SHOW FULL COLUMNS result. Rows that fail
// to parse are skipped and reported; the parsed fields keep the row order.
func ParseShowColumns(rows []ShowColumnRow) ([]Field, []error) {
	var (
		fields []Field
		errs   []error
	)
	for _, r := range rows {
		f, err := ParseShowColumn(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, f)
	}
	return fields, errs
}

// splitOptions unpacks the payload of an enum or set type, e.g.
// "'draft','posted'".
func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	opts := make([]string, len(parts))
	for i, p := range parts {
		opts[i] = strings.ReplaceAll(p, "'", "")
	}
	return opts
}
