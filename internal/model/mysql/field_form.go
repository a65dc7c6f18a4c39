package mysql

import (
	"strings"

	"github.com/sadopc/termdba/internal/model"
)

// FieldFromForm builds a column from a submitted dialog map. "name" and
// "kind" are required; every other key is read only when the chosen kind's
// family carries that attribute.
func FieldFromForm(v model.FormValues) (Field, error) {
	name, err := v.Required("name")
	if err != nil {
		return nil, err
	}
	kindStr, err := v.Required("kind")
	if err != nil {
		return nil, err
	}

	f := NewField(FieldKind(strings.ToLower(kindStr)), name)
	if f == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectMySQL,
			Kind:    "column",
			Name:    name,
			Input:   kindStr,
		}
	}

	meta := f.Meta()
	meta.NotNull = v.Bool("not_null")
	meta.Key = v.Bool("key")
	meta.Comment = v.Get("comment")
	meta.Default = v.Get("default")

	collation := v.Get("collation")
	charset := v.Get("charset")
	if charset == "" && collation != "" {
		charset = charsetOf(collation)
	}

	switch f := f.(type) {
	case *IntField:
		f.Length = v.Get("length")
		f.Unsigned = v.Bool("unsigned")
		f.Zerofill = v.Bool("zerofill")
		f.AutoIncrement = v.Bool("auto_increment")
	case *DecimalField:
		f.Length = v.Get("length")
		f.Decimal = v.Get("decimal")
		f.Unsigned = v.Bool("unsigned")
		f.Zerofill = v.Bool("zerofill")
	case *FloatField:
		f.Length = v.Get("length")
		f.Decimal = v.Get("decimal")
		f.Unsigned = v.Bool("unsigned")
		f.Zerofill = v.Bool("zerofill")
		f.AutoIncrement = v.Bool("auto_increment")
	case *CharField:
		f.Length = v.Get("length")
		f.Charset = charset
		f.Collation = collation
	case *TextField:
		f.Charset = charset
		f.Collation = collation
	case *EnumField:
		f.Options = splitFormOptions(v.Get("options"))
		f.Charset = charset
		f.Collation = collation
	case *TimeField:
		f.Length = v.Get("length")
	case *DateTimeField:
		f.Length = v.Get("length")
		f.OnUpdate = v.Bool("on_update")
	case *BinaryField:
		f.Length = v.Get("length")
	}
	return f, nil
}

// splitFormOptions parses the comma-separated option list typed into an enum
// or set dialog.
func splitFormOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	opts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "'")
		if p != "" {
			opts = append(opts, p)
		}
	}
	return opts
}
