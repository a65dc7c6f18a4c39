package mysql

import (
	"strings"

	"github.com/sadopc/termdba/internal/model"
)

// The column kinds collapse into eleven attribute families. Each family
// renders its own create clause and decides which attribute changes are
// observable when diffing two revisions of the same column.

// IntField backs bigint, int, integer, mediumint, smallint and tinyint.
type IntField struct {
	FieldMeta
	Length        string
	Unsigned      bool
	Zerofill      bool
	AutoIncrement bool
}

func (f *IntField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthClause(f.Length) +
		unsignedClause(f.Unsigned) +
		zerofillClause(f.Zerofill) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		autoIncrementClause(f.AutoIncrement) +
		commentClause(f.Comment)
}

func (f *IntField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*IntField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.AutoIncrement == f.AutoIncrement &&
		o.Unsigned == f.Unsigned && o.Zerofill == f.Zerofill && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// DecimalField backs decimal and numeric.
type DecimalField struct {
	FieldMeta
	Length   string
	Decimal  string
	Unsigned bool
	Zerofill bool
}

func (f *DecimalField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthDecimalClause(f.Length, f.Decimal) +
		unsignedClause(f.Unsigned) +
		zerofillClause(f.Zerofill) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		commentClause(f.Comment)
}

func (f *DecimalField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*DecimalField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.Decimal == f.Decimal &&
		o.Unsigned == f.Unsigned && o.Zerofill == f.Zerofill && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// FloatField backs double, float and real.
type FloatField struct {
	FieldMeta
	Length        string
	Decimal       string
	Unsigned      bool
	Zerofill      bool
	AutoIncrement bool
}

func (f *FloatField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthDecimalClause(f.Length, f.Decimal) +
		unsignedClause(f.Unsigned) +
		zerofillClause(f.Zerofill) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		autoIncrementClause(f.AutoIncrement) +
		commentClause(f.Comment)
}

func (f *FloatField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*FloatField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.Decimal == f.Decimal &&
		o.Unsigned == f.Unsigned && o.Zerofill == f.Zerofill &&
		o.AutoIncrement == f.AutoIncrement && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// CharField backs char and varchar.
type CharField struct {
	FieldMeta
	Length    string
	Charset   string
	Collation string
}

func (f *CharField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthClause(f.Length) +
		charsetClause(f.Charset) +
		collateClause(f.Collation) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, true) +
		commentClause(f.Comment)
}

func (f *CharField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*CharField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.Charset == f.Charset &&
		o.Collation == f.Collation && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// TextField backs text, tinytext, mediumtext and longtext. Text columns
// carry no default.
type TextField struct {
	FieldMeta
	Charset   string
	Collation string
}

func (f *TextField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		charsetClause(f.Charset) +
		collateClause(f.Collation) +
		nullClause(f.NotNull) +
		commentClause(f.Comment)
}

func (f *TextField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*TextField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.NotNull == f.NotNull && o.Comment == f.Comment &&
		o.Charset == f.Charset && o.Collation == f.Collation {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// EnumField backs enum and set.
type EnumField struct {
	FieldMeta
	Options   []string
	Charset   string
	Collation string
}

func (f *EnumField) CreateStr() string {
	opts := make([]string, len(f.Options))
	for i, o := range f.Options {
		opts[i] = quoteLiteral(o)
	}
	return QuoteIdent(f.Name) + " " + string(f.Kind) + "(" + strings.Join(opts, ",") + ")" +
		charsetClause(f.Charset) +
		collateClause(f.Collation) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, true) +
		commentClause(f.Comment)
}

func (f *EnumField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*EnumField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		equalStrings(o.Options, f.Options) && o.Charset == f.Charset &&
		o.Collation == f.Collation && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// DateField backs date and year.
type DateField struct {
	FieldMeta
}

func (f *DateField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		commentClause(f.Comment)
}

func (f *DateField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*DateField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// TimeField backs time, with an optional fractional-seconds precision in
// Length.
type TimeField struct {
	FieldMeta
	Length string
}

func (f *TimeField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthClause(f.Length) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		commentClause(f.Comment)
}

func (f *TimeField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*TimeField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// DateTimeField backs datetime and timestamp. OnUpdate tracks the
// "on update CURRENT_TIMESTAMP" extra.
type DateTimeField struct {
	FieldMeta
	Length   string
	OnUpdate bool
}

func (f *DateTimeField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthClause(f.Length) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		onUpdateClause(f.OnUpdate, f.Length) +
		commentClause(f.Comment)
}

func (f *DateTimeField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*DateTimeField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.OnUpdate == f.OnUpdate && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// BinaryField backs binary, varbinary and bit.
type BinaryField struct {
	FieldMeta
	Length string
}

func (f *BinaryField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		lengthClause(f.Length) +
		nullClause(f.NotNull) +
		defaultClause(f.Default, false) +
		commentClause(f.Comment)
}

func (f *BinaryField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*BinaryField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.Default == f.Default && o.NotNull == f.NotNull &&
		o.Length == f.Length && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

// SimpleField backs the kinds with no extra attributes: blob variants, json
// and the spatial types.
type SimpleField struct {
	FieldMeta
}

func (f *SimpleField) CreateStr() string {
	return QuoteIdent(f.Name) + " " + string(f.Kind) +
		nullClause(f.NotNull) +
		commentClause(f.Comment)
}

func (f *SimpleField) ChangeStr(old Field) (string, bool) {
	o, ok := old.(*SimpleField)
	if !ok || o.Kind != f.Kind {
		return "", false
	}
	if o.Name == f.Name && o.NotNull == f.NotNull && o.Comment == f.Comment {
		return "", false
	}
	return changeClause(o.Name, f.CreateStr()), true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NewField returns a fresh column of the family backing kind, with a new
// identity and every family attribute zeroed. Unknown kinds yield nil.
func NewField(kind FieldKind, name string) Field {
	meta := FieldMeta{ID: model.NewID(), Name: name, Kind: kind}
	switch kind {
	case KindBigInt, KindInt, KindInteger, KindMediumInt, KindSmallInt, KindTinyInt:
		return &IntField{FieldMeta: meta}
	case KindDecimal, KindNumeric:
		return &DecimalField{FieldMeta: meta}
	case KindDouble, KindFloat, KindReal:
		return &FloatField{FieldMeta: meta}
	case KindChar, KindVarChar:
		return &CharField{FieldMeta: meta}
	case KindText, KindTinyText, KindMediumText, KindLongText:
		return &TextField{FieldMeta: meta}
	case KindEnum, KindSet:
		return &EnumField{FieldMeta: meta}
	case KindDate, KindYear:
		return &DateField{FieldMeta: meta}
	case KindTime:
		return &TimeField{FieldMeta: meta}
	case KindDateTime, KindTimestamp:
		return &DateTimeField{FieldMeta: meta}
	case KindBinary, KindVarBinary, KindBit:
		return &BinaryField{FieldMeta: meta}
	case KindBlob, KindTinyBlob, KindMediumBlob, KindLongBlob,
		KindJSON, KindGeometry, KindGeomCollection, KindPoint, KindLineString,
		KindPolygon, KindMultiPoint, KindMultiLineString, KindMultiPolygon:
		return &SimpleField{FieldMeta: meta}
	}
	return nil
}
