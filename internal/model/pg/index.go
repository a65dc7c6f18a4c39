package pg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// IndexMethod is the access method an index is built with.
type IndexMethod string

const (
	MethodBTree  IndexMethod = "btree"
	MethodHash   IndexMethod = "hash"
	MethodGist   IndexMethod = "gist"
	MethodGin    IndexMethod = "gin"
	MethodSpGist IndexMethod = "spgist"
	MethodBrin   IndexMethod = "brin"
)

// IndexMethods lists the access methods offered by the index dialog.
var IndexMethods = []IndexMethod{
	MethodBTree, MethodHash, MethodGist, MethodGin, MethodSpGist, MethodBrin,
}

// IndexField is one keyed expression of an index.
type IndexField struct {
	Name       string
	Collation  string
	SortOrder  string // "" or "DESC"
	NullsOrder string // "" or "FIRST" / "LAST"
}

func (f IndexField) String() string {
	s := QuoteIdent(f.Name)
	if f.Collation != "" {
		s += " COLLATE " + QuoteIdent(f.Collation)
	}
	if f.SortOrder != "" {
		s += " " + f.SortOrder
	}
	if f.NullsOrder != "" {
		s += " NULLS " + f.NullsOrder
	}
	return s
}

// Index is a secondary index on one table.
type Index struct {
	ID         uuid.UUID
	Name       string
	Fields     []IndexField
	Method     IndexMethod
	Unique     bool
	Concurrent bool
	Comment    string
}

func (i *Index) ObjectID() uuid.UUID { return i.ID }
func (i *Index) ObjectName() string  { return i.Name }

// CreateDDL renders the full CREATE INDEX statement plus the COMMENT ON
// INDEX statement ("" when uncommented).
func (i *Index) CreateDDL(schema, table string) (string, string) {
	var b strings.Builder
	b.WriteString("CREATE ")
	if i.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if i.Concurrent {
		b.WriteString("CONCURRENTLY ")
	}
	b.WriteString(QuoteIdent(i.Name))
	b.WriteString(" ON ")
	b.WriteString(QuoteQualified(schema, table))
	if i.Method != "" {
		b.WriteString(" USING ")
		b.WriteString(string(i.Method))
	}
	parts := make([]string, len(i.Fields))
	for n, f := range i.Fields {
		parts[n] = f.String()
	}
	b.WriteString(" (")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(");")

	var comment string
	if i.Comment != "" {
		comment = i.commentDDL(schema)
	}
	return b.String(), comment
}

// DropDDL renders the DROP INDEX statement.
func (i *Index) DropDDL() string {
	return "DROP INDEX " + QuoteIdent(i.Name) + ";"
}

func (i *Index) commentDDL(schema string) string {
	return fmt.Sprintf("COMMENT ON INDEX %s IS %s;",
		QuoteQualified(schema, i.Name), quoteLiteral(i.Comment))
}

func (i *Index) equal(old *Index) bool {
	if i.Method != old.Method || i.Unique != old.Unique || i.Concurrent != old.Concurrent {
		return false
	}
	if len(i.Fields) != len(old.Fields) {
		return false
	}
	for n := range i.Fields {
		if i.Fields[n] != old.Fields[n] {
			return false
		}
	}
	return true
}

// AlterDDL diffs two revisions of the same index. A bare rename keeps the
// index and uses ALTER INDEX; any structural change rebuilds it.
func (i *Index) AlterDDL(old *Index, schema, table string) ([]string, string) {
	return model.Alter(model.Strategy[*Index]{
		Equal: func(cur, old *Index) bool { return cur.equal(old) },
		Rename: func(cur, old *Index) string {
			return fmt.Sprintf("ALTER INDEX %s RENAME TO %s;",
				QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *Index) string { return old.DropDDL() },
		Add: func(cur *Index) string {
			ddl, _ := cur.CreateDDL(schema, table)
			return ddl
		},
		Comment: func(cur, old *Index) (string, bool) {
			if cur.Comment == old.Comment {
				return "", false
			}
			return cur.commentDDL(schema), true
		},
	}, i, old)
}

var (
	indexDefRe = regexp.MustCompile(`CREATE\s(?P<unique>UNIQUE\s)?INDEX\s(?P<concurrent>CONCURRENTLY\s)?(?:\w+)\sON\s(?:[\w.]+)\sUSING\s(?P<method>btree|hash|gist|spgist|gin|brin)\s\((?P<fields>.+)\)`)
	indexColRe = regexp.MustCompile(`(?P<name>\w+)\s?(COLLATE\s(?P<collate>\w+))?\s?(?P<sort>DESC)?\s?(NULLS\s(?P<nulls>FIRST|LAST))?`)
)

// ParseIndexDef parses the indexdef text pg_indexes reports into an Index
// with a fresh identity. comment may be "".
func ParseIndexDef(name, def, comment string) (*Index, error) {
	clean := strings.ReplaceAll(def, `"`, "")
	m := indexDefRe.FindStringSubmatch(clean)
	if m == nil {
		return nil, &model.ParseError{
			Dialect: model.DialectPostgres,
			Kind:    "index",
			Name:    name,
			Input:   def,
		}
	}
	group := func(re *regexp.Regexp, m []string, name string) string {
		return m[re.SubexpIndex(name)]
	}

	idx := &Index{
		ID:         model.NewID(),
		Name:       name,
		Method:     IndexMethod(group(indexDefRe, m, "method")),
		Unique:     group(indexDefRe, m, "unique") != "",
		Concurrent: group(indexDefRe, m, "concurrent") != "",
		Comment:    comment,
	}
	for _, part := range strings.Split(group(indexDefRe, m, "fields"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cm := indexColRe.FindStringSubmatch(part)
		if cm == nil || cm[indexColRe.SubexpIndex("name")] == "" {
			return nil, &model.ParseError{
				Dialect: model.DialectPostgres,
				Kind:    "index",
				Name:    name,
				Input:   part,
			}
		}
		idx.Fields = append(idx.Fields, IndexField{
			Name:       group(indexColRe, cm, "name"),
			Collation:  group(indexColRe, cm, "collate"),
			SortOrder:  group(indexColRe, cm, "sort"),
			NullsOrder: group(indexColRe, cm, "nulls"),
		})
	}
	return idx, nil
}
