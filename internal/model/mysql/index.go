package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/termdba/internal/model"
)

// IndexKind is the index category keyword.
type IndexKind string

const (
	IndexFullText IndexKind = "FULLTEXT"
	IndexNormal   IndexKind = "NORMAL"
	IndexSpatial  IndexKind = "SPATIAL"
	IndexUnique   IndexKind = "UNIQUE"
)

// IndexKinds lists the selectable index categories.
var IndexKinds = []IndexKind{IndexFullText, IndexNormal, IndexSpatial, IndexUnique}

// IndexMethod is the storage method, empty when the server picks.
type IndexMethod string

const (
	IndexBtree IndexMethod = "BTREE"
	IndexHash  IndexMethod = "HASH"
)

// IndexField is one indexed column with its optional prefix length and sort
// order.
type IndexField struct {
	Name    string
	SubPart int64  // 0 means whole column
	Order   string // "ASC", "DESC" or empty
}

func (f IndexField) String() string {
	s := QuoteIdent(f.Name)
	if f.SubPart > 0 {
		s += "(" + strconv.FormatInt(f.SubPart, 10) + ")"
	}
	if f.Order != "" {
		s += " " + f.Order
	}
	return s
}

// Index is a secondary index on one table.
type Index struct {
	ID      uuid.UUID
	Name    string
	Fields  []IndexField
	Kind    IndexKind
	Method  IndexMethod
	Comment string
}

func (i *Index) ObjectID() uuid.UUID { return i.ID }
func (i *Index) ObjectName() string  { return i.Name }

// CreateDDL renders the index clause used inside CREATE TABLE and ADD.
func (i *Index) CreateDDL() string {
	fields := make([]string, len(i.Fields))
	for n, f := range i.Fields {
		fields[n] = f.String()
	}

	var prefix string
	switch i.Kind {
	case IndexFullText:
		prefix = "FULLTEXT INDEX"
	case IndexSpatial:
		prefix = "SPATIAL INDEX"
	case IndexUnique:
		prefix = "UNIQUE INDEX"
	default:
		prefix = "INDEX"
	}

	sql := fmt.Sprintf("%s %s(%s)", prefix, QuoteIdent(i.Name), strings.Join(fields, ","))
	if i.Method != "" {
		sql += " USING " + string(i.Method)
	}
	if i.Comment != "" {
		sql += " COMMENT " + quoteLiteral(i.Comment)
	}
	return sql
}

// AddDDL renders the ADD clause.
func (i *Index) AddDDL() string {
	return "ADD " + i.CreateDDL()
}

// DropDDL renders the DROP INDEX clause.
func (i *Index) DropDDL() string {
	return "DROP INDEX " + QuoteIdent(i.Name)
}

func (i *Index) equal(old *Index) bool {
	if i.Kind != old.Kind || i.Method != old.Method || i.Comment != old.Comment {
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

// AlterDDL diffs two revisions of the same index. A pure rename keeps the
// index and renames it in place; any content change rebuilds it.
func (i *Index) AlterDDL(old *Index) []string {
	stmts, _ := model.Alter(model.Strategy[*Index]{
		Equal: func(cur, old *Index) bool { return cur.equal(old) },
		Rename: func(cur, old *Index) string {
			return fmt.Sprintf("RENAME INDEX %s TO %s", QuoteIdent(old.Name), QuoteIdent(cur.Name))
		},
		Drop: func(old *Index) string { return old.DropDDL() },
		Add:  func(cur *Index) string { return cur.AddDDL() },
	}, i, old)
	return stmts
}

// ShowIndexRow is one row of SHOW INDEX.
type ShowIndexRow struct {
	KeyName    string
	ColumnName string
	SeqInIndex int
	NonUnique  int
	IndexType  string // "BTREE", "HASH", "FULLTEXT", "SPATIAL"
	SubPart    int64  // 0 when absent
	Collation  string // "A", "D" or empty
	Comment    string
}

// ParseShowIndexes groups SHOW INDEX rows by key name, preserving their
// order, and builds one Index per key.
func ParseShowIndexes(rows []ShowIndexRow) []*Index {
	var (
		order   []string
		grouped = make(map[string][]ShowIndexRow)
	)
	for _, r := range rows {
		if _, ok := grouped[r.KeyName]; !ok {
			order = append(order, r.KeyName)
		}
		grouped[r.KeyName] = append(grouped[r.KeyName], r)
	}

	indexes := make([]*Index, 0, len(order))
	for _, name := range order {
		group := grouped[name]
		fields := make([]IndexField, len(group))
		for n, r := range group {
			var ord string
			switch r.Collation {
			case "A":
				ord = "ASC"
			case "D":
				ord = "DESC"
			}
			fields[n] = IndexField{Name: r.ColumnName, SubPart: r.SubPart, Order: ord}
		}

		first := group[0]
		kind := IndexNormal
		switch first.IndexType {
		case "FULLTEXT":
			kind = IndexFullText
		case "SPATIAL":
			kind = IndexSpatial
		default:
			if first.NonUnique == 0 {
				kind = IndexUnique
			}
		}
		var method IndexMethod
		switch first.IndexType {
		case "BTREE":
			method = IndexBtree
		case "HASH":
			method = IndexHash
		}

		indexes = append(indexes, &Index{
			ID:      model.NewID(),
			Name:    name,
			Fields:  fields,
			Kind:    kind,
			Method:  method,
			Comment: first.Comment,
		})
	}
	return indexes
}
