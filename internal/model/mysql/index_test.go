package mysql

import (
	"reflect"
	"testing"
)

func TestIndexCreateDDL(t *testing.T) {
	tests := []struct {
		name  string
		index *Index
		want  string
	}{
		{
			name: "unique btree with prefix and order",
			index: &Index{
				Name: "uniq_email",
				Fields: []IndexField{
					{Name: "email", SubPart: 16, Order: "ASC"},
					{Name: "tenant"},
				},
				Kind:    IndexUnique,
				Method:  IndexBtree,
				Comment: "one address per tenant",
			},
			want: "UNIQUE INDEX `uniq_email`(`email`(16) ASC,`tenant`) USING BTREE" +
				" COMMENT 'one address per tenant'",
		},
		{
			name: "plain index",
			index: &Index{
				Name:   "idx_created",
				Fields: []IndexField{{Name: "created_at"}},
				Kind:   IndexNormal,
			},
			want: "INDEX `idx_created`(`created_at`)",
		},
		{
			name: "fulltext",
			index: &Index{
				Name:   "ft_body",
				Fields: []IndexField{{Name: "body"}},
				Kind:   IndexFullText,
			},
			want: "FULLTEXT INDEX `ft_body`(`body`)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.index.CreateDDL(); got != tt.want {
				t.Errorf("CreateDDL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIndexAlterDDL(t *testing.T) {
	base := func() *Index {
		return &Index{
			Name:   "idx_name",
			Fields: []IndexField{{Name: "name"}},
			Kind:   IndexNormal,
			Method: IndexBtree,
		}
	}

	t.Run("unchanged", func(t *testing.T) {
		if got := base().AlterDDL(base()); got != nil {
			t.Errorf("AlterDDL() = %v, want nil", got)
		}
	})

	t.Run("rename only keeps the index", func(t *testing.T) {
		cur := base()
		cur.Name = "idx_display_name"
		want := []string{"RENAME INDEX `idx_name` TO `idx_display_name`"}
		if got := cur.AlterDDL(base()); !reflect.DeepEqual(got, want) {
			t.Errorf("AlterDDL() = %v, want %v", got, want)
		}
	})

	t.Run("content change rebuilds", func(t *testing.T) {
		cur := base()
		cur.Fields = append(cur.Fields, IndexField{Name: "tenant"})
		want := []string{
			"DROP INDEX `idx_name`",
			"ADD INDEX `idx_name`(`name`,`tenant`) USING BTREE",
		}
		if got := cur.AlterDDL(base()); !reflect.DeepEqual(got, want) {
			t.Errorf("AlterDDL() = %v, want %v", got, want)
		}
	})

	t.Run("rename with content change renames then re-adds", func(t *testing.T) {
		cur := base()
		cur.Name = "idx_both"
		cur.Kind = IndexUnique
		want := []string{
			"RENAME INDEX `idx_name` TO `idx_both`",
			"ADD UNIQUE INDEX `idx_both`(`name`) USING BTREE",
		}
		if got := cur.AlterDDL(base()); !reflect.DeepEqual(got, want) {
			t.Errorf("AlterDDL() = %v, want %v", got, want)
		}
	})
}

func TestParseShowIndexes(t *testing.T) {
	rows := []ShowIndexRow{
		{KeyName: "PRIMARY", ColumnName: "id", SeqInIndex: 1, NonUnique: 0, IndexType: "BTREE", Collation: "A"},
		{KeyName: "idx_name", ColumnName: "last", SeqInIndex: 1, NonUnique: 1, IndexType: "BTREE", Collation: "A"},
		{KeyName: "idx_name", ColumnName: "first", SeqInIndex: 2, NonUnique: 1, IndexType: "BTREE", SubPart: 8, Collation: "D"},
		{KeyName: "ft_bio", ColumnName: "bio", SeqInIndex: 1, NonUnique: 1, IndexType: "FULLTEXT"},
	}
	indexes := ParseShowIndexes(rows)
	if len(indexes) != 3 {
		t.Fatalf("ParseShowIndexes() = %d indexes, want 3", len(indexes))
	}

	pk := indexes[0]
	if pk.Name != "PRIMARY" || pk.Kind != IndexUnique || pk.Method != IndexBtree {
		t.Errorf("primary = %q/%q/%q", pk.Name, pk.Kind, pk.Method)
	}

	multi := indexes[1]
	wantFields := []IndexField{
		{Name: "last", Order: "ASC"},
		{Name: "first", SubPart: 8, Order: "DESC"},
	}
	if !reflect.DeepEqual(multi.Fields, wantFields) {
		t.Errorf("fields = %v, want %v", multi.Fields, wantFields)
	}

	if indexes[2].Kind != IndexFullText {
		t.Errorf("fulltext kind = %q", indexes[2].Kind)
	}
	if indexes[0].ID == indexes[1].ID {
		t.Error("indexes share an identity")
	}
}
