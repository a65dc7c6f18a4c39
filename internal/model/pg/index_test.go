package pg

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sadopc/termdba/internal/model"
)

func TestIndexCreateDDL(t *testing.T) {
	idx := &Index{
		Name: "idx_users_email",
		Fields: []IndexField{
			{Name: "email", SortOrder: "DESC", NullsOrder: "LAST"},
			{Name: "tenant"},
		},
		Method:  MethodBTree,
		Unique:  true,
		Comment: "lookup",
	}
	ddl, comment := idx.CreateDDL("public", "users")
	want := `CREATE UNIQUE INDEX "idx_users_email" ON "public"."users" USING btree ("email" DESC NULLS LAST, "tenant");`
	if ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}
	if wantComment := `COMMENT ON INDEX "public"."idx_users_email" IS 'lookup';`; comment != wantComment {
		t.Errorf("comment = %q, want %q", comment, wantComment)
	}
}

func TestIndexAlterDDL(t *testing.T) {
	base := func() *Index {
		return &Index{
			Name:   "idx_email",
			Fields: []IndexField{{Name: "email"}},
			Method: MethodBTree,
		}
	}

	t.Run("unchanged", func(t *testing.T) {
		ddl, comment := base().AlterDDL(base(), "public", "users")
		if ddl != nil || comment != "" {
			t.Errorf("AlterDDL() = %v, %q, want nothing", ddl, comment)
		}
	})

	t.Run("rename only keeps the index", func(t *testing.T) {
		cur := base()
		cur.Name = "idx_user_email"
		ddl, _ := cur.AlterDDL(base(), "public", "users")
		want := []string{`ALTER INDEX "idx_email" RENAME TO "idx_user_email";`}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})

	t.Run("content change rebuilds", func(t *testing.T) {
		cur := base()
		cur.Unique = true
		ddl, _ := cur.AlterDDL(base(), "public", "users")
		want := []string{
			`DROP INDEX "idx_email";`,
			`CREATE UNIQUE INDEX "idx_email" ON "public"."users" USING btree ("email");`,
		}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})

	t.Run("comment change alone", func(t *testing.T) {
		cur := base()
		cur.Comment = "speed up login"
		ddl, comment := cur.AlterDDL(base(), "public", "users")
		if ddl != nil {
			t.Errorf("AlterDDL() = %v, want no statements", ddl)
		}
		if want := `COMMENT ON INDEX "public"."idx_email" IS 'speed up login';`; comment != want {
			t.Errorf("comment = %q, want %q", comment, want)
		}
	})
}

func TestParseIndexDef(t *testing.T) {
	t.Run("full definition", func(t *testing.T) {
		def := `CREATE UNIQUE INDEX idx_users_email ON public.users USING btree (email DESC NULLS LAST, tenant)`
		idx, err := ParseIndexDef("idx_users_email", def, "lookup")
		if err != nil {
			t.Fatalf("ParseIndexDef() error = %v", err)
		}
		if !idx.Unique || idx.Concurrent || idx.Method != MethodBTree {
			t.Errorf("index = %+v", idx)
		}
		wantFields := []IndexField{
			{Name: "email", SortOrder: "DESC", NullsOrder: "LAST"},
			{Name: "tenant"},
		}
		if !reflect.DeepEqual(idx.Fields, wantFields) {
			t.Errorf("fields = %v, want %v", idx.Fields, wantFields)
		}
		if idx.Comment != "lookup" {
			t.Errorf("comment = %q", idx.Comment)
		}
	})

	t.Run("quoted identifiers", func(t *testing.T) {
		def := `CREATE INDEX "idx_name" ON "public"."users" USING gin ("name")`
		idx, err := ParseIndexDef("idx_name", def, "")
		if err != nil {
			t.Fatalf("ParseIndexDef() error = %v", err)
		}
		if idx.Method != MethodGin || len(idx.Fields) != 1 || idx.Fields[0].Name != "name" {
			t.Errorf("index = %+v", idx)
		}
	})

	t.Run("unparseable definition is a hard error", func(t *testing.T) {
		_, err := ParseIndexDef("weird", "CREATE INDEX weird ON things (lower(name))", "")
		var perr *model.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("ParseIndexDef() error = %v, want *model.ParseError", err)
		}
		if perr.Kind != "index" || perr.Name != "weird" {
			t.Errorf("ParseError = %+v", perr)
		}
	})
}
