package pg

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sadopc/termdba/internal/model"
)

func TestForeignKeyDDL(t *testing.T) {
	fk := &ForeignKey{
		Name: "fk_order_user", Field: "user_id",
		RefSchema: "public", RefTable: "users", RefField: "id",
		OnDelete: RefCascade,
	}
	ddl, comment := fk.CreateDDL("public", "orders")
	want := `CONSTRAINT "fk_order_user" FOREIGN KEY ("user_id") REFERENCES "public"."users" ("id") ON DELETE CASCADE`
	if ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}
	if comment != "" {
		t.Errorf("comment = %q, want empty", comment)
	}
	if got, wantDrop := fk.DropDDL(), `DROP CONSTRAINT "fk_order_user"`; got != wantDrop {
		t.Errorf("DropDDL() = %q, want %q", got, wantDrop)
	}
}

func TestForeignKeyAlterDDL(t *testing.T) {
	base := func() *ForeignKey {
		return &ForeignKey{
			Name: "fk_order_user", Field: "user_id",
			RefSchema: "public", RefTable: "users", RefField: "id",
		}
	}

	t.Run("rename only uses rename constraint", func(t *testing.T) {
		cur := base()
		cur.Name = "fk_orders_users"
		ddl, _ := cur.AlterDDL(base(), "public", "orders")
		want := []string{`RENAME CONSTRAINT "fk_order_user" TO "fk_orders_users"`}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})

	t.Run("content change drops and re-adds", func(t *testing.T) {
		cur := base()
		cur.OnUpdate = RefRestrict
		ddl, _ := cur.AlterDDL(base(), "public", "orders")
		want := []string{
			`DROP CONSTRAINT "fk_order_user"`,
			`ADD CONSTRAINT "fk_order_user" FOREIGN KEY ("user_id") REFERENCES "public"."users" ("id") ON UPDATE RESTRICT`,
		}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})
}

func TestParseForeignKeyDef(t *testing.T) {
	def := `FOREIGN KEY (user_id) REFERENCES users(id) ON UPDATE CASCADE ON DELETE SET NULL`
	fk, err := ParseForeignKeyDef("fk_order_user", def, "public", "")
	if err != nil {
		t.Fatalf("ParseForeignKeyDef() error = %v", err)
	}
	if fk.Field != "user_id" || fk.RefSchema != "public" || fk.RefTable != "users" || fk.RefField != "id" {
		t.Errorf("reference = %+v", fk)
	}
	if fk.OnUpdate != RefCascade || fk.OnDelete != RefSetNull {
		t.Errorf("actions = %q/%q", fk.OnUpdate, fk.OnDelete)
	}

	if _, err := ParseForeignKeyDef("bad", "PRIMARY KEY (id)", "public", ""); err == nil {
		t.Error("ParseForeignKeyDef() error = nil for non foreign key definition")
	}
}

func TestCheckDDL(t *testing.T) {
	c := &Check{Name: "chk_qty", Expression: "qty > 0", NoInherit: true, Comment: "sanity"}
	ddl, comment := c.CreateDDL("public", "orders")
	if want := `CONSTRAINT "chk_qty" CHECK (qty > 0) NO INHERIT`; ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}
	if want := `COMMENT ON CONSTRAINT "chk_qty" ON "public"."orders" IS 'sanity';`; comment != want {
		t.Errorf("comment = %q, want %q", comment, want)
	}
}

func TestCheckAlterDDL(t *testing.T) {
	old := &Check{Name: "chk_qty", Expression: "qty > 0"}
	cur := &Check{Name: "chk_qty", Expression: "qty >= 0"}
	ddl, _ := cur.AlterDDL(old, "public", "orders")
	want := []string{
		`DROP CONSTRAINT "chk_qty"`,
		`ADD CONSTRAINT "chk_qty" CHECK (qty >= 0)`,
	}
	if !reflect.DeepEqual(ddl, want) {
		t.Errorf("AlterDDL() = %v, want %v", ddl, want)
	}
}

func TestParseCheckDef(t *testing.T) {
	c, err := ParseCheckDef("chk_qty", "CHECK ((qty > 0)) NO INHERIT", "")
	if err != nil {
		t.Fatalf("ParseCheckDef() error = %v", err)
	}
	if c.Expression != "(qty > 0)" || !c.NoInherit {
		t.Errorf("check = %+v", c)
	}

	_, err = ParseCheckDef("bad", "UNIQUE (a)", "")
	var perr *model.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseCheckDef() error = %v, want *model.ParseError", err)
	}
}

func TestUniqueDDL(t *testing.T) {
	u := &Unique{Name: "uq_email", Fields: []string{"tenant", "email"}}
	ddl, _ := u.CreateDDL("public", "users")
	if want := `CONSTRAINT "uq_email" UNIQUE ("tenant", "email")`; ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}

	cur := &Unique{Name: "uq_email", Fields: []string{"email"}}
	got, _ := cur.AlterDDL(u, "public", "users")
	want := []string{
		`DROP CONSTRAINT "uq_email"`,
		`ADD CONSTRAINT "uq_email" UNIQUE ("email")`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AlterDDL() = %v, want %v", got, want)
	}
}

func TestParseUniqueRows(t *testing.T) {
	uniques := ParseUniqueRows([]UniqueRow{
		{Name: "uq_email", Columns: []string{"tenant", "email"}},
	})
	if len(uniques) != 1 {
		t.Fatalf("ParseUniqueRows() = %d, want 1", len(uniques))
	}
	if got := uniques[0].Fields; !reflect.DeepEqual(got, []string{"tenant", "email"}) {
		t.Errorf("fields = %v", got)
	}
}

func TestExcludeDDL(t *testing.T) {
	e := &Exclude{
		Name:   "excl_overlap",
		Method: MethodGist,
		Elements: []ExcludeElement{
			{Element: "room", Operator: "="},
			{Element: "during", Operator: "&&"},
		},
	}
	ddl, _ := e.CreateDDL("public", "bookings")
	want := `CONSTRAINT "excl_overlap" EXCLUDE USING gist ("room" WITH =, "during" WITH &&)`
	if ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}
}

func TestParseExcludeDef(t *testing.T) {
	def := `EXCLUDE USING gist (room WITH =, during WITH &&)`
	e, err := ParseExcludeDef("excl_overlap", def, "")
	if err != nil {
		t.Fatalf("ParseExcludeDef() error = %v", err)
	}
	if e.Method != MethodGist || len(e.Elements) != 2 {
		t.Fatalf("exclude = %+v", e)
	}
	if e.Elements[0].Element != "room" || e.Elements[0].Operator != "=" {
		t.Errorf("element[0] = %+v", e.Elements[0])
	}
	if e.Elements[1].Element != "during" || e.Elements[1].Operator != "&&" {
		t.Errorf("element[1] = %+v", e.Elements[1])
	}

	if _, err := ParseExcludeDef("bad", "CHECK (x > 0)", ""); err == nil {
		t.Error("ParseExcludeDef() error = nil for non exclude definition")
	}
}
