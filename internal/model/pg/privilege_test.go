package pg

import (
	"reflect"
	"testing"
)

func TestPrivilegeGrantDDL(t *testing.T) {
	p := &Privilege{
		DB: "shop", Schema: "public", Table: "orders", Grantee: "app",
		Select: true, Insert: true, Update: true,
	}
	want := `GRANT INSERT, SELECT, UPDATE ON "public"."orders" TO "app";`
	if got := p.GrantDDL(); got != want {
		t.Errorf("GrantDDL() = %q, want %q", got, want)
	}
	wantRevoke := `REVOKE ALL PRIVILEGES ON "public"."orders" FROM "app";`
	if got := p.RevokeAllDDL(); got != wantRevoke {
		t.Errorf("RevokeAllDDL() = %q, want %q", got, wantRevoke)
	}

	empty := &Privilege{Schema: "public", Table: "orders", Grantee: "app"}
	if got := empty.GrantDDL(); got != "" {
		t.Errorf("GrantDDL() = %q, want empty for no flags", got)
	}
}

func TestPrivilegeAlterDDL(t *testing.T) {
	old := &Privilege{
		Schema: "public", Table: "orders", Grantee: "app",
		Select: true, Insert: true, Delete: true,
	}
	cur := &Privilege{
		Schema: "public", Table: "orders", Grantee: "app",
		Select: true, Update: true, Truncate: true,
	}
	want := []string{
		`GRANT TRUNCATE, UPDATE ON "public"."orders" TO "app";`,
		`REVOKE DELETE, INSERT ON "public"."orders" FROM "app";`,
	}
	if got := cur.AlterDDL(old); !reflect.DeepEqual(got, want) {
		t.Errorf("AlterDDL() = %v, want %v", got, want)
	}

	if got := cur.AlterDDL(cur); got != nil {
		t.Errorf("AlterDDL(self) = %v, want nil", got)
	}
}

func TestBuildPrivileges(t *testing.T) {
	rows := []GrantRow{
		{Grantee: "app", Catalog: "shop", Schema: "public", Table: "orders", Privilege: "SELECT"},
		{Grantee: "app", Catalog: "shop", Schema: "public", Table: "orders", Privilege: "INSERT"},
		{Grantee: "app", Catalog: "shop", Schema: "public", Table: "users", Privilege: "SELECT"},
		{Grantee: "reporting", Catalog: "shop", Schema: "public", Table: "orders", Privilege: "SELECT"},
	}
	privs := BuildPrivileges(rows)
	if len(privs) != 3 {
		t.Fatalf("BuildPrivileges() = %d, want 3", len(privs))
	}

	orders := privs[0]
	if orders.Table != "orders" || orders.Grantee != "app" {
		t.Errorf("first = %q for %q", orders.Table, orders.Grantee)
	}
	if !orders.Select || !orders.Insert || orders.Update {
		t.Errorf("flags = %+v", orders)
	}

	if privs[1].Table != "users" || privs[2].Grantee != "reporting" {
		t.Errorf("order = %q/%q, %q/%q",
			privs[1].Table, privs[1].Grantee, privs[2].Table, privs[2].Grantee)
	}
	if privs[0].ID == privs[1].ID {
		t.Error("privileges share an identity")
	}
}

func TestRoleCreateDDL(t *testing.T) {
	r := &Role{
		Name: "app", CanLogin: true, Inherit: true, ConnLimit: 10,
		ValidUntil: "2027-01-01", Comment: "service account",
	}
	ddl, comment := r.CreateDDL()
	want := `CREATE ROLE "app" WITH NOSUPERUSER NOCREATEDB NOCREATEROLE INHERIT LOGIN` +
		` NOREPLICATION NOBYPASSRLS CONNECTION LIMIT 10 VALID UNTIL '2027-01-01';`
	if ddl != want {
		t.Errorf("CreateDDL() = %q, want %q", ddl, want)
	}
	if wantComment := `COMMENT ON ROLE "app" IS 'service account';`; comment != wantComment {
		t.Errorf("comment = %q, want %q", comment, wantComment)
	}
}

func TestRoleAlterDDL(t *testing.T) {
	old := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: -1}
	cur := &Role{Name: "app_svc", CanLogin: true, Inherit: true, CreateDB: true, ConnLimit: -1}

	ddl, _ := cur.AlterDDL(old)
	want := []string{
		`ALTER ROLE "app" RENAME TO "app_svc";`,
		`ALTER ROLE "app_svc" WITH CREATEDB;`,
	}
	if !reflect.DeepEqual(ddl, want) {
		t.Errorf("AlterDDL() = %v, want %v", ddl, want)
	}

	same, comment := old.AlterDDL(old)
	if same != nil || comment != "" {
		t.Errorf("AlterDDL(self) = %v, %q", same, comment)
	}
}

func TestRoleAlterDDLOptionalClauses(t *testing.T) {
	t.Run("valid-until swapped for connection limit", func(t *testing.T) {
		old := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: -1,
			ValidUntil: "2027-01-01"}
		cur := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: 5}

		ddl, _ := cur.AlterDDL(old)
		want := []string{
			`ALTER ROLE "app" WITH CONNECTION LIMIT 5 VALID UNTIL 'infinity';`,
		}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})

	t.Run("connection limit lifted", func(t *testing.T) {
		old := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: 10}
		cur := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: -1}

		ddl, _ := cur.AlterDDL(old)
		want := []string{`ALTER ROLE "app" WITH CONNECTION LIMIT -1;`}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})

	t.Run("valid-until tightened", func(t *testing.T) {
		old := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: -1,
			ValidUntil: "2027-01-01"}
		cur := &Role{Name: "app", CanLogin: true, Inherit: true, ConnLimit: -1,
			ValidUntil: "2026-06-30"}

		ddl, _ := cur.AlterDDL(old)
		want := []string{`ALTER ROLE "app" WITH VALID UNTIL '2026-06-30';`}
		if !reflect.DeepEqual(ddl, want) {
			t.Errorf("AlterDDL() = %v, want %v", ddl, want)
		}
	})
}

func TestRoleMemberAlterDDL(t *testing.T) {
	tests := []struct {
		name string
		old  *RoleMember
		cur  *RoleMember
		want []string
	}{
		{
			name: "grant membership",
			old:  &RoleMember{RoleName: "admins", MemberName: "alice"},
			cur:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			want: []string{`GRANT "admins" TO "alice";`},
		},
		{
			name: "revoke membership",
			old:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			cur:  &RoleMember{RoleName: "admins", MemberName: "alice"},
			want: []string{`REVOKE "admins" FROM "alice";`},
		},
		{
			name: "gain admin option regrants with it",
			old:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			cur:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true, AdminOption: true},
			want: []string{`GRANT "admins" TO "alice" WITH ADMIN OPTION;`},
		},
		{
			name: "lose only the admin option",
			old:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true, AdminOption: true},
			cur:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			want: []string{`REVOKE ADMIN OPTION FOR "admins" FROM "alice";`},
		},
		{
			name: "no change",
			old:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			cur:  &RoleMember{RoleName: "admins", MemberName: "alice", Granted: true},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cur.AlterDDL(tt.old); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AlterDDL() = %v, want %v", got, tt.want)
			}
		})
	}
}
