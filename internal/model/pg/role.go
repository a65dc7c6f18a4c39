package pg

import (
	"fmt"
	"strings"
)

// Role mirrors one pg_roles row.
type Role struct {
	Name        string
	Super       bool
	Inherit     bool
	CreateRole  bool
	CreateDB    bool
	CanLogin    bool
	Replication bool
	BypassRLS   bool
	ConnLimit   int
	ValidUntil  string
	Comment     string
}

// options renders the role attribute words in ALTER/CREATE ROLE order.
func (r *Role) options() []string {
	flag := func(set bool, word string) string {
		if set {
			return word
		}
		return "NO" + word
	}
	opts := []string{
		flag(r.Super, "SUPERUSER"),
		flag(r.CreateDB, "CREATEDB"),
		flag(r.CreateRole, "CREATEROLE"),
		flag(r.Inherit, "INHERIT"),
		flag(r.CanLogin, "LOGIN"),
		flag(r.Replication, "REPLICATION"),
		flag(r.BypassRLS, "BYPASSRLS"),
	}
	if r.ConnLimit >= 0 {
		opts = append(opts, fmt.Sprintf("CONNECTION LIMIT %d", r.ConnLimit))
	}
	if r.ValidUntil != "" {
		opts = append(opts, "VALID UNTIL "+quoteLiteral(r.ValidUntil))
	}
	return opts
}

// CreateDDL renders the CREATE ROLE statement plus the COMMENT ON ROLE
// statement ("" when uncommented).
func (r *Role) CreateDDL() (string, string) {
	ddl := fmt.Sprintf("CREATE ROLE %s WITH %s;",
		QuoteIdent(r.Name), strings.Join(r.options(), " "))

	var comment string
	if r.Comment != "" {
		comment = r.commentDDL()
	}
	return ddl, comment
}

// DropDDL renders the DROP ROLE statement.
func (r *Role) DropDDL() string {
	return "DROP ROLE " + QuoteIdent(r.Name) + ";"
}

func (r *Role) commentDDL() string {
	return fmt.Sprintf("COMMENT ON ROLE %s IS %s;", QuoteIdent(r.Name), quoteLiteral(r.Comment))
}

// AlterDDL diffs two revisions of the same role. A rename is its own
// statement; attribute changes collapse into one ALTER ROLE WITH.
func (r *Role) AlterDDL(old *Role) ([]string, string) {
	var ddl []string
	if r.Name != old.Name {
		ddl = append(ddl, fmt.Sprintf("ALTER ROLE %s RENAME TO %s;",
			QuoteIdent(old.Name), QuoteIdent(r.Name)))
	}

	flag := func(set bool, word string) string {
		if set {
			return word
		}
		return "NO" + word
	}
	var changed []string
	if r.Super != old.Super {
		changed = append(changed, flag(r.Super, "SUPERUSER"))
	}
	if r.CreateDB != old.CreateDB {
		changed = append(changed, flag(r.CreateDB, "CREATEDB"))
	}
	if r.CreateRole != old.CreateRole {
		changed = append(changed, flag(r.CreateRole, "CREATEROLE"))
	}
	if r.Inherit != old.Inherit {
		changed = append(changed, flag(r.Inherit, "INHERIT"))
	}
	if r.CanLogin != old.CanLogin {
		changed = append(changed, flag(r.CanLogin, "LOGIN"))
	}
	if r.Replication != old.Replication {
		changed = append(changed, flag(r.Replication, "REPLICATION"))
	}
	if r.BypassRLS != old.BypassRLS {
		changed = append(changed, flag(r.BypassRLS, "BYPASSRLS"))
	}
	if r.ConnLimit != old.ConnLimit {
		// -1 is the server's way of saying no limit
		changed = append(changed, fmt.Sprintf("CONNECTION LIMIT %d", r.ConnLimit))
	}
	if r.ValidUntil != old.ValidUntil {
		until := r.ValidUntil
		if until == "" {
			until = "infinity"
		}
		changed = append(changed, "VALID UNTIL "+quoteLiteral(until))
	}
	if len(changed) > 0 {
		ddl = append(ddl, fmt.Sprintf("ALTER ROLE %s WITH %s;",
			QuoteIdent(r.Name), strings.Join(changed, " ")))
	}

	var comment string
	if r.Comment != old.Comment {
		comment = r.commentDDL()
	}
	return ddl, comment
}

// RoleMember is one edge of the role membership graph as seen from one side.
type RoleMember struct {
	RoleName    string
	MemberName  string
	Granted     bool
	AdminOption bool
}

// AlterDDL diffs one membership edge into GRANT / REVOKE statements. Gaining
// the admin option re-grants with WITH ADMIN OPTION; losing only the admin
// option revokes just that.
func (m *RoleMember) AlterDDL(old *RoleMember) []string {
	role, member := QuoteIdent(m.RoleName), QuoteIdent(m.MemberName)

	var ddl []string
	switch {
	case m.AdminOption && !old.AdminOption:
		ddl = append(ddl, fmt.Sprintf("GRANT %s TO %s WITH ADMIN OPTION;", role, member))
	case !m.AdminOption && old.AdminOption:
		ddl = append(ddl, fmt.Sprintf("REVOKE ADMIN OPTION FOR %s FROM %s;", role, member))
	case m.Granted && !old.Granted:
		ddl = append(ddl, fmt.Sprintf("GRANT %s TO %s;", role, member))
	case !m.Granted && old.Granted:
		ddl = append(ddl, fmt.Sprintf("REVOKE %s FROM %s;", role, member))
	}
	return ddl
}
