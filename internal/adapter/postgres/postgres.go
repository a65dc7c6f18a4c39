// Package postgres implements the adapter for PostgreSQL-family servers on
// top of pgx. Introspection results are handed to internal/model/pg, which
// owns all DDL rendering.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadopc/termdba/internal/adapter"
	pgmodel "github.com/sadopc/termdba/internal/model/pg"
)

func init() {
	adapter.Register(&postgresAdapter{})
}

type postgresAdapter struct{}

func (a *postgresAdapter) Name() string     { return "postgres" }
func (a *postgresAdapter) DefaultPort() int { return 5432 }

func (a *postgresAdapter) Connect(ctx context.Context, dsn string) (adapter.Connection, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &pgConn{
		pool:   pool,
		dsn:    dsn,
		dbName: extractDBName(dsn),
	}, nil
}

// extractDBName parses the database name from the DSN.
func extractDBName(dsn string) string {
	if dsn == "" {
		return ""
	}
	// Try URL format first (postgres://... or postgresql://...)
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	// Fallback: keyword=value format (e.g. "host=localhost dbname=myapp")
	for _, part := range strings.Fields(dsn) {
		if strings.HasPrefix(part, "dbname=") {
			return strings.TrimPrefix(part, "dbname=")
		}
	}
	return ""
}

// pgConn implements adapter.Connection for PostgreSQL.
type pgConn struct {
	pool     *pgxpool.Pool
	dsn      string
	dbName   string
	cancelMu sync.Mutex
	cancelFn context.CancelFunc
}

func (c *pgConn) DatabaseName() string { return c.dbName }
func (c *pgConn) AdapterName() string  { return "postgres" }

func (c *pgConn) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConn) Close() error {
	c.pool.Close()
	return nil
}

// Cancel cancels the currently running query, if any.
func (c *pgConn) Cancel() error {
	c.cancelMu.Lock()
	fn := c.cancelFn
	c.cancelMu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (c *pgConn) setCancel(fn context.CancelFunc) {
	c.cancelMu.Lock()
	c.cancelFn = fn
	c.cancelMu.Unlock()
}

func (c *pgConn) clearCancel() {
	c.cancelMu.Lock()
	c.cancelFn = nil
	c.cancelMu.Unlock()
}

// ---------------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------------

func (c *pgConn) Databases(ctx context.Context) ([]string, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT datname FROM pg_database
		 WHERE datistemplate = false
		 ORDER BY datname`)
	if err != nil {
		return nil, fmt.Errorf("databases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("databases scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Database loads the full pg_database record for one database.
func (c *pgConn) Database(ctx context.Context, name string) (*pgmodel.Database, error) {
	const q = `
		SELECT d.datname,
		       pg_get_userbyid(d.datdba),
		       d.datcollate,
		       d.datctype,
		       COALESCE(t.spcname, ''),
		       d.datconnlimit,
		       d.datallowconn,
		       d.datistemplate
		FROM pg_database d
		LEFT JOIN pg_tablespace t ON t.oid = d.dattablespace
		WHERE d.datname = $1`

	var db pgmodel.Database
	err := c.pool.QueryRow(ctx, q, name).Scan(&db.Name, &db.Owner, &db.Collation,
		&db.CharacterClass, &db.Tablespace, &db.ConnectionLimit,
		&db.AllowConnection, &db.IsTemplate)
	if err != nil {
		return nil, fmt.Errorf("database %q: %w", name, err)
	}
	return &db, nil
}

// Schemas lists the user-visible schemas of the connected database.
func (c *pgConn) Schemas(ctx context.Context) ([]*pgmodel.Schema, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT n.nspname, pg_get_userbyid(n.nspowner)
		 FROM pg_namespace n
		 WHERE n.nspname NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		   AND n.nspname NOT LIKE 'pg_temp%'
		 ORDER BY n.nspname`)
	if err != nil {
		return nil, fmt.Errorf("schemas: %w", err)
	}
	defer rows.Close()

	var schemas []*pgmodel.Schema
	for rows.Next() {
		var s pgmodel.Schema
		if err := rows.Scan(&s.Name, &s.Owner); err != nil {
			return nil, fmt.Errorf("schemas scan: %w", err)
		}
		schemas = append(schemas, &s)
	}
	return schemas, rows.Err()
}

func (c *pgConn) Tables(ctx context.Context, db, schemaName string) ([]string, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	rows, err := c.pool.Query(ctx,
		`SELECT table_name
		 FROM information_schema.tables
		 WHERE table_schema = $1
		   AND table_type   = 'BASE TABLE'
		 ORDER BY table_name`, schemaName)
	if err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("tables scan: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Table loads the pg_tables metadata for one table.
func (c *pgConn) Table(ctx context.Context, schemaName, table string) (*pgmodel.Table, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT tablename, tableowner, COALESCE(tablespace, ''),
		       hasindexes, hasrules, hastriggers, rowsecurity
		FROM pg_tables
		WHERE schemaname = $1
		  AND tablename  = $2`

	var t pgmodel.Table
	err := c.pool.QueryRow(ctx, q, schemaName, table).Scan(&t.Name, &t.Owner,
		&t.Tablespace, &t.HasIndexes, &t.HasRules, &t.HasTriggers, &t.RowSecurity)
	if err != nil {
		return nil, fmt.Errorf("table %s.%s: %w", schemaName, table, err)
	}
	return &t, nil
}

// primaryKeyColumns returns the ordered column names of the primary key.
func (c *pgConn) primaryKeyColumns(ctx context.Context, schemaName, table string) ([]string, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT a.attname
		 FROM pg_index i
		 JOIN LATERAL unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
		 JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.attnum
		 WHERE i.indrelid = ($1 || '.' || $2)::regclass
		   AND i.indisprimary
		 ORDER BY k.ord`, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("primary keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("primary keys scan: %w", err)
		}
		keys = append(keys, name)
	}
	return keys, rows.Err()
}

// Fields loads every column of one table. Columns of unknown type are
// reported in the second result without aborting the rest.
func (c *pgConn) Fields(ctx context.Context, schemaName, table string) ([]*pgmodel.Field, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	keys, err := c.primaryKeyColumns(ctx, schemaName, table)
	if err != nil {
		return nil, nil, err
	}

	const q = `
		SELECT c.column_name,
		       c.udt_name,
		       c.is_nullable,
		       COALESCE(c.column_default, ''),
		       COALESCE(col_description(($1 || '.' || $2)::regclass, c.ordinal_position), ''),
		       COALESCE(c.numeric_precision, 0),
		       COALESCE(c.numeric_scale, 0),
		       COALESCE(c.character_maximum_length, 0)
		FROM information_schema.columns c
		WHERE c.table_schema = $1
		  AND c.table_name   = $2
		ORDER BY c.ordinal_position`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}
	defer rows.Close()

	var raw []pgmodel.ColumnRow
	for rows.Next() {
		var r pgmodel.ColumnRow
		if err := rows.Scan(&r.Name, &r.UdtName, &r.IsNullable, &r.Default,
			&r.Comment, &r.NumericPrecision, &r.NumericScale, &r.CharMaxLength); err != nil {
			return nil, nil, fmt.Errorf("columns scan: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	fields, parseErrs := pgmodel.ParseColumnRows(raw, keys)
	return fields, parseErrs, nil
}

// Indexes loads the non-constraint indexes of one table from their
// pg_get_indexdef output.
func (c *pgConn) Indexes(ctx context.Context, schemaName, table string) ([]*pgmodel.Index, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT ic.relname,
		       pg_get_indexdef(i.indexrelid),
		       COALESCE(obj_description(i.indexrelid, 'pg_class'), '')
		FROM pg_index i
		JOIN pg_class ic ON ic.oid = i.indexrelid
		JOIN pg_class tc ON tc.oid = i.indrelid
		JOIN pg_namespace n ON n.oid = tc.relnamespace
		WHERE n.nspname = $1
		  AND tc.relname = $2
		  AND NOT i.indisprimary
		  AND NOT EXISTS (
			SELECT 1 FROM pg_constraint cc WHERE cc.conindid = i.indexrelid
		  )
		ORDER BY ic.relname`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, nil, fmt.Errorf("indexes: %w", err)
	}
	defer rows.Close()

	var (
		indexes   []*pgmodel.Index
		parseErrs []error
	)
	for rows.Next() {
		var name, def, comment string
		if err := rows.Scan(&name, &def, &comment); err != nil {
			return nil, nil, fmt.Errorf("indexes scan: %w", err)
		}
		idx, err := pgmodel.ParseIndexDef(name, def, comment)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		indexes = append(indexes, idx)
	}
	return indexes, parseErrs, rows.Err()
}

// constraintDefs loads (name, definition, comment) for one constraint type
// of one table, in name order.
func (c *pgConn) constraintDefs(ctx context.Context, schemaName, table, contype string) ([][3]string, error) {
	const q = `
		SELECT co.conname,
		       pg_get_constraintdef(co.oid),
		       COALESCE(obj_description(co.oid, 'pg_constraint'), '')
		FROM pg_constraint co
		JOIN pg_class tc ON tc.oid = co.conrelid
		JOIN pg_namespace n ON n.oid = tc.relnamespace
		WHERE n.nspname = $1
		  AND tc.relname = $2
		  AND co.contype = $3
		ORDER BY co.conname`

	rows, err := c.pool.Query(ctx, q, schemaName, table, contype)
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}
	defer rows.Close()

	var defs [][3]string
	for rows.Next() {
		var name, def, comment string
		if err := rows.Scan(&name, &def, &comment); err != nil {
			return nil, fmt.Errorf("constraints scan: %w", err)
		}
		defs = append(defs, [3]string{name, def, comment})
	}
	return defs, rows.Err()
}

func (c *pgConn) ForeignKeys(ctx context.Context, schemaName, table string) ([]*pgmodel.ForeignKey, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	defs, err := c.constraintDefs(ctx, schemaName, table, "f")
	if err != nil {
		return nil, nil, err
	}

	var (
		fks       []*pgmodel.ForeignKey
		parseErrs []error
	)
	for _, d := range defs {
		fk, err := pgmodel.ParseForeignKeyDef(d[0], d[1], schemaName, d[2])
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		fks = append(fks, fk)
	}
	return fks, parseErrs, nil
}

func (c *pgConn) Checks(ctx context.Context, schemaName, table string) ([]*pgmodel.Check, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	defs, err := c.constraintDefs(ctx, schemaName, table, "c")
	if err != nil {
		return nil, nil, err
	}

	var (
		checks    []*pgmodel.Check
		parseErrs []error
	)
	for _, d := range defs {
		ch, err := pgmodel.ParseCheckDef(d[0], d[1], d[2])
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		checks = append(checks, ch)
	}
	return checks, parseErrs, nil
}

func (c *pgConn) Excludes(ctx context.Context, schemaName, table string) ([]*pgmodel.Exclude, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}
	defs, err := c.constraintDefs(ctx, schemaName, table, "x")
	if err != nil {
		return nil, nil, err
	}

	var (
		excludes  []*pgmodel.Exclude
		parseErrs []error
	)
	for _, d := range defs {
		ex, err := pgmodel.ParseExcludeDef(d[0], d[1], d[2])
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		excludes = append(excludes, ex)
	}
	return excludes, parseErrs, nil
}

// Uniques loads the unique constraints of one table with their column lists.
func (c *pgConn) Uniques(ctx context.Context, schemaName, table string) ([]*pgmodel.Unique, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT co.conname,
		       ARRAY(
		         SELECT a.attname
		         FROM unnest(co.conkey) WITH ORDINALITY AS k(attnum, ord)
		         JOIN pg_attribute a ON a.attrelid = co.conrelid AND a.attnum = k.attnum
		         ORDER BY k.ord
		       ),
		       COALESCE(obj_description(co.oid, 'pg_constraint'), '')
		FROM pg_constraint co
		JOIN pg_class tc ON tc.oid = co.conrelid
		JOIN pg_namespace n ON n.oid = tc.relnamespace
		WHERE n.nspname = $1
		  AND tc.relname = $2
		  AND co.contype = 'u'
		ORDER BY co.conname`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("uniques: %w", err)
	}
	defer rows.Close()

	var raw []pgmodel.UniqueRow
	for rows.Next() {
		var r pgmodel.UniqueRow
		if err := rows.Scan(&r.Name, &r.Columns, &r.Comment); err != nil {
			return nil, fmt.Errorf("uniques scan: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pgmodel.ParseUniqueRows(raw), nil
}

// Triggers loads the user triggers of one table from pg_trigger.
func (c *pgConn) Triggers(ctx context.Context, schemaName, table string) ([]*pgmodel.Trigger, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT t.tgname,
		       t.tgtype,
		       t.tgenabled,
		       ARRAY(
		         SELECT a.attname
		         FROM unnest(t.tgattr) WITH ORDINALITY AS k(attnum, ord)
		         JOIN pg_attribute a ON a.attrelid = t.tgrelid AND a.attnum = k.attnum
		         ORDER BY k.ord
		       ),
		       COALESCE(pg_get_expr(t.tgqual, t.tgrelid), ''),
		       pn.nspname,
		       p.proname,
		       COALESCE((
		         SELECT string_agg(quote_literal(arg), ', ')
		         FROM unnest(string_to_array(encode(t.tgargs, 'escape'), E'\\000')) AS arg
		         WHERE arg <> ''
		       ), '')
		FROM pg_trigger t
		JOIN pg_class tc ON tc.oid = t.tgrelid
		JOIN pg_namespace n ON n.oid = tc.relnamespace
		JOIN pg_proc p ON p.oid = t.tgfoid
		JOIN pg_namespace pn ON pn.oid = p.pronamespace
		WHERE n.nspname = $1
		  AND tc.relname = $2
		  AND NOT t.tgisinternal
		ORDER BY t.tgname`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("triggers: %w", err)
	}
	defer rows.Close()

	var raw []pgmodel.TriggerRow
	for rows.Next() {
		var r pgmodel.TriggerRow
		if err := rows.Scan(&r.Name, &r.Type, &r.Enabled, &r.UpdateFields,
			&r.Condition, &r.FnSchema, &r.FnName, &r.FnArgs); err != nil {
			return nil, fmt.Errorf("triggers scan: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pgmodel.ParseTriggerRows(raw), nil
}

// Rules loads the rewrite rules of one table from their pg_get_ruledef
// output. The implicit _RETURN rule of views is skipped.
func (c *pgConn) Rules(ctx context.Context, schemaName, table string) ([]*pgmodel.Rule, []error, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT r.rulename,
		       pg_get_ruledef(r.oid),
		       r.ev_enabled,
		       COALESCE(obj_description(r.oid, 'pg_rewrite'), '')
		FROM pg_rewrite r
		JOIN pg_class tc ON tc.oid = r.ev_class
		JOIN pg_namespace n ON n.oid = tc.relnamespace
		WHERE n.nspname = $1
		  AND tc.relname = $2
		  AND r.rulename <> '_RETURN'
		ORDER BY r.rulename`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, nil, fmt.Errorf("rules: %w", err)
	}
	defer rows.Close()

	var (
		rules     []*pgmodel.Rule
		parseErrs []error
	)
	for rows.Next() {
		var name, def, enabled, comment string
		if err := rows.Scan(&name, &def, &enabled, &comment); err != nil {
			return nil, nil, fmt.Errorf("rules scan: %w", err)
		}
		rule, err := pgmodel.ParseRuleDef(name, def, enabled, comment)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, parseErrs, rows.Err()
}

// Grants folds the role_table_grants rows of one table into one aggregate
// per grantee.
func (c *pgConn) Grants(ctx context.Context, schemaName, table string) ([]*pgmodel.Privilege, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	const q = `
		SELECT grantee, table_catalog, table_schema, table_name, privilege_type
		FROM information_schema.role_table_grants
		WHERE table_schema = $1
		  AND table_name   = $2
		ORDER BY grantee, privilege_type`

	rows, err := c.pool.Query(ctx, q, schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("grants: %w", err)
	}
	defer rows.Close()

	var raw []pgmodel.GrantRow
	for rows.Next() {
		var r pgmodel.GrantRow
		if err := rows.Scan(&r.Grantee, &r.Catalog, &r.Schema, &r.Table, &r.Privilege); err != nil {
			return nil, fmt.Errorf("grants scan: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pgmodel.BuildPrivileges(raw), nil
}

// Roles loads every role from pg_roles.
func (c *pgConn) Roles(ctx context.Context) ([]*pgmodel.Role, error) {
	const q = `
		SELECT r.rolname, r.rolsuper, r.rolinherit, r.rolcreaterole,
		       r.rolcreatedb, r.rolcanlogin, r.rolreplication, r.rolbypassrls,
		       r.rolconnlimit,
		       COALESCE(to_char(r.rolvaliduntil, 'YYYY-MM-DD HH24:MI:SS'), ''),
		       COALESCE(shobj_description(r.oid, 'pg_authid'), '')
		FROM pg_roles r
		WHERE r.rolname NOT LIKE 'pg\_%'
		ORDER BY r.rolname`

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}
	defer rows.Close()

	var roles []*pgmodel.Role
	for rows.Next() {
		var r pgmodel.Role
		if err := rows.Scan(&r.Name, &r.Super, &r.Inherit, &r.CreateRole,
			&r.CreateDB, &r.CanLogin, &r.Replication, &r.BypassRLS,
			&r.ConnLimit, &r.ValidUntil, &r.Comment); err != nil {
			return nil, fmt.Errorf("roles scan: %w", err)
		}
		roles = append(roles, &r)
	}
	return roles, rows.Err()
}

// RoleMembers loads the role membership graph from pg_auth_members.
func (c *pgConn) RoleMembers(ctx context.Context) ([]*pgmodel.RoleMember, error) {
	const q = `
		SELECT r.rolname, m.rolname, am.admin_option
		FROM pg_auth_members am
		JOIN pg_roles r ON r.oid = am.roleid
		JOIN pg_roles m ON m.oid = am.member
		ORDER BY r.rolname, m.rolname`

	rows, err := c.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("role members: %w", err)
	}
	defer rows.Close()

	var members []*pgmodel.RoleMember
	for rows.Next() {
		var m pgmodel.RoleMember
		if err := rows.Scan(&m.RoleName, &m.MemberName, &m.AdminOption); err != nil {
			return nil, fmt.Errorf("role members scan: %w", err)
		}
		m.Granted = true
		members = append(members, &m)
	}
	return members, rows.Err()
}

// TableDDL recreates one table from its introspected parts: columns and
// constraints inside CREATE TABLE, then indexes, comments, triggers and
// rules as separate statements.
func (c *pgConn) TableDDL(ctx context.Context, db, schemaName, table string) ([]string, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	fields, parseErrs, err := c.Fields(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	uniques, err := c.Uniques(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	checks, parseErrs, err := c.Checks(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	fks, parseErrs, err := c.ForeignKeys(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	excludes, parseErrs, err := c.Excludes(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	indexes, parseErrs, err := c.Indexes(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}
	triggers, err := c.Triggers(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	rules, parseErrs, err := c.Rules(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(parseErrs) > 0 {
		return nil, parseErrs[0]
	}

	var clauses, comments []string
	appendClause := func(clause, comment string) {
		clauses = append(clauses, clause)
		if comment != "" {
			comments = append(comments, comment)
		}
	}

	var keys []string
	for _, f := range fields {
		clause, comment := f.CreateDDL(schemaName, table)
		appendClause(clause, comment)
		if f.Key {
			keys = append(keys, pgmodel.QuoteIdent(f.Name))
		}
	}
	if len(keys) > 0 {
		clauses = append(clauses, "PRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}
	for _, u := range uniques {
		clause, comment := u.CreateDDL(schemaName, table)
		appendClause(clause, comment)
	}
	for _, ch := range checks {
		clause, comment := ch.CreateDDL(schemaName, table)
		appendClause(clause, comment)
	}
	for _, fk := range fks {
		clause, comment := fk.CreateDDL(schemaName, table)
		appendClause(clause, comment)
	}
	for _, ex := range excludes {
		clause, comment := ex.CreateDDL(schemaName, table)
		appendClause(clause, comment)
	}

	stmts := []string{fmt.Sprintf("CREATE TABLE %s (\n  %s\n);",
		pgmodel.QuoteQualified(schemaName, table), strings.Join(clauses, ",\n  "))}
	for _, idx := range indexes {
		stmt, comment := idx.CreateDDL(schemaName, table)
		stmts = append(stmts, stmt)
		if comment != "" {
			comments = append(comments, comment)
		}
	}
	for _, trg := range triggers {
		stmts = append(stmts, trg.CreateDDL(schemaName, table))
	}
	for _, rule := range rules {
		stmt, comment := rule.CreateDDL(schemaName, table)
		stmts = append(stmts, stmt)
		if comment != "" {
			comments = append(comments, comment)
		}
	}
	return append(stmts, comments...), nil
}

// ---------------------------------------------------------------------------
// Query Execution
// ---------------------------------------------------------------------------

func (c *pgConn) Execute(ctx context.Context, query string) (*adapter.QueryResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	c.setCancel(cancel)
	defer c.clearCancel()

	start := time.Now()

	if isSelectQuery(query) {
		return c.executeSelect(ctx, query, start)
	}
	return c.executeNonSelect(ctx, query, start)
}

func (c *pgConn) executeSelect(ctx context.Context, query string, start time.Time) (*adapter.QueryResult, error) {
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, adapter.ErrCancelled
		}
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer rows.Close()

	cols := fieldDescToMeta(rows.FieldDescriptions())

	var result [][]string
	truncated := false
	for rows.Next() {
		if len(result) >= adapter.DefaultMaxRows {
			truncated = true
			break
		}
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("execute values: %w", err)
		}
		result = append(result, valuesToStrings(vals))
	}
	if err := rows.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, adapter.ErrCancelled
		}
		return nil, fmt.Errorf("execute rows: %w", err)
	}

	return &adapter.QueryResult{
		Columns:   cols,
		Rows:      result,
		RowCount:  int64(len(result)),
		Duration:  time.Since(start),
		IsSelect:  true,
		Truncated: truncated,
	}, nil
}

func (c *pgConn) executeNonSelect(ctx context.Context, query string, start time.Time) (*adapter.QueryResult, error) {
	tag, err := c.pool.Exec(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, adapter.ErrCancelled
		}
		return nil, fmt.Errorf("execute: %w", err)
	}

	return &adapter.QueryResult{
		RowCount: tag.RowsAffected(),
		Duration: time.Since(start),
		IsSelect: false,
		Message:  tag.String(),
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// isSelectQuery determines if a query is a SELECT-like statement.
func isSelectQuery(query string) bool {
	q := strings.TrimSpace(query)
	// Strip leading comments (-- and /* */)
	for {
		if strings.HasPrefix(q, "--") {
			if idx := strings.Index(q, "\n"); idx >= 0 {
				q = strings.TrimSpace(q[idx+1:])
				continue
			}
			return false
		}
		if strings.HasPrefix(q, "/*") {
			if idx := strings.Index(q, "*/"); idx >= 0 {
				q = strings.TrimSpace(q[idx+2:])
				continue
			}
			return false
		}
		break
	}
	upper := strings.ToUpper(q)
	return strings.HasPrefix(upper, "SELECT") ||
		strings.HasPrefix(upper, "WITH") ||
		strings.HasPrefix(upper, "VALUES") ||
		strings.HasPrefix(upper, "TABLE") ||
		strings.HasPrefix(upper, "SHOW") ||
		strings.HasPrefix(upper, "EXPLAIN")
}

// fieldDescToMeta converts pgx field descriptions to adapter ColumnMeta.
func fieldDescToMeta(fds []pgconn.FieldDescription) []adapter.ColumnMeta {
	cols := make([]adapter.ColumnMeta, len(fds))
	for i, fd := range fds {
		cols[i] = adapter.ColumnMeta{
			Name: fd.Name,
			Type: pgTypeOIDToName(fd.DataTypeOID),
		}
	}
	return cols
}

// valuesToStrings converts a row of interface{} values to strings.
func valuesToStrings(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = valueToString(v)
	}
	return out
}

// valueToString converts a single database value to a string representation.
func valueToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int8:
		return fmt.Sprintf("%d", val)
	case int16:
		return fmt.Sprintf("%d", val)
	case int32:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float32:
		return fmt.Sprintf("%g", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case [16]byte:
		// UUID
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case []string:
		return "{" + strings.Join(val, ",") + "}"
	case []int32:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = fmt.Sprintf("%d", n)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []int64:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = fmt.Sprintf("%d", n)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []float64:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = fmt.Sprintf("%g", n)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []bool:
		parts := make([]string, len(val))
		for i, b := range val {
			if b {
				parts[i] = "true"
			} else {
				parts[i] = "false"
			}
		}
		return "{" + strings.Join(parts, ",") + "}"
	case pgtype.Numeric:
		dv, err := val.Value()
		if err != nil || dv == nil {
			return ""
		}
		if s, ok := dv.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", dv)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// pgTypeOIDToName maps common PostgreSQL type OIDs to human-readable names.
func pgTypeOIDToName(oid uint32) string {
	switch oid {
	case 16:
		return "bool"
	case 17:
		return "bytea"
	case 18:
		return "char"
	case 20:
		return "int8"
	case 21:
		return "int2"
	case 23:
		return "int4"
	case 25:
		return "text"
	case 26:
		return "oid"
	case 114:
		return "json"
	case 142:
		return "xml"
	case 700:
		return "float4"
	case 701:
		return "float8"
	case 790:
		return "money"
	case 1000:
		return "bool[]"
	case 1005:
		return "int2[]"
	case 1007:
		return "int4[]"
	case 1009:
		return "text[]"
	case 1016:
		return "int8[]"
	case 1021:
		return "float4[]"
	case 1022:
		return "float8[]"
	case 1042:
		return "bpchar"
	case 1043:
		return "varchar"
	case 1082:
		return "date"
	case 1083:
		return "time"
	case 1114:
		return "timestamp"
	case 1184:
		return "timestamptz"
	case 1186:
		return "interval"
	case 1266:
		return "timetz"
	case 1700:
		return "numeric"
	case 2249:
		return "record"
	case 2278:
		return "void"
	case 2950:
		return "uuid"
	case 3802:
		return "jsonb"
	case 3807:
		return "jsonb[]"
	default:
		return fmt.Sprintf("oid:%d", oid)
	}
}
