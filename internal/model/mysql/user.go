package mysql

import (
	"fmt"
	"strconv"
)

// User is one account row from mysql.user. The privilege booleans mirror the
// *_priv columns, which the engine encodes as "Y"/"N".
type User struct {
	Host               string
	Name               string
	Plugin             string
	MaxQueries         uint32
	MaxUpdates         uint32
	MaxConnections     uint32
	MaxUserConnections uint32

	Alter             bool
	AlterRoutine      bool
	Create            bool
	CreateRoutine     bool
	CreateTempTables  bool
	CreateUser        bool
	CreateView        bool
	Delete            bool
	Drop              bool
	Event             bool
	Execute           bool
	File              bool
	GrantOpt          bool
	Index             bool
	Insert            bool
	LockTables        bool
	Process           bool
	References        bool
	Reload            bool
	ReplicationClient bool
	ReplicationSlave  bool
	Select            bool
	ShowDatabases     bool
	ShowView          bool
	Shutdown          bool
	Super             bool
	Trigger           bool
	Update            bool
}

// ParseUserRow decodes a SELECT * FROM mysql.user row given as a column map.
func ParseUserRow(cols map[string]string) *User {
	yes := func(col string) bool { return cols[col] == "Y" }
	num := func(col string) uint32 {
		n, err := strconv.ParseUint(cols[col], 10, 32)
		if err != nil {
			return 0
		}
		return uint32(n)
	}
	return &User{
		Host:               cols["Host"],
		Name:               cols["User"],
		Plugin:             cols["plugin"],
		MaxQueries:         num("max_questions"),
		MaxUpdates:         num("max_updates"),
		MaxConnections:     num("max_connections"),
		MaxUserConnections: num("max_user_connections"),
		Alter:              yes("Alter_priv"),
		AlterRoutine:       yes("Alter_routine_priv"),
		Create:             yes("Create_priv"),
		CreateRoutine:      yes("Create_routine_priv"),
		CreateTempTables:   yes("Create_tmp_table_priv"),
		CreateUser:         yes("Create_user_priv"),
		CreateView:         yes("Create_view_priv"),
		Delete:             yes("Delete_priv"),
		Drop:               yes("Drop_priv"),
		Event:              yes("Event_priv"),
		Execute:            yes("Execute_priv"),
		File:               yes("File_priv"),
		GrantOpt:           yes("Grant_priv"),
		Index:              yes("Index_priv"),
		Insert:             yes("Insert_priv"),
		LockTables:         yes("Lock_tables_priv"),
		Process:            yes("Process_priv"),
		References:         yes("References_priv"),
		Reload:             yes("Reload_priv"),
		ReplicationClient:  yes("Repl_client_priv"),
		ReplicationSlave:   yes("Repl_slave_priv"),
		Select:             yes("Select_priv"),
		ShowDatabases:      yes("Show_db_priv"),
		ShowView:           yes("Show_view_priv"),
		Shutdown:           yes("Shutdown_priv"),
		Super:              yes("Super_priv"),
		Trigger:            yes("Trigger_priv"),
		Update:             yes("Update_priv"),
	}
}

// UserMember is one edge of mysql.role_edges: the user or role on the other
// side of a grant, seen from the account being edited. Granted starts true
// for introspected edges; a dialog toggles it to stage a revoke.
type UserMember struct {
	UserName   string
	UserHost   string
	MemberName string
	MemberHost string
	Granted    bool
}

// AlterDDL renders the GRANT or REVOKE statement produced by toggling the
// membership, or "" when the flag did not move. name and host identify the
// account whose dialog was open.
func (m *UserMember) AlterDDL(old *UserMember, name, host string) string {
	if m.Granted == old.Granted {
		return ""
	}
	verb, joiner := "GRANT", "TO"
	if !m.Granted {
		verb, joiner = "REVOKE", "FROM"
	}
	if m.UserName != "" && m.UserHost != "" {
		return fmt.Sprintf("%s %s@%s %s %s@%s", verb,
			QuoteIdent(name), QuoteIdent(host), joiner,
			QuoteIdent(m.UserName), QuoteIdent(m.UserHost))
	}
	if m.MemberName != "" && m.MemberHost != "" {
		return fmt.Sprintf("%s %s@%s %s %s@%s", verb,
			QuoteIdent(m.MemberName), QuoteIdent(m.MemberHost), joiner,
			QuoteIdent(name), QuoteIdent(host))
	}
	return ""
}
