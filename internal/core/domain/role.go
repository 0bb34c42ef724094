package domain

// Role identifies one of the five closed party roles. Settlement and permission
// logic switches exhaustively over this type; adding a role is a deliberate,
// compile-checked change rather than a new string comparison somewhere.
type Role string

const (
	RoleSuperAgent  Role = "SUPER_AGENT"
	RoleAgent       Role = "AGENT"
	RoleClient      Role = "CLIENT"
	RoleSuperWorker Role = "SUPER_WORKER"
	RoleWorker      Role = "WORKER"
)

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAgent, RoleAgent, RoleClient, RoleSuperWorker, RoleWorker:
		return true
	}
	return false
}

// CanParent reports whether a party with role r may be the recruitment parent of a
// party with role child. These rules keep every chain one hop away from its root:
// Clients hang off an Agent or directly off the Super Agent, Agents hang off the
// Super Agent, Workers hang off a Super Worker. The two top-level roles have no
// parent at all.
func (r Role) CanParent(child Role) bool {
	switch r {
	case RoleSuperAgent:
		return child == RoleAgent || child == RoleClient
	case RoleAgent:
		return child == RoleClient
	case RoleSuperWorker:
		return child == RoleWorker
	case RoleClient, RoleWorker:
		return false
	}
	return false
}

// RequiresParent reports whether a party with role r must be registered with a
// recruitment parent.
func (r Role) RequiresParent() bool {
	switch r {
	case RoleSuperAgent, RoleSuperWorker:
		return false
	case RoleAgent, RoleClient, RoleWorker:
		return true
	}
	return false
}

// SeesFinancials reports whether payloads for this role may carry monetary fields.
// Workers never see money, not even in error responses.
func (r Role) SeesFinancials() bool {
	switch r {
	case RoleSuperAgent, RoleAgent, RoleClient, RoleSuperWorker:
		return true
	case RoleWorker:
		return false
	}
	return false
}
