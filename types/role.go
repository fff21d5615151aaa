package types

// Role is the closed set of project membership roles. All permission checks go
// through the explicit role sets below, never inline string comparison.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleCollector Role = "collector"
)

// String returns the string representation of a Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is a known membership role.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleCollector:
		return true
	}
	return false
}

// Per-operation role sets. Each mutating operation names the exact set that
// may perform it; reads require any membership.
var (
	// RolesAnyMember permits reads and payment recording.
	RolesAnyMember = []Role{RoleOwner, RoleAdmin, RoleCollector}

	// RolesManage permits trip mutation, project updates and member management.
	RolesManage = []Role{RoleOwner, RoleAdmin}

	// RolesOwnerOnly permits project deletion.
	RolesOwnerOnly = []Role{RoleOwner}

	// RolesAssignable are the roles that may be granted through member
	// management. The owner role is never assignable this way.
	RolesAssignable = []Role{RoleAdmin, RoleCollector}
)

// RoleIn reports whether r is in the given role set.
func RoleIn(r Role, set []Role) bool {
	for _, allowed := range set {
		if r == allowed {
			return true
		}
	}
	return false
}

// IsAssignable reports whether the role may be granted via member management.
func (r Role) IsAssignable() bool {
	return RoleIn(r, RolesAssignable)
}
