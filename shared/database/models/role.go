package models

// Role is the closed set of access levels known to the system. Every role
// check in the services goes through the helpers below instead of comparing
// raw strings.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// AllRoles lists every valid role, highest privilege first.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.OneOf(AllRoles...)
}

// OneOf reports whether r is a member of the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// CanAssign reports whether an actor holding r may hand out the target role.
// Only super admins may mint other super admins; admins may assign the rest.
func (r Role) CanAssign(target Role) bool {
	if target == RoleSuperAdmin {
		return r == RoleSuperAdmin
	}
	return r.OneOf(RoleSuperAdmin, RoleAdmin)
}

// CanToggle reports whether an actor holding r may change the active flag of
// an account holding target.
func (r Role) CanToggle(target Role) bool {
	if target == RoleSuperAdmin {
		return r == RoleSuperAdmin
	}
	return true
}
