package shared

// Role is the closed set of account roles.
type Role string

const (
	// RoleSuperAdmin may manage any school.
	RoleSuperAdmin Role = "superadmin"
	// RoleSchoolAdmin may manage resources of its own school only.
	RoleSchoolAdmin Role = "school_admin"
	// RoleStudent exists on user records; no gate admits it.
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSchoolAdmin, RoleStudent:
		return true
	}
	return false
}

// Principal is the authenticated identity decoded from a verified token.
// It reflects the user record as of token issuance and is never re-checked
// against storage during a request.
type Principal struct {
	UserID   string
	Role     Role
	SchoolID string
}
