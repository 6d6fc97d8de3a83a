package shared

// CanManageSchool is the tenant-scoping rule applied before every classroom
// and student operation: superadmins pass unconditionally, school admins pass
// only for resources of their own school.
func CanManageSchool(p *Principal, resourceSchoolID string) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case RoleSuperAdmin:
		return true
	case RoleSchoolAdmin:
		return p.SchoolID != "" && p.SchoolID == resourceSchoolID
	default:
		return false
	}
}

// ListScope narrows a list query to the principal's tenant. A school admin is
// always pinned to its own school, whatever filter it asked for; a superadmin
// keeps the requested filter (empty means all schools).
func ListScope(p *Principal, requestedSchoolID string) string {
	if p != nil && p.Role == RoleSchoolAdmin {
		return p.SchoolID
	}
	return requestedSchoolID
}
