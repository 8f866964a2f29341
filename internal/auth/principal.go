// Package auth issues and verifies credentials and describes the caller of a request.
package auth

import "boardapi/internal/rbac"

// Principal is the authenticated caller. AdminRole is empty for users without
// a back-office profile.
type Principal struct {
	UserID    string         `json:"user_id"`
	ClientID  string         `json:"client_id"`
	Role      rbac.Role      `json:"role"`
	AdminRole rbac.AdminRole `json:"admin_role,omitempty"`
}

func (p Principal) Can(perm rbac.Permission) bool {
	return rbac.Can(p.Role, perm)
}

func (p Principal) AdminCan(perm rbac.Permission) bool {
	return rbac.AdminCan(p.AdminRole, perm)
}

// IsTenantAdmin reports whether the caller administers their own client.
func (p Principal) IsTenantAdmin() bool {
	return p.Role == rbac.RoleOwner || p.Role == rbac.RoleAdmin
}
