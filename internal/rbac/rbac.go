package rbac

type Role string
type Permission string

// Tenant roles.
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Tenant permissions.
const (
	PermProjectRead   Permission = "project:read"
	PermProjectWrite  Permission = "project:write"
	PermProjectDelete Permission = "project:delete"
	PermBoardWrite    Permission = "board:write"
	PermTaskWrite     Permission = "task:write"
	PermMessageRead   Permission = "message:read"
	PermMessageWrite  Permission = "message:write"
	PermTeamRead      Permission = "team:read"
	PermTeamManage    Permission = "team:manage"
	PermUserManage    Permission = "user:manage"
	PermTicketWrite   Permission = "ticket:write"
	PermFlagRead      Permission = "flag:read"
)

var viewerPerms = map[Permission]bool{
	PermProjectRead: true,
	PermMessageRead: true,
	PermTeamRead:    true,
	PermFlagRead:    true,
	PermTicketWrite: true,
}

func Can(role Role, p Permission) bool {
	switch role {
	case RoleOwner, RoleAdmin:
		return true
	case RoleMember:
		return p != PermProjectDelete && p != PermTeamManage && p != PermUserManage
	case RoleViewer:
		return viewerPerms[p]
	default:
		return false
	}
}

// ValidRole reports whether role is a known tenant role.
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}
