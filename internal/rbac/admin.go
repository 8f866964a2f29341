package rbac

type AdminRole string

// Platform admin roles.
const (
	AdminSuper      AdminRole = "super_admin"
	AdminOperations AdminRole = "operations"
	AdminSupport    AdminRole = "support"
)

// Platform admin permissions.
const (
	PermAdminClientsRead   Permission = "admin:clients:read"
	PermAdminClientsWrite  Permission = "admin:clients:write"
	PermAdminPlansWrite    Permission = "admin:plans:write"
	PermAdminLicensesWrite Permission = "admin:licenses:write"
	PermAdminFlagsWrite    Permission = "admin:flags:write"
	PermAdminTicketsRead   Permission = "admin:tickets:read"
	PermAdminTicketsWrite  Permission = "admin:tickets:write"
	PermAdminProfiles      Permission = "admin:profiles:manage"
	PermAdminStatsRead     Permission = "admin:stats:read"
)

var supportPerms = map[Permission]bool{
	PermAdminClientsRead:  true,
	PermAdminTicketsRead:  true,
	PermAdminTicketsWrite: true,
	PermAdminStatsRead:    true,
}

// AdminCan reports whether a platform admin role grants p.
// The empty role is not an admin and gets nothing.
func AdminCan(role AdminRole, p Permission) bool {
	switch role {
	case AdminSuper:
		return true
	case AdminOperations:
		return p != PermAdminProfiles
	case AdminSupport:
		return supportPerms[p]
	default:
		return false
	}
}

func ValidAdminRole(role string) bool {
	switch AdminRole(role) {
	case AdminSuper, AdminOperations, AdminSupport:
		return true
	}
	return false
}
