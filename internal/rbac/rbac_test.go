package rbac

import "testing"

func TestCan(t *testing.T) {
	cases := []struct {
		name  string
		role  Role
		perm  Permission
		allow bool
	}{
		{name: "owner delete project", role: RoleOwner, perm: PermProjectDelete, allow: true},
		{name: "admin manage users", role: RoleAdmin, perm: PermUserManage, allow: true},
		{name: "member write board", role: RoleMember, perm: PermBoardWrite, allow: true},
		{name: "member write task", role: RoleMember, perm: PermTaskWrite, allow: true},
		{name: "member delete project", role: RoleMember, perm: PermProjectDelete, allow: false},
		{name: "member manage team", role: RoleMember, perm: PermTeamManage, allow: false},
		{name: "member manage users", role: RoleMember, perm: PermUserManage, allow: false},
		{name: "viewer read project", role: RoleViewer, perm: PermProjectRead, allow: true},
		{name: "viewer open ticket", role: RoleViewer, perm: PermTicketWrite, allow: true},
		{name: "viewer write task", role: RoleViewer, perm: PermTaskWrite, allow: false},
		{name: "viewer post message", role: RoleViewer, perm: PermMessageWrite, allow: false},
		{name: "unknown role", role: Role("guest"), perm: PermProjectRead, allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.role, tc.perm); got != tc.allow {
				t.Fatalf("Can(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.allow)
			}
		})
	}
}

func TestAdminCan(t *testing.T) {
	cases := []struct {
		name  string
		role  AdminRole
		perm  Permission
		allow bool
	}{
		{name: "super manages profiles", role: AdminSuper, perm: PermAdminProfiles, allow: true},
		{name: "operations writes plans", role: AdminOperations, perm: PermAdminPlansWrite, allow: true},
		{name: "operations manages profiles", role: AdminOperations, perm: PermAdminProfiles, allow: false},
		{name: "support reads clients", role: AdminSupport, perm: PermAdminClientsRead, allow: true},
		{name: "support answers tickets", role: AdminSupport, perm: PermAdminTicketsWrite, allow: true},
		{name: "support writes flags", role: AdminSupport, perm: PermAdminFlagsWrite, allow: false},
		{name: "not an admin", role: AdminRole(""), perm: PermAdminStatsRead, allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdminCan(tc.role, tc.perm); got != tc.allow {
				t.Fatalf("AdminCan(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.allow)
			}
		})
	}
}

func TestValidRoles(t *testing.T) {
	for _, r := range []string{"owner", "admin", "member", "viewer"} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if ValidRole("root") {
		t.Error("ValidRole(root) = true")
	}
	if !ValidAdminRole("support") || ValidAdminRole("owner") {
		t.Error("ValidAdminRole mismatch")
	}
}
