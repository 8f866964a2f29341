package service

import (
	"time"

	"boardapi/internal/auth"
	"boardapi/internal/rbac"
)

var (
	fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	member   = auth.Principal{UserID: "u-1", ClientID: "c-1", Role: rbac.RoleMember}
	owner    = auth.Principal{UserID: "u-owner", ClientID: "c-1", Role: rbac.RoleOwner}
	staff    = auth.Principal{UserID: "u-staff", ClientID: "c-platform", Role: rbac.RoleMember, AdminRole: rbac.AdminSupport}
)

func clock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }
