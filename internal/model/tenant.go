package model

import "time"

// Client statuses.
const (
	ClientStatusActive    = "active"
	ClientStatusSuspended = "suspended"
)

// Client is a tenant organisation. Every tenant-owned record carries its ID.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a member of a client. Emails are unique across the platform.
type User struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminProfile grants a user access to the platform back office.
type AdminProfile struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Plan is a commercial tier. Non-positive limits mean unlimited.
type Plan struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	MaxProjects int       `json:"max_projects"`
	MaxSeats    int       `json:"max_seats"`
	PriceCents  int64     `json:"price_cents"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// License statuses.
const (
	LicenseStatusActive  = "active"
	LicenseStatusExpired = "expired"
	LicenseStatusRevoked = "revoked"
)

// License binds a client to a plan. Seats overrides the plan seat limit when positive.
type License struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	PlanID    string     `json:"plan_id"`
	Seats     int        `json:"seats"`
	Status    string     `json:"status"`
	StartsAt  time.Time  `json:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Usable reports whether the license currently grants anything.
func (l *License) Usable(now time.Time) bool {
	if l == nil || l.Status != LicenseStatusActive {
		return false
	}
	if now.Before(l.StartsAt) {
		return false
	}
	return l.ExpiresAt == nil || now.Before(*l.ExpiresAt)
}

// Team groups users of one client.
type Team struct {
	ID          string       `json:"id"`
	ClientID    string       `json:"client_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Members     []TeamMember `json:"members,omitempty"`
}

// TeamMember is a user's membership in a team.
type TeamMember struct {
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	Email    string    `json:"email,omitempty"`
	Name     string    `json:"name,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
