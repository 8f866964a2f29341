package model

import "time"

// FeatureFlag toggles functionality per client.
type FeatureFlag struct {
	Key            string    `json:"key"`
	Description    string    `json:"description"`
	Enabled        bool      `json:"enabled"`
	ClientIDs      []string  `json:"client_ids"`
	RolloutPercent int       `json:"rollout_percent"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Ticket statuses.
const (
	TicketOpen     = "open"
	TicketPending  = "pending"
	TicketResolved = "resolved"
	TicketClosed   = "closed"
)

// Ticket is a support request raised by a client user.
type Ticket struct {
	ID              string        `json:"id"`
	ClientID        string        `json:"client_id"`
	OpenedBy        string        `json:"opened_by"`
	Subject         string        `json:"subject"`
	Body            string        `json:"body"`
	Status          string        `json:"status"`
	Priority        string        `json:"priority"`
	AssignedAdminID *string       `json:"assigned_admin_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	ResolvedAt      *time.Time    `json:"resolved_at,omitempty"`
	Replies         []TicketReply `json:"replies,omitempty"`
}

// TicketReply is a message on a ticket. Staff marks replies from platform admins.
type TicketReply struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Staff     bool      `json:"staff"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
