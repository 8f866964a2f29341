package repository

import (
	"context"

	"boardapi/internal/model"
)

// ClientFilter narrows the admin client listing. Query matches name or slug.
type ClientFilter struct {
	Query  string
	Status string
}

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	// LockByID takes a row lock, serializing quota checks for one client.
	LockByID(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, f ClientFilter, pq PageQuery) (*PageResult[model.Client], error)
	Update(ctx context.Context, c *model.Client) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type PlanRepository interface {
	Create(ctx context.Context, p *model.Plan) error
	FindByID(ctx context.Context, id string) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
	Update(ctx context.Context, p *model.Plan) error
}

// LicenseRepository keeps one license per client.
type LicenseRepository interface {
	FindByClient(ctx context.Context, clientID string) (*model.License, error)
	Upsert(ctx context.Context, l *model.License) error
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	// FindByID is not tenant scoped. Only authentication uses it.
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindInClient(ctx context.Context, clientID, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByClient(ctx context.Context, clientID string, pq PageQuery) (*PageResult[model.User], error)
	Update(ctx context.Context, u *model.User) error
	CountActive(ctx context.Context, clientID string) (int, error)
	// CountActiveOwners locks the owner rows it counts.
	CountActiveOwners(ctx context.Context, clientID string) (int, error)
}

type AdminRepository interface {
	Get(ctx context.Context, userID string) (*model.AdminProfile, error)
	List(ctx context.Context) ([]model.AdminProfile, error)
	Upsert(ctx context.Context, p *model.AdminProfile) error
	Delete(ctx context.Context, userID string) error
}

type TeamRepository interface {
	Create(ctx context.Context, t *model.Team) error
	FindByID(ctx context.Context, clientID, id string) (*model.Team, error)
	List(ctx context.Context, clientID string) ([]model.Team, error)
	Update(ctx context.Context, t *model.Team) error
	Delete(ctx context.Context, clientID, id string) error
	AddMember(ctx context.Context, m *model.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	ListMembers(ctx context.Context, teamID string) ([]model.TeamMember, error)
}
