package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/rbac"
	"boardapi/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

type PlanInput struct {
	Code        string
	Name        string
	MaxProjects int
	MaxSeats    int
	PriceCents  int64
	Active      bool
}

type PlanPatch struct {
	Name        *string
	MaxProjects *int
	MaxSeats    *int
	PriceCents  *int64
	Active      *bool
}

type OwnerInput struct {
	Email    string
	Name     string
	Password string
}

type CreateClientInput struct {
	Name   string
	Slug   string
	PlanID string
	Owner  OwnerInput
}

type ClientPatch struct {
	Name   *string
	Status *string
}

type LicenseInput struct {
	PlanID    string
	Seats     int
	Status    string
	ExpiresAt *time.Time
}

// Usage counts what a client currently consumes.
type Usage struct {
	Seats    int `json:"seats"`
	Projects int `json:"projects"`
}

type ClientDetail struct {
	Client  *model.Client  `json:"client"`
	License *model.License `json:"license,omitempty"`
	Plan    *model.Plan    `json:"plan,omitempty"`
	Usage   Usage          `json:"usage"`
	Limits  Limits         `json:"limits"`
}

// CreatedClient is returned by CreateClient.
type CreatedClient struct {
	Client  *model.Client  `json:"client"`
	License *model.License `json:"license"`
	Owner   *model.User    `json:"owner"`
}

type Stats struct {
	Clients      map[string]int `json:"clients"`
	LiveProjects int            `json:"live_projects"`
	OpenTickets  int            `json:"open_tickets"`
}

// AdminService is the platform back office.
type AdminService interface {
	ListPlans(ctx context.Context) ([]model.Plan, error)
	CreatePlan(ctx context.Context, in PlanInput) (*model.Plan, error)
	UpdatePlan(ctx context.Context, id string, in PlanPatch) (*model.Plan, error)

	ListClients(ctx context.Context, f repository.ClientFilter, limit, offset int) (*ListResult[model.Client], error)
	GetClient(ctx context.Context, id string) (*ClientDetail, error)
	// CreateClient creates the client, its license and its owner in one transaction.
	CreateClient(ctx context.Context, in CreateClientInput) (*CreatedClient, error)
	UpdateClient(ctx context.Context, id string, in ClientPatch) (*model.Client, error)
	SetLicense(ctx context.Context, clientID string, in LicenseInput) (*model.License, error)

	ListProfiles(ctx context.Context) ([]model.AdminProfile, error)
	UpsertProfile(ctx context.Context, userID, role string) (*model.AdminProfile, error)
	// DeleteProfile refuses to remove the caller's own profile.
	DeleteProfile(ctx context.Context, p auth.Principal, userID string) error

	Stats(ctx context.Context) (*Stats, error)
}

type adminService struct {
	repos *repository.Store
	uow   repository.UnitOfWork
	now   func() time.Time
}

func NewAdminService(repos *repository.Store, uow repository.UnitOfWork) AdminService {
	return &adminService{repos: repos, uow: uow, now: utcNow}
}

func (s *adminService) ListPlans(ctx context.Context) ([]model.Plan, error) {
	return s.repos.Plans.List(ctx)
}

func (s *adminService) CreatePlan(ctx context.Context, in PlanInput) (*model.Plan, error) {
	code := strings.ToLower(strings.TrimSpace(in.Code))
	if !slugPattern.MatchString(code) {
		return nil, invalid("code", "must be lowercase letters, digits and dashes")
	}
	name, err := cleanText("name", in.Name, 1, 100)
	if err != nil {
		return nil, err
	}
	if in.PriceCents < 0 {
		return nil, invalid("price_cents", "must not be negative")
	}
	p := &model.Plan{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		MaxProjects: in.MaxProjects,
		MaxSeats:    in.MaxSeats,
		PriceCents:  in.PriceCents,
		Active:      in.Active,
		CreatedAt:   s.now(),
	}
	if err := s.repos.Plans.Create(ctx, p); err != nil {
		return nil, duplicate(err, "plan")
	}
	return p, nil
}

func (s *adminService) UpdatePlan(ctx context.Context, id string, in PlanPatch) (*model.Plan, error) {
	p, err := s.repos.Plans.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "plan")
	}
	if in.Name != nil {
		if p.Name, err = cleanText("name", *in.Name, 1, 100); err != nil {
			return nil, err
		}
	}
	if in.MaxProjects != nil {
		p.MaxProjects = *in.MaxProjects
	}
	if in.MaxSeats != nil {
		p.MaxSeats = *in.MaxSeats
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, invalid("price_cents", "must not be negative")
		}
		p.PriceCents = *in.PriceCents
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := s.repos.Plans.Update(ctx, p); err != nil {
		return nil, notFound(err, "plan")
	}
	return p, nil
}

func (s *adminService) ListClients(ctx context.Context, f repository.ClientFilter, limit, offset int) (*ListResult[model.Client], error) {
	if f.Status != "" && !validClientStatus(f.Status) {
		return nil, invalid("status", "must be active or suspended")
	}
	f.Query = strings.TrimSpace(f.Query)
	pq := pageQuery(limit, offset)
	res, err := s.repos.Clients.List(ctx, f, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func validClientStatus(s string) bool {
	return s == model.ClientStatusActive || s == model.ClientStatusSuspended
}

func (s *adminService) GetClient(ctx context.Context, id string) (*ClientDetail, error) {
	c, err := s.repos.Clients.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "client")
	}
	limits, lic, plan, err := loadLimits(ctx, s.repos, c.ID, s.now())
	if err != nil {
		return nil, err
	}
	seats, err := s.repos.Users.CountActive(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	projects, err := s.repos.Projects.CountLive(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &ClientDetail{
		Client:  c,
		License: lic,
		Plan:    plan,
		Usage:   Usage{Seats: seats, Projects: projects},
		Limits:  limits,
	}, nil
}

func (s *adminService) CreateClient(ctx context.Context, in CreateClientInput) (*CreatedClient, error) {
	name, err := cleanText("name", in.Name, 1, 200)
	if err != nil {
		return nil, err
	}
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, invalid("slug", "must be lowercase letters, digits and dashes")
	}
	if in.PlanID == "" {
		return nil, invalid("plan_id", "is required")
	}
	now := s.now()
	c := &model.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Status:    model.ClientStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner, err := newUser(c.ID, CreateUserInput{
		Email:    in.Owner.Email,
		Name:     in.Owner.Name,
		Password: in.Owner.Password,
		Role:     string(rbac.RoleOwner),
	}, now)
	if err != nil {
		return nil, err
	}

	out := &CreatedClient{Client: c, Owner: owner}
	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		plan, err := tx.Plans.FindByID(ctx, in.PlanID)
		if err != nil {
			if isNoRows(err) {
				return invalid("plan_id", "does not exist")
			}
			return err
		}
		if !plan.Active {
			return invalid("plan_id", "plan is not active")
		}
		if err := tx.Clients.Create(ctx, c); err != nil {
			return duplicate(err, "client slug")
		}
		lic := &model.License{
			ID:        uuid.New().String(),
			ClientID:  c.ID,
			PlanID:    plan.ID,
			Status:    model.LicenseStatusActive,
			StartsAt:  now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Licenses.Upsert(ctx, lic); err != nil {
			return err
		}
		out.License = lic
		if err := tx.Users.Create(ctx, owner); err != nil {
			return duplicate(err, "user with this email")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *adminService) UpdateClient(ctx context.Context, id string, in ClientPatch) (*model.Client, error) {
	c, err := s.repos.Clients.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "client")
	}
	if in.Name != nil {
		if c.Name, err = cleanText("name", *in.Name, 1, 200); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if !validClientStatus(*in.Status) {
			return nil, invalid("status", "must be active or suspended")
		}
		c.Status = *in.Status
	}
	c.UpdatedAt = s.now()
	if err := s.repos.Clients.Update(ctx, c); err != nil {
		return nil, notFound(err, "client")
	}
	return c, nil
}

func validLicenseStatus(s string) bool {
	switch s {
	case model.LicenseStatusActive, model.LicenseStatusExpired, model.LicenseStatusRevoked:
		return true
	}
	return false
}

// SetLicense replaces the client's license. StartsAt survives a plan change.
func (s *adminService) SetLicense(ctx context.Context, clientID string, in LicenseInput) (*model.License, error) {
	if in.Status == "" {
		in.Status = model.LicenseStatusActive
	}
	if !validLicenseStatus(in.Status) {
		return nil, invalid("status", "must be one of active, expired, revoked")
	}
	if in.Seats < 0 {
		return nil, invalid("seats", "must not be negative")
	}
	if in.PlanID == "" {
		return nil, invalid("plan_id", "is required")
	}
	now := s.now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) && in.Status == model.LicenseStatusActive {
		return nil, invalid("expires_at", "must be in the future for an active license")
	}

	var out *model.License
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		if _, err := tx.Clients.LockByID(ctx, clientID); err != nil {
			return notFound(err, "client")
		}
		if _, err := tx.Plans.FindByID(ctx, in.PlanID); err != nil {
			if isNoRows(err) {
				return invalid("plan_id", "does not exist")
			}
			return err
		}
		lic, err := tx.Licenses.FindByClient(ctx, clientID)
		switch {
		case isNoRows(err):
			lic = &model.License{ID: uuid.New().String(), ClientID: clientID, StartsAt: now, CreatedAt: now}
		case err != nil:
			return err
		}
		lic.PlanID = in.PlanID
		lic.Seats = in.Seats
		lic.Status = in.Status
		lic.ExpiresAt = in.ExpiresAt
		lic.UpdatedAt = now
		if err := tx.Licenses.Upsert(ctx, lic); err != nil {
			return err
		}
		out = lic
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *adminService) ListProfiles(ctx context.Context) ([]model.AdminProfile, error) {
	return s.repos.Admins.List(ctx)
}

func (s *adminService) UpsertProfile(ctx context.Context, userID, role string) (*model.AdminProfile, error) {
	if !rbac.ValidAdminRole(role) {
		return nil, invalid("role", "must be one of super_admin, operations, support")
	}
	u, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, invalid("user_id", "does not exist")
		}
		return nil, err
	}
	p := &model.AdminProfile{UserID: u.ID, Role: role, Email: u.Email, Name: u.Name, CreatedAt: s.now()}
	if err := s.repos.Admins.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *adminService) DeleteProfile(ctx context.Context, p auth.Principal, userID string) error {
	if userID == p.UserID {
		return fmt.Errorf("cannot remove your own admin profile: %w", ErrForbidden)
	}
	return notFound(s.repos.Admins.Delete(ctx, userID), "admin profile")
}

func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := s.repos.Clients.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.repos.Projects.CountAllLive(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.repos.Tickets.CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Clients: byStatus, LiveProjects: projects, OpenTickets: open}, nil
}
