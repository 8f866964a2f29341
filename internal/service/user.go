package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/rbac"
	"boardapi/internal/repository"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UpdateUserInput leaves nil fields unchanged.
type UpdateUserInput struct {
	Name   *string
	Role   *string
	Active *bool
}

// UserService manages the users of the caller's client.
type UserService interface {
	List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.User], error)
	// Create takes a seat from the license.
	Create(ctx context.Context, p auth.Principal, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, p auth.Principal, id string, in UpdateUserInput) (*model.User, error)
}

type userService struct {
	repos *repository.Store
	uow   repository.UnitOfWork
	now   func() time.Time
}

func NewUserService(repos *repository.Store, uow repository.UnitOfWork) UserService {
	return &userService{repos: repos, uow: uow, now: utcNow}
}

func (s *userService) List(ctx context.Context, p auth.Principal, limit, offset int) (*ListResult[model.User], error) {
	pq := pageQuery(limit, offset)
	res, err := s.repos.Users.ListByClient(ctx, p.ClientID, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "is not a valid address")
	}
	return email, nil
}

// newUser validates input and hashes the password.
func newUser(clientID string, in CreateUserInput, now time.Time) (*model.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name, err := cleanText("name", in.Name, 1, 200)
	if err != nil {
		return nil, err
	}
	if !rbac.ValidRole(in.Role) {
		return nil, invalid("role", "must be one of owner, admin, member, viewer")
	}
	hash, err := auth.HashPassword(in.Password)
	if auth.IsWeakPassword(err) {
		return nil, invalid("password", err.Error())
	}
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *userService) Create(ctx context.Context, p auth.Principal, in CreateUserInput) (*model.User, error) {
	if in.Role == "" {
		in.Role = string(rbac.RoleMember)
	}
	if rbac.Role(in.Role) == rbac.RoleOwner && p.Role != rbac.RoleOwner {
		return nil, ErrForbidden
	}
	now := s.now()
	u, err := newUser(p.ClientID, in, now)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		limits, err := lockClientLimits(ctx, tx, p.ClientID, now)
		if err != nil {
			return err
		}
		n, err := tx.Users.CountActive(ctx, p.ClientID)
		if err != nil {
			return err
		}
		if !limits.AllowsSeats(n) {
			return ErrQuotaExceeded
		}
		return duplicate(tx.Users.Create(ctx, u), "user")
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, p auth.Principal, id string, in UpdateUserInput) (*model.User, error) {
	var out *model.User
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		u, err := tx.Users.FindInClient(ctx, p.ClientID, id)
		if err != nil {
			return notFound(err, "user")
		}
		now := s.now()
		wasOwner := u.Active && rbac.Role(u.Role) == rbac.RoleOwner
		wasActive := u.Active

		if rbac.Role(u.Role) == rbac.RoleOwner && p.Role != rbac.RoleOwner {
			return ErrForbidden
		}
		if in.Name != nil {
			name, err := cleanText("name", *in.Name, 1, 200)
			if err != nil {
				return err
			}
			u.Name = name
		}
		if in.Role != nil {
			if !rbac.ValidRole(*in.Role) {
				return invalid("role", "must be one of owner, admin, member, viewer")
			}
			if rbac.Role(*in.Role) == rbac.RoleOwner && p.Role != rbac.RoleOwner {
				return ErrForbidden
			}
			u.Role = *in.Role
		}
		if in.Active != nil {
			u.Active = *in.Active
		}

		stillOwner := u.Active && rbac.Role(u.Role) == rbac.RoleOwner
		if wasOwner && !stillOwner {
			// Owner changes of one client queue on its row, as quota checks do.
			if _, err := tx.Clients.LockByID(ctx, p.ClientID); err != nil {
				return notFound(err, "client")
			}
			owners, err := tx.Users.CountActiveOwners(ctx, p.ClientID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}
		if !wasActive && u.Active {
			limits, err := lockClientLimits(ctx, tx, p.ClientID, now)
			if err != nil {
				return err
			}
			n, err := tx.Users.CountActive(ctx, p.ClientID)
			if err != nil {
				return err
			}
			if !limits.AllowsSeats(n) {
				return ErrQuotaExceeded
			}
		}

		u.UpdatedAt = now
		if err := tx.Users.Update(ctx, u); err != nil {
			return notFound(err, "user")
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
