package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/rbac"
	"boardapi/internal/repository"
	"boardapi/internal/session"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	User         *model.User `json:"user"`
}

// Me describes the authenticated caller.
type Me struct {
	Principal auth.Principal `json:"principal"`
	User      *model.User    `json:"user"`
}

// AuthService handles password login and refresh-token rotation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh consumes the refresh token and issues a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, p auth.Principal) (*Me, error)
}

type authService struct {
	repos      *repository.Store
	issuer     *auth.TokenIssuer
	sessions   session.Store
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(repos *repository.Store, issuer *auth.TokenIssuer, sessions session.Store, refreshTTL time.Duration) AuthService {
	return &authService{repos: repos, issuer: issuer, sessions: sessions, refreshTTL: refreshTTL, now: utcNow}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repos.Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidToken
	}
	data, err := s.sessions.Consume(ctx, auth.HashToken(refreshToken))
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	u, err := s.repos.Users.FindByID(ctx, data.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if u.ClientID != data.ClientID {
		return nil, ErrInvalidToken
	}
	return s.issue(ctx, u)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return invalid("refresh_token", "is required")
	}
	return s.sessions.Revoke(ctx, auth.HashToken(refreshToken))
}

func (s *authService) Me(ctx context.Context, p auth.Principal) (*Me, error) {
	u, err := s.repos.Users.FindInClient(ctx, p.ClientID, p.UserID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &Me{Principal: p, User: u}, nil
}

// issue checks the account can sign in and creates both tokens.
func (s *authService) issue(ctx context.Context, u *model.User) (*TokenPair, error) {
	if !u.Active {
		return nil, ErrAccountDisabled
	}
	c, err := s.repos.Clients.FindByID(ctx, u.ClientID)
	if err != nil {
		return nil, notFound(err, "client")
	}
	if c.Status != model.ClientStatusActive {
		return nil, ErrAccountDisabled
	}

	p := auth.Principal{UserID: u.ID, ClientID: u.ClientID, Role: rbac.Role(u.Role)}
	profile, err := s.repos.Admins.Get(ctx, u.ID)
	switch {
	case err == nil:
		p.AdminRole = rbac.AdminRole(profile.Role)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	access, exp, err := s.issuer.Issue(p)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	data := session.Data{UserID: u.ID, ClientID: u.ClientID, CreatedAt: s.now()}
	if err := s.sessions.Save(ctx, auth.HashToken(refresh), data, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh session: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp, User: u}, nil
}
