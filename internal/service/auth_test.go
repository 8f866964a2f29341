package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/rbac"
	repoMocks "boardapi/internal/repository/mocks"
	"boardapi/internal/session"
	sessionMocks "boardapi/internal/session/mocks"
)

func newAuthService(t *testing.T, repos *repoMocks.Store, sessions *sessionMocks.MockStore) (*authService, *auth.TokenIssuer) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", "boardapi", time.Minute)
	require.NoError(t, err)
	svc := NewAuthService(repos.Repos(), issuer, sessions, time.Hour).(*authService)
	svc.now = clock
	return svc, issuer
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	activeUser := func() *model.User {
		return &model.User{ID: "u-1", ClientID: "c-1", Email: "ana@example.com", PasswordHash: hash, Role: "admin", Active: true}
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(repos *repoMocks.Store, sessions *sessionMocks.MockStore)
		wantErr    error
		wantAdmin  rbac.AdminRole
	}{
		{
			name:     "happy path",
			email:    " ANA@example.com ",
			password: "s3cret-pass",
			setupMocks: func(repos *repoMocks.Store, sessions *sessionMocks.MockStore) {
				repos.Users.On("FindByEmail", ctx, "ana@example.com").Return(activeUser(), nil)
				repos.Clients.On("FindByID", ctx, "c-1").Return(&model.Client{ID: "c-1", Status: model.ClientStatusActive}, nil)
				repos.Admins.On("Get", ctx, "u-1").Return(nil, sql.ErrNoRows)
				sessions.On("Save", ctx, mock.AnythingOfType("string"), session.Data{UserID: "u-1", ClientID: "c-1", CreatedAt: fixedNow}, time.Hour).Return(nil)
			},
		},
		{
			name:     "platform admin carries the admin role",
			email:    "ana@example.com",
			password: "s3cret-pass",
			setupMocks: func(repos *repoMocks.Store, sessions *sessionMocks.MockStore) {
				repos.Users.On("FindByEmail", ctx, "ana@example.com").Return(activeUser(), nil)
				repos.Clients.On("FindByID", ctx, "c-1").Return(&model.Client{ID: "c-1", Status: model.ClientStatusActive}, nil)
				repos.Admins.On("Get", ctx, "u-1").Return(&model.AdminProfile{UserID: "u-1", Role: "operations"}, nil)
				sessions.On("Save", ctx, mock.Anything, mock.Anything, time.Hour).Return(nil)
			},
			wantAdmin: rbac.AdminOperations,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "s3cret-pass",
			setupMocks: func(repos *repoMocks.Store, _ *sessionMocks.MockStore) {
				repos.Users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "nope-nope",
			setupMocks: func(repos *repoMocks.Store, _ *sessionMocks.MockStore) {
				repos.Users.On("FindByEmail", ctx, "ana@example.com").Return(activeUser(), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			email:    "ana@example.com",
			password: "s3cret-pass",
			setupMocks: func(repos *repoMocks.Store, _ *sessionMocks.MockStore) {
				u := activeUser()
				u.Active = false
				repos.Users.On("FindByEmail", ctx, "ana@example.com").Return(u, nil)
			},
			wantErr: ErrAccountDisabled,
		},
		{
			name:     "suspended client",
			email:    "ana@example.com",
			password: "s3cret-pass",
			setupMocks: func(repos *repoMocks.Store, _ *sessionMocks.MockStore) {
				repos.Users.On("FindByEmail", ctx, "ana@example.com").Return(activeUser(), nil)
				repos.Clients.On("FindByID", ctx, "c-1").Return(&model.Client{ID: "c-1", Status: model.ClientStatusSuspended}, nil)
			},
			wantErr: ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			sessions := new(sessionMocks.MockStore)
			svc, issuer := newAuthService(t, repos, sessions)
			tt.setupMocks(repos, sessions)

			pair, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, pair.RefreshToken)
				p, err := issuer.Parse(pair.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, "u-1", p.UserID)
				assert.Equal(t, "c-1", p.ClientID)
				assert.Equal(t, rbac.RoleAdmin, p.Role)
				assert.Equal(t, tt.wantAdmin, p.AdminRole)
			}
			repos.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	hashed := auth.HashToken("old-token")

	tests := []struct {
		name       string
		setupMocks func(repos *repoMocks.Store, sessions *sessionMocks.MockStore)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "rotates the token",
			setupMocks: func(repos *repoMocks.Store, sessions *sessionMocks.MockStore) {
				sessions.On("Consume", ctx, hashed).Return(session.Data{UserID: "u-1", ClientID: "c-1"}, nil)
				repos.Users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", ClientID: "c-1", Role: "member", Active: true}, nil)
				repos.Clients.On("FindByID", ctx, "c-1").Return(&model.Client{ID: "c-1", Status: model.ClientStatusActive}, nil)
				repos.Admins.On("Get", ctx, "u-1").Return(nil, sql.ErrNoRows)
				sessions.On("Save", ctx, mock.MatchedBy(func(h string) bool { return h != hashed }), mock.Anything, time.Hour).Return(nil)
			},
		},
		{
			name: "unknown token",
			setupMocks: func(_ *repoMocks.Store, sessions *sessionMocks.MockStore) {
				sessions.On("Consume", ctx, hashed).Return(session.Data{}, session.ErrSessionNotFound)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "user moved to another client",
			setupMocks: func(repos *repoMocks.Store, sessions *sessionMocks.MockStore) {
				sessions.On("Consume", ctx, hashed).Return(session.Data{UserID: "u-1", ClientID: "c-1"}, nil)
				repos.Users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", ClientID: "c-2", Active: true}, nil)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "redis unavailable",
			setupMocks: func(_ *repoMocks.Store, sessions *sessionMocks.MockStore) {
				sessions.On("Consume", ctx, hashed).Return(session.Data{}, errors.New("dial tcp: refused"))
			},
			wantErrMsg: "dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			sessions := new(sessionMocks.MockStore)
			svc, _ := newAuthService(t, repos, sessions)
			tt.setupMocks(repos, sessions)

			pair, err := svc.Refresh(ctx, "old-token")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.NotErrorIs(t, err, ErrInvalidToken)
			default:
				require.NoError(t, err)
				assert.NotEqual(t, "old-token", pair.RefreshToken)
			}
			repos.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	sessions := new(sessionMocks.MockStore)
	svc, _ := newAuthService(t, repos, sessions)

	sessions.On("Revoke", ctx, auth.HashToken("tok")).Return(nil)

	assert.NoError(t, svc.Logout(ctx, "tok"))
	assert.ErrorIs(t, svc.Logout(ctx, ""), ErrValidation)
	sessions.AssertExpectations(t)
}
