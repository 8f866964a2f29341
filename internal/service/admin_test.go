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
	"boardapi/internal/repository"
	repoMocks "boardapi/internal/repository/mocks"
)

func newAdminService(repos *repoMocks.Store) *adminService {
	svc := NewAdminService(repos.Repos(), repos.UnitOfWork()).(*adminService)
	svc.now = clock
	return svc
}

func TestAdminService_CreateClient(t *testing.T) {
	ctx := context.Background()
	validInput := CreateClientInput{
		Name:   "Acme",
		Slug:   "Acme-Corp",
		PlanID: "plan-free",
		Owner:  OwnerInput{Email: "Owner@Acme.io", Name: "Olive", Password: "correct horse"},
	}

	tests := []struct {
		name       string
		in         CreateClientInput
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
	}{
		{
			name: "happy path",
			in:   validInput,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Plans.On("FindByID", ctx, "plan-free").Return(&model.Plan{ID: "plan-free", Active: true}, nil)
				repos.Clients.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
					return c.Slug == "acme-corp" && c.Status == model.ClientStatusActive
				})).Return(nil)
				repos.Licenses.On("Upsert", ctx, mock.MatchedBy(func(l *model.License) bool {
					return l.PlanID == "plan-free" && l.Status == model.LicenseStatusActive && l.StartsAt.Equal(fixedNow)
				})).Return(nil)
				repos.Users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "owner@acme.io" && u.Role == string(rbac.RoleOwner) && u.PasswordHash != ""
				})).Return(nil)
			},
		},
		{
			name:       "bad slug",
			in:         CreateClientInput{Name: "Acme", Slug: "acme corp", PlanID: "p", Owner: validInput.Owner},
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "weak owner password",
			in:         CreateClientInput{Name: "Acme", Slug: "acme", PlanID: "p", Owner: OwnerInput{Email: "a@b.io", Name: "A", Password: "short"}},
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrValidation,
		},
		{
			name: "unknown plan",
			in:   validInput,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Plans.On("FindByID", ctx, "plan-free").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "inactive plan",
			in:   validInput,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Plans.On("FindByID", ctx, "plan-free").Return(&model.Plan{ID: "plan-free"}, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name: "slug taken",
			in:   validInput,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Plans.On("FindByID", ctx, "plan-free").Return(&model.Plan{ID: "plan-free", Active: true}, nil)
				repos.Clients.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)
			},
			wantErr: ErrConflict,
		},
		{
			name: "owner email taken",
			in:   validInput,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Plans.On("FindByID", ctx, "plan-free").Return(&model.Plan{ID: "plan-free", Active: true}, nil)
				repos.Clients.On("Create", ctx, mock.Anything).Return(nil)
				repos.Licenses.On("Upsert", ctx, mock.Anything).Return(nil)
				repos.Users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newAdminService(repos)
			tt.setupMocks(repos)

			out, err := svc.CreateClient(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.Equal(t, out.Client.ID, out.Owner.ClientID)
				assert.Equal(t, out.Client.ID, out.License.ClientID)
			}
			repos.AssertExpectations(t)
		})
	}
}

func TestAdminService_GetClient(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	svc := newAdminService(repos)

	repos.Clients.On("FindByID", ctx, "c-1").Return(&model.Client{ID: "c-1"}, nil)
	repos.Licenses.On("FindByClient", ctx, "c-1").Return(&model.License{
		ClientID: "c-1", PlanID: "plan-pro", Seats: 12, Status: model.LicenseStatusActive, StartsAt: fixedNow.Add(-time.Hour),
	}, nil)
	repos.Plans.On("FindByID", ctx, "plan-pro").Return(&model.Plan{ID: "plan-pro", MaxProjects: 0, MaxSeats: 50}, nil)
	repos.Users.On("CountActive", ctx, "c-1").Return(7, nil)
	repos.Projects.On("CountLive", ctx, "c-1").Return(3, nil)

	d, err := svc.GetClient(ctx, "c-1")

	require.NoError(t, err)
	assert.Equal(t, Usage{Seats: 7, Projects: 3}, d.Usage)
	assert.Equal(t, Limits{Usable: true, MaxProjects: 0, MaxSeats: 12}, d.Limits)
	repos.AssertExpectations(t)
}

func TestAdminService_SetLicense(t *testing.T) {
	ctx := context.Background()
	started := fixedNow.Add(-30 * 24 * time.Hour)

	tests := []struct {
		name       string
		in         LicenseInput
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
		check      func(t *testing.T, l *model.License)
	}{
		{
			name: "replaces plan and keeps start",
			in:   LicenseInput{PlanID: "plan-pro", Seats: 20},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Clients.On("LockByID", ctx, "c-1").Return(&model.Client{ID: "c-1"}, nil)
				repos.Plans.On("FindByID", ctx, "plan-pro").Return(&model.Plan{ID: "plan-pro"}, nil)
				repos.Licenses.On("FindByClient", ctx, "c-1").Return(&model.License{ID: "l-1", ClientID: "c-1", PlanID: "plan-free", StartsAt: started}, nil)
				repos.Licenses.On("Upsert", ctx, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, l *model.License) {
				assert.Equal(t, "l-1", l.ID)
				assert.Equal(t, "plan-pro", l.PlanID)
				assert.Equal(t, 20, l.Seats)
				assert.Equal(t, model.LicenseStatusActive, l.Status)
				assert.True(t, l.StartsAt.Equal(started))
			},
		},
		{
			name: "creates missing license",
			in:   LicenseInput{PlanID: "plan-pro", Status: model.LicenseStatusRevoked},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Clients.On("LockByID", ctx, "c-1").Return(&model.Client{ID: "c-1"}, nil)
				repos.Plans.On("FindByID", ctx, "plan-pro").Return(&model.Plan{ID: "plan-pro"}, nil)
				repos.Licenses.On("FindByClient", ctx, "c-1").Return(nil, sql.ErrNoRows)
				repos.Licenses.On("Upsert", ctx, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, l *model.License) {
				assert.NotEmpty(t, l.ID)
				assert.Equal(t, model.LicenseStatusRevoked, l.Status)
				assert.True(t, l.StartsAt.Equal(fixedNow))
			},
		},
		{
			name:       "active license expiring in the past",
			in:         LicenseInput{PlanID: "plan-pro", ExpiresAt: ptr(fixedNow.Add(-time.Minute))},
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrValidation,
		},
		{
			name: "unknown client",
			in:   LicenseInput{PlanID: "plan-pro"},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Clients.On("LockByID", ctx, "c-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newAdminService(repos)
			tt.setupMocks(repos)

			l, err := svc.SetLicense(ctx, "c-1", tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.check(t, l)
			}
			repos.AssertExpectations(t)
		})
	}
}

func TestAdminService_Profiles(t *testing.T) {
	ctx := context.Background()
	super := auth.Principal{UserID: "u-root", AdminRole: rbac.AdminSuper}

	t.Run("cannot remove own profile", func(t *testing.T) {
		repos := repoMocks.NewStore()
		err := newAdminService(repos).DeleteProfile(ctx, super, "u-root")
		assert.ErrorIs(t, err, ErrForbidden)
		repos.Admins.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete missing profile", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Admins.On("Delete", ctx, "u-2").Return(sql.ErrNoRows)
		err := newAdminService(repos).DeleteProfile(ctx, super, "u-2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert validates role", func(t *testing.T) {
		repos := repoMocks.NewStore()
		_, err := newAdminService(repos).UpsertProfile(ctx, "u-2", "root")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("upsert requires an existing user", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Users.On("FindByID", ctx, "u-2").Return(nil, sql.ErrNoRows)
		_, err := newAdminService(repos).UpsertProfile(ctx, "u-2", string(rbac.AdminSupport))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("upsert", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Users.On("FindByID", ctx, "u-2").Return(&model.User{ID: "u-2", Email: "sam@example.com"}, nil)
		repos.Admins.On("Upsert", ctx, mock.MatchedBy(func(p *model.AdminProfile) bool {
			return p.UserID == "u-2" && p.Role == "support"
		})).Return(nil)
		p, err := newAdminService(repos).UpsertProfile(ctx, "u-2", string(rbac.AdminSupport))
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", p.Email)
	})
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Clients.On("CountByStatus", ctx).Return(map[string]int{"active": 4, "suspended": 1}, nil)
		repos.Projects.On("CountAllLive", ctx).Return(17, nil)
		repos.Tickets.On("CountOpen", ctx).Return(2, nil)

		s, err := newAdminService(repos).Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, &Stats{Clients: map[string]int{"active": 4, "suspended": 1}, LiveProjects: 17, OpenTickets: 2}, s)
	})

	t.Run("repository error", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Clients.On("CountByStatus", ctx).Return(nil, errors.New("db fail"))

		_, err := newAdminService(repos).Stats(ctx)

		assert.EqualError(t, err, "db fail")
	})
}

func TestAdminService_UpdatePlan(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	repos.Plans.On("FindByID", ctx, "plan-free").Return(&model.Plan{ID: "plan-free", Name: "Free", MaxSeats: 5}, nil)
	repos.Plans.On("Update", ctx, mock.Anything).Return(nil)

	p, err := newAdminService(repos).UpdatePlan(ctx, "plan-free", PlanPatch{MaxSeats: ptr(8), Active: ptr(true)})

	require.NoError(t, err)
	assert.Equal(t, 8, p.MaxSeats)
	assert.True(t, p.Active)

	_, err = newAdminService(repos).UpdatePlan(ctx, "plan-free", PlanPatch{PriceCents: ptr(int64(-1))})
	assert.ErrorIs(t, err, ErrValidation)
}
