package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	flagMocks "boardapi/internal/flags/mocks"
	"boardapi/internal/logging"
	"boardapi/internal/model"
	repoMocks "boardapi/internal/repository/mocks"
)

func TestFlagService_Evaluate(t *testing.T) {
	ctx := context.Background()
	all := []model.FeatureFlag{
		{Key: "gantt", Enabled: true, RolloutPercent: 100},
		{Key: "ai", Enabled: false, RolloutPercent: 100},
		{Key: "beta", Enabled: true, ClientIDs: []string{"c-1"}},
	}
	want := map[string]bool{"gantt": true, "ai": false, "beta": true}

	tests := []struct {
		name       string
		setupMocks func(repos *repoMocks.Store, cache *flagMocks.MockCache)
		wantErr    bool
	}{
		{
			name: "cache hit skips the database",
			setupMocks: func(_ *repoMocks.Store, cache *flagMocks.MockCache) {
				cache.On("Get", ctx, "c-1").Return(want, true, nil)
			},
		},
		{
			name: "cache miss evaluates and stores",
			setupMocks: func(repos *repoMocks.Store, cache *flagMocks.MockCache) {
				cache.On("Get", ctx, "c-1").Return(nil, false, nil)
				repos.Flags.On("List", ctx).Return(all, nil)
				cache.On("Set", ctx, "c-1", want).Return(nil)
			},
		},
		{
			name: "cache outage falls back to the database",
			setupMocks: func(repos *repoMocks.Store, cache *flagMocks.MockCache) {
				cache.On("Get", ctx, "c-1").Return(nil, false, errors.New("connection refused"))
				repos.Flags.On("List", ctx).Return(all, nil)
				cache.On("Set", ctx, "c-1", want).Return(errors.New("connection refused"))
			},
		},
		{
			name: "database error",
			setupMocks: func(repos *repoMocks.Store, cache *flagMocks.MockCache) {
				cache.On("Get", ctx, "c-1").Return(nil, false, nil)
				repos.Flags.On("List", ctx).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			cache := new(flagMocks.MockCache)
			svc := NewFlagService(repos.Repos(), cache, logging.Discard())
			tt.setupMocks(repos, cache)

			got, err := svc.Evaluate(ctx, member)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			repos.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestFlagService_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		key        string
		in         FlagInput
		setupMocks func(repos *repoMocks.Store, cache *flagMocks.MockCache)
		wantErr    error
	}{
		{
			name: "happy path dedupes client ids and invalidates",
			key:  "new.board-view",
			in:   FlagInput{Description: " Board v2 ", Enabled: true, ClientIDs: []string{"c-1", "c-1", ""}, RolloutPercent: 25},
			setupMocks: func(repos *repoMocks.Store, cache *flagMocks.MockCache) {
				repos.Flags.On("Upsert", ctx, mock.MatchedBy(func(f *model.FeatureFlag) bool {
					return f.Key == "new.board-view" && f.Description == "Board v2" && len(f.ClientIDs) == 1 && f.RolloutPercent == 25
				})).Return(nil)
				cache.On("Invalidate", ctx).Return(nil)
			},
		},
		{
			name:       "invalid key",
			key:        "Bad Key",
			setupMocks: func(*repoMocks.Store, *flagMocks.MockCache) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "rollout out of range",
			key:        "gantt",
			in:         FlagInput{RolloutPercent: 101},
			setupMocks: func(*repoMocks.Store, *flagMocks.MockCache) {},
			wantErr:    ErrValidation,
		},
		{
			name: "invalidate failure is not fatal",
			key:  "gantt",
			setupMocks: func(repos *repoMocks.Store, cache *flagMocks.MockCache) {
				repos.Flags.On("Upsert", ctx, mock.Anything).Return(nil)
				cache.On("Invalidate", ctx).Return(errors.New("redis down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			cache := new(flagMocks.MockCache)
			svc := NewFlagService(repos.Repos(), cache, logging.Discard())
			tt.setupMocks(repos, cache)

			f, err := svc.Upsert(ctx, tt.key, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, f)
			}
			repos.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestFlagService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repos := repoMocks.NewStore()
		cache := new(flagMocks.MockCache)
		repos.Flags.On("Delete", ctx, "gantt").Return(sql.ErrNoRows)

		err := NewFlagService(repos.Repos(), cache, logging.Discard()).Delete(ctx, "gantt")

		assert.ErrorIs(t, err, ErrNotFound)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("deleted", func(t *testing.T) {
		repos := repoMocks.NewStore()
		cache := new(flagMocks.MockCache)
		repos.Flags.On("Delete", ctx, "gantt").Return(nil)
		cache.On("Invalidate", ctx).Return(nil)

		err := NewFlagService(repos.Repos(), cache, logging.Discard()).Delete(ctx, "gantt")

		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})
}
