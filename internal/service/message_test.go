package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boardapi/internal/model"
	repoMocks "boardapi/internal/repository/mocks"
)

func newMessageService(repos *repoMocks.Store) *messageService {
	svc := NewMessageService(repos.Repos()).(*messageService)
	svc.now = clock
	return svc
}

func TestMessageService_List(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	svc := newMessageService(repos)
	before := fixedNow.Add(-time.Hour)

	repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
	repos.Messages.On("List", ctx, "c-1", "p-1", &before, 50).Return([]model.Message{
		{ID: "m-2", Body: "hello"},
		{ID: "m-1", Body: "secret", DeletedAt: ptr(fixedNow)},
	}, nil)

	items, err := svc.List(ctx, member, "p-1", &before, 0)

	require.NoError(t, err)
	assert.Equal(t, "hello", items[0].Body)
	assert.Empty(t, items[1].Body)
	repos.AssertExpectations(t)
}

func TestMessageService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		body       string
		parentID   *string
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
	}{
		{
			name: "top level",
			body: "  Kickoff at 10  ",
			setupMocks: func(repos *repoMocks.Store) {
				repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
				repos.Messages.On("Create", ctx, mock.MatchedBy(func(m *model.Message) bool {
					return m.Body == "Kickoff at 10" && m.AuthorID == "u-1" && m.ParentID == nil
				})).Return(nil)
			},
		},
		{
			name:     "reply",
			body:     "ok",
			parentID: ptr("m-1"),
			setupMocks: func(repos *repoMocks.Store) {
				repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
				repos.Messages.On("FindByID", ctx, "c-1", "m-1").Return(&model.Message{ID: "m-1", ProjectID: "p-1"}, nil)
				repos.Messages.On("Create", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:     "parent from another project",
			body:     "ok",
			parentID: ptr("m-9"),
			setupMocks: func(repos *repoMocks.Store) {
				repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
				repos.Messages.On("FindByID", ctx, "c-1", "m-9").Return(&model.Message{ID: "m-9", ProjectID: "p-2"}, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:       "body too long",
			body:       strings.Repeat("é", 4001),
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrValidation,
		},
		{
			name: "archived project",
			body: "hi",
			setupMocks: func(repos *repoMocks.Store) {
				repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1", ArchivedAt: ptr(fixedNow)}, nil)
			},
			wantErr: ErrProjectArchived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newMessageService(repos)
			tt.setupMocks(repos)

			m, err := svc.Create(ctx, member, "p-1", tt.body, tt.parentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
			} else {
				assert.NoError(t, err)
			}
			repos.AssertExpectations(t)
		})
	}
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		message    model.Message
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
	}{
		{
			name:    "owner may delete someone else's message",
			message: model.Message{ID: "m-1", ProjectID: "p-1", AuthorID: "u-2"},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
				repos.Messages.On("Update", ctx, mock.MatchedBy(func(m *model.Message) bool { return m.DeletedAt != nil })).Return(nil)
			},
		},
		{
			name:       "already deleted",
			message:    model.Message{ID: "m-1", ProjectID: "p-1", AuthorID: "u-2", DeletedAt: ptr(fixedNow)},
			setupMocks: func(*repoMocks.Store) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newMessageService(repos)
			msg := tt.message
			repos.Messages.On("FindByID", ctx, "c-1", "m-1").Return(&msg, nil)
			tt.setupMocks(repos)

			err := svc.Delete(ctx, owner, "m-1")

			assert.ErrorIs(t, err, tt.wantErr)
			repos.AssertExpectations(t)
		})
	}

	t.Run("member may not delete someone else's message", func(t *testing.T) {
		repos := repoMocks.NewStore()
		repos.Messages.On("FindByID", ctx, "c-1", "m-1").Return(&model.Message{ID: "m-1", AuthorID: "u-2"}, nil)

		err := newMessageService(repos).Delete(ctx, member, "m-1")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestMessageService_Update(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	svc := newMessageService(repos)
	repos.Messages.On("FindByID", ctx, "c-1", "m-1").Return(&model.Message{ID: "m-1", ProjectID: "p-1", AuthorID: "u-1"}, nil)
	repos.Projects.On("FindByID", ctx, "c-1", "p-1").Return(&model.Project{ID: "p-1"}, nil)
	repos.Messages.On("Update", ctx, mock.Anything).Return(nil)

	m, err := svc.Update(ctx, member, "m-1", "edited")

	require.NoError(t, err)
	assert.Equal(t, "edited", m.Body)
	assert.Equal(t, &fixedNow, m.EditedAt)

	_, err = svc.Update(ctx, owner, "m-1", "hijack")
	assert.ErrorIs(t, err, ErrForbidden)
}
