package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boardapi/internal/email"
	emailMocks "boardapi/internal/email/mocks"
	"boardapi/internal/logging"
	"boardapi/internal/model"
	repoMocks "boardapi/internal/repository/mocks"
)

func newSupportService(repos *repoMocks.Store, sender *emailMocks.MockSender) *supportService {
	svc := NewSupportService(repos.Repos(), repos.UnitOfWork(), sender, logging.Discard()).(*supportService)
	svc.now = clock
	return svc
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		from, to     string
		wantErr      bool
		wantResolved bool
	}{
		{from: model.TicketOpen, to: model.TicketPending},
		{from: model.TicketOpen, to: model.TicketResolved, wantResolved: true},
		{from: model.TicketPending, to: model.TicketOpen},
		{from: model.TicketResolved, to: model.TicketOpen},
		{from: model.TicketResolved, to: model.TicketPending, wantErr: true},
		{from: model.TicketClosed, to: model.TicketOpen, wantErr: true},
		{from: model.TicketClosed, to: model.TicketClosed},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			tk := &model.Ticket{Status: tt.from}
			if tt.from == model.TicketResolved {
				tk.ResolvedAt = ptr(fixedNow.Add(-1))
			}

			err := setStatus(tk, tt.to, fixedNow)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, tk.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, tk.Status)
			if tt.wantResolved {
				assert.Equal(t, &fixedNow, tk.ResolvedAt)
			}
			if tt.to == model.TicketOpen {
				assert.Nil(t, tk.ResolvedAt)
			}
		})
	}
}

func TestSupportService_Create(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	svc := newSupportService(repos, nil)

	repos.Tickets.On("Create", ctx, mock.MatchedBy(func(tk *model.Ticket) bool {
		return tk.ClientID == "c-1" && tk.OpenedBy == "u-1" && tk.Status == model.TicketOpen && tk.Priority == model.PriorityMedium
	})).Return(nil)

	tk, err := svc.Create(ctx, member, TicketInput{Subject: "Export broken", Body: "CSV is empty"})

	require.NoError(t, err)
	assert.Equal(t, "Export broken", tk.Subject)

	_, err = svc.Create(ctx, member, TicketInput{Subject: "x", Body: "y", Priority: "critical"})
	assert.ErrorIs(t, err, ErrValidation)
	repos.AssertExpectations(t)
}

func TestSupportService_Reply(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		status     string
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
	}{
		{
			name:   "reply on pending reopens",
			status: model.TicketPending,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Tickets.On("Update", ctx, mock.MatchedBy(func(tk *model.Ticket) bool {
					return tk.Status == model.TicketOpen && tk.UpdatedAt.Equal(fixedNow)
				})).Return(nil)
				repos.Tickets.On("AddReply", ctx, mock.MatchedBy(func(r *model.TicketReply) bool {
					return !r.Staff && r.AuthorID == "u-1" && r.Body == "still broken"
				})).Return(nil)
			},
		},
		{
			name:   "reply on open keeps status",
			status: model.TicketOpen,
			setupMocks: func(repos *repoMocks.Store) {
				repos.Tickets.On("Update", ctx, mock.MatchedBy(func(tk *model.Ticket) bool {
					return tk.Status == model.TicketOpen
				})).Return(nil)
				repos.Tickets.On("AddReply", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:       "closed ticket",
			status:     model.TicketClosed,
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newSupportService(repos, nil)
			repos.Tickets.On("FindInClient", ctx, "c-1", "tk-1").Return(&model.Ticket{ID: "tk-1", ClientID: "c-1", Status: tt.status}, nil)
			repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", ClientID: "c-1", Status: tt.status}, nil)
			tt.setupMocks(repos)

			r, err := svc.Reply(ctx, member, "tk-1", "  still broken ")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, r)
			}
			repos.AssertExpectations(t)
		})
	}
}

func TestSupportService_Reply_OtherClient(t *testing.T) {
	ctx := context.Background()
	repos := repoMocks.NewStore()
	svc := newSupportService(repos, nil)
	repos.Tickets.On("FindInClient", ctx, "c-1", "tk-9").Return(nil, sql.ErrNoRows)

	_, err := svc.Reply(ctx, member, "tk-9", "hello")

	assert.ErrorIs(t, err, ErrNotFound)
	repos.Tickets.AssertNotCalled(t, "LockByID", mock.Anything, mock.Anything)
}

func TestSupportService_AdminUpdate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         TicketPatch
		setupMocks func(repos *repoMocks.Store)
		wantErr    error
		check      func(t *testing.T, tk *model.Ticket)
	}{
		{
			name: "resolve and assign",
			in:   TicketPatch{Status: ptr(model.TicketResolved), AssignedAdminID: ptr("u-staff")},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Admins.On("Get", ctx, "u-staff").Return(&model.AdminProfile{UserID: "u-staff"}, nil)
				repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", Status: model.TicketOpen}, nil)
				repos.Tickets.On("Update", ctx, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, tk *model.Ticket) {
				assert.Equal(t, model.TicketResolved, tk.Status)
				assert.Equal(t, &fixedNow, tk.ResolvedAt)
				assert.Equal(t, ptr("u-staff"), tk.AssignedAdminID)
			},
		},
		{
			name: "unassign with empty id",
			in:   TicketPatch{AssignedAdminID: ptr("")},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", Status: model.TicketOpen, AssignedAdminID: ptr("u-staff")}, nil)
				repos.Tickets.On("Update", ctx, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, tk *model.Ticket) {
				assert.Nil(t, tk.AssignedAdminID)
			},
		},
		{
			name: "assignee is not an admin",
			in:   TicketPatch{AssignedAdminID: ptr("u-1")},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Admins.On("Get", ctx, "u-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "closed is final",
			in:   TicketPatch{Status: ptr(model.TicketOpen)},
			setupMocks: func(repos *repoMocks.Store) {
				repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", Status: model.TicketClosed}, nil)
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name:       "unknown status",
			in:         TicketPatch{Status: ptr("done")},
			setupMocks: func(*repoMocks.Store) {},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := repoMocks.NewStore()
			svc := newSupportService(repos, nil)
			tt.setupMocks(repos)

			tk, err := svc.AdminUpdate(ctx, "tk-1", tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.check(t, tk)
			}
			repos.AssertExpectations(t)
		})
	}
}

func TestSupportService_AdminReply(t *testing.T) {
	ctx := context.Background()

	t.Run("moves open to pending and emails the opener", func(t *testing.T) {
		repos := repoMocks.NewStore()
		sender := new(emailMocks.MockSender)
		svc := newSupportService(repos, sender)

		repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", OpenedBy: "u-1", Subject: "Export broken", Status: model.TicketOpen}, nil)
		repos.Tickets.On("Update", ctx, mock.MatchedBy(func(tk *model.Ticket) bool { return tk.Status == model.TicketPending })).Return(nil)
		repos.Tickets.On("AddReply", ctx, mock.MatchedBy(func(r *model.TicketReply) bool { return r.Staff && r.AuthorID == "u-staff" })).Return(nil)
		repos.Users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Email: "ana@example.com"}, nil)
		sender.On("Send", ctx, mock.MatchedBy(func(m email.Message) bool {
			return len(m.To) == 1 && m.To[0] == "ana@example.com"
		})).Return(nil)

		r, err := svc.AdminReply(ctx, staff, "tk-1", "Fixed in 2.3")

		require.NoError(t, err)
		assert.True(t, r.Staff)
		repos.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("status after a staff reply", func(t *testing.T) {
		tests := []struct {
			from, want string
		}{
			{from: model.TicketOpen, want: model.TicketPending},
			{from: model.TicketPending, want: model.TicketPending},
			{from: model.TicketResolved, want: model.TicketResolved},
		}
		for _, tt := range tests {
			t.Run(tt.from, func(t *testing.T) {
				repos := repoMocks.NewStore()
				sender := new(emailMocks.MockSender)
				svc := newSupportService(repos, sender)

				repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", OpenedBy: "u-1", Status: tt.from}, nil)
				repos.Tickets.On("Update", ctx, mock.MatchedBy(func(tk *model.Ticket) bool { return tk.Status == tt.want })).Return(nil)
				repos.Tickets.On("AddReply", ctx, mock.Anything).Return(nil)
				repos.Users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Email: "ana@example.com"}, nil)
				sender.On("Send", ctx, mock.Anything).Return(nil)

				_, err := svc.AdminReply(ctx, staff, "tk-1", "Thanks, looking into it")

				require.NoError(t, err)
				repos.AssertExpectations(t)
			})
		}
	})

	t.Run("closed ticket", func(t *testing.T) {
		repos := repoMocks.NewStore()
		svc := newSupportService(repos, new(emailMocks.MockSender))

		repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", Status: model.TicketClosed}, nil)

		_, err := svc.AdminReply(ctx, staff, "tk-1", "too late")

		assert.ErrorIs(t, err, ErrConflict)
		repos.Tickets.AssertNotCalled(t, "AddReply", mock.Anything, mock.Anything)
	})

	t.Run("email failure does not fail the reply", func(t *testing.T) {
		repos := repoMocks.NewStore()
		sender := new(emailMocks.MockSender)
		svc := newSupportService(repos, sender)

		repos.Tickets.On("LockByID", ctx, "tk-1").Return(&model.Ticket{ID: "tk-1", OpenedBy: "u-1", Status: model.TicketResolved}, nil)
		repos.Tickets.On("Update", ctx, mock.MatchedBy(func(tk *model.Ticket) bool { return tk.Status == model.TicketResolved })).Return(nil)
		repos.Tickets.On("AddReply", ctx, mock.Anything).Return(nil)
		repos.Users.On("FindByID", ctx, "u-1").Return(&model.User{ID: "u-1", Email: "ana@example.com"}, nil)
		sender.On("Send", ctx, mock.Anything).Return(errors.New("provider down"))

		_, err := svc.AdminReply(ctx, staff, "tk-1", "ok")

		assert.NoError(t, err)
	})
}
