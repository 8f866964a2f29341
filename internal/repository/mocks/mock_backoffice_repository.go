package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) List(ctx context.Context) ([]model.FeatureFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeatureFlag), args.Error(1)
}

func (m *MockFlagRepository) Get(ctx context.Context, key string) (*model.FeatureFlag, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeatureFlag), args.Error(1)
}

func (m *MockFlagRepository) Upsert(ctx context.Context, f *model.FeatureFlag) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFlagRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, t *model.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindInClient(ctx context.Context, clientID, id string) (*model.Ticket, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketRepository) LockByID(ctx context.Context, id string) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, f repository.TicketFilter, pq repository.PageQuery) (*repository.PageResult[model.Ticket], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Ticket]), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *model.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) AddReply(ctx context.Context, r *model.TicketReply) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockTicketRepository) ListReplies(ctx context.Context, ticketID string) ([]model.TicketReply, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketReply), args.Error(1)
}

func (m *MockTicketRepository) CountOpen(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
