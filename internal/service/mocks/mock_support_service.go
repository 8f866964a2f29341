package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
	"boardapi/internal/service"
)

type MockSupportService struct {
	mock.Mock
}

func (m *MockSupportService) Create(ctx context.Context, p auth.Principal, in service.TicketInput) (*model.Ticket, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockSupportService) List(ctx context.Context, p auth.Principal, status string, limit int, offset int) (*service.ListResult[model.Ticket], error) {
	args := m.Called(ctx, p, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Ticket]), args.Error(1)
}

func (m *MockSupportService) Get(ctx context.Context, p auth.Principal, id string) (*model.Ticket, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockSupportService) Reply(ctx context.Context, p auth.Principal, id string, body string) (*model.TicketReply, error) {
	args := m.Called(ctx, p, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketReply), args.Error(1)
}

func (m *MockSupportService) AdminList(ctx context.Context, f repository.TicketFilter, limit int, offset int) (*service.ListResult[model.Ticket], error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Ticket]), args.Error(1)
}

func (m *MockSupportService) AdminGet(ctx context.Context, id string) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockSupportService) AdminUpdate(ctx context.Context, id string, in service.TicketPatch) (*model.Ticket, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockSupportService) AdminReply(ctx context.Context, p auth.Principal, id string, body string) (*model.TicketReply, error) {
	args := m.Called(ctx, p, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketReply), args.Error(1)
}
