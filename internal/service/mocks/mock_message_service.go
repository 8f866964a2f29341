package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
)

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) List(ctx context.Context, p auth.Principal, projectID string, before *time.Time, limit int) ([]model.Message, error) {
	args := m.Called(ctx, p, projectID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageService) Create(ctx context.Context, p auth.Principal, projectID string, body string, parentID *string) (*model.Message, error) {
	args := m.Called(ctx, p, projectID, body, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Update(ctx context.Context, p auth.Principal, id string, body string) (*model.Message, error) {
	args := m.Called(ctx, p, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) Delete(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}
