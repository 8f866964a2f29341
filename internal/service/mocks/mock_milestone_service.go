package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type MockMilestoneService struct {
	mock.Mock
}

func (m *MockMilestoneService) List(ctx context.Context, p auth.Principal, projectID string) ([]model.Milestone, error) {
	args := m.Called(ctx, p, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Get(ctx context.Context, p auth.Principal, id string) (*model.Milestone, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Create(ctx context.Context, p auth.Principal, projectID string, in service.MilestoneInput) (*model.Milestone, error) {
	args := m.Called(ctx, p, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Update(ctx context.Context, p auth.Principal, id string, in service.MilestonePatch) (*model.Milestone, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Delete(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}
