package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) List(ctx context.Context, p auth.Principal) ([]model.Team, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Team), args.Error(1)
}

func (m *MockTeamService) Create(ctx context.Context, p auth.Principal, in service.TeamInput) (*model.Team, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, p auth.Principal, id string) (*model.Team, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, p auth.Principal, id string, in service.TeamPatch) (*model.Team, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockTeamService) AddMember(ctx context.Context, p auth.Principal, teamID string, userID string, role string) (*model.TeamMember, error) {
	args := m.Called(ctx, p, teamID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, p auth.Principal, teamID string, userID string) error {
	args := m.Called(ctx, p, teamID, userID)
	return args.Error(0)
}
