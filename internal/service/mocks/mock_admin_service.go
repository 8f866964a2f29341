package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
	"boardapi/internal/service"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListPlans(ctx context.Context) ([]model.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func (m *MockAdminService) CreatePlan(ctx context.Context, in service.PlanInput) (*model.Plan, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockAdminService) UpdatePlan(ctx context.Context, id string, in service.PlanPatch) (*model.Plan, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockAdminService) ListClients(ctx context.Context, f repository.ClientFilter, limit int, offset int) (*service.ListResult[model.Client], error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Client]), args.Error(1)
}

func (m *MockAdminService) GetClient(ctx context.Context, id string) (*service.ClientDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClientDetail), args.Error(1)
}

func (m *MockAdminService) CreateClient(ctx context.Context, in service.CreateClientInput) (*service.CreatedClient, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatedClient), args.Error(1)
}

func (m *MockAdminService) UpdateClient(ctx context.Context, id string, in service.ClientPatch) (*model.Client, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockAdminService) SetLicense(ctx context.Context, clientID string, in service.LicenseInput) (*model.License, error) {
	args := m.Called(ctx, clientID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.License), args.Error(1)
}

func (m *MockAdminService) ListProfiles(ctx context.Context) ([]model.AdminProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdminProfile), args.Error(1)
}

func (m *MockAdminService) UpsertProfile(ctx context.Context, userID string, role string) (*model.AdminProfile, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminProfile), args.Error(1)
}

func (m *MockAdminService) DeleteProfile(ctx context.Context, p auth.Principal, userID string) error {
	args := m.Called(ctx, p, userID)
	return args.Error(0)
}

func (m *MockAdminService) Stats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}
