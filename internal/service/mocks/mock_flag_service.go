package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type MockFlagService struct {
	mock.Mock
}

func (m *MockFlagService) Evaluate(ctx context.Context, p auth.Principal) (map[string]bool, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockFlagService) List(ctx context.Context) ([]model.FeatureFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeatureFlag), args.Error(1)
}

func (m *MockFlagService) Upsert(ctx context.Context, key string, in service.FlagInput) (*model.FeatureFlag, error) {
	args := m.Called(ctx, key, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeatureFlag), args.Error(1)
}

func (m *MockFlagService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
