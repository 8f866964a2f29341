package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, clientID string) (map[string]bool, bool, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(map[string]bool), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, clientID string, values map[string]bool) error {
	args := m.Called(ctx, clientID, values)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
