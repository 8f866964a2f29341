package mocks

import (
	"context"
	"time"

	"boardapi/internal/session"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, tokenHash string, data session.Data, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, data, ttl)
	return args.Error(0)
}

func (m *MockStore) Consume(ctx context.Context, tokenHash string) (session.Data, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(session.Data), args.Error(1)
}

func (m *MockStore) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
