package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Get(ctx context.Context, p auth.Principal, projectID string) (*service.Board, error) {
	args := m.Called(ctx, p, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Board), args.Error(1)
}

func (m *MockBoardService) CreateColumn(ctx context.Context, p auth.Principal, projectID string, in service.ColumnInput) (*model.Column, error) {
	args := m.Called(ctx, p, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockBoardService) UpdateColumn(ctx context.Context, p auth.Principal, id string, in service.ColumnPatch) (*model.Column, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockBoardService) MoveColumn(ctx context.Context, p auth.Principal, id string, position int) (*model.Column, error) {
	args := m.Called(ctx, p, id, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockBoardService) DeleteColumn(ctx context.Context, p auth.Principal, id string, moveTo string) error {
	args := m.Called(ctx, p, id, moveTo)
	return args.Error(0)
}

func (m *MockBoardService) CreateTask(ctx context.Context, p auth.Principal, projectID string, in service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, p, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) GetTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) UpdateTask(ctx context.Context, p auth.Principal, id string, in service.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) MoveTask(ctx context.Context, p auth.Principal, id string, columnID string, position int) (*model.Task, error) {
	args := m.Called(ctx, p, id, columnID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) ArchiveTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) RestoreTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockBoardService) DeleteTask(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockBoardService) ListArchivedTasks(ctx context.Context, p auth.Principal, projectID string) ([]model.Task, error) {
	args := m.Called(ctx, p, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}
