package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/service"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, p auth.Principal, taskID string, in service.UploadInput) (*model.Attachment, error) {
	args := m.Called(ctx, p, taskID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, p auth.Principal, taskID string) ([]model.Attachment, error) {
	args := m.Called(ctx, p, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, p auth.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}
