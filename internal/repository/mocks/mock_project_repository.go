package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/board"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, clientID, id string) (*model.Project, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) LockByID(ctx context.Context, clientID, id string) (*model.Project, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, clientID string, f repository.ProjectFilter, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	args := m.Called(ctx, clientID, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Project]), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) CountLive(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepository) CountAllLive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *model.ProjectTemplate) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTemplateRepository) FindVisible(ctx context.Context, clientID, id string) (*model.ProjectTemplate, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListVisible(ctx context.Context, clientID string) ([]model.ProjectTemplate, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, clientID, id string) error {
	return m.Called(ctx, clientID, id).Error(0)
}

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) Create(ctx context.Context, c *model.Column) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockColumnRepository) FindByID(ctx context.Context, clientID, id string) (*model.Column, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Column), args.Error(1)
}

func (m *MockColumnRepository) ListByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error) {
	args := m.Called(ctx, clientID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnRepository) LockByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error) {
	args := m.Called(ctx, clientID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnRepository) Update(ctx context.Context, c *model.Column) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockColumnRepository) UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error {
	return m.Called(ctx, clientID, slots).Error(0)
}

func (m *MockColumnRepository) Delete(ctx context.Context, clientID, id string) error {
	return m.Called(ctx, clientID, id).Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *model.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, clientID, id string) (*model.Task, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) LockByID(ctx context.Context, clientID, id string) (*model.Task, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListLiveByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error) {
	args := m.Called(ctx, clientID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListArchivedByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error) {
	args := m.Called(ctx, clientID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) LockLiveByColumn(ctx context.Context, clientID, columnID string) ([]model.Task, error) {
	args := m.Called(ctx, clientID, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *model.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error {
	return m.Called(ctx, clientID, slots).Error(0)
}

func (m *MockTaskRepository) MoveToColumn(ctx context.Context, clientID string, ids []string, columnID string, start int, done bool, now time.Time) error {
	return m.Called(ctx, clientID, ids, columnID, start, done, now).Error(0)
}

func (m *MockTaskRepository) MilestoneCounts(ctx context.Context, clientID, milestoneID string) (int, int, error) {
	args := m.Called(ctx, clientID, milestoneID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockTaskRepository) DetachMilestone(ctx context.Context, clientID, milestoneID string) error {
	return m.Called(ctx, clientID, milestoneID).Error(0)
}

func (m *MockTaskRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) Create(ctx context.Context, ms *model.Milestone) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMilestoneRepository) FindByID(ctx context.Context, clientID, id string) (*model.Milestone, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) LockByID(ctx context.Context, clientID, id string) (*model.Milestone, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) ListByProject(ctx context.Context, clientID, projectID string) ([]model.Milestone, error) {
	args := m.Called(ctx, clientID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) Update(ctx context.Context, ms *model.Milestone) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMilestoneRepository) UpdateProgress(ctx context.Context, ms *model.Milestone) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMilestoneRepository) Delete(ctx context.Context, clientID, id string) error {
	return m.Called(ctx, clientID, id).Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, clientID, id string) (*model.Message, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, clientID, projectID string, before *time.Time, limit int) ([]model.Message, error) {
	args := m.Called(ctx, clientID, projectID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) Update(ctx context.Context, msg *model.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, clientID, id string) (*model.Attachment, error) {
	args := m.Called(ctx, clientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByTask(ctx context.Context, clientID, taskID string) ([]model.Attachment, error) {
	args := m.Called(ctx, clientID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, clientID, id string) error {
	return m.Called(ctx, clientID, id).Error(0)
}

func (m *MockAttachmentRepository) ListPurgeable(ctx context.Context, before time.Time) ([]model.Attachment, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}
