package repository

import (
	"context"
	"time"

	"boardapi/internal/board"
	"boardapi/internal/model"
)

// ProjectFilter narrows project listings. Archived selects archived projects
// instead of active ones.
type ProjectFilter struct {
	Archived bool
	TeamID   string
}

// ProjectRepository never returns soft-deleted projects except to PurgeDeleted.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, clientID, id string) (*model.Project, error)
	LockByID(ctx context.Context, clientID, id string) (*model.Project, error)
	List(ctx context.Context, clientID string, f ProjectFilter, pq PageQuery) (*PageResult[model.Project], error)
	Update(ctx context.Context, p *model.Project) error
	CountLive(ctx context.Context, clientID string) (int, error)
	CountAllLive(ctx context.Context) (int, error)
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, t *model.ProjectTemplate) error
	// FindVisible returns a global template or one owned by clientID.
	FindVisible(ctx context.Context, clientID, id string) (*model.ProjectTemplate, error)
	ListVisible(ctx context.Context, clientID string) ([]model.ProjectTemplate, error)
	// Delete only removes templates owned by clientID.
	Delete(ctx context.Context, clientID, id string) error
}

type ColumnRepository interface {
	Create(ctx context.Context, c *model.Column) error
	FindByID(ctx context.Context, clientID, id string) (*model.Column, error)
	ListByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error)
	// LockByProject returns the project's columns by position with row locks held.
	LockByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error)
	Update(ctx context.Context, c *model.Column) error
	UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error
	Delete(ctx context.Context, clientID, id string) error
}

// TaskRepository never returns soft-deleted tasks except to PurgeDeleted.
type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, clientID, id string) (*model.Task, error)
	LockByID(ctx context.Context, clientID, id string) (*model.Task, error)
	// ListLiveByProject orders by column then position.
	ListLiveByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error)
	ListArchivedByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error)
	// LockLiveByColumn returns the column's live tasks by position with row locks held.
	LockLiveByColumn(ctx context.Context, clientID, columnID string) ([]model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error
	// MoveToColumn places ids into columnID at positions start, start+1, ...
	// and sets or clears completed_at according to done.
	MoveToColumn(ctx context.Context, clientID string, ids []string, columnID string, start int, done bool, now time.Time) error
	MilestoneCounts(ctx context.Context, clientID, milestoneID string) (total, completed int, err error)
	DetachMilestone(ctx context.Context, clientID, milestoneID string) error
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

type MilestoneRepository interface {
	Create(ctx context.Context, m *model.Milestone) error
	FindByID(ctx context.Context, clientID, id string) (*model.Milestone, error)
	LockByID(ctx context.Context, clientID, id string) (*model.Milestone, error)
	ListByProject(ctx context.Context, clientID, projectID string) ([]model.Milestone, error)
	Update(ctx context.Context, m *model.Milestone) error
	UpdateProgress(ctx context.Context, m *model.Milestone) error
	Delete(ctx context.Context, clientID, id string) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	FindByID(ctx context.Context, clientID, id string) (*model.Message, error)
	// List returns at most limit messages older than before (when set), newest first.
	List(ctx context.Context, clientID, projectID string, before *time.Time, limit int) ([]model.Message, error)
	Update(ctx context.Context, m *model.Message) error
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)
	FindByID(ctx context.Context, clientID, id string) (*model.Attachment, error)
	ListByTask(ctx context.Context, clientID, taskID string) ([]model.Attachment, error)
	Delete(ctx context.Context, clientID, id string) error
	// ListPurgeable returns attachments whose task or project was soft-deleted before the cutoff.
	ListPurgeable(ctx context.Context, before time.Time) ([]model.Attachment, error)
}
