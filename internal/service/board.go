package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/board"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// Board is a project with its columns, each holding its live tasks in order.
type Board struct {
	Project *model.Project `json:"project"`
	Columns []model.Column `json:"columns"`
}

type ColumnInput struct {
	Name     string
	Color    string
	WIPLimit *int
	IsDone   bool
	// Position nil appends.
	Position *int
}

// ColumnPatch leaves nil fields unchanged. WIPLimit 0 removes the limit.
type ColumnPatch struct {
	Name     *string
	Color    *string
	WIPLimit *int
	IsDone   *bool
}

type TaskInput struct {
	ColumnID    string
	Title       string
	Description string
	Priority    string
	AssigneeID  *string
	MilestoneID *string
	DueDate     *time.Time
	// Position nil appends.
	Position *int
}

// TaskPatch leaves nil fields unchanged. Empty AssigneeID or MilestoneID clear them.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *string
	AssigneeID   *string
	MilestoneID  *string
	DueDate      *time.Time
	ClearDueDate bool
}

// BoardService owns column and task ordering. Every write runs in one
// transaction holding the project row lock, and leaves the positions of each
// container at exactly 0..n-1.
type BoardService interface {
	Get(ctx context.Context, p auth.Principal, projectID string) (*Board, error)

	CreateColumn(ctx context.Context, p auth.Principal, projectID string, in ColumnInput) (*model.Column, error)
	UpdateColumn(ctx context.Context, p auth.Principal, id string, in ColumnPatch) (*model.Column, error)
	MoveColumn(ctx context.Context, p auth.Principal, id string, position int) (*model.Column, error)
	// DeleteColumn appends the column's live tasks to moveTo. A non-empty
	// column without moveTo is refused with ErrColumnNotEmpty.
	DeleteColumn(ctx context.Context, p auth.Principal, id, moveTo string) error

	CreateTask(ctx context.Context, p auth.Principal, projectID string, in TaskInput) (*model.Task, error)
	GetTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error)
	UpdateTask(ctx context.Context, p auth.Principal, id string, in TaskPatch) (*model.Task, error)
	MoveTask(ctx context.Context, p auth.Principal, id, columnID string, position int) (*model.Task, error)
	ArchiveTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error)
	// RestoreTask appends the task to its column, or to the first column when
	// its own was deleted.
	RestoreTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error)
	DeleteTask(ctx context.Context, p auth.Principal, id string) error
	ListArchivedTasks(ctx context.Context, p auth.Principal, projectID string) ([]model.Task, error)
}

type boardService struct {
	repos *repository.Store
	uow   repository.UnitOfWork
	now   func() time.Time
}

func NewBoardService(repos *repository.Store, uow repository.UnitOfWork) BoardService {
	return &boardService{repos: repos, uow: uow, now: utcNow}
}

func (s *boardService) Get(ctx context.Context, p auth.Principal, projectID string) (*Board, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	cols, err := s.repos.Columns.ListByProject(ctx, p.ClientID, proj.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repos.Tasks.ListLiveByProject(ctx, p.ClientID, proj.ID)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[string][]model.Task, len(cols))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}
	for i := range cols {
		cols[i].Tasks = byColumn[cols[i].ID]
		if cols[i].Tasks == nil {
			cols[i].Tasks = []model.Task{}
		}
	}
	return &Board{Project: proj, Columns: cols}, nil
}

func validateWIP(limit *int) error {
	if limit != nil && *limit <= 0 {
		return invalid("wip_limit", "must be positive")
	}
	return nil
}

func (s *boardService) CreateColumn(ctx context.Context, p auth.Principal, projectID string, in ColumnInput) (*model.Column, error) {
	name, err := cleanText("name", in.Name, 1, 100)
	if err != nil {
		return nil, err
	}
	if err := validateWIP(in.WIPLimit); err != nil {
		return nil, err
	}

	var out *model.Column
	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		proj, err := lockWritableProject(ctx, tx, p.ClientID, projectID)
		if err != nil {
			return err
		}
		cols, err := tx.Columns.LockByProject(ctx, p.ClientID, proj.ID)
		if err != nil {
			return err
		}

		now := s.now()
		c := &model.Column{
			ID:        uuid.New().String(),
			ProjectID: proj.ID,
			ClientID:  p.ClientID,
			Name:      name,
			Color:     in.Color,
			WIPLimit:  in.WIPLimit,
			IsDone:    in.IsDone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		stored := columnSlots(cols)
		pos := len(cols)
		if in.Position != nil {
			pos = *in.Position
		}
		order := board.Insert(board.IDs(stored), c.ID, pos)
		c.Position = board.IndexOf(order, c.ID)

		if err := writeColumnOrder(ctx, tx, p.ClientID, stored, order, c.ID); err != nil {
			return err
		}
		if err := tx.Columns.Create(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockColumn loads a column and locks its project for writing.
func (s *boardService) lockColumn(ctx context.Context, tx *repository.Store, clientID, id string) (*model.Column, error) {
	c, err := tx.Columns.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "column")
	}
	if _, err := lockWritableProject(ctx, tx, clientID, c.ProjectID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *boardService) UpdateColumn(ctx context.Context, p auth.Principal, id string, in ColumnPatch) (*model.Column, error) {
	var out *model.Column
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		c, err := s.lockColumn(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			if c.Name, err = cleanText("name", *in.Name, 1, 100); err != nil {
				return err
			}
		}
		if in.Color != nil {
			c.Color = *in.Color
		}
		if in.WIPLimit != nil {
			switch {
			case *in.WIPLimit < 0:
				return invalid("wip_limit", "must not be negative")
			case *in.WIPLimit == 0:
				c.WIPLimit = nil
			default:
				limit := *in.WIPLimit
				c.WIPLimit = &limit
			}
		}
		now := s.now()
		if in.IsDone != nil && *in.IsDone != c.IsDone {
			c.IsDone = *in.IsDone
			if err := s.resyncDone(ctx, tx, p.ClientID, c, now); err != nil {
				return err
			}
		}
		c.UpdatedAt = now
		if err := tx.Columns.Update(ctx, c); err != nil {
			return notFound(err, "column")
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resyncDone sets or clears completion of the column's live tasks after its
// done flag changed.
func (s *boardService) resyncDone(ctx context.Context, tx *repository.Store, clientID string, c *model.Column, now time.Time) error {
	tasks, err := tx.Tasks.LockLiveByColumn(ctx, clientID, c.ID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	ids := board.IDs(taskSlots(tasks))
	if err := tx.Tasks.MoveToColumn(ctx, clientID, ids, c.ID, 0, c.IsDone, now); err != nil {
		return err
	}
	return recalcMilestones(ctx, tx, clientID, now, milestoneIDs(tasks)...)
}

func milestoneIDs(tasks []model.Task) []*string {
	out := make([]*string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.MilestoneID)
	}
	return out
}

func (s *boardService) MoveColumn(ctx context.Context, p auth.Principal, id string, position int) (*model.Column, error) {
	var out *model.Column
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		c, err := s.lockColumn(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		cols, err := tx.Columns.LockByProject(ctx, p.ClientID, c.ProjectID)
		if err != nil {
			return err
		}
		stored := columnSlots(cols)
		order := board.Move(board.IDs(stored), c.ID, position)
		if err := writeColumnOrder(ctx, tx, p.ClientID, stored, order, ""); err != nil {
			return err
		}
		c.Position = board.IndexOf(order, c.ID)
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *boardService) DeleteColumn(ctx context.Context, p auth.Principal, id, moveTo string) error {
	return s.uow.Do(ctx, func(tx *repository.Store) error {
		c, err := s.lockColumn(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		cols, err := tx.Columns.LockByProject(ctx, p.ClientID, c.ProjectID)
		if err != nil {
			return err
		}
		tasks, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, c.ID)
		if err != nil {
			return err
		}
		now := s.now()

		if len(tasks) > 0 {
			if moveTo == "" {
				return ErrColumnNotEmpty
			}
			var target *model.Column
			for i := range cols {
				if cols[i].ID == moveTo && moveTo != c.ID {
					target = &cols[i]
				}
			}
			if target == nil {
				return invalid("move_to", "must be another column of the same project")
			}
			existing, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, target.ID)
			if err != nil {
				return err
			}
			if target.WIPLimit != nil && len(existing)+len(tasks) > *target.WIPLimit {
				return ErrWIPLimitReached
			}
			ids := board.IDs(taskSlots(tasks))
			if err := tx.Tasks.MoveToColumn(ctx, p.ClientID, ids, target.ID, len(existing), target.IsDone, now); err != nil {
				return err
			}
			if target.IsDone != c.IsDone {
				if err := recalcMilestones(ctx, tx, p.ClientID, now, milestoneIDs(tasks)...); err != nil {
					return err
				}
			}
		}

		if err := tx.Columns.Delete(ctx, p.ClientID, c.ID); err != nil {
			return notFound(err, "column")
		}
		stored := without(columnSlots(cols), c.ID)
		return writeColumnOrder(ctx, tx, p.ClientID, stored, board.IDs(stored), "")
	})
}

func (s *boardService) CreateTask(ctx context.Context, p auth.Principal, projectID string, in TaskInput) (*model.Task, error) {
	title, err := cleanText("title", in.Title, 1, 500)
	if err != nil {
		return nil, err
	}
	desc, err := cleanText("description", in.Description, 0, 20000)
	if err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(in.Priority) {
		return nil, invalid("priority", "must be one of low, medium, high, urgent")
	}
	if in.ColumnID == "" {
		return nil, invalid("column_id", "is required")
	}

	var out *model.Task
	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		proj, err := lockWritableProject(ctx, tx, p.ClientID, projectID)
		if err != nil {
			return err
		}
		col, err := s.projectColumn(ctx, tx, p.ClientID, proj.ID, in.ColumnID)
		if err != nil {
			return err
		}
		now := s.now()
		t := &model.Task{
			ID:          uuid.New().String(),
			ClientID:    p.ClientID,
			ProjectID:   proj.ID,
			ColumnID:    col.ID,
			Title:       title,
			Description: desc,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			CreatedBy:   p.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.setAssignee(ctx, tx, p.ClientID, t, in.AssigneeID); err != nil {
			return err
		}
		if err := s.setMilestone(ctx, tx, p.ClientID, t, in.MilestoneID); err != nil {
			return err
		}

		tasks, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, col.ID)
		if err != nil {
			return err
		}
		if wipFull(col, len(tasks)) {
			return ErrWIPLimitReached
		}
		stored := taskSlots(tasks)
		pos := len(tasks)
		if in.Position != nil {
			pos = *in.Position
		}
		order := board.Insert(board.IDs(stored), t.ID, pos)
		t.Position = board.IndexOf(order, t.ID)
		if col.IsDone {
			t.CompletedAt = &now
		}

		if err := writeTaskOrder(ctx, tx, p.ClientID, stored, order, t.ID); err != nil {
			return err
		}
		if err := tx.Tasks.Create(ctx, t); err != nil {
			return err
		}
		if err := recalcMilestones(ctx, tx, p.ClientID, now, t.MilestoneID); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// projectColumn loads a column and checks it belongs to projectID.
func (s *boardService) projectColumn(ctx context.Context, tx *repository.Store, clientID, projectID, columnID string) (*model.Column, error) {
	col, err := tx.Columns.FindByID(ctx, clientID, columnID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && col.ProjectID != projectID) {
		return nil, invalid("column_id", "must be a column of this project")
	}
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (s *boardService) setAssignee(ctx context.Context, tx *repository.Store, clientID string, t *model.Task, id *string) error {
	t.AssigneeID = optional(id)
	if t.AssigneeID == nil {
		return nil
	}
	_, err := tx.Users.FindInClient(ctx, clientID, *t.AssigneeID)
	if errors.Is(err, sql.ErrNoRows) {
		return invalid("assignee_id", "must be a user of this client")
	}
	return err
}

func (s *boardService) setMilestone(ctx context.Context, tx *repository.Store, clientID string, t *model.Task, id *string) error {
	t.MilestoneID = optional(id)
	if t.MilestoneID == nil {
		return nil
	}
	m, err := tx.Milestones.FindByID(ctx, clientID, *t.MilestoneID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && m.ProjectID != t.ProjectID) {
		return invalid("milestone_id", "must be a milestone of this project")
	}
	return err
}

func (s *boardService) GetTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	t, err := s.repos.Tasks.FindByID(ctx, p.ClientID, id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	// Tasks of a deleted project stay hidden until the purge removes them.
	if _, err := findProject(ctx, s.repos, p.ClientID, t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

// lockTask loads a task, locks its project for writing, then locks the task row.
func (s *boardService) lockTask(ctx context.Context, tx *repository.Store, clientID, id string) (*model.Task, error) {
	t, err := tx.Tasks.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	if _, err := lockWritableProject(ctx, tx, clientID, t.ProjectID); err != nil {
		return nil, err
	}
	t, err = tx.Tasks.LockByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	return t, nil
}

func (s *boardService) UpdateTask(ctx context.Context, p auth.Principal, id string, in TaskPatch) (*model.Task, error) {
	var out *model.Task
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := s.lockTask(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		if in.Title != nil {
			if t.Title, err = cleanText("title", *in.Title, 1, 500); err != nil {
				return err
			}
		}
		if in.Description != nil {
			if t.Description, err = cleanText("description", *in.Description, 0, 20000); err != nil {
				return err
			}
		}
		if in.Priority != nil {
			if !model.ValidPriority(*in.Priority) {
				return invalid("priority", "must be one of low, medium, high, urgent")
			}
			t.Priority = *in.Priority
		}
		if in.AssigneeID != nil {
			if err := s.setAssignee(ctx, tx, p.ClientID, t, in.AssigneeID); err != nil {
				return err
			}
		}
		if in.ClearDueDate {
			t.DueDate = nil
		} else if in.DueDate != nil {
			t.DueDate = in.DueDate
		}

		previous := t.MilestoneID
		if in.MilestoneID != nil {
			if err := s.setMilestone(ctx, tx, p.ClientID, t, in.MilestoneID); err != nil {
				return err
			}
		}

		now := s.now()
		t.UpdatedAt = now
		if err := tx.Tasks.Update(ctx, t); err != nil {
			return notFound(err, "task")
		}
		if !sameID(previous, t.MilestoneID) {
			if err := recalcMilestones(ctx, tx, p.ClientID, now, previous, t.MilestoneID); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *boardService) MoveTask(ctx context.Context, p auth.Principal, id, columnID string, position int) (*model.Task, error) {
	if columnID == "" {
		return nil, invalid("column_id", "is required")
	}
	var out *model.Task
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := s.lockTask(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		if !t.Live() {
			return ErrTaskArchived
		}
		dst, err := s.projectColumn(ctx, tx, p.ClientID, t.ProjectID, columnID)
		if err != nil {
			return err
		}
		now := s.now()

		if t.ColumnID == dst.ID {
			tasks, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, dst.ID)
			if err != nil {
				return err
			}
			stored := taskSlots(tasks)
			order := board.Move(board.IDs(stored), t.ID, position)
			if err := writeTaskOrder(ctx, tx, p.ClientID, stored, order, ""); err != nil {
				return err
			}
			t.Position = board.IndexOf(order, t.ID)
			out = t
			return nil
		}

		srcTasks, dstTasks, err := lockTwoColumns(ctx, tx, p.ClientID, t.ColumnID, dst.ID)
		if err != nil {
			return err
		}
		if wipFull(dst, len(dstTasks)) {
			return ErrWIPLimitReached
		}

		srcStored := taskSlots(srcTasks)
		if err := writeTaskOrder(ctx, tx, p.ClientID, srcStored, board.Remove(board.IDs(srcStored), t.ID), ""); err != nil {
			return err
		}
		dstStored := taskSlots(dstTasks)
		dstOrder := board.Insert(board.IDs(dstStored), t.ID, position)
		if err := writeTaskOrder(ctx, tx, p.ClientID, dstStored, dstOrder, t.ID); err != nil {
			return err
		}

		wasDone := t.CompletedAt != nil
		if dst.IsDone {
			if t.CompletedAt == nil {
				t.CompletedAt = &now
			}
		} else {
			t.CompletedAt = nil
		}
		t.ColumnID = dst.ID
		t.Position = board.IndexOf(dstOrder, t.ID)
		t.UpdatedAt = now
		if err := tx.Tasks.Update(ctx, t); err != nil {
			return notFound(err, "task")
		}
		if wasDone != (t.CompletedAt != nil) {
			if err := recalcMilestones(ctx, tx, p.ClientID, now, t.MilestoneID); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockTwoColumns locks the live tasks of both columns in ID order. An empty
// source yields no tasks.
func lockTwoColumns(ctx context.Context, tx *repository.Store, clientID, src, dst string) ([]model.Task, []model.Task, error) {
	lock := func(id string) ([]model.Task, error) {
		if id == "" {
			return nil, nil
		}
		return tx.Tasks.LockLiveByColumn(ctx, clientID, id)
	}
	first, second := src, dst
	if dst < src {
		first, second = dst, src
	}
	a, err := lock(first)
	if err != nil {
		return nil, nil, err
	}
	b, err := lock(second)
	if err != nil {
		return nil, nil, err
	}
	if first == src {
		return a, b, nil
	}
	return b, a, nil
}

func (s *boardService) ArchiveTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	return s.retire(ctx, p, id, func(t *model.Task, now time.Time) {
		if t.ArchivedAt == nil {
			t.ArchivedAt = &now
		}
	})
}

func (s *boardService) DeleteTask(ctx context.Context, p auth.Principal, id string) error {
	_, err := s.retire(ctx, p, id, func(t *model.Task, now time.Time) { t.DeletedAt = &now })
	return err
}

// retire takes a task off the board, compacting its column, and applies mark.
func (s *boardService) retire(ctx context.Context, p auth.Principal, id string, mark func(*model.Task, time.Time)) (*model.Task, error) {
	var out *model.Task
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := s.lockTask(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		now := s.now()
		wasLive := t.Live()
		if wasLive && t.ColumnID != "" {
			tasks, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, t.ColumnID)
			if err != nil {
				return err
			}
			stored := taskSlots(tasks)
			if err := writeTaskOrder(ctx, tx, p.ClientID, stored, board.Remove(board.IDs(stored), t.ID), ""); err != nil {
				return err
			}
		}
		mark(t, now)
		t.UpdatedAt = now
		if err := tx.Tasks.Update(ctx, t); err != nil {
			return notFound(err, "task")
		}
		if wasLive {
			if err := recalcMilestones(ctx, tx, p.ClientID, now, t.MilestoneID); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *boardService) RestoreTask(ctx context.Context, p auth.Principal, id string) (*model.Task, error) {
	var out *model.Task
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := s.lockTask(ctx, tx, p.ClientID, id)
		if err != nil {
			return err
		}
		if t.ArchivedAt == nil {
			out = t
			return nil
		}

		var col *model.Column
		if t.ColumnID != "" {
			col, err = tx.Columns.FindByID(ctx, p.ClientID, t.ColumnID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
		if col == nil {
			cols, err := tx.Columns.LockByProject(ctx, p.ClientID, t.ProjectID)
			if err != nil {
				return err
			}
			if len(cols) == 0 {
				return invalid("column_id", "project has no columns to restore into")
			}
			col = &cols[0]
		}

		tasks, err := tx.Tasks.LockLiveByColumn(ctx, p.ClientID, col.ID)
		if err != nil {
			return err
		}
		if wipFull(col, len(tasks)) {
			return ErrWIPLimitReached
		}

		now := s.now()
		t.ArchivedAt = nil
		t.ColumnID = col.ID
		t.Position = len(tasks)
		if col.IsDone {
			if t.CompletedAt == nil {
				t.CompletedAt = &now
			}
		} else {
			t.CompletedAt = nil
		}
		t.UpdatedAt = now
		if err := tx.Tasks.Update(ctx, t); err != nil {
			return notFound(err, "task")
		}
		if err := recalcMilestones(ctx, tx, p.ClientID, now, t.MilestoneID); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *boardService) ListArchivedTasks(ctx context.Context, p auth.Principal, projectID string) ([]model.Task, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	return s.repos.Tasks.ListArchivedByProject(ctx, p.ClientID, proj.ID)
}
