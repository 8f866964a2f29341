package postgres

import (
	"context"
	"database/sql"
	"time"

	"boardapi/internal/board"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TaskPostgres struct {
	db repository.DBTX
}

func NewTaskPostgres(db repository.DBTX) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

const taskColumns = `id, client_id, project_id, column_id, milestone_id, title, description, priority,
	assignee_id, due_date, position, completed_at, archived_at, deleted_at, created_by, created_at, updated_at`

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	var columnID sql.NullString
	if err := s.Scan(&t.ID, &t.ClientID, &t.ProjectID, &columnID, &t.MilestoneID, &t.Title, &t.Description, &t.Priority,
		&t.AssigneeID, &t.DueDate, &t.Position, &t.CompletedAt, &t.ArchivedAt, &t.DeletedAt, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ColumnID = columnID.String
	return &t, nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *TaskPostgres) Create(ctx context.Context, t *model.Task) error {
	const q = `
		INSERT INTO tasks (id, client_id, project_id, column_id, milestone_id, title, description, priority,
			assignee_id, due_date, position, completed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.ClientID, t.ProjectID, nullable(t.ColumnID), t.MilestoneID, t.Title, t.Description,
		t.Priority, t.AssigneeID, t.DueDate, t.Position, t.CompletedAt, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskPostgres) FindByID(ctx context.Context, clientID, id string) (*model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL`
	return scanTask(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *TaskPostgres) LockByID(ctx context.Context, clientID, id string) (*model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL FOR UPDATE`
	return scanTask(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *TaskPostgres) ListLiveByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = $1 AND client_id = $2 AND archived_at IS NULL AND deleted_at IS NULL
		ORDER BY column_id, position, id`
	return r.list(ctx, q, projectID, clientID)
}

func (r *TaskPostgres) ListArchivedByProject(ctx context.Context, clientID, projectID string) ([]model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = $1 AND client_id = $2 AND archived_at IS NOT NULL AND deleted_at IS NULL
		ORDER BY archived_at DESC, id`
	return r.list(ctx, q, projectID, clientID)
}

func (r *TaskPostgres) LockLiveByColumn(ctx context.Context, clientID, columnID string) ([]model.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks
		WHERE column_id = $1 AND client_id = $2 AND archived_at IS NULL AND deleted_at IS NULL
		ORDER BY position, id
		FOR UPDATE`
	return r.list(ctx, q, columnID, clientID)
}

func (r *TaskPostgres) list(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *TaskPostgres) Update(ctx context.Context, t *model.Task) error {
	const q = `
		UPDATE tasks SET
			column_id = $3, milestone_id = $4, title = $5, description = $6, priority = $7,
			assignee_id = $8, due_date = $9, position = $10, completed_at = $11,
			archived_at = $12, deleted_at = $13, updated_at = $14
		WHERE id = $1 AND client_id = $2
	`
	return expectOne(r.db.ExecContext(ctx, q, t.ID, t.ClientID, nullable(t.ColumnID), t.MilestoneID, t.Title, t.Description,
		t.Priority, t.AssigneeID, t.DueDate, t.Position, t.CompletedAt, t.ArchivedAt, t.DeletedAt, t.UpdatedAt))
}

func (r *TaskPostgres) UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error {
	const q = `UPDATE tasks SET position = $3 WHERE id = $1 AND client_id = $2`
	for _, s := range slots {
		if err := expectOne(r.db.ExecContext(ctx, q, s.ID, clientID, s.Position)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TaskPostgres) MoveToColumn(ctx context.Context, clientID string, ids []string, columnID string, start int, done bool, now time.Time) error {
	const q = `
		UPDATE tasks SET
			column_id = $3,
			position = $4,
			completed_at = CASE WHEN $5 THEN COALESCE(completed_at, $6) ELSE NULL END,
			updated_at = $6
		WHERE id = $1 AND client_id = $2
	`
	for i, id := range ids {
		if err := expectOne(r.db.ExecContext(ctx, q, id, clientID, columnID, start+i, done, now)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TaskPostgres) MilestoneCounts(ctx context.Context, clientID, milestoneID string) (int, int, error) {
	const q = `
		SELECT COUNT(*), COUNT(completed_at)
		FROM tasks
		WHERE milestone_id = $1 AND client_id = $2 AND archived_at IS NULL AND deleted_at IS NULL
	`
	var totalTasks, completed int
	if err := r.db.QueryRowContext(ctx, q, milestoneID, clientID).Scan(&totalTasks, &completed); err != nil {
		return 0, 0, err
	}
	return totalTasks, completed, nil
}

func (r *TaskPostgres) DetachMilestone(ctx context.Context, clientID, milestoneID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET milestone_id = NULL WHERE milestone_id = $1 AND client_id = $2`, milestoneID, clientID)
	return err
}

func (r *TaskPostgres) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE deleted_at IS NOT NULL AND deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
