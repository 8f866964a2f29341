package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type MilestonePostgres struct {
	db repository.DBTX
}

func NewMilestonePostgres(db repository.DBTX) *MilestonePostgres {
	return &MilestonePostgres{db: db}
}

var _ repository.MilestoneRepository = (*MilestonePostgres)(nil)

const milestoneColumns = `id, client_id, project_id, title, description, due_date, total_tasks, completed_tasks,
	progress, completed_at, created_at, updated_at`

func scanMilestone(s scanner) (*model.Milestone, error) {
	var m model.Milestone
	if err := s.Scan(&m.ID, &m.ClientID, &m.ProjectID, &m.Title, &m.Description, &m.DueDate, &m.TotalTasks,
		&m.CompletedTasks, &m.Progress, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MilestonePostgres) Create(ctx context.Context, m *model.Milestone) error {
	const q = `
		INSERT INTO milestones (id, client_id, project_id, title, description, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.ClientID, m.ProjectID, m.Title, m.Description, m.DueDate, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MilestonePostgres) FindByID(ctx context.Context, clientID, id string) (*model.Milestone, error) {
	q := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1 AND client_id = $2`
	return scanMilestone(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *MilestonePostgres) LockByID(ctx context.Context, clientID, id string) (*model.Milestone, error) {
	q := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1 AND client_id = $2 FOR UPDATE`
	return scanMilestone(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *MilestonePostgres) ListByProject(ctx context.Context, clientID, projectID string) ([]model.Milestone, error) {
	q := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 AND client_id = $2
		ORDER BY due_date NULLS LAST, created_at`
	rows, err := r.db.QueryContext(ctx, q, projectID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Milestone, 0)
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *MilestonePostgres) Update(ctx context.Context, m *model.Milestone) error {
	const q = `
		UPDATE milestones SET title = $3, description = $4, due_date = $5, updated_at = $6
		WHERE id = $1 AND client_id = $2
	`
	return expectOne(r.db.ExecContext(ctx, q, m.ID, m.ClientID, m.Title, m.Description, m.DueDate, m.UpdatedAt))
}

func (r *MilestonePostgres) UpdateProgress(ctx context.Context, m *model.Milestone) error {
	const q = `
		UPDATE milestones SET total_tasks = $3, completed_tasks = $4, progress = $5, completed_at = $6, updated_at = $7
		WHERE id = $1 AND client_id = $2
	`
	return expectOne(r.db.ExecContext(ctx, q, m.ID, m.ClientID, m.TotalTasks, m.CompletedTasks, m.Progress, m.CompletedAt, m.UpdatedAt))
}

func (r *MilestonePostgres) Delete(ctx context.Context, clientID, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = $1 AND client_id = $2`, id, clientID))
}
