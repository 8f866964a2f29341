package postgres

import (
	"context"

	"boardapi/internal/board"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type ColumnPostgres struct {
	db repository.DBTX
}

func NewColumnPostgres(db repository.DBTX) *ColumnPostgres {
	return &ColumnPostgres{db: db}
}

var _ repository.ColumnRepository = (*ColumnPostgres)(nil)

const columnColumns = `id, project_id, client_id, name, color, position, wip_limit, is_done, created_at, updated_at`

func scanColumn(s scanner) (*model.Column, error) {
	var c model.Column
	if err := s.Scan(&c.ID, &c.ProjectID, &c.ClientID, &c.Name, &c.Color, &c.Position, &c.WIPLimit, &c.IsDone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ColumnPostgres) Create(ctx context.Context, c *model.Column) error {
	const q = `
		INSERT INTO board_columns (id, project_id, client_id, name, color, position, wip_limit, is_done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.ProjectID, c.ClientID, c.Name, c.Color, c.Position, c.WIPLimit, c.IsDone, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *ColumnPostgres) FindByID(ctx context.Context, clientID, id string) (*model.Column, error) {
	q := `SELECT ` + columnColumns + ` FROM board_columns WHERE id = $1 AND client_id = $2`
	return scanColumn(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *ColumnPostgres) ListByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error) {
	q := `SELECT ` + columnColumns + ` FROM board_columns WHERE project_id = $1 AND client_id = $2 ORDER BY position, id`
	return r.list(ctx, q, projectID, clientID)
}

func (r *ColumnPostgres) LockByProject(ctx context.Context, clientID, projectID string) ([]model.Column, error) {
	q := `SELECT ` + columnColumns + ` FROM board_columns WHERE project_id = $1 AND client_id = $2 ORDER BY position, id FOR UPDATE`
	return r.list(ctx, q, projectID, clientID)
}

func (r *ColumnPostgres) list(ctx context.Context, q string, args ...any) ([]model.Column, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Column, 0)
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *ColumnPostgres) Update(ctx context.Context, c *model.Column) error {
	const q = `
		UPDATE board_columns SET name = $3, color = $4, wip_limit = $5, is_done = $6, updated_at = $7
		WHERE id = $1 AND client_id = $2
	`
	return expectOne(r.db.ExecContext(ctx, q, c.ID, c.ClientID, c.Name, c.Color, c.WIPLimit, c.IsDone, c.UpdatedAt))
}

func (r *ColumnPostgres) UpdatePositions(ctx context.Context, clientID string, slots []board.Slot) error {
	const q = `UPDATE board_columns SET position = $3 WHERE id = $1 AND client_id = $2`
	for _, s := range slots {
		if err := expectOne(r.db.ExecContext(ctx, q, s.ID, clientID, s.Position)); err != nil {
			return err
		}
	}
	return nil
}

func (r *ColumnPostgres) Delete(ctx context.Context, clientID, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1 AND client_id = $2`, id, clientID))
}
