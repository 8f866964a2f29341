package postgres

import (
	"context"
	"fmt"
	"time"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type ProjectPostgres struct {
	db repository.DBTX
}

func NewProjectPostgres(db repository.DBTX) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, client_id, team_id, name, description, created_by, archived_at, deleted_at, created_at, updated_at`

func scanProject(s scanner) (*model.Project, error) {
	var p model.Project
	if err := s.Scan(&p.ID, &p.ClientID, &p.TeamID, &p.Name, &p.Description, &p.CreatedBy,
		&p.ArchivedAt, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project) error {
	const q = `
		INSERT INTO projects (id, client_id, team_id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.ClientID, p.TeamID, p.Name, p.Description, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	return mapErr(err)
}

func (r *ProjectPostgres) FindByID(ctx context.Context, clientID, id string) (*model.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL`
	return scanProject(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *ProjectPostgres) LockByID(ctx context.Context, clientID, id string) (*model.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL FOR UPDATE`
	return scanProject(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *ProjectPostgres) List(ctx context.Context, clientID string, f repository.ProjectFilter, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	cond := ` WHERE client_id = $1 AND deleted_at IS NULL`
	if f.Archived {
		cond += ` AND archived_at IS NOT NULL`
	} else {
		cond += ` AND archived_at IS NULL`
	}
	args := []any{clientID}
	if f.TeamID != "" {
		args = append(args, f.TeamID)
		cond += fmt.Sprintf(` AND team_id = $%d`, len(args))
	}

	n, err := total(ctx, r.db, `SELECT COUNT(*) FROM projects`+cond, args...)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM projects%s ORDER BY updated_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		projectColumns, cond, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Project]{Items: items, Total: n}, nil
}

func (r *ProjectPostgres) Update(ctx context.Context, p *model.Project) error {
	const q = `
		UPDATE projects
		SET team_id = $3, name = $4, description = $5, archived_at = $6, deleted_at = $7, updated_at = $8
		WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL
	`
	return expectOne(r.db.ExecContext(ctx, q, p.ID, p.ClientID, p.TeamID, p.Name, p.Description, p.ArchivedAt, p.DeletedAt, p.UpdatedAt))
}

// CountLive counts projects that consume quota: everything not soft-deleted.
func (r *ProjectPostgres) CountLive(ctx context.Context, clientID string) (int, error) {
	return total(ctx, r.db, `SELECT COUNT(*) FROM projects WHERE client_id = $1 AND deleted_at IS NULL`, clientID)
}

func (r *ProjectPostgres) CountAllLive(ctx context.Context) (int, error) {
	return total(ctx, r.db, `SELECT COUNT(*) FROM projects WHERE deleted_at IS NULL`)
}

func (r *ProjectPostgres) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
