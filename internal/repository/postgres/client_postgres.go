package postgres

import (
	"context"
	"fmt"
	"strings"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type ClientPostgres struct {
	db repository.DBTX
}

func NewClientPostgres(db repository.DBTX) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

const clientColumns = `id, name, slug, status, created_at, updated_at`

func scanClient(s scanner) (*model.Client, error) {
	var c model.Client
	if err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) error {
	const q = `
		INSERT INTO clients (id, name, slug, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Slug, c.Status, c.CreatedAt, c.UpdatedAt)
	return mapErr(err)
}

func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

func (r *ClientPostgres) LockByID(ctx context.Context, id string) (*model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 FOR UPDATE`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

func (r *ClientPostgres) List(ctx context.Context, f repository.ClientFilter, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	var where []string
	var args []any
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR slug ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	n, err := total(ctx, r.db, `SELECT COUNT(*) FROM clients`+cond, args...)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM clients%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		clientColumns, cond, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Client]{Items: items, Total: n}, nil
}

func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	return expectOne(r.db.ExecContext(ctx, q, c.ID, c.Name, c.Status, c.UpdatedAt))
}

func (r *ClientPostgres) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM clients GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{model.ClientStatusActive: 0, model.ClientStatusSuspended: 0}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
