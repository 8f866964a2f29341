package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type UserPostgres struct {
	db repository.DBTX
}

func NewUserPostgres(db repository.DBTX) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, client_id, email, name, password_hash, role, active, created_at, updated_at`

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.ID, &u.ClientID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users (id, client_id, email, name, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.ClientID, u.Email, u.Name, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt)
	return mapErr(err)
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserPostgres) FindInClient(ctx context.Context, clientID, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND client_id = $2`
	return scanUser(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) ListByClient(ctx context.Context, clientID string, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	n, err := total(ctx, r.db, `SELECT COUNT(*) FROM users WHERE client_id = $1`, clientID)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE client_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, clientID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.User]{Items: items, Total: n}, nil
}

func (r *UserPostgres) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users SET name = $3, password_hash = $4, role = $5, active = $6, updated_at = $7
		WHERE id = $1 AND client_id = $2
	`
	return expectOne(r.db.ExecContext(ctx, q, u.ID, u.ClientID, u.Name, u.PasswordHash, u.Role, u.Active, u.UpdatedAt))
}

func (r *UserPostgres) CountActive(ctx context.Context, clientID string) (int, error) {
	return total(ctx, r.db, `SELECT COUNT(*) FROM users WHERE client_id = $1 AND active`, clientID)
}

func (r *UserPostgres) CountActiveOwners(ctx context.Context, clientID string) (int, error) {
	const q = `
		SELECT COUNT(*) FROM (
			SELECT id FROM users WHERE client_id = $1 AND role = 'owner' AND active FOR UPDATE
		) owners
	`
	return total(ctx, r.db, q, clientID)
}
