package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type AdminPostgres struct {
	db repository.DBTX
}

func NewAdminPostgres(db repository.DBTX) *AdminPostgres {
	return &AdminPostgres{db: db}
}

var _ repository.AdminRepository = (*AdminPostgres)(nil)

func (r *AdminPostgres) Get(ctx context.Context, userID string) (*model.AdminProfile, error) {
	const q = `
		SELECT a.user_id, a.role, u.email, u.name, a.created_at
		FROM admin_profiles a JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
	`
	var p model.AdminProfile
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.Role, &p.Email, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AdminPostgres) List(ctx context.Context) ([]model.AdminProfile, error) {
	const q = `
		SELECT a.user_id, a.role, u.email, u.name, a.created_at
		FROM admin_profiles a JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AdminProfile, 0)
	for rows.Next() {
		var p model.AdminProfile
		if err := rows.Scan(&p.UserID, &p.Role, &p.Email, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *AdminPostgres) Upsert(ctx context.Context, p *model.AdminProfile) error {
	const q = `
		INSERT INTO admin_profiles (user_id, role, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := r.db.ExecContext(ctx, q, p.UserID, p.Role, p.CreatedAt)
	return err
}

func (r *AdminPostgres) Delete(ctx context.Context, userID string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM admin_profiles WHERE user_id = $1`, userID))
}
