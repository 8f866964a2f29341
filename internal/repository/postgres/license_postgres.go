package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type LicensePostgres struct {
	db repository.DBTX
}

func NewLicensePostgres(db repository.DBTX) *LicensePostgres {
	return &LicensePostgres{db: db}
}

var _ repository.LicenseRepository = (*LicensePostgres)(nil)

func (r *LicensePostgres) FindByClient(ctx context.Context, clientID string) (*model.License, error) {
	const q = `
		SELECT id, client_id, plan_id, seats, status, starts_at, expires_at, created_at, updated_at
		FROM licenses
		WHERE client_id = $1
	`
	var l model.License
	if err := r.db.QueryRowContext(ctx, q, clientID).Scan(
		&l.ID, &l.ClientID, &l.PlanID, &l.Seats, &l.Status, &l.StartsAt, &l.ExpiresAt, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

// Upsert replaces the client's license, keeping the original row ID.
func (r *LicensePostgres) Upsert(ctx context.Context, l *model.License) error {
	const q = `
		INSERT INTO licenses (id, client_id, plan_id, seats, status, starts_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (client_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			seats = EXCLUDED.seats,
			status = EXCLUDED.status,
			starts_at = EXCLUDED.starts_at,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, q,
		l.ID, l.ClientID, l.PlanID, l.Seats, l.Status, l.StartsAt, l.ExpiresAt, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID, &l.CreatedAt)
}
