package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type PlanPostgres struct {
	db repository.DBTX
}

func NewPlanPostgres(db repository.DBTX) *PlanPostgres {
	return &PlanPostgres{db: db}
}

var _ repository.PlanRepository = (*PlanPostgres)(nil)

const planColumns = `id, code, name, max_projects, max_seats, price_cents, active, created_at`

func scanPlan(s scanner) (*model.Plan, error) {
	var p model.Plan
	if err := s.Scan(&p.ID, &p.Code, &p.Name, &p.MaxProjects, &p.MaxSeats, &p.PriceCents, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanPostgres) Create(ctx context.Context, p *model.Plan) error {
	const q = `
		INSERT INTO plans (id, code, name, max_projects, max_seats, price_cents, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Code, p.Name, p.MaxProjects, p.MaxSeats, p.PriceCents, p.Active, p.CreatedAt)
	return mapErr(err)
}

func (r *PlanPostgres) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	return scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id))
}

func (r *PlanPostgres) List(ctx context.Context) ([]model.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM plans ORDER BY price_cents, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *PlanPostgres) Update(ctx context.Context, p *model.Plan) error {
	const q = `
		UPDATE plans SET name = $2, max_projects = $3, max_seats = $4, price_cents = $5, active = $6
		WHERE id = $1
	`
	return expectOne(r.db.ExecContext(ctx, q, p.ID, p.Name, p.MaxProjects, p.MaxSeats, p.PriceCents, p.Active))
}
