package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TemplatePostgres struct {
	db repository.DBTX
}

func NewTemplatePostgres(db repository.DBTX) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

const templateColumns = `id, client_id, name, description, columns, milestones, created_at`

func scanTemplate(s scanner) (*model.ProjectTemplate, error) {
	var t model.ProjectTemplate
	var cols, miles []byte
	if err := s.Scan(&t.ID, &t.ClientID, &t.Name, &t.Description, &cols, &miles, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols, &t.Columns); err != nil {
		return nil, fmt.Errorf("decode template columns: %w", err)
	}
	if err := json.Unmarshal(miles, &t.Milestones); err != nil {
		return nil, fmt.Errorf("decode template milestones: %w", err)
	}
	return &t, nil
}

func (r *TemplatePostgres) Create(ctx context.Context, t *model.ProjectTemplate) error {
	cols, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}
	miles, err := json.Marshal(t.Milestones)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO project_templates (id, client_id, name, description, columns, milestones, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, q, t.ID, t.ClientID, t.Name, t.Description, string(cols), string(miles), t.CreatedAt)
	return mapErr(err)
}

func (r *TemplatePostgres) FindVisible(ctx context.Context, clientID, id string) (*model.ProjectTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM project_templates WHERE id = $1 AND (client_id IS NULL OR client_id = $2)`
	return scanTemplate(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *TemplatePostgres) ListVisible(ctx context.Context, clientID string) ([]model.ProjectTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM project_templates
		WHERE client_id IS NULL OR client_id = $1
		ORDER BY client_id NULLS FIRST, name`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProjectTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *TemplatePostgres) Delete(ctx context.Context, clientID, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM project_templates WHERE id = $1 AND client_id = $2`, id, clientID))
}
