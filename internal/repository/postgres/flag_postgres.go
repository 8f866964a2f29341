package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type FlagPostgres struct {
	db repository.DBTX
}

func NewFlagPostgres(db repository.DBTX) *FlagPostgres {
	return &FlagPostgres{db: db}
}

var _ repository.FlagRepository = (*FlagPostgres)(nil)

const flagColumns = `key, description, enabled, client_ids, rollout_percent, updated_at`

func scanFlag(s scanner) (*model.FeatureFlag, error) {
	var f model.FeatureFlag
	var ids []byte
	if err := s.Scan(&f.Key, &f.Description, &f.Enabled, &ids, &f.RolloutPercent, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ids, &f.ClientIDs); err != nil {
		return nil, fmt.Errorf("decode flag client ids: %w", err)
	}
	if f.ClientIDs == nil {
		f.ClientIDs = []string{}
	}
	return &f, nil
}

func (r *FlagPostgres) List(ctx context.Context) ([]model.FeatureFlag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+flagColumns+` FROM feature_flags ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FeatureFlag, 0)
	for rows.Next() {
		f, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

func (r *FlagPostgres) Get(ctx context.Context, key string) (*model.FeatureFlag, error) {
	return scanFlag(r.db.QueryRowContext(ctx, `SELECT `+flagColumns+` FROM feature_flags WHERE key = $1`, key))
}

func (r *FlagPostgres) Upsert(ctx context.Context, f *model.FeatureFlag) error {
	ids := f.ClientIDs
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO feature_flags (key, description, enabled, client_ids, rollout_percent, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE SET
			description = EXCLUDED.description,
			enabled = EXCLUDED.enabled,
			client_ids = EXCLUDED.client_ids,
			rollout_percent = EXCLUDED.rollout_percent,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, q, f.Key, f.Description, f.Enabled, string(b), f.RolloutPercent, f.UpdatedAt)
	return err
}

func (r *FlagPostgres) Delete(ctx context.Context, key string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM feature_flags WHERE key = $1`, key))
}
