package postgres

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TeamPostgres struct {
	db repository.DBTX
}

func NewTeamPostgres(db repository.DBTX) *TeamPostgres {
	return &TeamPostgres{db: db}
}

var _ repository.TeamRepository = (*TeamPostgres)(nil)

const teamColumns = `id, client_id, name, description, created_at, updated_at`

func scanTeam(s scanner) (*model.Team, error) {
	var t model.Team
	if err := s.Scan(&t.ID, &t.ClientID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamPostgres) Create(ctx context.Context, t *model.Team) error {
	const q = `
		INSERT INTO teams (id, client_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.ClientID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt)
	return mapErr(err)
}

func (r *TeamPostgres) FindByID(ctx context.Context, clientID, id string) (*model.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1 AND client_id = $2`
	return scanTeam(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *TeamPostgres) List(ctx context.Context, clientID string) ([]model.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE client_id = $1 ORDER BY name`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *TeamPostgres) Update(ctx context.Context, t *model.Team) error {
	const q = `UPDATE teams SET name = $3, description = $4, updated_at = $5 WHERE id = $1 AND client_id = $2`
	return expectOne(r.db.ExecContext(ctx, q, t.ID, t.ClientID, t.Name, t.Description, t.UpdatedAt))
}

func (r *TeamPostgres) Delete(ctx context.Context, clientID, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1 AND client_id = $2`, id, clientID))
}

// AddMember inserts the membership or updates the role of an existing one.
func (r *TeamPostgres) AddMember(ctx context.Context, m *model.TeamMember) error {
	const q = `
		INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := r.db.ExecContext(ctx, q, m.TeamID, m.UserID, m.Role, m.JoinedAt)
	return err
}

func (r *TeamPostgres) RemoveMember(ctx context.Context, teamID, userID string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID))
}

func (r *TeamPostgres) ListMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	const q = `
		SELECT m.team_id, m.user_id, m.role, u.email, u.name, m.joined_at
		FROM team_members m JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY u.name
	`
	rows, err := r.db.QueryContext(ctx, q, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TeamMember, 0)
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Role, &m.Email, &m.Name, &m.JoinedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
