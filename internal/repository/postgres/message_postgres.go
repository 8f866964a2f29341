package postgres

import (
	"context"
	"time"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type MessagePostgres struct {
	db repository.DBTX
}

func NewMessagePostgres(db repository.DBTX) *MessagePostgres {
	return &MessagePostgres{db: db}
}

var _ repository.MessageRepository = (*MessagePostgres)(nil)

const messageColumns = `id, client_id, project_id, author_id, parent_id, body, edited_at, deleted_at, created_at`

func scanMessage(s scanner) (*model.Message, error) {
	var m model.Message
	if err := s.Scan(&m.ID, &m.ClientID, &m.ProjectID, &m.AuthorID, &m.ParentID, &m.Body, &m.EditedAt, &m.DeletedAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessagePostgres) Create(ctx context.Context, m *model.Message) error {
	const q = `
		INSERT INTO messages (id, client_id, project_id, author_id, parent_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.ClientID, m.ProjectID, m.AuthorID, m.ParentID, m.Body, m.CreatedAt)
	return err
}

func (r *MessagePostgres) FindByID(ctx context.Context, clientID, id string) (*model.Message, error) {
	q := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1 AND client_id = $2`
	return scanMessage(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *MessagePostgres) List(ctx context.Context, clientID, projectID string, before *time.Time, limit int) ([]model.Message, error) {
	q := `SELECT ` + messageColumns + ` FROM messages
		WHERE project_id = $1 AND client_id = $2 AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`
	rows, err := r.db.QueryContext(ctx, q, projectID, clientID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *MessagePostgres) Update(ctx context.Context, m *model.Message) error {
	const q = `UPDATE messages SET body = $3, edited_at = $4, deleted_at = $5 WHERE id = $1 AND client_id = $2`
	return expectOne(r.db.ExecContext(ctx, q, m.ID, m.ClientID, m.Body, m.EditedAt, m.DeletedAt))
}

func (r *MessagePostgres) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE deleted_at IS NOT NULL AND deleted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
