package postgres

import (
	"context"
	"time"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// AttachmentPostgres stores task attachment metadata. The objects themselves live in object storage.
type AttachmentPostgres struct {
	db repository.DBTX
}

func NewAttachmentPostgres(db repository.DBTX) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `id, client_id, task_id, filename, storage_path, size, content_type, uploaded_by, created_at`

func scanAttachment(s scanner) (*model.Attachment, error) {
	var a model.Attachment
	if err := s.Scan(&a.ID, &a.ClientID, &a.TaskID, &a.Filename, &a.StoragePath, &a.Size, &a.ContentType, &a.UploadedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the row and returns it as stored.
func (r *AttachmentPostgres) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO task_attachments (id, client_id, task_id, filename, storage_path, size, content_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + attachmentColumns
	return scanAttachment(r.db.QueryRowContext(ctx, q,
		a.ID, a.ClientID, a.TaskID, a.Filename, a.StoragePath, a.Size, a.ContentType, a.UploadedBy, a.CreatedAt,
	))
}

func (r *AttachmentPostgres) FindByID(ctx context.Context, clientID, id string) (*model.Attachment, error) {
	q := `SELECT ` + attachmentColumns + ` FROM task_attachments WHERE id = $1 AND client_id = $2`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *AttachmentPostgres) ListByTask(ctx context.Context, clientID, taskID string) ([]model.Attachment, error) {
	q := `SELECT ` + attachmentColumns + ` FROM task_attachments WHERE task_id = $1 AND client_id = $2 ORDER BY created_at, id`
	return r.list(ctx, q, taskID, clientID)
}

func (r *AttachmentPostgres) ListPurgeable(ctx context.Context, before time.Time) ([]model.Attachment, error) {
	q := `SELECT a.id, a.client_id, a.task_id, a.filename, a.storage_path, a.size, a.content_type, a.uploaded_by, a.created_at
		FROM task_attachments a
		JOIN tasks t ON t.id = a.task_id
		JOIN projects p ON p.id = t.project_id
		WHERE (t.deleted_at IS NOT NULL AND t.deleted_at < $1)
		   OR (p.deleted_at IS NOT NULL AND p.deleted_at < $1)`
	return r.list(ctx, q, before)
}

func (r *AttachmentPostgres) list(ctx context.Context, q string, args ...any) ([]model.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *AttachmentPostgres) Delete(ctx context.Context, clientID, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM task_attachments WHERE id = $1 AND client_id = $2`, id, clientID))
}
