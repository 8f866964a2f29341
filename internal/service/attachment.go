package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
	"boardapi/internal/storage"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// AttachmentService stores task files in object storage and their metadata in the database.
type AttachmentService interface {
	// Upload writes the object first and removes it again if the metadata insert fails.
	Upload(ctx context.Context, p auth.Principal, taskID string, in UploadInput) (*model.Attachment, error)
	// List returns metadata with presigned download URLs.
	List(ctx context.Context, p auth.Principal, taskID string) ([]model.Attachment, error)
	Delete(ctx context.Context, p auth.Principal, id string) error
}

type attachmentService struct {
	repos    *repository.Store
	store    storage.Storage
	maxBytes int64
	expiry   time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewAttachmentService(repos *repository.Store, store storage.Storage, maxBytes int64, expiry time.Duration, log logrus.FieldLogger) AttachmentService {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &attachmentService{repos: repos, store: store, maxBytes: maxBytes, expiry: expiry, log: log, now: utcNow}
}

func (s *attachmentService) writableTask(ctx context.Context, clientID, taskID string) (*model.Task, error) {
	t, err := s.repos.Tasks.FindByID(ctx, clientID, taskID)
	if err != nil {
		return nil, notFound(err, "task")
	}
	proj, err := findProject(ctx, s.repos, clientID, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return nil, ErrProjectArchived
	}
	return t, nil
}

func (s *attachmentService) Upload(ctx context.Context, p auth.Principal, taskID string, in UploadInput) (*model.Attachment, error) {
	if in.Reader == nil {
		return nil, invalid("file", "is required")
	}
	if in.Size <= 0 {
		return nil, invalid("file", "is empty")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return nil, invalid("file", fmt.Sprintf("exceeds %d bytes", s.maxBytes))
	}
	filename := path.Base(strings.ReplaceAll(in.Filename, "\\", "/"))
	if filename == "." || filename == "/" || filename == "" {
		return nil, invalid("file", "has no filename")
	}
	if in.ContentType == "" {
		in.ContentType = "application/octet-stream"
	}

	t, err := s.writableTask(ctx, p.ClientID, taskID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := storage.AttachmentKey(p.ClientID, t.ID, id, filename)
	info, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	a := &model.Attachment{
		ID:          id,
		ClientID:    p.ClientID,
		TaskID:      t.ID,
		Filename:    filename,
		StoragePath: key,
		Size:        info.Size,
		ContentType: in.ContentType,
		UploadedBy:  p.UserID,
		CreatedAt:   s.now(),
	}
	stored, err := s.repos.Attachments.Create(ctx, a)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *attachmentService) List(ctx context.Context, p auth.Principal, taskID string) ([]model.Attachment, error) {
	t, err := s.repos.Tasks.FindByID(ctx, p.ClientID, taskID)
	if err != nil {
		return nil, notFound(err, "task")
	}
	if _, err := findProject(ctx, s.repos, p.ClientID, t.ProjectID); err != nil {
		return nil, err
	}
	items, err := s.repos.Attachments.ListByTask(ctx, p.ClientID, t.ID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		url, err := s.store.PresignGet(ctx, items[i].StoragePath, items[i].Filename, s.expiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", items[i].ID, err)
		}
		items[i].URL = url
	}
	return items, nil
}

// Delete removes the object before the row so a failure never leaves an
// unreferenced object behind.
func (s *attachmentService) Delete(ctx context.Context, p auth.Principal, id string) error {
	a, err := s.repos.Attachments.FindByID(ctx, p.ClientID, id)
	if err != nil {
		return notFound(err, "attachment")
	}
	if _, err := s.writableTask(ctx, p.ClientID, a.TaskID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repos.Attachments.Delete(ctx, p.ClientID, a.ID); err != nil {
		return notFound(err, "attachment")
	}
	s.log.WithFields(logrus.Fields{"component": "attachment", "event": "attachment_deleted", "attachment_id": a.ID}).Debug("attachment deleted")
	return nil
}
