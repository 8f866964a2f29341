package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

const (
	maxMessageLength   = 4000
	defaultMessagePage = 50
)

// MessageService is the discussion thread of a project.
type MessageService interface {
	// List returns messages newest first, older than before when it is set.
	// Deleted messages come back with an empty body.
	List(ctx context.Context, p auth.Principal, projectID string, before *time.Time, limit int) ([]model.Message, error)
	Create(ctx context.Context, p auth.Principal, projectID, body string, parentID *string) (*model.Message, error)
	// Update is allowed to the author only.
	Update(ctx context.Context, p auth.Principal, id, body string) (*model.Message, error)
	// Delete is allowed to the author and to tenant owners and admins.
	Delete(ctx context.Context, p auth.Principal, id string) error
}

type messageService struct {
	repos *repository.Store
	now   func() time.Time
}

func NewMessageService(repos *repository.Store) MessageService {
	return &messageService{repos: repos, now: utcNow}
}

func (s *messageService) List(ctx context.Context, p auth.Principal, projectID string, before *time.Time, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = defaultMessagePage
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Messages.List(ctx, p.ClientID, proj.ID, before, limit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].DeletedAt != nil {
			items[i].Body = ""
		}
	}
	return items, nil
}

func (s *messageService) writableProject(ctx context.Context, clientID, projectID string) error {
	proj, err := findProject(ctx, s.repos, clientID, projectID)
	if err != nil {
		return err
	}
	if proj.Archived() {
		return ErrProjectArchived
	}
	return nil
}

func (s *messageService) Create(ctx context.Context, p auth.Principal, projectID, body string, parentID *string) (*model.Message, error) {
	body, err := cleanText("body", body, 1, maxMessageLength)
	if err != nil {
		return nil, err
	}
	if err := s.writableProject(ctx, p.ClientID, projectID); err != nil {
		return nil, err
	}
	parentID = optional(parentID)
	if parentID != nil {
		parent, err := s.repos.Messages.FindByID(ctx, p.ClientID, *parentID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, invalid("parent_id", "must be a message of this project")
		case err != nil:
			return nil, err
		case parent.ProjectID != projectID:
			return nil, invalid("parent_id", "must be a message of this project")
		}
	}

	m := &model.Message{
		ID:        uuid.New().String(),
		ClientID:  p.ClientID,
		ProjectID: projectID,
		AuthorID:  p.UserID,
		ParentID:  parentID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.repos.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *messageService) find(ctx context.Context, clientID, id string) (*model.Message, error) {
	m, err := s.repos.Messages.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "message")
	}
	return m, nil
}

func (s *messageService) Update(ctx context.Context, p auth.Principal, id, body string) (*model.Message, error) {
	body, err := cleanText("body", body, 1, maxMessageLength)
	if err != nil {
		return nil, err
	}
	m, err := s.find(ctx, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if m.AuthorID != p.UserID {
		return nil, ErrForbidden
	}
	if m.DeletedAt != nil {
		return nil, invalid("id", "message was deleted")
	}
	if err := s.writableProject(ctx, p.ClientID, m.ProjectID); err != nil {
		return nil, err
	}
	now := s.now()
	m.Body = body
	m.EditedAt = &now
	if err := s.repos.Messages.Update(ctx, m); err != nil {
		return nil, notFound(err, "message")
	}
	return m, nil
}

func (s *messageService) Delete(ctx context.Context, p auth.Principal, id string) error {
	m, err := s.find(ctx, p.ClientID, id)
	if err != nil {
		return err
	}
	if m.AuthorID != p.UserID && !p.IsTenantAdmin() {
		return ErrForbidden
	}
	if m.DeletedAt != nil {
		return nil
	}
	if err := s.writableProject(ctx, p.ClientID, m.ProjectID); err != nil {
		return err
	}
	now := s.now()
	m.DeletedAt = &now
	return notFound(s.repos.Messages.Update(ctx, m), "message")
}
