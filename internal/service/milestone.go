package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type MilestoneInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

type MilestonePatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
}

// MilestoneService manages milestones. Progress fields are maintained by the
// board operations, never written directly.
type MilestoneService interface {
	List(ctx context.Context, p auth.Principal, projectID string) ([]model.Milestone, error)
	Get(ctx context.Context, p auth.Principal, id string) (*model.Milestone, error)
	Create(ctx context.Context, p auth.Principal, projectID string, in MilestoneInput) (*model.Milestone, error)
	Update(ctx context.Context, p auth.Principal, id string, in MilestonePatch) (*model.Milestone, error)
	// Delete detaches the milestone's tasks first.
	Delete(ctx context.Context, p auth.Principal, id string) error
}

type milestoneService struct {
	repos *repository.Store
	uow   repository.UnitOfWork
	now   func() time.Time
}

func NewMilestoneService(repos *repository.Store, uow repository.UnitOfWork) MilestoneService {
	return &milestoneService{repos: repos, uow: uow, now: utcNow}
}

func (s *milestoneService) List(ctx context.Context, p auth.Principal, projectID string) ([]model.Milestone, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	return s.repos.Milestones.ListByProject(ctx, p.ClientID, proj.ID)
}

func (s *milestoneService) Get(ctx context.Context, p auth.Principal, id string) (*model.Milestone, error) {
	m, err := s.repos.Milestones.FindByID(ctx, p.ClientID, id)
	if err != nil {
		return nil, notFound(err, "milestone")
	}
	if _, err := findProject(ctx, s.repos, p.ClientID, m.ProjectID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) Create(ctx context.Context, p auth.Principal, projectID string, in MilestoneInput) (*model.Milestone, error) {
	title, err := cleanText("title", in.Title, 1, 200)
	if err != nil {
		return nil, err
	}
	desc, err := cleanText("description", in.Description, 0, 5000)
	if err != nil {
		return nil, err
	}
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return nil, ErrProjectArchived
	}
	now := s.now()
	m := &model.Milestone{
		ID:          uuid.New().String(),
		ClientID:    p.ClientID,
		ProjectID:   proj.ID,
		Title:       title,
		Description: desc,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) writable(ctx context.Context, clientID, id string) (*model.Milestone, error) {
	m, err := s.repos.Milestones.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "milestone")
	}
	proj, err := findProject(ctx, s.repos, clientID, m.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return nil, ErrProjectArchived
	}
	return m, nil
}

func (s *milestoneService) Update(ctx context.Context, p auth.Principal, id string, in MilestonePatch) (*model.Milestone, error) {
	m, err := s.writable(ctx, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if m.Title, err = cleanText("title", *in.Title, 1, 200); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if m.Description, err = cleanText("description", *in.Description, 0, 5000); err != nil {
			return nil, err
		}
	}
	if in.ClearDueDate {
		m.DueDate = nil
	} else if in.DueDate != nil {
		m.DueDate = in.DueDate
	}
	m.UpdatedAt = s.now()
	if err := s.repos.Milestones.Update(ctx, m); err != nil {
		return nil, notFound(err, "milestone")
	}
	return m, nil
}

func (s *milestoneService) Delete(ctx context.Context, p auth.Principal, id string) error {
	m, err := s.writable(ctx, p.ClientID, id)
	if err != nil {
		return err
	}
	return s.uow.Do(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.DetachMilestone(ctx, p.ClientID, m.ID); err != nil {
			return err
		}
		return notFound(tx.Milestones.Delete(ctx, p.ClientID, m.ID), "milestone")
	})
}
