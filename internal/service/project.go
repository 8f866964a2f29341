package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"boardapi/internal/auth"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type ProjectQuery struct {
	Archived bool
	TeamID   string
	Limit    int
	Offset   int
}

type CreateProjectInput struct {
	Name        string
	Description string
	TeamID      *string
	TemplateID  *string
}

// UpdateProjectInput leaves nil fields unchanged. An empty TeamID detaches the team.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	TeamID      *string
}

type TemplateInput struct {
	Name        string
	Description string
	Columns     []model.TemplateColumn
	Milestones  []model.TemplateMilestone
}

// ProjectService manages projects and the templates they are created from.
type ProjectService interface {
	List(ctx context.Context, p auth.Principal, q ProjectQuery) (*ListResult[model.Project], error)
	// Create counts against the plan's project quota and builds the board in
	// the same transaction, from the template when one is given.
	Create(ctx context.Context, p auth.Principal, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, p auth.Principal, id string) (*model.Project, error)
	Update(ctx context.Context, p auth.Principal, id string, in UpdateProjectInput) (*model.Project, error)
	Archive(ctx context.Context, p auth.Principal, id string) (*model.Project, error)
	Restore(ctx context.Context, p auth.Principal, id string) (*model.Project, error)
	// Delete soft-deletes. The retention job purges the rows later.
	Delete(ctx context.Context, p auth.Principal, id string) error

	ListTemplates(ctx context.Context, p auth.Principal) ([]model.ProjectTemplate, error)
	CreateTemplate(ctx context.Context, p auth.Principal, in TemplateInput) (*model.ProjectTemplate, error)
	SaveAsTemplate(ctx context.Context, p auth.Principal, projectID, name string) (*model.ProjectTemplate, error)
	DeleteTemplate(ctx context.Context, p auth.Principal, id string) error
}

// DefaultColumns is the board of a project created without a template.
var DefaultColumns = []model.TemplateColumn{
	{Name: "To Do"},
	{Name: "In Progress"},
	{Name: "Done", IsDone: true},
}

type projectService struct {
	repos *repository.Store
	uow   repository.UnitOfWork
	now   func() time.Time
}

func NewProjectService(repos *repository.Store, uow repository.UnitOfWork) ProjectService {
	return &projectService{repos: repos, uow: uow, now: utcNow}
}

func (s *projectService) List(ctx context.Context, p auth.Principal, q ProjectQuery) (*ListResult[model.Project], error) {
	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.repos.Projects.List(ctx, p.ClientID, repository.ProjectFilter{Archived: q.Archived, TeamID: q.TeamID}, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *projectService) Create(ctx context.Context, p auth.Principal, in CreateProjectInput) (*model.Project, error) {
	name, err := cleanText("name", in.Name, 1, 200)
	if err != nil {
		return nil, err
	}
	desc, err := cleanText("description", in.Description, 0, 5000)
	if err != nil {
		return nil, err
	}
	now := s.now()
	proj := &model.Project{
		ID:          uuid.New().String(),
		ClientID:    p.ClientID,
		TeamID:      optional(in.TeamID),
		Name:        name,
		Description: desc,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		limits, err := lockClientLimits(ctx, tx, p.ClientID, now)
		if err != nil {
			return err
		}
		n, err := tx.Projects.CountLive(ctx, p.ClientID)
		if err != nil {
			return err
		}
		if !limits.AllowsProjects(n) {
			return ErrQuotaExceeded
		}

		if proj.TeamID != nil {
			if _, err := tx.Teams.FindByID(ctx, p.ClientID, *proj.TeamID); err != nil {
				return notFound(err, "team")
			}
		}
		columns, milestones := DefaultColumns, []model.TemplateMilestone(nil)
		if id := optional(in.TemplateID); id != nil {
			tpl, err := tx.Templates.FindVisible(ctx, p.ClientID, *id)
			if err != nil {
				return notFound(err, "template")
			}
			columns, milestones = tpl.Columns, tpl.Milestones
		}

		if err := tx.Projects.Create(ctx, proj); err != nil {
			return err
		}
		return instantiate(ctx, tx, proj, columns, milestones, now)
	})
	if err != nil {
		return nil, err
	}
	return proj, nil
}

// instantiate creates the board columns, in order, and the milestones of a template.
func instantiate(ctx context.Context, tx *repository.Store, proj *model.Project, columns []model.TemplateColumn, milestones []model.TemplateMilestone, now time.Time) error {
	for i, tc := range columns {
		c := &model.Column{
			ID:        uuid.New().String(),
			ProjectID: proj.ID,
			ClientID:  proj.ClientID,
			Name:      tc.Name,
			Color:     tc.Color,
			Position:  i,
			WIPLimit:  tc.WIPLimit,
			IsDone:    tc.IsDone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Columns.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, tm := range milestones {
		m := &model.Milestone{
			ID:          uuid.New().String(),
			ClientID:    proj.ClientID,
			ProjectID:   proj.ID,
			Title:       tm.Title,
			Description: tm.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if tm.DueInDays != nil {
			due := now.AddDate(0, 0, *tm.DueInDays)
			m.DueDate = &due
		}
		if err := tx.Milestones.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *projectService) Get(ctx context.Context, p auth.Principal, id string) (*model.Project, error) {
	return findProject(ctx, s.repos, p.ClientID, id)
}

func (s *projectService) Update(ctx context.Context, p auth.Principal, id string, in UpdateProjectInput) (*model.Project, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return nil, ErrProjectArchived
	}
	if in.Name != nil {
		if proj.Name, err = cleanText("name", *in.Name, 1, 200); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if proj.Description, err = cleanText("description", *in.Description, 0, 5000); err != nil {
			return nil, err
		}
	}
	if in.TeamID != nil {
		proj.TeamID = optional(in.TeamID)
		if proj.TeamID != nil {
			if _, err := s.repos.Teams.FindByID(ctx, p.ClientID, *proj.TeamID); err != nil {
				return nil, notFound(err, "team")
			}
		}
	}
	proj.UpdatedAt = s.now()
	if err := s.repos.Projects.Update(ctx, proj); err != nil {
		return nil, notFound(err, "project")
	}
	return proj, nil
}

func (s *projectService) Archive(ctx context.Context, p auth.Principal, id string) (*model.Project, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return proj, nil
	}
	now := s.now()
	proj.ArchivedAt = &now
	proj.UpdatedAt = now
	if err := s.repos.Projects.Update(ctx, proj); err != nil {
		return nil, notFound(err, "project")
	}
	return proj, nil
}

func (s *projectService) Restore(ctx context.Context, p auth.Principal, id string) (*model.Project, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if !proj.Archived() {
		return proj, nil
	}
	proj.ArchivedAt = nil
	proj.UpdatedAt = s.now()
	if err := s.repos.Projects.Update(ctx, proj); err != nil {
		return nil, notFound(err, "project")
	}
	return proj, nil
}

func (s *projectService) Delete(ctx context.Context, p auth.Principal, id string) error {
	proj, err := findProject(ctx, s.repos, p.ClientID, id)
	if err != nil {
		return err
	}
	now := s.now()
	proj.DeletedAt = &now
	proj.UpdatedAt = now
	return notFound(s.repos.Projects.Update(ctx, proj), "project")
}

func (s *projectService) ListTemplates(ctx context.Context, p auth.Principal) ([]model.ProjectTemplate, error) {
	return s.repos.Templates.ListVisible(ctx, p.ClientID)
}

func validateTemplate(in TemplateInput) (TemplateInput, error) {
	var err error
	if in.Name, err = cleanText("name", in.Name, 1, 200); err != nil {
		return in, err
	}
	if in.Description, err = cleanText("description", in.Description, 0, 5000); err != nil {
		return in, err
	}
	if len(in.Columns) == 0 {
		return in, invalid("columns", "at least one column is required")
	}
	for i := range in.Columns {
		c := &in.Columns[i]
		if c.Name, err = cleanText("columns.name", c.Name, 1, 100); err != nil {
			return in, err
		}
		if c.WIPLimit != nil && *c.WIPLimit <= 0 {
			return in, invalid("columns.wip_limit", "must be positive")
		}
	}
	for i := range in.Milestones {
		m := &in.Milestones[i]
		if m.Title, err = cleanText("milestones.title", m.Title, 1, 200); err != nil {
			return in, err
		}
		if m.DueInDays != nil && *m.DueInDays < 0 {
			return in, invalid("milestones.due_in_days", "must not be negative")
		}
	}
	if in.Milestones == nil {
		in.Milestones = []model.TemplateMilestone{}
	}
	return in, nil
}

func (s *projectService) CreateTemplate(ctx context.Context, p auth.Principal, in TemplateInput) (*model.ProjectTemplate, error) {
	in, err := validateTemplate(in)
	if err != nil {
		return nil, err
	}
	clientID := p.ClientID
	tpl := &model.ProjectTemplate{
		ID:          uuid.New().String(),
		ClientID:    &clientID,
		Name:        in.Name,
		Description: in.Description,
		Columns:     in.Columns,
		Milestones:  in.Milestones,
		CreatedAt:   s.now(),
	}
	if err := s.repos.Templates.Create(ctx, tpl); err != nil {
		return nil, duplicate(err, "template")
	}
	return tpl, nil
}

func (s *projectService) SaveAsTemplate(ctx context.Context, p auth.Principal, projectID, name string) (*model.ProjectTemplate, error) {
	proj, err := findProject(ctx, s.repos, p.ClientID, projectID)
	if err != nil {
		return nil, err
	}
	cols, err := s.repos.Columns.ListByProject(ctx, p.ClientID, proj.ID)
	if err != nil {
		return nil, err
	}
	miles, err := s.repos.Milestones.ListByProject(ctx, p.ClientID, proj.ID)
	if err != nil {
		return nil, err
	}

	in := TemplateInput{Name: name, Description: proj.Description}
	for _, c := range cols {
		in.Columns = append(in.Columns, model.TemplateColumn{Name: c.Name, Color: c.Color, WIPLimit: c.WIPLimit, IsDone: c.IsDone})
	}
	for _, m := range miles {
		tm := model.TemplateMilestone{Title: m.Title, Description: m.Description}
		if m.DueDate != nil {
			days := int(m.DueDate.Sub(proj.CreatedAt).Hours() / 24)
			if days < 0 {
				days = 0
			}
			tm.DueInDays = &days
		}
		in.Milestones = append(in.Milestones, tm)
	}
	return s.CreateTemplate(ctx, p, in)
}

func (s *projectService) DeleteTemplate(ctx context.Context, p auth.Principal, id string) error {
	return notFound(s.repos.Templates.Delete(ctx, p.ClientID, id), "template")
}
