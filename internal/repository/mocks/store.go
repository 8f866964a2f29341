package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/repository"
)

// Store bundles one mock per repository.
type Store struct {
	Clients     *MockClientRepository
	Plans       *MockPlanRepository
	Licenses    *MockLicenseRepository
	Users       *MockUserRepository
	Admins      *MockAdminRepository
	Teams       *MockTeamRepository
	Projects    *MockProjectRepository
	Templates   *MockTemplateRepository
	Columns     *MockColumnRepository
	Tasks       *MockTaskRepository
	Milestones  *MockMilestoneRepository
	Messages    *MockMessageRepository
	Attachments *MockAttachmentRepository
	Flags       *MockFlagRepository
	Tickets     *MockTicketRepository
}

func NewStore() *Store {
	return &Store{
		Clients:     new(MockClientRepository),
		Plans:       new(MockPlanRepository),
		Licenses:    new(MockLicenseRepository),
		Users:       new(MockUserRepository),
		Admins:      new(MockAdminRepository),
		Teams:       new(MockTeamRepository),
		Projects:    new(MockProjectRepository),
		Templates:   new(MockTemplateRepository),
		Columns:     new(MockColumnRepository),
		Tasks:       new(MockTaskRepository),
		Milestones:  new(MockMilestoneRepository),
		Messages:    new(MockMessageRepository),
		Attachments: new(MockAttachmentRepository),
		Flags:       new(MockFlagRepository),
		Tickets:     new(MockTicketRepository),
	}
}

// Repos exposes the mocks as a repository.Store.
func (s *Store) Repos() *repository.Store {
	return &repository.Store{
		Clients:     s.Clients,
		Plans:       s.Plans,
		Licenses:    s.Licenses,
		Users:       s.Users,
		Admins:      s.Admins,
		Teams:       s.Teams,
		Projects:    s.Projects,
		Templates:   s.Templates,
		Columns:     s.Columns,
		Tasks:       s.Tasks,
		Milestones:  s.Milestones,
		Messages:    s.Messages,
		Attachments: s.Attachments,
		Flags:       s.Flags,
		Tickets:     s.Tickets,
	}
}

// UnitOfWork runs fn directly against the mocks; there is no real transaction.
func (s *Store) UnitOfWork() repository.UnitOfWork {
	return uow{repos: s.Repos()}
}

type uow struct {
	repos *repository.Store
}

func (u uow) Do(_ context.Context, fn func(tx *repository.Store) error) error {
	return fn(u.repos)
}

// AssertExpectations checks every repository mock.
func (s *Store) AssertExpectations(t mock.TestingT) {
	mock.AssertExpectationsForObjects(t,
		s.Clients, s.Plans, s.Licenses, s.Users, s.Admins, s.Teams, s.Projects, s.Templates,
		s.Columns, s.Tasks, s.Milestones, s.Messages, s.Attachments, s.Flags, s.Tickets)
}
