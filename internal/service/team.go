package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"boardapi/internal/auth"
	"boardapi/internal/email"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TeamInput struct {
	Name        string
	Description string
}

type TeamPatch struct {
	Name        *string
	Description *string
}

// TeamService manages teams of the caller's client.
type TeamService interface {
	List(ctx context.Context, p auth.Principal) ([]model.Team, error)
	Create(ctx context.Context, p auth.Principal, in TeamInput) (*model.Team, error)
	// Get includes the members.
	Get(ctx context.Context, p auth.Principal, id string) (*model.Team, error)
	Update(ctx context.Context, p auth.Principal, id string, in TeamPatch) (*model.Team, error)
	Delete(ctx context.Context, p auth.Principal, id string) error
	// AddMember notifies the new member by email. Delivery problems are logged only.
	AddMember(ctx context.Context, p auth.Principal, teamID, userID, role string) (*model.TeamMember, error)
	RemoveMember(ctx context.Context, p auth.Principal, teamID, userID string) error
}

// Team member roles.
const (
	TeamRoleLead   = "lead"
	TeamRoleMember = "member"
)

type teamService struct {
	repos  *repository.Store
	sender email.Sender
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewTeamService(repos *repository.Store, sender email.Sender, log logrus.FieldLogger) TeamService {
	return &teamService{repos: repos, sender: sender, log: log, now: utcNow}
}

func (s *teamService) List(ctx context.Context, p auth.Principal) ([]model.Team, error) {
	return s.repos.Teams.List(ctx, p.ClientID)
}

func (s *teamService) Create(ctx context.Context, p auth.Principal, in TeamInput) (*model.Team, error) {
	name, err := cleanText("name", in.Name, 1, 100)
	if err != nil {
		return nil, err
	}
	desc, err := cleanText("description", in.Description, 0, 2000)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t := &model.Team{ID: uuid.New().String(), ClientID: p.ClientID, Name: name, Description: desc, CreatedAt: now, UpdatedAt: now}
	if err := s.repos.Teams.Create(ctx, t); err != nil {
		return nil, duplicate(err, "team")
	}
	return t, nil
}

func (s *teamService) find(ctx context.Context, clientID, id string) (*model.Team, error) {
	t, err := s.repos.Teams.FindByID(ctx, clientID, id)
	if err != nil {
		return nil, notFound(err, "team")
	}
	return t, nil
}

func (s *teamService) Get(ctx context.Context, p auth.Principal, id string) (*model.Team, error) {
	t, err := s.find(ctx, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repos.Teams.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Members = members
	return t, nil
}

func (s *teamService) Update(ctx context.Context, p auth.Principal, id string, in TeamPatch) (*model.Team, error) {
	t, err := s.find(ctx, p.ClientID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if t.Name, err = cleanText("name", *in.Name, 1, 100); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if t.Description, err = cleanText("description", *in.Description, 0, 2000); err != nil {
			return nil, err
		}
	}
	t.UpdatedAt = s.now()
	if err := s.repos.Teams.Update(ctx, t); err != nil {
		return nil, duplicate(notFound(err, "team"), "team")
	}
	return t, nil
}

func (s *teamService) Delete(ctx context.Context, p auth.Principal, id string) error {
	return notFound(s.repos.Teams.Delete(ctx, p.ClientID, id), "team")
}

func (s *teamService) AddMember(ctx context.Context, p auth.Principal, teamID, userID, role string) (*model.TeamMember, error) {
	if role == "" {
		role = TeamRoleMember
	}
	if role != TeamRoleLead && role != TeamRoleMember {
		return nil, invalid("role", "must be lead or member")
	}
	t, err := s.find(ctx, p.ClientID, teamID)
	if err != nil {
		return nil, err
	}
	u, err := s.repos.Users.FindInClient(ctx, p.ClientID, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	m := &model.TeamMember{TeamID: t.ID, UserID: u.ID, Role: role, Email: u.Email, Name: u.Name, JoinedAt: s.now()}
	if err := s.repos.Teams.AddMember(ctx, m); err != nil {
		return nil, duplicate(err, "team member")
	}

	s.notify(ctx, u, t, role)
	return m, nil
}

func (s *teamService) notify(ctx context.Context, u *model.User, t *model.Team, role string) {
	l := s.log.WithFields(logrus.Fields{"component": "team", "event": "member_added_email", "team_id": t.ID, "user_id": u.ID})
	msg, err := email.TeamMemberAdded(u.Email, u.Name, t.Name, role)
	if err != nil {
		l.WithError(err).Warn("render notification failed")
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		l.WithError(err).Warn("send notification failed")
	}
}

func (s *teamService) RemoveMember(ctx context.Context, p auth.Principal, teamID, userID string) error {
	if _, err := s.find(ctx, p.ClientID, teamID); err != nil {
		return err
	}
	return notFound(s.repos.Teams.RemoveMember(ctx, teamID, userID), "team member")
}
