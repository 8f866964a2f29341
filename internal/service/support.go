package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"boardapi/internal/auth"
	"boardapi/internal/email"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TicketInput struct {
	Subject  string
	Body     string
	Priority string
}

// TicketPatch leaves nil fields unchanged. An empty AssignedAdminID unassigns.
type TicketPatch struct {
	Status          *string
	Priority        *string
	AssignedAdminID *string
}

// SupportService handles tickets from both sides: tenant users open and
// follow up on their own client's tickets, platform staff triage all of them.
type SupportService interface {
	Create(ctx context.Context, p auth.Principal, in TicketInput) (*model.Ticket, error)
	List(ctx context.Context, p auth.Principal, status string, limit, offset int) (*ListResult[model.Ticket], error)
	Get(ctx context.Context, p auth.Principal, id string) (*model.Ticket, error)
	// Reply from a client re-opens a pending or resolved ticket.
	Reply(ctx context.Context, p auth.Principal, id, body string) (*model.TicketReply, error)

	AdminList(ctx context.Context, f repository.TicketFilter, limit, offset int) (*ListResult[model.Ticket], error)
	AdminGet(ctx context.Context, id string) (*model.Ticket, error)
	AdminUpdate(ctx context.Context, id string, in TicketPatch) (*model.Ticket, error)
	// AdminReply moves an open ticket to pending and emails the opener. Pending
	// and resolved tickets keep their status.
	AdminReply(ctx context.Context, p auth.Principal, id, body string) (*model.TicketReply, error)
}

var ticketTransitions = map[string][]string{
	model.TicketOpen:     {model.TicketPending, model.TicketResolved, model.TicketClosed},
	model.TicketPending:  {model.TicketOpen, model.TicketResolved, model.TicketClosed},
	model.TicketResolved: {model.TicketOpen, model.TicketClosed},
}

func canTransition(from, to string) bool {
	for _, s := range ticketTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func validTicketStatus(s string) bool {
	switch s {
	case model.TicketOpen, model.TicketPending, model.TicketResolved, model.TicketClosed:
		return true
	}
	return false
}

// setStatus applies a transition and keeps ResolvedAt consistent with it.
func setStatus(t *model.Ticket, to string, now time.Time) error {
	if t.Status == to {
		return nil
	}
	if !canTransition(t.Status, to) {
		return fmt.Errorf("%s to %s: %w", t.Status, to, ErrInvalidTransition)
	}
	t.Status = to
	switch to {
	case model.TicketResolved:
		t.ResolvedAt = &now
	case model.TicketOpen, model.TicketPending:
		t.ResolvedAt = nil
	}
	return nil
}

type supportService struct {
	repos  *repository.Store
	uow    repository.UnitOfWork
	sender email.Sender
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewSupportService(repos *repository.Store, uow repository.UnitOfWork, sender email.Sender, log logrus.FieldLogger) SupportService {
	return &supportService{repos: repos, uow: uow, sender: sender, log: log, now: utcNow}
}

func (s *supportService) Create(ctx context.Context, p auth.Principal, in TicketInput) (*model.Ticket, error) {
	subject, err := cleanText("subject", in.Subject, 1, 200)
	if err != nil {
		return nil, err
	}
	body, err := cleanText("body", in.Body, 1, 10000)
	if err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(in.Priority) {
		return nil, invalid("priority", "must be one of low, medium, high, urgent")
	}
	now := s.now()
	t := &model.Ticket{
		ID:        uuid.New().String(),
		ClientID:  p.ClientID,
		OpenedBy:  p.UserID,
		Subject:   subject,
		Body:      body,
		Status:    model.TicketOpen,
		Priority:  in.Priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *supportService) List(ctx context.Context, p auth.Principal, status string, limit, offset int) (*ListResult[model.Ticket], error) {
	return s.list(ctx, repository.TicketFilter{ClientID: p.ClientID, Status: status}, limit, offset)
}

func (s *supportService) AdminList(ctx context.Context, f repository.TicketFilter, limit, offset int) (*ListResult[model.Ticket], error) {
	return s.list(ctx, f, limit, offset)
}

func (s *supportService) list(ctx context.Context, f repository.TicketFilter, limit, offset int) (*ListResult[model.Ticket], error) {
	if f.Status != "" && !validTicketStatus(f.Status) {
		return nil, invalid("status", "must be one of open, pending, resolved, closed")
	}
	pq := pageQuery(limit, offset)
	res, err := s.repos.Tickets.List(ctx, f, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *supportService) withReplies(ctx context.Context, t *model.Ticket) (*model.Ticket, error) {
	replies, err := s.repos.Tickets.ListReplies(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Replies = replies
	return t, nil
}

func (s *supportService) Get(ctx context.Context, p auth.Principal, id string) (*model.Ticket, error) {
	t, err := s.repos.Tickets.FindInClient(ctx, p.ClientID, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	return s.withReplies(ctx, t)
}

func (s *supportService) AdminGet(ctx context.Context, id string) (*model.Ticket, error) {
	t, err := s.repos.Tickets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	return s.withReplies(ctx, t)
}

func (s *supportService) Reply(ctx context.Context, p auth.Principal, id, body string) (*model.TicketReply, error) {
	body, err := cleanText("body", body, 1, 10000)
	if err != nil {
		return nil, err
	}
	// Scope check outside the lock: LockByID is unscoped.
	if _, err := s.repos.Tickets.FindInClient(ctx, p.ClientID, id); err != nil {
		return nil, notFound(err, "ticket")
	}

	var reply *model.TicketReply
	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := tx.Tickets.LockByID(ctx, id)
		if err != nil {
			return notFound(err, "ticket")
		}
		if t.Status == model.TicketClosed {
			return fmt.Errorf("ticket is closed: %w", ErrConflict)
		}
		now := s.now()
		if t.Status != model.TicketOpen {
			if err := setStatus(t, model.TicketOpen, now); err != nil {
				return err
			}
		}
		t.UpdatedAt = now
		if err := tx.Tickets.Update(ctx, t); err != nil {
			return err
		}
		reply = &model.TicketReply{ID: uuid.New().String(), TicketID: t.ID, AuthorID: p.UserID, Body: body, CreatedAt: now}
		return tx.Tickets.AddReply(ctx, reply)
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *supportService) AdminUpdate(ctx context.Context, id string, in TicketPatch) (*model.Ticket, error) {
	if in.Status != nil && !validTicketStatus(*in.Status) {
		return nil, invalid("status", "must be one of open, pending, resolved, closed")
	}
	if in.Priority != nil && !model.ValidPriority(*in.Priority) {
		return nil, invalid("priority", "must be one of low, medium, high, urgent")
	}
	if in.AssignedAdminID != nil && *in.AssignedAdminID != "" {
		if _, err := s.repos.Admins.Get(ctx, *in.AssignedAdminID); err != nil {
			if isNoRows(err) {
				return nil, invalid("assigned_admin_id", "is not a platform admin")
			}
			return nil, err
		}
	}

	var out *model.Ticket
	err := s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := tx.Tickets.LockByID(ctx, id)
		if err != nil {
			return notFound(err, "ticket")
		}
		now := s.now()
		if in.Status != nil {
			if err := setStatus(t, *in.Status, now); err != nil {
				return err
			}
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if in.AssignedAdminID != nil {
			t.AssignedAdminID = optional(in.AssignedAdminID)
		}
		t.UpdatedAt = now
		if err := tx.Tickets.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *supportService) AdminReply(ctx context.Context, p auth.Principal, id, body string) (*model.TicketReply, error) {
	body, err := cleanText("body", body, 1, 10000)
	if err != nil {
		return nil, err
	}

	var (
		reply  *model.TicketReply
		ticket *model.Ticket
	)
	err = s.uow.Do(ctx, func(tx *repository.Store) error {
		t, err := tx.Tickets.LockByID(ctx, id)
		if err != nil {
			return notFound(err, "ticket")
		}
		if t.Status == model.TicketClosed {
			return fmt.Errorf("ticket is closed: %w", ErrConflict)
		}
		now := s.now()
		if t.Status == model.TicketOpen {
			t.Status = model.TicketPending
		}
		t.UpdatedAt = now
		if err := tx.Tickets.Update(ctx, t); err != nil {
			return err
		}
		reply = &model.TicketReply{ID: uuid.New().String(), TicketID: t.ID, AuthorID: p.UserID, Staff: true, Body: body, CreatedAt: now}
		if err := tx.Tickets.AddReply(ctx, reply); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyOpener(ctx, ticket, body)
	return reply, nil
}

func (s *supportService) notifyOpener(ctx context.Context, t *model.Ticket, body string) {
	l := s.log.WithFields(logrus.Fields{"component": "support", "event": "ticket_reply_email", "ticket_id": t.ID})
	u, err := s.repos.Users.FindByID(ctx, t.OpenedBy)
	if err != nil {
		l.WithError(err).Warn("load ticket opener failed")
		return
	}
	msg, err := email.TicketReplied(u.Email, t.Subject, body)
	if err != nil {
		l.WithError(err).Warn("render notification failed")
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		l.WithError(err).Warn("send notification failed")
	}
}
