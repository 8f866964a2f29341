package repository

import (
	"context"

	"boardapi/internal/model"
)

type FlagRepository interface {
	List(ctx context.Context) ([]model.FeatureFlag, error)
	Get(ctx context.Context, key string) (*model.FeatureFlag, error)
	Upsert(ctx context.Context, f *model.FeatureFlag) error
	Delete(ctx context.Context, key string) error
}

// TicketFilter narrows ticket listings. Empty fields match everything.
type TicketFilter struct {
	ClientID string
	Status   string
}

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	// FindByID is unscoped; tenant callers use FindInClient.
	FindByID(ctx context.Context, id string) (*model.Ticket, error)
	FindInClient(ctx context.Context, clientID, id string) (*model.Ticket, error)
	LockByID(ctx context.Context, id string) (*model.Ticket, error)
	List(ctx context.Context, f TicketFilter, pq PageQuery) (*PageResult[model.Ticket], error)
	Update(ctx context.Context, t *model.Ticket) error
	AddReply(ctx context.Context, r *model.TicketReply) error
	ListReplies(ctx context.Context, ticketID string) ([]model.TicketReply, error)
	CountOpen(ctx context.Context) (int, error)
}
