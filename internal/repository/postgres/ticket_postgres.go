package postgres

import (
	"context"
	"fmt"
	"strings"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

type TicketPostgres struct {
	db repository.DBTX
}

func NewTicketPostgres(db repository.DBTX) *TicketPostgres {
	return &TicketPostgres{db: db}
}

var _ repository.TicketRepository = (*TicketPostgres)(nil)

const ticketColumns = `id, client_id, opened_by, subject, body, status, priority, assigned_admin_id, created_at, updated_at, resolved_at`

func scanTicket(s scanner) (*model.Ticket, error) {
	var t model.Ticket
	if err := s.Scan(&t.ID, &t.ClientID, &t.OpenedBy, &t.Subject, &t.Body, &t.Status, &t.Priority,
		&t.AssignedAdminID, &t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketPostgres) Create(ctx context.Context, t *model.Ticket) error {
	const q = `
		INSERT INTO support_tickets (id, client_id, opened_by, subject, body, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.ClientID, t.OpenedBy, t.Subject, t.Body, t.Status, t.Priority, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TicketPostgres) FindByID(ctx context.Context, id string) (*model.Ticket, error) {
	return scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id))
}

func (r *TicketPostgres) FindInClient(ctx context.Context, clientID, id string) (*model.Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1 AND client_id = $2`
	return scanTicket(r.db.QueryRowContext(ctx, q, id, clientID))
}

func (r *TicketPostgres) LockByID(ctx context.Context, id string) (*model.Ticket, error) {
	return scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1 FOR UPDATE`, id))
}

func (r *TicketPostgres) List(ctx context.Context, f repository.TicketFilter, pq repository.PageQuery) (*repository.PageResult[model.Ticket], error) {
	var where []string
	var args []any
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	n, err := total(ctx, r.db, `SELECT COUNT(*) FROM support_tickets`+cond, args...)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM support_tickets%s ORDER BY updated_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		ticketColumns, cond, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Ticket]{Items: items, Total: n}, nil
}

func (r *TicketPostgres) Update(ctx context.Context, t *model.Ticket) error {
	const q = `
		UPDATE support_tickets
		SET status = $2, priority = $3, assigned_admin_id = $4, updated_at = $5, resolved_at = $6
		WHERE id = $1
	`
	return expectOne(r.db.ExecContext(ctx, q, t.ID, t.Status, t.Priority, t.AssignedAdminID, t.UpdatedAt, t.ResolvedAt))
}

func (r *TicketPostgres) AddReply(ctx context.Context, rep *model.TicketReply) error {
	const q = `
		INSERT INTO ticket_replies (id, ticket_id, author_id, staff, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q, rep.ID, rep.TicketID, rep.AuthorID, rep.Staff, rep.Body, rep.CreatedAt)
	return err
}

func (r *TicketPostgres) ListReplies(ctx context.Context, ticketID string) ([]model.TicketReply, error) {
	const q = `
		SELECT id, ticket_id, author_id, staff, body, created_at
		FROM ticket_replies WHERE ticket_id = $1 ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TicketReply, 0)
	for rows.Next() {
		var rep model.TicketReply
		if err := rows.Scan(&rep.ID, &rep.TicketID, &rep.AuthorID, &rep.Staff, &rep.Body, &rep.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rep)
	}
	return items, rows.Err()
}

func (r *TicketPostgres) CountOpen(ctx context.Context) (int, error) {
	return total(ctx, r.db, `SELECT COUNT(*) FROM support_tickets WHERE status IN ('open', 'pending')`)
}
