// Package repository declares data access for every aggregate. Implementations
// live in sub-packages (postgres). Tenant-owned rows are always addressed
// together with their client ID.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// Store groups every repository bound to the same connection or transaction.
type Store struct {
	Clients     ClientRepository
	Plans       PlanRepository
	Licenses    LicenseRepository
	Users       UserRepository
	Admins      AdminRepository
	Teams       TeamRepository
	Projects    ProjectRepository
	Templates   TemplateRepository
	Columns     ColumnRepository
	Tasks       TaskRepository
	Milestones  MilestoneRepository
	Messages    MessageRepository
	Attachments AttachmentRepository
	Flags       FlagRepository
	Tickets     TicketRepository
}

// UnitOfWork runs fn inside one transaction. fn receives a Store bound to it;
// a returned error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx *Store) error) error
}
