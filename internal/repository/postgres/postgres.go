// Package postgres implements the repositories with database/sql and raw,
// parameterized SQL. It contains no business logic.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"boardapi/internal/repository"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// NewStore binds every repository to db, which may be a transaction.
func NewStore(db repository.DBTX) *repository.Store {
	return &repository.Store{
		Clients:     NewClientPostgres(db),
		Plans:       NewPlanPostgres(db),
		Licenses:    NewLicensePostgres(db),
		Users:       NewUserPostgres(db),
		Admins:      NewAdminPostgres(db),
		Teams:       NewTeamPostgres(db),
		Projects:    NewProjectPostgres(db),
		Templates:   NewTemplatePostgres(db),
		Columns:     NewColumnPostgres(db),
		Tasks:       NewTaskPostgres(db),
		Milestones:  NewMilestonePostgres(db),
		Messages:    NewMessagePostgres(db),
		Attachments: NewAttachmentPostgres(db),
		Flags:       NewFlagPostgres(db),
		Tickets:     NewTicketPostgres(db),
	}
}

// UnitOfWork runs callbacks in a database transaction.
type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Do(ctx context.Context, fn func(tx *repository.Store) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(NewStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback failed: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// expectOne turns "no row touched" into sql.ErrNoRows.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// mapErr translates unique violations into repository.ErrDuplicate.
func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func total(ctx context.Context, db repository.DBTX, q string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
