package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/repository"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUnitOfWork_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM feature_flags WHERE key = ?").
			WithArgs("beta").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewUnitOfWork(db).Do(ctx, func(tx *repository.Store) error {
			return tx.Flags.Delete(ctx, "beta")
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := NewUnitOfWork(db).Do(ctx, func(tx *repository.Store) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		called := false
		err := NewUnitOfWork(db).Do(ctx, func(tx *repository.Store) error {
			called = true
			return nil
		})

		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestExpectOne(t *testing.T) {
	assert.NoError(t, expectOne(sqlmock.NewResult(0, 1), nil))
	assert.ErrorIs(t, expectOne(sqlmock.NewResult(0, 0), nil), sql.ErrNoRows)

	boom := errors.New("boom")
	assert.ErrorIs(t, expectOne(nil, boom), boom)
}

func TestMapErr(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "clients_slug_key"}
	err := mapErr(dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "clients_slug_key")

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(other), mapErr(other))
	assert.NoError(t, mapErr(nil))
}
