package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/model"
	"boardapi/internal/repository"
)

func TestFlagPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM feature_flags ORDER BY key").
		WillReturnRows(sqlmock.NewRows([]string{"key", "description", "enabled", "client_ids", "rollout_percent", "updated_at"}).
			AddRow("beta", "", true, `["c1","c2"]`, 0, now).
			AddRow("gantt", "", false, `[]`, 25, now))

	flags, err := NewFlagPostgres(db).List(context.Background())

	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, []string{"c1", "c2"}, flags[0].ClientIDs)
	assert.Equal(t, []string{}, flags[1].ClientIDs)
	assert.Equal(t, 25, flags[1].RolloutPercent)
}

func TestFlagPostgres_Upsert(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO feature_flags (.+) ON CONFLICT \\(key\\) DO UPDATE").
		WithArgs("beta", "Beta UI", true, `[]`, 10, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewFlagPostgres(db).Upsert(context.Background(), &model.FeatureFlag{Key: "beta", Description: "Beta UI", Enabled: true, RolloutPercent: 10, UpdatedAt: now})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagPostgres_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM feature_flags").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewFlagPostgres(db).Delete(context.Background(), "nope"), sql.ErrNoRows)
}

func TestTicketPostgres_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	cols := []string{"id", "client_id", "opened_by", "subject", "body", "status", "priority", "assigned_admin_id", "created_at", "updated_at", "resolved_at"}

	t.Run("unfiltered", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM support_tickets`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM support_tickets ORDER BY updated_at DESC, id DESC LIMIT $1 OFFSET $2`)).
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("tk1", "c1", "u1", "Help", "pls", "open", "high", nil, now, now, nil))

		res, err := NewTicketPostgres(db).List(ctx, repository.TicketFilter{}, repository.PageQuery{Limit: 20})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Nil(t, res.Items[0].AssignedAdminID)
	})

	t.Run("by client and status", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM support_tickets WHERE client_id = $1 AND status = $2`)).
			WithArgs("c1", "pending").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $3 OFFSET $4`)).
			WithArgs("c1", "pending", 10, 0).
			WillReturnRows(sqlmock.NewRows(cols))

		res, err := NewTicketPostgres(db).List(ctx, repository.TicketFilter{ClientID: "c1", Status: "pending"}, repository.PageQuery{Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTicketPostgres_ListReplies(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM ticket_replies WHERE ticket_id").
		WithArgs("tk1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_id", "author_id", "staff", "body", "created_at"}).
			AddRow("r1", "tk1", "u1", false, "first", now).
			AddRow("r2", "tk1", "admin", true, "on it", now))

	replies, err := NewTicketPostgres(db).ListReplies(context.Background(), "tk1")

	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.True(t, replies[1].Staff)
}
