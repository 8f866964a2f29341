package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelQuery = "SELECT to_regclass('public.clients') IS NOT NULL"

func newLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l, &buf
}

func TestEnsureMigrated_Skip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	log, buf := newLogger()
	require.NoError(t, EnsureMigrated(context.Background(), db, log, "db"))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)
}

func TestEnsureMigrated_RunsAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for _, step := range steps {
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	log, buf := newLogger()
	require.NoError(t, EnsureMigrated(context.Background(), db, log, "db"))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, len(steps), strings.Count(buf.String(), `"event":"db_migration_step"`))
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)
}

func TestEnsureMigrated_StepFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(steps[1].SQL)).WillReturnError(errors.New("permission denied"))

	log, buf := newLogger()
	err = EnsureMigrated(context.Background(), db, log, "db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), steps[1].Name)
	assert.Contains(t, buf.String(), `"event":"db_migration_failed"`)
}

func TestEnsureMigrated_SentinelError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).WillReturnError(errors.New("conn refused"))

	log, _ := newLogger()
	err = EnsureMigrated(context.Background(), db, log, "db")
	assert.ErrorContains(t, err, "sentinel")
}

func TestSteps_CoverEveryTable(t *testing.T) {
	tables := []string{
		"clients", "plans", "licenses", "users", "admin_profiles", "teams", "team_members",
		"project_templates", "projects", "board_columns", "milestones", "tasks",
		"task_attachments", "messages", "feature_flags", "support_tickets", "ticket_replies",
	}
	var all strings.Builder
	for _, s := range steps {
		all.WriteString(s.SQL)
	}
	for _, tbl := range tables {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+tbl+" (", tbl)
	}
	assert.Equal(t, "seed_plans", steps[len(steps)-1].Name)
}
