package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/config"
)

func TestPostgresURL(t *testing.T) {
	full := config.DatabaseConfig{Host: "db", Port: "5432", User: "board", Password: "s3cret", Name: "boards", SSLMode: "disable"}

	tests := []struct {
		name    string
		mutate  func(c *config.DatabaseConfig)
		want    string
		wantErr string
	}{
		{
			name: "all settings",
			want: "postgres://board:s3cret@db:5432/boards?application_name=boardapi&sslmode=disable",
		},
		{
			name:   "no password or sslmode",
			mutate: func(c *config.DatabaseConfig) { c.Password, c.SSLMode = "", "" },
			want:   "postgres://board@db:5432/boards?application_name=boardapi",
		},
		{
			name:   "ipv6 host is bracketed",
			mutate: func(c *config.DatabaseConfig) { c.Host = "::1" },
			want:   "postgres://board:s3cret@[::1]:5432/boards?application_name=boardapi&sslmode=disable",
		},
		{
			name:   "password is escaped",
			mutate: func(c *config.DatabaseConfig) { c.Password = "p@ss/word" },
			want:   "postgres://board:p%40ss%2Fword@db:5432/boards?application_name=boardapi&sslmode=disable",
		},
		{
			name:    "missing fields are listed",
			mutate:  func(c *config.DatabaseConfig) { c.Host, c.Name = "", "" },
			wantErr: "database host, name required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := full
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			got, err := PostgresURL(c)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrIncompleteConfig)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func stubOpen(t *testing.T, db *sql.DB, err error) *string {
	t.Helper()
	var gotDSN string
	orig := sqlOpen
	sqlOpen = func(_, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
	return &gotDSN
}

func TestNewPostgres(t *testing.T) {
	ctx := context.Background()
	conf := config.DatabaseConfig{
		Host: "db", Port: "5432", User: "board", Name: "boards",
		MaxOpenConns: 8, MaxIdleConns: 2, ConnMaxLifetimeSec: 60,
	}

	t.Run("pings and applies pool settings", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dsn := stubOpen(t, db, nil)
		mock.ExpectPing()

		got, err := NewPostgres(ctx, conf)
		require.NoError(t, err)
		assert.Same(t, db, got)
		assert.Equal(t, 8, got.Stats().MaxOpenConnections)
		assert.Contains(t, *dsn, "application_name=boardapi")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open fails", func(t *testing.T) {
		stubOpen(t, nil, errors.New("driver missing"))

		got, err := NewPostgres(ctx, conf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open postgres: driver missing")
		assert.Nil(t, got)
	})

	t.Run("ping fails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		got, err := NewPostgres(ctx, conf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping postgres: connection refused")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incomplete config never opens", func(t *testing.T) {
		stubOpen(t, nil, errors.New("must not be called"))

		got, err := NewPostgres(ctx, config.DatabaseConfig{})
		assert.ErrorIs(t, err, ErrIncompleteConfig)
		assert.Nil(t, got)
	})
}
