package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  slug       TEXT        NOT NULL UNIQUE,
  status     TEXT        NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'suspended')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_plans",
		SQL: `CREATE TABLE IF NOT EXISTS plans (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  code         TEXT        NOT NULL UNIQUE,
  name         TEXT        NOT NULL,
  max_projects INTEGER     NOT NULL DEFAULT 0,
  max_seats    INTEGER     NOT NULL DEFAULT 0,
  price_cents  BIGINT      NOT NULL DEFAULT 0 CHECK (price_cents >= 0),
  active       BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_licenses",
		SQL: `CREATE TABLE IF NOT EXISTS licenses (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id  UUID        NOT NULL UNIQUE REFERENCES clients (id) ON DELETE CASCADE,
  plan_id    UUID        NOT NULL REFERENCES plans (id),
  seats      INTEGER     NOT NULL DEFAULT 0 CHECK (seats >= 0),
  status     TEXT        NOT NULL CHECK (status IN ('active', 'expired', 'revoked')),
  starts_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  expires_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id     UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  email         TEXT        NOT NULL,
  name          TEXT        NOT NULL,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL CHECK (role IN ('owner', 'admin', 'member', 'viewer')),
  active        BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email));
CREATE INDEX IF NOT EXISTS idx_users_client ON users (client_id);`,
	},
	{
		Name: "create_table_admin_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS admin_profiles (
  user_id    UUID        PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
  role       TEXT        NOT NULL CHECK (role IN ('super_admin', 'operations', 'support')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_teams",
		SQL: `CREATE TABLE IF NOT EXISTS teams (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id   UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (client_id, name)
);`,
	},
	{
		Name: "create_table_team_members",
		SQL: `CREATE TABLE IF NOT EXISTS team_members (
  team_id   UUID        NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
  user_id   UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  role      TEXT        NOT NULL CHECK (role IN ('lead', 'member')),
  joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (team_id, user_id)
);`,
	},
	{
		Name: "create_table_project_templates",
		SQL: `CREATE TABLE IF NOT EXISTS project_templates (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id   UUID        REFERENCES clients (id) ON DELETE CASCADE,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  columns     JSONB       NOT NULL DEFAULT '[]',
  milestones  JSONB       NOT NULL DEFAULT '[]',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id   UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  team_id     UUID        REFERENCES teams (id) ON DELETE SET NULL,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  created_by  UUID        NOT NULL REFERENCES users (id),
  archived_at TIMESTAMPTZ,
  deleted_at  TIMESTAMPTZ,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_projects_client ON projects (client_id) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_table_board_columns",
		SQL: `CREATE TABLE IF NOT EXISTS board_columns (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id  UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  project_id UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  color      TEXT        NOT NULL DEFAULT '',
  position   INTEGER     NOT NULL CHECK (position >= 0),
  wip_limit  INTEGER     CHECK (wip_limit > 0),
  is_done    BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_board_columns_project ON board_columns (project_id, position);`,
	},
	{
		Name: "create_table_milestones",
		SQL: `CREATE TABLE IF NOT EXISTS milestones (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id       UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  project_id      UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  title           TEXT        NOT NULL,
  description     TEXT        NOT NULL DEFAULT '',
  due_date        TIMESTAMPTZ,
  total_tasks     INTEGER     NOT NULL DEFAULT 0,
  completed_tasks INTEGER     NOT NULL DEFAULT 0,
  progress        INTEGER     NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  completed_at    TIMESTAMPTZ,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones (project_id);`,
	},
	{
		Name: "create_table_tasks",
		SQL: `CREATE TABLE IF NOT EXISTS tasks (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id    UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  project_id   UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  column_id    UUID        REFERENCES board_columns (id) ON DELETE SET NULL,
  milestone_id UUID        REFERENCES milestones (id) ON DELETE SET NULL,
  title        TEXT        NOT NULL,
  description  TEXT        NOT NULL DEFAULT '',
  priority     TEXT        NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
  assignee_id  UUID        REFERENCES users (id) ON DELETE SET NULL,
  due_date     TIMESTAMPTZ,
  position     INTEGER     NOT NULL DEFAULT 0 CHECK (position >= 0),
  completed_at TIMESTAMPTZ,
  archived_at  TIMESTAMPTZ,
  deleted_at   TIMESTAMPTZ,
  created_by   UUID        NOT NULL REFERENCES users (id),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks (column_id, position) WHERE archived_at IS NULL AND deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_tasks_milestone ON tasks (milestone_id);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks (project_id);`,
	},
	{
		Name: "create_table_task_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS task_attachments (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id    UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  task_id      UUID        NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  uploaded_by  UUID        NOT NULL REFERENCES users (id),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_task_attachments_task ON task_attachments (task_id);`,
	},
	{
		Name: "create_table_messages",
		SQL: `CREATE TABLE IF NOT EXISTS messages (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id  UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  project_id UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  author_id  UUID        NOT NULL REFERENCES users (id),
  parent_id  UUID        REFERENCES messages (id) ON DELETE SET NULL,
  body       TEXT        NOT NULL,
  edited_at  TIMESTAMPTZ,
  deleted_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_messages_project_created ON messages (project_id, created_at DESC);`,
	},
	{
		Name: "create_table_feature_flags",
		SQL: `CREATE TABLE IF NOT EXISTS feature_flags (
  key             TEXT        PRIMARY KEY,
  description     TEXT        NOT NULL DEFAULT '',
  enabled         BOOLEAN     NOT NULL DEFAULT FALSE,
  client_ids      JSONB       NOT NULL DEFAULT '[]',
  rollout_percent INTEGER     NOT NULL DEFAULT 0 CHECK (rollout_percent BETWEEN 0 AND 100),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_support_tickets",
		SQL: `CREATE TABLE IF NOT EXISTS support_tickets (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id         UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  opened_by         UUID        NOT NULL REFERENCES users (id),
  subject           TEXT        NOT NULL,
  body              TEXT        NOT NULL,
  status            TEXT        NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'pending', 'resolved', 'closed')),
  priority          TEXT        NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'urgent')),
  assigned_admin_id UUID        REFERENCES users (id) ON DELETE SET NULL,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  resolved_at       TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_support_tickets_status ON support_tickets (status, updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_support_tickets_client ON support_tickets (client_id);`,
	},
	{
		Name: "create_table_ticket_replies",
		SQL: `CREATE TABLE IF NOT EXISTS ticket_replies (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  ticket_id  UUID        NOT NULL REFERENCES support_tickets (id) ON DELETE CASCADE,
  author_id  UUID        NOT NULL REFERENCES users (id),
  staff      BOOLEAN     NOT NULL DEFAULT FALSE,
  body       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_ticket_replies_ticket ON ticket_replies (ticket_id, created_at);`,
	},
	{
		Name: "seed_plans",
		SQL: `INSERT INTO plans (code, name, max_projects, max_seats, price_cents) VALUES
  ('free', 'Free', 3, 5, 0),
  ('pro', 'Pro', 0, 50, 4900)
ON CONFLICT (code) DO NOTHING;`,
	},
}

// EnsureMigrated creates the schema unless the sentinel table 'clients' already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	l := log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	l.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.clients') IS NOT NULL").Scan(&exists)
	if err != nil {
		l.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		l.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	l.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("applying migrations")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			l.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		l.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	l.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("migrations complete")

	return nil
}
