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

	"boardapi/internal/board"
	"boardapi/internal/model"
)

var taskRowColumns = []string{
	"id", "client_id", "project_id", "column_id", "milestone_id", "title", "description", "priority",
	"assignee_id", "due_date", "position", "completed_at", "archived_at", "deleted_at", "created_by", "created_at", "updated_at",
}

func TestColumnPostgres_LockByProject(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM board_columns WHERE project_id = (.+) ORDER BY position, id FOR UPDATE").
		WithArgs("p1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "client_id", "name", "color", "position", "wip_limit", "is_done", "created_at", "updated_at"}).
			AddRow("col1", "p1", "c1", "Todo", "", 0, nil, false, now, now).
			AddRow("col2", "p1", "c1", "Doing", "#f00", 1, 3, false, now, now))

	cols, err := NewColumnPostgres(db).LockByProject(context.Background(), "c1", "p1")

	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Nil(t, cols[0].WIPLimit)
	require.NotNil(t, cols[1].WIPLimit)
	assert.Equal(t, 3, *cols[1].WIPLimit)
}

func TestColumnPostgres_UpdatePositions(t *testing.T) {
	ctx := context.Background()

	t.Run("writes each slot", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec("UPDATE board_columns SET position").WithArgs("a", "c1", 0).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE board_columns SET position").WithArgs("b", "c1", 1).WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewColumnPostgres(db).UpdatePositions(ctx, "c1", []board.Slot{{ID: "a", Position: 0}, {ID: "b", Position: 1}})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row stops", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec("UPDATE board_columns SET position").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewColumnPostgres(db).UpdatePositions(ctx, "c1", []board.Slot{{ID: "a", Position: 0}, {ID: "b", Position: 1}})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestTaskPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("detached column scans as empty", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL`)).
			WithArgs("t1", "c1").
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow("t1", "c1", "p1", nil, "m1", "Write docs", "", "high", nil, nil, 0, nil, now, nil, "u1", now, now))

		task, err := NewTaskPostgres(db).FindByID(ctx, "c1", "t1")

		require.NoError(t, err)
		assert.Equal(t, "", task.ColumnID)
		require.NotNil(t, task.MilestoneID)
		assert.Equal(t, "m1", *task.MilestoneID)
		assert.NotNil(t, task.ArchivedAt)
		assert.Nil(t, task.AssigneeID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM tasks WHERE id").
			WithArgs("nope", "c1").
			WillReturnError(sql.ErrNoRows)

		_, err := NewTaskPostgres(db).FindByID(ctx, "c1", "nope")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestTaskPostgres_Create_EmptyColumnIsNull(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	task := &model.Task{ID: "t1", ClientID: "c1", ProjectID: "p1", Title: "x", Priority: "low", CreatedBy: "u1", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs("t1", "c1", "p1", nil, nil, "x", "", "low", nil, nil, 0, nil, "u1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewTaskPostgres(db).Create(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskPostgres_MoveToColumn(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE tasks SET (.+) completed_at = CASE WHEN").
		WithArgs("t1", "c1", "col2", 4, true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tasks SET (.+) completed_at = CASE WHEN").
		WithArgs("t2", "c1", "col2", 5, true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewTaskPostgres(db).MoveToColumn(context.Background(), "c1", []string{"t1", "t2"}, "col2", 4, true, now)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskPostgres_MilestoneCounts(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COUNT(completed_at)`)).
		WithArgs("m1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed"}).AddRow(4, 3))

	total, completed, err := NewTaskPostgres(db).MilestoneCounts(context.Background(), "c1", "m1")

	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 3, completed)
}

func TestTaskPostgres_PurgeDeleted(t *testing.T) {
	db, mock := newMock(t)
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM tasks WHERE deleted_at IS NOT NULL").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewTaskPostgres(db).PurgeDeleted(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMilestonePostgres_UpdateProgress(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	m := &model.Milestone{ID: "m1", ClientID: "c1", TotalTasks: 4, CompletedTasks: 4, Progress: 100, CompletedAt: &now, UpdatedAt: now}

	mock.ExpectExec("UPDATE milestones SET total_tasks").
		WithArgs("m1", "c1", 4, 4, 100, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewMilestonePostgres(db).UpdateProgress(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagePostgres_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	cols := []string{"id", "client_id", "project_id", "author_id", "parent_id", "body", "edited_at", "deleted_at", "created_at"}

	t.Run("first page", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("FROM messages (.+) ORDER BY created_at DESC, id DESC").
			WithArgs("p1", "c1", nil, 50).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("msg1", "c1", "p1", "u1", nil, "hi", nil, nil, now))

		items, err := NewMessagePostgres(db).List(ctx, "c1", "p1", nil, 50)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "hi", items[0].Body)
	})

	t.Run("before cursor", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("FROM messages").
			WithArgs("p1", "c1", now, 10).
			WillReturnRows(sqlmock.NewRows(cols))

		items, err := NewMessagePostgres(db).List(ctx, "c1", "p1", &now, 10)

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestAttachmentPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	a := &model.Attachment{ID: "a1", ClientID: "c1", TaskID: "t1", Filename: "brief.pdf", StoragePath: "attachments/c1/t1/a1.pdf",
		Size: 2048, ContentType: "application/pdf", UploadedBy: "u1", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO task_attachments").
		WithArgs(a.ID, a.ClientID, a.TaskID, a.Filename, a.StoragePath, a.Size, a.ContentType, a.UploadedBy, a.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "task_id", "filename", "storage_path", "size", "content_type", "uploaded_by", "created_at"}).
			AddRow(a.ID, a.ClientID, a.TaskID, a.Filename, a.StoragePath, a.Size, a.ContentType, a.UploadedBy, a.CreatedAt))

	got, err := NewAttachmentPostgres(db).Create(context.Background(), a)

	require.NoError(t, err)
	assert.Equal(t, a.StoragePath, got.StoragePath)
	assert.Equal(t, int64(2048), got.Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentPostgres_ListPurgeable(t *testing.T) {
	db, mock := newMock(t)
	cutoff := time.Now().UTC()
	mock.ExpectQuery("FROM task_attachments a\\s+JOIN tasks t").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "task_id", "filename", "storage_path", "size", "content_type", "uploaded_by", "created_at"}).
			AddRow("a1", "c1", "t1", "f.txt", "attachments/c1/t1/a1.txt", 1, "text/plain", "u1", cutoff))

	items, err := NewAttachmentPostgres(db).ListPurgeable(context.Background(), cutoff)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "attachments/c1/t1/a1.txt", items[0].StoragePath)
}
