package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTaskRepository creates a GormTaskRepository with a mocked SQL connection
func newMockTaskRepository(t *testing.T) (*GormTaskRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTaskRepository(gormDB), mock, mockDB
}

func taskColumns() []string {
	return []string{"id", "source", "task_type", "document_id", "document_number", "status", "version"}
}

func TestGormTaskRepository_FindByID(t *testing.T) {
	t.Run("finds existing task", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		taskID := uuid.New()
		documentID := uuid.New()

		rows := sqlmock.NewRows(taskColumns()).
			AddRow(taskID, "document", "inbound", documentID, "ORD-2026-0042", "pending", 1)

		mock.ExpectQuery(`SELECT \* FROM "inventory_tasks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(taskID, 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), taskID)

		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, task.TaskSourceDocument, found.Source)
		assert.Equal(t, "ORD-2026-0042", found.DocumentNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing task", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		taskID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_tasks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(taskID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), taskID)

		assert.Error(t, err)
		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_FindByDocument(t *testing.T) {
	t.Run("finds tasks for a document", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		documentID := uuid.New()

		rows := sqlmock.NewRows(taskColumns()).
			AddRow(uuid.New(), "document", "inbound", documentID, "ORD-2026-0042", "pending", 1).
			AddRow(uuid.New(), "document", "outbound", documentID, "ORD-2026-0042", "completed", 2)

		mock.ExpectQuery(`SELECT \* FROM "inventory_tasks" WHERE document_id = \$1 ORDER BY created_at ASC`).
			WithArgs(documentID).
			WillReturnRows(rows)

		tasks, err := repo.FindByDocument(context.Background(), documentID)

		assert.NoError(t, err)
		assert.Len(t, tasks, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_CountByStatus(t *testing.T) {
	t.Run("groups counts by status", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 4).
			AddRow("assigned", 2).
			AddRow("completed", 9)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "inventory_tasks" WHERE source = \$1 GROUP BY "status"`).
			WithArgs(task.TaskSourceDocument).
			WillReturnRows(rows)

		counts, err := repo.CountByStatus(context.Background(), task.TaskSourceDocument)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), counts[task.TaskStatusPending])
		assert.Equal(t, int64(2), counts[task.TaskStatusAssigned])
		assert.Equal(t, int64(9), counts[task.TaskStatusCompleted])
		assert.Zero(t, counts[task.TaskStatusCanceled])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_CountOverdue(t *testing.T) {
	t.Run("counts open tasks expected before the start of today", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		now := time.Date(2026, 1, 15, 12, 30, 0, 0, time.UTC)
		midnight := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_tasks" WHERE source = \$1 AND status IN \(\$2,\$3\) AND expected_date IS NOT NULL AND expected_date < \$4`).
			WithArgs(task.TaskSourceTrade, task.TaskStatusPending, task.TaskStatusAssigned, midnight).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountOverdue(context.Background(), task.TaskSourceTrade, now)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		tsk, err := task.NewDocumentTask(uuid.New(), "ORD-2026-0042", task.TaskTypeInbound)
		require.NoError(t, err)
		require.NoError(t, tsk.Complete(nil)) // version 2

		mock.ExpectExec(`UPDATE "inventory_tasks" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), tsk)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
