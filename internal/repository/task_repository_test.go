package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The toggle and bulk operations must each be a single SQL statement so
// the database's row-level atomicity is what serializes concurrent
// mutations. These tests pin the statement shapes.

func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock
}

func taskRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "completed", "priority", "due_date", "user_id", "created_at", "updated_at",
	}).AddRow(42, "Flip me", "", true, "medium", nil, "user_abc", now, now)
}

func TestToggleComplete_SingleAtomicStatement(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// The flip happens inside the UPDATE itself, never as a read
	// followed by a write
	mock.ExpectExec(`UPDATE "tasks" SET "completed"=NOT completed,"updated_at"=\$1 WHERE id = \$2 AND user_id = \$3`).
		WithArgs(sqlmock.AnyArg(), uint64(42), "user_abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(taskRows())

	task, err := repo.ToggleComplete("user_abc", 42)
	require.NoError(t, err)
	require.True(t, task.Completed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleComplete_NoRowMeansNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`UPDATE "tasks" SET "completed"=NOT completed`).
		WithArgs(sqlmock.AnyArg(), uint64(7), "user_other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.ToggleComplete("user_other", 7)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllComplete_OnlyMatchesIncomplete(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`UPDATE "tasks" SET "completed"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND completed = \$4`).
		WithArgs(true, sqlmock.AnyArg(), "user_abc", false).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.MarkAllComplete("user_abc")
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCompleted_OnlyMatchesCompleted(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE user_id = \$1 AND completed = \$2`).
		WithArgs("user_abc", true).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.ClearCompleted("user_abc")
	require.NoError(t, err)
	require.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ReportsWhetherARowWasRemoved(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint64(42), "user_abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(uint64(42), "user_abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete("user_abc", 42)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete("user_abc", 42)
	require.NoError(t, err)
	require.False(t, deleted, "a second delete finds nothing to remove")
	require.NoError(t, mock.ExpectationsWereMet())
}
