package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daybook-app/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntryRepo(t *testing.T) (*EntryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewEntryRepository(db), mock
}

func entryColumns() []string {
	return []string{"id", "user_id", "title", "content", "category", "date", "created_at", "updated_at"}
}

func TestEntryRepository_Get_ScopedToOwner(t *testing.T) {
	repo, mock := newEntryRepo(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id, title, content, category, date").
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows(entryColumns()).
			AddRow(5, 1, "T", "C", "Work", now, now, now))

	entry, err := repo.Get(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.ID)
	assert.Equal(t, 1, entry.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Get_OtherOwnerLooksMissing(t *testing.T) {
	repo, mock := newEntryRepo(t)

	// The row exists for user 1; user 2's scoped query matches nothing.
	mock.ExpectQuery("SELECT id, user_id, title, content, category, date").
		WithArgs(5, 2).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepository_Create(t *testing.T) {
	repo, mock := newEntryRepo(t)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO journal_entries").
		WithArgs(1, "T", "C", "Work", date, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	created, err := repo.Create(context.Background(), types.Entry{
		UserID:   1,
		Title:    "T",
		Content:  "C",
		Category: "Work",
		Date:     date,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Update_WrongOwner(t *testing.T) {
	repo, mock := newEntryRepo(t)

	mock.ExpectExec("UPDATE journal_entries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), types.Entry{ID: 5, UserID: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepository_Delete_WrongOwner(t *testing.T) {
	repo, mock := newEntryRepo(t)

	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs(5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepository_ListByUserAndDateRange(t *testing.T) {
	repo, mock := newEntryRepo(t)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	inRange := start.Add(6 * time.Hour)

	mock.ExpectQuery("SELECT id, user_id, title, content, category, date").
		WithArgs(1, start, end).
		WillReturnRows(sqlmock.NewRows(entryColumns()).
			AddRow(1, 1, "A", "a", "Work", inRange, inRange, inRange).
			AddRow(2, 1, "B", "b", "Work", inRange, inRange, inRange))

	entries, err := repo.ListByUserAndDateRange(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newEntryRepo(t)

	mock.ExpectQuery("SELECT id, user_id, title, content, category, date").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(entryColumns()))

	entries, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
