package planner

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepo(sqlx.NewDb(db, "postgres")), mock
}

var (
	weddingRows = []string{"id", "name", "date", "venue_name", "created_at", "updated_at"}
	guestRows   = []string{"id", "wedding_id", "name", "email", "phone", "plus_one_count", "dietary_notes", "created_at", "updated_at"}
	taskRows    = []string{"id", "wedding_id", "title", "status", "priority", "created_at", "updated_at"}
	entryRows   = []string{"id", "wedding_id", "guest_name", "message", "is_public", "created_at", "updated_at"}
)

func TestGetWedding(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns the wedding", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM weddings WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(weddingRows).
				AddRow(int64(1), "Alex & Jordan Wedding", date, "Rose Garden Estate", now, now))

		w, err := repo.GetWedding(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, int64(1), w.ID)
		assert.Equal(t, "Alex & Jordan Wedding", w.Name)
		assert.Equal(t, "2026-06-01", w.Date.String())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when no row matches", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM weddings WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows(weddingRows))

		w, err := repo.GetWedding(context.Background(), 999)
		require.NoError(t, err)
		assert.Nil(t, w)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListWeddingsOrdersByDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM weddings ORDER BY date ASC`).
		WillReturnRows(sqlmock.NewRows(weddingRows).
			AddRow(int64(2), "Earlier", now, "A", now, now).
			AddRow(int64(1), "Later", now, "B", now, now))

	weddings, err := repo.ListWeddings(context.Background())
	require.NoError(t, err)
	require.Len(t, weddings, 2)
	assert.Equal(t, "Earlier", weddings[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListGuests(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	t.Run("with a wedding filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM guests WHERE wedding_id = \$1 ORDER BY created_at DESC`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(guestRows).
				AddRow(int64(5), int64(1), "Jane", nil, nil, 0, nil, now, now))

		guests, err := repo.ListGuests(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, guests, 1)
		assert.Equal(t, "Jane", guests[0].Name)
		assert.Nil(t, guests[0].Email)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without a filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM guests ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows(guestRows))

		guests, err := repo.ListGuests(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, guests)
		assert.NotNil(t, guests)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateGuest(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	email := "jane@example.com"

	mock.ExpectQuery(`INSERT INTO guests .* RETURNING id, created_at, updated_at`).
		WithArgs(int64(1), "Jane", "jane@example.com", nil, int64(2), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	g := &Guest{WeddingID: 1, Name: "Jane", Email: &email, PlusOneCount: 2}
	require.NoError(t, repo.CreateGuest(context.Background(), g))
	assert.Equal(t, int64(7), g.ID)
	assert.False(t, g.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE tasks SET .* WHERE id = \$\d+ RETURNING updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	task := &Task{ID: 3, WeddingID: 1, Title: "Cake", Status: StatusDone, Priority: PriorityLow}
	require.NoError(t, repo.UpdateTask(context.Background(), task))
	assert.Equal(t, now, task.UpdatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWedding(t *testing.T) {
	repo, mock := newMockRepo(t)

	t.Run("reports a deleted row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM weddings WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.DeleteWedding(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reports a missing row", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM weddings WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.DeleteWedding(context.Background(), 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWeddingData(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("loads children in ascending creation order", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM weddings WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(weddingRows).
				AddRow(int64(1), "W", date, "V", now, now))
		mock.ExpectQuery(`SELECT .* FROM guests WHERE wedding_id = \$1 ORDER BY created_at ASC`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(guestRows).
				AddRow(int64(2), int64(1), "G", nil, nil, 0, nil, now, now))
		mock.ExpectQuery(`SELECT .* FROM tasks WHERE wedding_id = \$1 ORDER BY created_at ASC`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(taskRows).
				AddRow(int64(3), int64(1), "T", 1, 2, now, now))
		mock.ExpectQuery(`SELECT .* FROM guestbook_entries WHERE wedding_id = \$1 ORDER BY created_at ASC`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(entryRows).
				AddRow(int64(4), int64(1), "N", "M", true, now, now))

		data, err := repo.WeddingData(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.Equal(t, int64(1), data.Wedding.ID)
		require.Len(t, data.Guests, 1)
		require.Len(t, data.Tasks, 1)
		assert.Equal(t, StatusInProgress, data.Tasks[0].Status)
		assert.Equal(t, PriorityHigh, data.Tasks[0].Priority)
		require.Len(t, data.GuestbookEntries, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for a missing wedding", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM weddings WHERE id = \$1`).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows(weddingRows))

		data, err := repo.WeddingData(context.Background(), 999)
		require.NoError(t, err)
		assert.Nil(t, data)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
