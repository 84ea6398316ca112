package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/visitor/models"
	"gatehouse/pkg/platform/sentinel"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock.New")
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func visitorRow(v *models.Visitor) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone_number",
		"purpose", "time_in", "time_out", "status", "deleted", "created_at", "modified_at",
	})
	var modified any
	if v.ModifiedAt != nil {
		modified = *v.ModifiedAt
	}
	rows.AddRow(uuid.UUID(v.ID), v.FirstName, v.LastName, v.Email, v.PhoneNumber,
		v.Purpose, v.TimeIn, v.TimeOut, string(v.Status), v.Deleted, v.CreatedAt, modified)
	return rows
}

func sampleVisitor() *models.Visitor {
	return &models.Visitor{
		ID:          models.VisitorID(uuid.New()),
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "a@x.com",
		PhoneNumber: "123",
		Purpose:     "visit",
		TimeIn:      "09:00",
		TimeOut:     "10:00",
		Status:      models.StatusActive,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPostgresFindByID(t *testing.T) {
	t.Run("scans a full record", func(t *testing.T) {
		s, mock := newMockStore(t)
		v := sampleVisitor()

		mock.ExpectQuery("SELECT .+ FROM visitors WHERE id =").
			WithArgs(uuid.UUID(v.ID)).
			WillReturnRows(visitorRow(v))

		found, err := s.FindByID(context.Background(), v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.Email, found.Email)
		assert.Equal(t, models.StatusActive, found.Status)
		assert.Nil(t, found.ModifiedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps no rows to ErrNotFound", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := models.VisitorID(uuid.New())

		mock.ExpectQuery("SELECT .+ FROM visitors WHERE id =").
			WithArgs(uuid.UUID(id)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestPostgresUpdate(t *testing.T) {
	t.Run("zero rows affected means not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		v := sampleVisitor()

		mock.ExpectExec("UPDATE visitors").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), v), sentinel.ErrNotFound)
	})

	t.Run("existing record updates cleanly", func(t *testing.T) {
		s, mock := newMockStore(t)
		v := sampleVisitor()

		mock.ExpectExec("UPDATE visitors").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), v))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresDelete(t *testing.T) {
	s, mock := newMockStore(t)
	id := models.VisitorID(uuid.New())

	mock.ExpectExec("DELETE FROM visitors WHERE id =").
		WithArgs(uuid.UUID(id)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), id), sentinel.ErrNotFound)
}

func TestPostgresList(t *testing.T) {
	t.Run("counts the full set and pages the slice", func(t *testing.T) {
		s, mock := newMockStore(t)
		v := sampleVisitor()

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM visitors WHERE deleted =").
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
		mock.ExpectQuery("SELECT .+ FROM visitors WHERE deleted = .+ ORDER BY seq LIMIT").
			WithArgs(false, 10, 10).
			WillReturnRows(visitorRow(v))

		page, total, err := s.List(context.Background(), models.ListFilter{Page: 2, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 42, total)
		assert.Len(t, page, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search and status extend the predicate", func(t *testing.T) {
		s, mock := newMockStore(t)
		inactive := models.StatusInactive

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM visitors WHERE deleted = .+ ILIKE .+ AND status =").
			WithArgs(true, "%lee%", "inactive").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT .+ FROM visitors WHERE deleted = .+ ORDER BY seq LIMIT").
			WithArgs(true, "%lee%", "inactive", 10, 0).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "first_name", "last_name", "email", "phone_number",
				"purpose", "time_in", "time_out", "status", "deleted", "created_at", "modified_at",
			}))

		page, total, err := s.List(context.Background(), models.ListFilter{
			Search:      "lee",
			ShowDeleted: true,
			Status:      &inactive,
		})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, page)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresBulk(t *testing.T) {
	t.Run("UpdateStatus issues one set-oriented update", func(t *testing.T) {
		s, mock := newMockStore(t)
		ids := []models.VisitorID{
			models.VisitorID(uuid.New()),
			models.VisitorID(uuid.New()),
		}

		mock.ExpectExec("UPDATE visitors SET status = .+ WHERE id = ANY").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.UpdateStatus(context.Background(), ids, models.StatusInactive))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SetDeleted tolerates zero matches", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectExec("UPDATE visitors SET deleted = .+ WHERE id = ANY").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, s.SetDeleted(context.Background(), []models.VisitorID{models.VisitorID(uuid.New())}, true))
	})
}
