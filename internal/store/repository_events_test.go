package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &eventRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func eventRows(events ...models.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows(eventColumns)
	for _, e := range events {
		extra, _ := e.Extra.Value()
		rows.AddRow(e.ID, e.OwnerID, e.Title, e.Description, e.StartTime, e.EndTime,
			e.Category, e.IsBackup, e.Completed, e.RRule, extra, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestCreateEvent_AssignsServerFields(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	now := time.Now().Truncate(time.Second)
	event := models.Event{
		OwnerID:   42,
		Title:     "calculus revision",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Category:  models.CategoryRevision,
	}

	mock.ExpectQuery("INSERT INTO calendar_events").
		WillReturnRows(eventRows(models.Event{
			ID: "11111111-2222-3333-4444-555555555555", OwnerID: 42,
			Title: event.Title, StartTime: now, EndTime: now.Add(time.Hour),
			Category: event.Category, CreatedAt: now, UpdatedAt: now,
		}))

	saved, err := repo.CreateEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, int64(42), saved.OwnerID)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestGetEventsUpdatedSince_ReturnsDeltasOnly(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	touched := models.Event{
		ID: "aaa", OwnerID: 42, Title: "physics lab",
		StartTime: since.Add(24 * time.Hour), EndTime: since.Add(26 * time.Hour),
		CreatedAt: since.Add(-time.Hour), UpdatedAt: since.Add(time.Hour),
	}

	mock.ExpectQuery("SELECT (.+) FROM calendar_events").
		WithArgs(int64(42), since).
		WillReturnRows(eventRows(touched))

	got, err := repo.GetEventsUpdatedSince(context.Background(), 42, since)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "aaa", got[0].ID)
	assert.Equal(t, "physics lab", got[0].Title)
}

func TestGetEventsUpdatedSince_EmptyResultIsNotAnError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM calendar_events").
		WillReturnRows(eventRows())

	got, err := repo.GetEventsUpdatedSince(context.Background(), 42, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	title := "renamed"
	mock.ExpectQuery("UPDATE calendar_events").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateEvent(context.Background(), 42, "missing-id", models.EventUpdate{Title: &title})
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateEvent_EmptyUpdateRejected(t *testing.T) {
	repo, _, db := newTestEventRepo(t)
	defer db.Close()

	_, err := repo.UpdateEvent(context.Background(), 42, "any-id", models.EventUpdate{})
	require.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestDeleteEvent_AbsentRowIsNoop(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM calendar_events").
		WithArgs(int64(42), "ghost-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteEvent(context.Background(), 42, "ghost-id")
	require.NoError(t, err)
}

func TestDeleteEvent_DriverErrorIsWrapped(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM calendar_events").
		WillReturnError(errors.New("connection reset"))

	err := repo.DeleteEvent(context.Background(), 42, "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}
