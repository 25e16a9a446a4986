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

func newTestGoalRepo(t *testing.T) (*goalRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &goalRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func goalRows(goals ...models.StudyGoal) *sqlmock.Rows {
	rows := sqlmock.NewRows(goalColumns)
	for _, g := range goals {
		rows.AddRow(g.ID, g.OwnerID, g.Title, g.TargetMinutes, g.ProgressMinutes,
			g.Deadline, g.Completed, g.CreatedAt, g.UpdatedAt)
	}
	return rows
}

func TestCreateGoal_AssignsServerFields(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	now := time.Now().Truncate(time.Second)
	goal := models.StudyGoal{
		OwnerID:       42,
		Title:         "pass linear algebra",
		TargetMinutes: 1200,
	}

	mock.ExpectQuery("INSERT INTO study_goals").
		WillReturnRows(goalRows(models.StudyGoal{
			ID: "11111111-2222-3333-4444-555555555555", OwnerID: 42,
			Title: goal.Title, TargetMinutes: goal.TargetMinutes,
			CreatedAt: now, UpdatedAt: now,
		}))

	saved, err := repo.CreateGoal(context.Background(), goal)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, int64(42), saved.OwnerID)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestGetGoalsUpdatedSince_ReturnsDeltasOnly(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	touched := models.StudyGoal{
		ID: "aaa", OwnerID: 42, Title: "finish chapter five",
		ProgressMinutes: 300,
		CreatedAt:       since.Add(-time.Hour), UpdatedAt: since.Add(time.Hour),
	}

	mock.ExpectQuery("SELECT (.+) FROM study_goals").
		WithArgs(int64(42), since).
		WillReturnRows(goalRows(touched))

	got, err := repo.GetGoalsUpdatedSince(context.Background(), 42, since)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "aaa", got[0].ID)
	assert.Equal(t, 300, got[0].ProgressMinutes)
}

func TestGetGoalsUpdatedSince_EmptyResultIsNotAnError(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM study_goals").
		WillReturnRows(goalRows())

	got, err := repo.GetGoalsUpdatedSince(context.Background(), 42, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateGoal_NotFound(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	progress := 600
	mock.ExpectQuery("UPDATE study_goals").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateGoal(context.Background(), 42, "missing-id", models.StudyGoalUpdate{ProgressMinutes: &progress})
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateGoal_EmptyUpdateRejected(t *testing.T) {
	repo, _, db := newTestGoalRepo(t)
	defer db.Close()

	_, err := repo.UpdateGoal(context.Background(), 42, "any-id", models.StudyGoalUpdate{})
	require.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestDeleteGoal_AbsentRowIsNoop(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM study_goals").
		WithArgs(int64(42), "ghost-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteGoal(context.Background(), 42, "ghost-id")
	require.NoError(t, err)
}

func TestDeleteGoal_DriverErrorIsWrapped(t *testing.T) {
	repo, mock, db := newTestGoalRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM study_goals").
		WillReturnError(errors.New("connection reset"))

	err := repo.DeleteGoal(context.Background(), 42, "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}
