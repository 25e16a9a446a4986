package store

import (
	"context"
	"time"

	"github.com/dmarakulin/learn-logbook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// UserRepository manages user account records.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// EventRepository manages calendar event records. Every method is scoped to
// the owning user: records belonging to other users are invisible.
type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetEventsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.Event, error)
	UpdateEvent(ctx context.Context, ownerID int64, eventID string, update models.EventUpdate) (models.Event, error)
	DeleteEvent(ctx context.Context, ownerID int64, eventID string) error
}

// JournalRepository manages study diary entries.
type JournalRepository interface {
	CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
	GetEntriesUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.JournalEntry, error)
	UpdateEntry(ctx context.Context, ownerID int64, entryID string, update models.JournalEntryUpdate) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, ownerID int64, entryID string) error
}

// SessionRepository manages timer session records.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.TimerSession) (models.TimerSession, error)
	GetSessionsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.TimerSession, error)
	UpdateSession(ctx context.Context, ownerID int64, sessionID string, update models.TimerSessionUpdate) (models.TimerSession, error)
	DeleteSession(ctx context.Context, ownerID int64, sessionID string) error
}

// GoalRepository manages study goals.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal models.StudyGoal) (models.StudyGoal, error)
	GetGoalsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.StudyGoal, error)
	UpdateGoal(ctx context.Context, ownerID int64, goalID string, update models.StudyGoalUpdate) (models.StudyGoal, error)
	DeleteGoal(ctx context.Context, ownerID int64, goalID string) error
}
