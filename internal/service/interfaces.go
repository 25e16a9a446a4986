package service

import (
	"context"
	"time"

	"github.com/dmarakulin/learn-logbook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// AuthService handles server-side account registration, credential
// verification and JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// EventService implements the server-side calendar event operations. All
// methods are scoped to the owner carried in the arguments; validation
// happens here, persistence in the store layer.
type EventService interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	EventsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.Event, error)
	UpdateEvent(ctx context.Context, ownerID int64, eventID string, update models.EventUpdate) (models.Event, error)
	DeleteEvent(ctx context.Context, ownerID int64, eventID string) error
}

// JournalService implements the server-side study diary operations.
type JournalService interface {
	CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
	EntriesUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.JournalEntry, error)
	UpdateEntry(ctx context.Context, ownerID int64, entryID string, update models.JournalEntryUpdate) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, ownerID int64, entryID string) error
}

// SessionService implements the server-side timer session operations.
type SessionService interface {
	CreateSession(ctx context.Context, session models.TimerSession) (models.TimerSession, error)
	SessionsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.TimerSession, error)
	UpdateSession(ctx context.Context, ownerID int64, sessionID string, update models.TimerSessionUpdate) (models.TimerSession, error)
	DeleteSession(ctx context.Context, ownerID int64, sessionID string) error
}

// GoalService implements the server-side study goal operations.
type GoalService interface {
	CreateGoal(ctx context.Context, goal models.StudyGoal) (models.StudyGoal, error)
	GoalsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.StudyGoal, error)
	UpdateGoal(ctx context.Context, ownerID int64, goalID string, update models.StudyGoalUpdate) (models.StudyGoal, error)
	DeleteGoal(ctx context.Context, ownerID int64, goalID string) error
}
