package store

import (
	"github.com/dmarakulin/learn-logbook/internal/logger"
)

// Storages bundles every repository the server services depend on.
type Storages struct {
	UserRepository    UserRepository
	EventRepository   EventRepository
	JournalRepository JournalRepository
	GoalRepository    GoalRepository
	SessionRepository SessionRepository
}

// NewStorages wires all repositories onto the given database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		EventRepository:   NewEventRepository(db, log),
		JournalRepository: NewJournalRepository(db, log),
		GoalRepository:    NewGoalRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
	}
}
