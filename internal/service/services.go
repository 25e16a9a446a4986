package service

import (
	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/store"
)

// Services bundles every server-side service the transport layer depends on.
type Services struct {
	AuthService    AuthService
	EventService   EventService
	JournalService JournalService
	GoalService    GoalService
	SessionService SessionService
}

// NewServices wires all server services onto the given storages.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		EventService:   NewEventService(storages.EventRepository, logger),
		JournalService: NewJournalService(storages.JournalRepository, logger),
		GoalService:    NewGoalService(storages.GoalRepository, logger),
		SessionService: NewSessionService(storages.SessionRepository, logger),
	}
}
