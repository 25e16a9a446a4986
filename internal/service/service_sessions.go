package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/models"
)

// sessionService is the concrete implementation of [SessionService].
type sessionService struct {
	sessionRepository store.SessionRepository
	logger            *logger.Logger
}

// NewSessionService constructs a [SessionService] backed by the given
// repository.
func NewSessionService(sessionRepository store.SessionRepository, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		logger:            logger,
	}
}

func validSessionType(sessionType string) bool {
	return sessionType == models.SessionStudy || sessionType == models.SessionBreak
}

func (s *sessionService) CreateSession(ctx context.Context, session models.TimerSession) (models.TimerSession, error) {
	log := logger.FromContext(ctx)

	if session.OwnerID == 0 {
		return models.TimerSession{}, ErrValidationNoUserID
	}
	if !validSessionType(session.Type) {
		return models.TimerSession{}, ErrValidationBadSessionType
	}
	if session.DurationSeconds < 0 {
		return models.TimerSession{}, ErrValidationNegativeDuration
	}

	saved, err := s.sessionRepository.CreateSession(ctx, session)
	if err != nil {
		log.Err(err).Int64("owner", session.OwnerID).Msg("session creation ended with error")
		return models.TimerSession{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	return saved, nil
}

func (s *sessionService) SessionsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.TimerSession, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrValidationNoUserID
	}

	sessions, err := s.sessionRepository.GetSessionsUpdatedSince(ctx, ownerID, since)
	if err != nil {
		log.Err(err).Int64("owner", ownerID).Msg("session delta query ended with error")
		return nil, fmt.Errorf("session delta query ended with error: %w", err)
	}

	return sessions, nil
}

func (s *sessionService) UpdateSession(ctx context.Context, ownerID int64, sessionID string, update models.TimerSessionUpdate) (models.TimerSession, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.TimerSession{}, ErrValidationNoUserID
	}
	if update.IsEmpty() {
		return models.TimerSession{}, ErrValidationEmptyUpdate
	}
	if update.Type != nil && !validSessionType(*update.Type) {
		return models.TimerSession{}, ErrValidationBadSessionType
	}
	if update.DurationSeconds != nil && *update.DurationSeconds < 0 {
		return models.TimerSession{}, ErrValidationNegativeDuration
	}

	updated, err := s.sessionRepository.UpdateSession(ctx, ownerID, sessionID, update)
	if err != nil {
		log.Err(err).Str("session", sessionID).Msg("session update ended with error")
		return models.TimerSession{}, fmt.Errorf("session update ended with error: %w", err)
	}

	return updated, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, ownerID int64, sessionID string) error {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return ErrValidationNoUserID
	}

	if err := s.sessionRepository.DeleteSession(ctx, ownerID, sessionID); err != nil {
		log.Err(err).Str("session", sessionID).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}
