package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/google/uuid"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.TimerSession) (models.TimerSession, error) {
	log := logger.FromContext(ctx)

	session.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, createTimerSession,
		session.ID, session.OwnerID, session.Type, session.DurationSeconds)

	saved, err := scanTimerSession(row)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: insert failed")
		return models.TimerSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *sessionRepository) GetSessionsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.TimerSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatedSinceQuery(models.TimerSession{}.TableName(), sessionColumns, ownerID, since)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSessionsUpdatedSince").Msg("error: building query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSessionsUpdatedSince").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.TimerSession, 0)
	for rows.Next() {
		session, err := scanTimerSession(rows)
		if err != nil {
			log.Err(err).Str("func", "*sessionRepository.GetSessionsUpdatedSince").Msg("error: scanning error")
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepository) UpdateSession(ctx context.Context, ownerID int64, sessionID string, update models.TimerSessionUpdate) (models.TimerSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateSessionQuery(ownerID, sessionID, update)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.TimerSession{}, err
		}
		log.Err(err).Str("func", "*sessionRepository.UpdateSession").Msg("error: building query failed")
		return models.TimerSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanTimerSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimerSession{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.UpdateSession").Msg("error: update failed")
		return models.TimerSession{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, ownerID int64, sessionID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteTimerSession, ownerID, sessionID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanTimerSession(row rowScanner) (models.TimerSession, error) {
	var session models.TimerSession
	err := row.Scan(
		&session.ID, &session.OwnerID, &session.Type, &session.DurationSeconds,
		&session.CreatedAt, &session.UpdatedAt)
	return session, err
}
