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

// eventRepository is the PostgreSQL-backed implementation of [EventRepository].
// Record IDs are UUID strings assigned here on insert; updated_at is bumped by
// every UPDATE so the delta query picks changed records up.
type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEvent inserts a new calendar event and returns it with all
// server-assigned fields (ID, CreatedAt, UpdatedAt) populated.
func (r *eventRepository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	event.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, createEvent,
		event.ID, event.OwnerID, event.Title, event.Description,
		event.StartTime, event.EndTime, event.Category,
		event.IsBackup, event.Completed, event.RRule, event.Extra)

	saved, err := scanEvent(row)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.CreateEvent").Msg("error: insert failed")
		return models.Event{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// GetEventsUpdatedSince returns the owner's events touched strictly after
// since, oldest first. An empty result is not an error.
func (r *eventRepository) GetEventsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatedSinceQuery(models.Event{}.TableName(), eventColumns, ownerID, since)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.GetEventsUpdatedSince").Msg("error: building query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.GetEventsUpdatedSince").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Err(err).Str("func", "*eventRepository.GetEventsUpdatedSince").Msg("error: scanning error")
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return events, nil
}

// UpdateEvent applies a partial update to the owner's event and returns the
// updated record.
//
// Error handling:
//   - no matching row → [ErrRecordNotFound].
//   - empty update → [ErrEmptyUpdate].
func (r *eventRepository) UpdateEvent(ctx context.Context, ownerID int64, eventID string, update models.EventUpdate) (models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEventQuery(ownerID, eventID, update)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.Event{}, err
		}
		log.Err(err).Str("func", "*eventRepository.UpdateEvent").Msg("error: building query failed")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*eventRepository.UpdateEvent").Msg("error: update failed")
		return models.Event{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteEvent removes the owner's event. Deleting an absent event is a no-op,
// making the operation idempotent.
func (r *eventRepository) DeleteEvent(ctx context.Context, ownerID int64, eventID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteEvent, ownerID, eventID); err != nil {
		log.Err(err).Str("func", "*eventRepository.DeleteEvent").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID, &event.OwnerID, &event.Title, &event.Description,
		&event.StartTime, &event.EndTime, &event.Category,
		&event.IsBackup, &event.Completed, &event.RRule, &event.Extra,
		&event.CreatedAt, &event.UpdatedAt)
	return event, err
}
