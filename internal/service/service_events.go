package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/teambition/rrule-go"
)

// eventService is the concrete implementation of [EventService]. It validates
// inbound events and delegates persistence to [store.EventRepository].
type eventService struct {
	eventRepository store.EventRepository
	logger          *logger.Logger
}

// NewEventService constructs an [EventService] backed by the given repository.
func NewEventService(eventRepository store.EventRepository, logger *logger.Logger) EventService {
	return &eventService{
		eventRepository: eventRepository,
		logger:          logger,
	}
}

// CreateEvent validates and persists a new calendar event.
//
// Returns the stored event with server-assigned ID and timestamps, or:
//   - ErrValidationNoUserID if no owner is set.
//   - ErrValidationEmptyTitle if the title is blank.
//   - ErrValidationEndBeforeStart if the time range is inverted.
//   - ErrValidationBadRecurrence if RRule is set but unparsable.
func (s *eventService) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	if err := validateEvent(event); err != nil {
		log.Error().Err(err).Int64("owner", event.OwnerID).Msg("event validation failed")
		return models.Event{}, err
	}

	saved, err := s.eventRepository.CreateEvent(ctx, event)
	if err != nil {
		log.Err(err).Int64("owner", event.OwnerID).Msg("event creation ended with error")
		return models.Event{}, fmt.Errorf("event creation ended with error: %w", err)
	}

	return saved, nil
}

// EventsUpdatedSince returns the owner's events touched strictly after since.
// The zero since value means "everything".
func (s *eventService) EventsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrValidationNoUserID
	}

	events, err := s.eventRepository.GetEventsUpdatedSince(ctx, ownerID, since)
	if err != nil {
		log.Err(err).Int64("owner", ownerID).Msg("event delta query ended with error")
		return nil, fmt.Errorf("event delta query ended with error: %w", err)
	}

	return events, nil
}

// UpdateEvent validates and applies a partial update to the owner's event.
func (s *eventService) UpdateEvent(ctx context.Context, ownerID int64, eventID string, update models.EventUpdate) (models.Event, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.Event{}, ErrValidationNoUserID
	}
	if update.IsEmpty() {
		return models.Event{}, ErrValidationEmptyUpdate
	}
	if err := validateEventUpdate(update); err != nil {
		log.Error().Err(err).Str("event", eventID).Msg("event update validation failed")
		return models.Event{}, err
	}

	updated, err := s.eventRepository.UpdateEvent(ctx, ownerID, eventID, update)
	if err != nil {
		log.Err(err).Str("event", eventID).Msg("event update ended with error")
		return models.Event{}, fmt.Errorf("event update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteEvent removes the owner's event. Absent events delete cleanly.
func (s *eventService) DeleteEvent(ctx context.Context, ownerID int64, eventID string) error {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return ErrValidationNoUserID
	}

	if err := s.eventRepository.DeleteEvent(ctx, ownerID, eventID); err != nil {
		log.Err(err).Str("event", eventID).Msg("event deletion ended with error")
		return fmt.Errorf("event deletion ended with error: %w", err)
	}

	return nil
}

func validateEvent(event models.Event) error {
	if event.OwnerID == 0 {
		return ErrValidationNoUserID
	}
	if strings.TrimSpace(event.Title) == "" {
		return ErrValidationEmptyTitle
	}
	if !event.EndTime.IsZero() && event.EndTime.Before(event.StartTime) {
		return ErrValidationEndBeforeStart
	}
	if event.RRule != "" {
		if err := validateRecurrenceRule(event.RRule); err != nil {
			return err
		}
	}
	return nil
}

func validateEventUpdate(update models.EventUpdate) error {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return ErrValidationEmptyTitle
	}
	// An inverted range is only detectable here when both ends move together.
	if update.StartTime != nil && update.EndTime != nil && update.EndTime.Before(*update.StartTime) {
		return ErrValidationEndBeforeStart
	}
	if update.RRule != nil && *update.RRule != "" {
		if err := validateRecurrenceRule(*update.RRule); err != nil {
			return err
		}
	}
	return nil
}

func validateRecurrenceRule(rule string) error {
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationBadRecurrence, err)
	}
	return nil
}
