package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/models"
)

// journalService is the concrete implementation of [JournalService].
type journalService struct {
	journalRepository store.JournalRepository
	logger            *logger.Logger
}

// NewJournalService constructs a [JournalService] backed by the given
// repository.
func NewJournalService(journalRepository store.JournalRepository, logger *logger.Logger) JournalService {
	return &journalService{
		journalRepository: journalRepository,
		logger:            logger,
	}
}

func (s *journalService) CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	if entry.OwnerID == 0 {
		return models.JournalEntry{}, ErrValidationNoUserID
	}
	if strings.TrimSpace(entry.Title) == "" {
		return models.JournalEntry{}, ErrValidationEmptyTitle
	}
	if entry.StudyDuration < 0 {
		return models.JournalEntry{}, ErrValidationNegativeMinutes
	}

	saved, err := s.journalRepository.CreateEntry(ctx, entry)
	if err != nil {
		log.Err(err).Int64("owner", entry.OwnerID).Msg("journal entry creation ended with error")
		return models.JournalEntry{}, fmt.Errorf("journal entry creation ended with error: %w", err)
	}

	return saved, nil
}

func (s *journalService) EntriesUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrValidationNoUserID
	}

	entries, err := s.journalRepository.GetEntriesUpdatedSince(ctx, ownerID, since)
	if err != nil {
		log.Err(err).Int64("owner", ownerID).Msg("journal delta query ended with error")
		return nil, fmt.Errorf("journal delta query ended with error: %w", err)
	}

	return entries, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, ownerID int64, entryID string, update models.JournalEntryUpdate) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.JournalEntry{}, ErrValidationNoUserID
	}
	if update.IsEmpty() {
		return models.JournalEntry{}, ErrValidationEmptyUpdate
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return models.JournalEntry{}, ErrValidationEmptyTitle
	}
	if update.StudyDuration != nil && *update.StudyDuration < 0 {
		return models.JournalEntry{}, ErrValidationNegativeMinutes
	}

	updated, err := s.journalRepository.UpdateEntry(ctx, ownerID, entryID, update)
	if err != nil {
		log.Err(err).Str("entry", entryID).Msg("journal entry update ended with error")
		return models.JournalEntry{}, fmt.Errorf("journal entry update ended with error: %w", err)
	}

	return updated, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, ownerID int64, entryID string) error {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return ErrValidationNoUserID
	}

	if err := s.journalRepository.DeleteEntry(ctx, ownerID, entryID); err != nil {
		log.Err(err).Str("entry", entryID).Msg("journal entry deletion ended with error")
		return fmt.Errorf("journal entry deletion ended with error: %w", err)
	}

	return nil
}
