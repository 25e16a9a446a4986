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

// journalRepository is the PostgreSQL-backed implementation of
// [JournalRepository].
type journalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewJournalRepository constructs a [JournalRepository] backed by the provided
// database connection and logger.
func NewJournalRepository(db *DB, logger *logger.Logger) JournalRepository {
	logger.Debug().Msg("creating journal repository")
	return &journalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *journalRepository) CreateEntry(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	entry.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, createJournalEntry,
		entry.ID, entry.OwnerID, entry.Title, entry.Content, entry.Mood, entry.StudyDuration)

	saved, err := scanJournalEntry(row)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.CreateEntry").Msg("error: insert failed")
		return models.JournalEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *journalRepository) GetEntriesUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatedSinceQuery(models.JournalEntry{}.TableName(), journalColumns, ownerID, since)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.GetEntriesUpdatedSince").Msg("error: building query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.GetEntriesUpdatedSince").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			log.Err(err).Str("func", "*journalRepository.GetEntriesUpdatedSince").Msg("error: scanning error")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

func (r *journalRepository) UpdateEntry(ctx context.Context, ownerID int64, entryID string, update models.JournalEntryUpdate) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateJournalQuery(ownerID, entryID, update)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.JournalEntry{}, err
		}
		log.Err(err).Str("func", "*journalRepository.UpdateEntry").Msg("error: building query failed")
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanJournalEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*journalRepository.UpdateEntry").Msg("error: update failed")
		return models.JournalEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *journalRepository) DeleteEntry(ctx context.Context, ownerID int64, entryID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteJournalEntry, ownerID, entryID); err != nil {
		log.Err(err).Str("func", "*journalRepository.DeleteEntry").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanJournalEntry(row rowScanner) (models.JournalEntry, error) {
	var entry models.JournalEntry
	err := row.Scan(
		&entry.ID, &entry.OwnerID, &entry.Title, &entry.Content,
		&entry.Mood, &entry.StudyDuration, &entry.CreatedAt, &entry.UpdatedAt)
	return entry, err
}
