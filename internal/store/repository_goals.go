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

// goalRepository is the PostgreSQL-backed implementation of [GoalRepository].
type goalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGoalRepository constructs a [GoalRepository] backed by the provided
// database connection and logger.
func NewGoalRepository(db *DB, logger *logger.Logger) GoalRepository {
	logger.Debug().Msg("creating goal repository")
	return &goalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *goalRepository) CreateGoal(ctx context.Context, goal models.StudyGoal) (models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	goal.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, createStudyGoal,
		goal.ID, goal.OwnerID, goal.Title, goal.TargetMinutes,
		goal.ProgressMinutes, goal.Deadline, goal.Completed)

	saved, err := scanStudyGoal(row)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.CreateGoal").Msg("error: insert failed")
		return models.StudyGoal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *goalRepository) GetGoalsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatedSinceQuery(models.StudyGoal{}.TableName(), goalColumns, ownerID, since)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.GetGoalsUpdatedSince").Msg("error: building query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*goalRepository.GetGoalsUpdatedSince").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	goals := make([]models.StudyGoal, 0)
	for rows.Next() {
		goal, err := scanStudyGoal(rows)
		if err != nil {
			log.Err(err).Str("func", "*goalRepository.GetGoalsUpdatedSince").Msg("error: scanning error")
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return goals, nil
}

func (r *goalRepository) UpdateGoal(ctx context.Context, ownerID int64, goalID string, update models.StudyGoalUpdate) (models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateGoalQuery(ownerID, goalID, update)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.StudyGoal{}, err
		}
		log.Err(err).Str("func", "*goalRepository.UpdateGoal").Msg("error: building query failed")
		return models.StudyGoal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanStudyGoal(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StudyGoal{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*goalRepository.UpdateGoal").Msg("error: update failed")
		return models.StudyGoal{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *goalRepository) DeleteGoal(ctx context.Context, ownerID int64, goalID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteStudyGoal, ownerID, goalID); err != nil {
		log.Err(err).Str("func", "*goalRepository.DeleteGoal").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanStudyGoal(row rowScanner) (models.StudyGoal, error) {
	var goal models.StudyGoal
	err := row.Scan(
		&goal.ID, &goal.OwnerID, &goal.Title, &goal.TargetMinutes,
		&goal.ProgressMinutes, &goal.Deadline, &goal.Completed,
		&goal.CreatedAt, &goal.UpdatedAt)
	return goal, err
}
