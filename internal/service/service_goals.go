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

// goalService is the concrete implementation of [GoalService].
type goalService struct {
	goalRepository store.GoalRepository
	logger         *logger.Logger
}

// NewGoalService constructs a [GoalService] backed by the given repository.
func NewGoalService(goalRepository store.GoalRepository, logger *logger.Logger) GoalService {
	return &goalService{
		goalRepository: goalRepository,
		logger:         logger,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, goal models.StudyGoal) (models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	if goal.OwnerID == 0 {
		return models.StudyGoal{}, ErrValidationNoUserID
	}
	if strings.TrimSpace(goal.Title) == "" {
		return models.StudyGoal{}, ErrValidationEmptyTitle
	}
	if goal.TargetMinutes < 0 || goal.ProgressMinutes < 0 {
		return models.StudyGoal{}, ErrValidationNegativeMinutes
	}

	saved, err := s.goalRepository.CreateGoal(ctx, goal)
	if err != nil {
		log.Err(err).Int64("owner", goal.OwnerID).Msg("goal creation ended with error")
		return models.StudyGoal{}, fmt.Errorf("goal creation ended with error: %w", err)
	}

	return saved, nil
}

func (s *goalService) GoalsUpdatedSince(ctx context.Context, ownerID int64, since time.Time) ([]models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return nil, ErrValidationNoUserID
	}

	goals, err := s.goalRepository.GetGoalsUpdatedSince(ctx, ownerID, since)
	if err != nil {
		log.Err(err).Int64("owner", ownerID).Msg("goal delta query ended with error")
		return nil, fmt.Errorf("goal delta query ended with error: %w", err)
	}

	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, ownerID int64, goalID string, update models.StudyGoalUpdate) (models.StudyGoal, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.StudyGoal{}, ErrValidationNoUserID
	}
	if update.IsEmpty() {
		return models.StudyGoal{}, ErrValidationEmptyUpdate
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return models.StudyGoal{}, ErrValidationEmptyTitle
	}
	if update.TargetMinutes != nil && *update.TargetMinutes < 0 {
		return models.StudyGoal{}, ErrValidationNegativeMinutes
	}
	if update.ProgressMinutes != nil && *update.ProgressMinutes < 0 {
		return models.StudyGoal{}, ErrValidationNegativeMinutes
	}

	updated, err := s.goalRepository.UpdateGoal(ctx, ownerID, goalID, update)
	if err != nil {
		log.Err(err).Str("goal", goalID).Msg("goal update ended with error")
		return models.StudyGoal{}, fmt.Errorf("goal update ended with error: %w", err)
	}

	return updated, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, ownerID int64, goalID string) error {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return ErrValidationNoUserID
	}

	if err := s.goalRepository.DeleteGoal(ctx, ownerID, goalID); err != nil {
		log.Err(err).Str("goal", goalID).Msg("goal deletion ended with error")
		return fmt.Errorf("goal deletion ended with error: %w", err)
	}

	return nil
}
