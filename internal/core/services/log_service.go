package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type WorkoutLogService struct {
	repo ports.WorkoutLogRepository
}

func NewWorkoutLogService(repo ports.WorkoutLogRepository) *WorkoutLogService {
	return &WorkoutLogService{repo: repo}
}

func (s *WorkoutLogService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.WorkoutLog, int, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count logs: %w", err)
	}

	logs, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, total, nil
}

func (s *WorkoutLogService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}
	if log == nil || log.UserID != userID {
		return domain.ErrLogNotFound
	}
	return s.repo.Delete(ctx, id)
}
