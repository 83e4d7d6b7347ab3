package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
)

type WorkoutLogRepository interface {
	Save(ctx context.Context, log *domain.WorkoutLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutLog, error)
	// ListByUser returns logs newest first, joined with routine name,
	// description and exercises.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WorkoutLog, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type WorkoutLogService interface {
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.WorkoutLog, int, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
