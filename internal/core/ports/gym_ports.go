package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
)

type GymRepository interface {
	Save(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Gym, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, gym *domain.Gym) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type CreateGymInput struct {
	Name      string
	Equipment []string
	Notes     string
}

type UpdateGymInput struct {
	Name      *string
	Equipment []string
	Notes     *string
}

type GymService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateGymInput) (*domain.Gym, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Gym, int, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateGymInput) (*domain.Gym, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}
