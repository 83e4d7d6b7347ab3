package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// UpdateUserInput carries a partial profile update; nil fields keep their
// current values.
type UpdateUserInput struct {
	Name  *string
	Squat *int
	Bench *int
	Dead  *int
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
}
