package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
)

type RoutineRepository interface {
	// Save inserts the routine together with its items.
	Save(ctx context.Context, routine *domain.Routine) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Routine, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// ListVisible returns the user's own routines plus public ones, joined
	// with the author's name and tier.
	ListVisible(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Routine, error)
	CountVisible(ctx context.Context, userID uuid.UUID) (int, error)
	// Update rewrites the routine's fields and replaces its items wholesale.
	Update(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type RoutineItemInput struct {
	Name   string
	Sets   int
	Reps   int
	Weight float64
}

type SaveRoutineInput struct {
	Name        string
	Description string
	Public      bool
	Equipment   []RoutineItemInput
}

type RoutineService interface {
	Create(ctx context.Context, userID uuid.UUID, input SaveRoutineInput) (*domain.Routine, error)
	// List returns routines and the total count for the filter, either
	// "mine" or "all" (own plus public).
	List(ctx context.Context, userID uuid.UUID, filter string, page, limit int) ([]*domain.Routine, int, error)
	Update(ctx context.Context, userID, id uuid.UUID, input SaveRoutineInput) (*domain.Routine, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	// Use checks the gym has every piece of equipment the routine needs and
	// records a workout log.
	Use(ctx context.Context, userID, routineID, gymID uuid.UUID) error
}
