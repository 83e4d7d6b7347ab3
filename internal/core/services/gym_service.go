package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type GymService struct {
	repo ports.GymRepository
}

func NewGymService(repo ports.GymRepository) *GymService {
	return &GymService{repo: repo}
}

func (s *GymService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateGymInput) (*domain.Gym, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}
	if len(input.Equipment) == 0 {
		return nil, errors.New("at least one equipment is required")
	}

	gym := &domain.Gym{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      input.Name,
		Equipment: input.Equipment,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to save gym: %w", err)
	}
	return gym, nil
}

func (s *GymService) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Gym, int, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count gyms: %w", err)
	}

	gyms, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gyms: %w", err)
	}
	return gyms, total, nil
}

func (s *GymService) Update(ctx context.Context, userID, id uuid.UUID, input ports.UpdateGymInput) (*domain.Gym, error) {
	gym, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get gym: %w", err)
	}
	if gym == nil || gym.UserID != userID {
		return nil, domain.ErrGymNotFound
	}

	if input.Name != nil {
		gym.Name = *input.Name
	}
	if input.Equipment != nil {
		gym.Equipment = input.Equipment
	}
	if input.Notes != nil {
		gym.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to update gym: %w", err)
	}
	return gym, nil
}

func (s *GymService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	gym, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get gym: %w", err)
	}
	if gym == nil || gym.UserID != userID {
		return domain.ErrGymNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *GymService) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllForUser(ctx, userID)
}
