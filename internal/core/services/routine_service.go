package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type RoutineService struct {
	routineRepo ports.RoutineRepository
	gymRepo     ports.GymRepository
	logRepo     ports.WorkoutLogRepository
}

func NewRoutineService(routineRepo ports.RoutineRepository, gymRepo ports.GymRepository, logRepo ports.WorkoutLogRepository) *RoutineService {
	return &RoutineService{
		routineRepo: routineRepo,
		gymRepo:     gymRepo,
		logRepo:     logRepo,
	}
}

func validateRoutineInput(input ports.SaveRoutineInput) error {
	if input.Name == "" {
		return errors.New("routine name is required")
	}
	if input.Description == "" {
		return errors.New("routine description is required")
	}
	if len(input.Equipment) == 0 {
		return errors.New("at least one equipment item is required")
	}
	for _, item := range input.Equipment {
		if item.Name == "" || item.Sets <= 0 || item.Reps <= 0 || item.Weight <= 0 {
			return errors.New("equipment items need a name and positive sets, reps and weight")
		}
	}
	return nil
}

func (s *RoutineService) Create(ctx context.Context, userID uuid.UUID, input ports.SaveRoutineInput) (*domain.Routine, error) {
	if err := validateRoutineInput(input); err != nil {
		return nil, err
	}

	routineID := uuid.New()
	routine := &domain.Routine{
		ID:          routineID,
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Public:      input.Public,
		CreatedAt:   time.Now(),
	}
	for _, item := range input.Equipment {
		routine.Equipment = append(routine.Equipment, domain.RoutineItem{
			ID:        uuid.New(),
			RoutineID: routineID,
			Name:      item.Name,
			Sets:      item.Sets,
			Reps:      item.Reps,
			Weight:    item.Weight,
		})
	}

	if err := s.routineRepo.Save(ctx, routine); err != nil {
		return nil, fmt.Errorf("failed to save routine: %w", err)
	}
	return routine, nil
}

func (s *RoutineService) List(ctx context.Context, userID uuid.UUID, filter string, page, limit int) ([]*domain.Routine, int, error) {
	offset := (page - 1) * limit

	if filter == "all" {
		total, err := s.routineRepo.CountVisible(ctx, userID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count routines: %w", err)
		}
		routines, err := s.routineRepo.ListVisible(ctx, userID, limit, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list routines: %w", err)
		}
		return routines, total, nil
	}

	total, err := s.routineRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count routines: %w", err)
	}
	routines, err := s.routineRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, total, nil
}

func (s *RoutineService) Update(ctx context.Context, userID, id uuid.UUID, input ports.SaveRoutineInput) (*domain.Routine, error) {
	if err := validateRoutineInput(input); err != nil {
		return nil, err
	}

	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get routine: %w", err)
	}
	if routine == nil || routine.UserID != userID {
		return nil, domain.ErrRoutineNotFound
	}

	routine.Name = input.Name
	routine.Description = input.Description
	routine.Public = input.Public
	routine.Equipment = nil
	for _, item := range input.Equipment {
		routine.Equipment = append(routine.Equipment, domain.RoutineItem{
			ID:        uuid.New(),
			RoutineID: routine.ID,
			Name:      item.Name,
			Sets:      item.Sets,
			Reps:      item.Reps,
			Weight:    item.Weight,
		})
	}

	if err := s.routineRepo.Update(ctx, routine); err != nil {
		return nil, fmt.Errorf("failed to update routine: %w", err)
	}
	return routine, nil
}

func (s *RoutineService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get routine: %w", err)
	}
	if routine == nil || routine.UserID != userID {
		return domain.ErrRoutineNotFound
	}
	return s.routineRepo.Delete(ctx, id)
}

func (s *RoutineService) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return s.routineRepo.DeleteAllForUser(ctx, userID)
}

// Use records a workout with the routine at the gym, provided the gym has
// every piece of equipment the routine calls for.
func (s *RoutineService) Use(ctx context.Context, userID, routineID, gymID uuid.UUID) error {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		return fmt.Errorf("failed to get routine: %w", err)
	}
	if routine == nil {
		return domain.ErrRoutineNotFound
	}

	gym, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		return fmt.Errorf("failed to get gym: %w", err)
	}
	if gym == nil || gym.UserID != userID {
		return domain.ErrGymNotFound
	}

	var missing []string
	for _, item := range routine.Equipment {
		if !slices.Contains(gym.Equipment, item.Name) {
			missing = append(missing, item.Name)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingEquipmentError{Equipment: missing}
	}

	log := &domain.WorkoutLog{
		ID:        uuid.New(),
		UserID:    userID,
		RoutineID: routineID,
		UsedAt:    time.Now(),
	}
	if err := s.logRepo.Save(ctx, log); err != nil {
		return fmt.Errorf("failed to save workout log: %w", err)
	}
	return nil
}
