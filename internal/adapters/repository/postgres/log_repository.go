package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type WorkoutLogRepository struct {
	db *sql.DB
}

func NewWorkoutLogRepository(db *sql.DB) ports.WorkoutLogRepository {
	return &WorkoutLogRepository{db: db}
}

func (r *WorkoutLogRepository) Save(ctx context.Context, log *domain.WorkoutLog) error {
	query := `INSERT INTO workout_logs (id, user_id, routine_id, used_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, log.ID, log.UserID, log.RoutineID, log.UsedAt)
	return err
}

func (r *WorkoutLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutLog, error) {
	query := `SELECT id, user_id, routine_id, used_at FROM workout_logs WHERE id = $1`
	log := &domain.WorkoutLog{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&log.ID, &log.UserID, &log.RoutineID, &log.UsedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

func (r *WorkoutLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.WorkoutLog, error) {
	query := `
		SELECT l.id, l.user_id, l.routine_id, l.used_at, r.name, r.description
		FROM workout_logs l
		JOIN routines r ON l.routine_id = r.id
		WHERE l.user_id = $1
		ORDER BY l.used_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.WorkoutLog
	for rows.Next() {
		log := &domain.WorkoutLog{}
		if err := rows.Scan(&log.ID, &log.UserID, &log.RoutineID, &log.UsedAt,
			&log.RoutineName, &log.RoutineDescription); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachExercises(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *WorkoutLogRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workout_logs WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *WorkoutLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workout_logs WHERE id = $1`, id)
	return err
}

// attachExercises loads the exercise lists of the referenced routines in one
// query and fans them out to the logs.
func (r *WorkoutLogRepository) attachExercises(ctx context.Context, logs []*domain.WorkoutLog) error {
	if len(logs) == 0 {
		return nil
	}

	routineIDs := make([]uuid.UUID, 0, len(logs))
	seen := make(map[uuid.UUID]bool, len(logs))
	for _, log := range logs {
		if !seen[log.RoutineID] {
			seen[log.RoutineID] = true
			routineIDs = append(routineIDs, log.RoutineID)
		}
	}

	query := `
		SELECT routine_id, equipment_name, sets, reps, weight
		FROM routine_items WHERE routine_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(routineIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	byRoutine := make(map[uuid.UUID][]domain.RoutineItem)
	for rows.Next() {
		var item domain.RoutineItem
		if err := rows.Scan(&item.RoutineID, &item.Name, &item.Sets, &item.Reps, &item.Weight); err != nil {
			return err
		}
		byRoutine[item.RoutineID] = append(byRoutine[item.RoutineID], item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, log := range logs {
		log.Exercises = byRoutine[log.RoutineID]
	}
	return nil
}
