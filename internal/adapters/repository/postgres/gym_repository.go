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

type GymRepository struct {
	db *sql.DB
}

func NewGymRepository(db *sql.DB) ports.GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) Save(ctx context.Context, gym *domain.Gym) error {
	query := `
		INSERT INTO gyms (id, user_id, name, equipment, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		gym.ID, gym.UserID, gym.Name, pq.Array(gym.Equipment), gym.Notes,
	).Scan(&gym.CreatedAt)
}

func (r *GymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	query := `
		SELECT id, user_id, name, equipment, notes, created_at
		FROM gyms WHERE id = $1
	`
	gym := &domain.Gym{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&gym.ID, &gym.UserID, &gym.Name, pq.Array(&gym.Equipment), &gym.Notes, &gym.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return gym, nil
}

func (r *GymRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Gym, error) {
	query := `
		SELECT id, user_id, name, equipment, notes, created_at
		FROM gyms WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyms []*domain.Gym
	for rows.Next() {
		gym := &domain.Gym{}
		if err := rows.Scan(&gym.ID, &gym.UserID, &gym.Name, pq.Array(&gym.Equipment), &gym.Notes, &gym.CreatedAt); err != nil {
			return nil, err
		}
		gyms = append(gyms, gym)
	}
	return gyms, rows.Err()
}

func (r *GymRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gyms WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *GymRepository) Update(ctx context.Context, gym *domain.Gym) error {
	query := `UPDATE gyms SET name = $2, equipment = $3, notes = $4 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, gym.ID, gym.Name, pq.Array(gym.Equipment), gym.Notes)
	return err
}

func (r *GymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
	return err
}

func (r *GymRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gyms WHERE user_id = $1`, userID)
	return err
}
