package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type RoutineRepository struct {
	db *sql.DB
}

func NewRoutineRepository(db *sql.DB) ports.RoutineRepository {
	return &RoutineRepository{db: db}
}

func (r *RoutineRepository) Save(ctx context.Context, routine *domain.Routine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO routines (id, user_id, name, description, public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		routine.ID, routine.UserID, routine.Name, routine.Description, routine.Public,
	).Scan(&routine.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, routine.ID, routine.Equipment); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RoutineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, public, created_at
		FROM routines WHERE id = $1
	`
	routine := &domain.Routine{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&routine.ID, &routine.UserID, &routine.Name, &routine.Description,
		&routine.Public, &routine.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachItems(ctx, []*domain.Routine{routine}); err != nil {
		return nil, err
	}
	return routine, nil
}

func (r *RoutineRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, public, created_at
		FROM routines WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines, err := scanRoutines(rows, false)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *RoutineRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM routines WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *RoutineRepository) ListVisible(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Routine, error) {
	query := `
		SELECT r.id, r.user_id, r.name, r.description, r.public, r.created_at,
		       u.name AS author, u.tier AS tier
		FROM routines r
		LEFT JOIN users u ON r.user_id = u.id
		WHERE r.public OR r.user_id = $1
		ORDER BY r.created_at DESC LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines, err := scanRoutines(rows, true)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *RoutineRepository) CountVisible(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM routines WHERE public OR user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *RoutineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE routines SET name = $2, description = $3, public = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query,
		routine.ID, routine.Name, routine.Description, routine.Public); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_items WHERE routine_id = $1`, routine.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, routine.ID, routine.Equipment); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RoutineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE id = $1`, id)
	return err
}

func (r *RoutineRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE user_id = $1`, userID)
	return err
}

func insertItems(ctx context.Context, tx *sql.Tx, routineID uuid.UUID, items []domain.RoutineItem) error {
	query := `
		INSERT INTO routine_items (id, routine_id, equipment_name, sets, reps, weight)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID, routineID, item.Name, item.Sets, item.Reps, item.Weight); err != nil {
			return fmt.Errorf("failed to insert routine item: %w", err)
		}
	}
	return nil
}

// attachItems loads the items of all given routines in one query.
func (r *RoutineRepository) attachItems(ctx context.Context, routines []*domain.Routine) error {
	if len(routines) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(routines))
	byID := make(map[uuid.UUID]*domain.Routine, len(routines))
	for i, routine := range routines {
		ids[i] = routine.ID
		byID[routine.ID] = routine
	}

	query := `
		SELECT id, routine_id, equipment_name, sets, reps, weight
		FROM routine_items WHERE routine_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.RoutineItem
		if err := rows.Scan(&item.ID, &item.RoutineID, &item.Name, &item.Sets, &item.Reps, &item.Weight); err != nil {
			return err
		}
		if routine, ok := byID[item.RoutineID]; ok {
			routine.Equipment = append(routine.Equipment, item)
		}
	}
	return rows.Err()
}

func scanRoutines(rows *sql.Rows, withAuthor bool) ([]*domain.Routine, error) {
	var routines []*domain.Routine
	for rows.Next() {
		routine := &domain.Routine{}
		var err error
		if withAuthor {
			var author, tier sql.NullString
			err = rows.Scan(&routine.ID, &routine.UserID, &routine.Name, &routine.Description,
				&routine.Public, &routine.CreatedAt, &author, &tier)
			routine.Author = author.String
			routine.AuthorTier = tier.String
		} else {
			err = rows.Scan(&routine.ID, &routine.UserID, &routine.Name, &routine.Description,
				&routine.Public, &routine.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}
