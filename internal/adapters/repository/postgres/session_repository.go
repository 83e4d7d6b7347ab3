package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

// SessionRepository stores refresh-credential sessions. Note the deliberate
// absence of a find-by-hash query: every hash is salted, so the service
// layer lists candidate rows and runs the one-way comparison itself.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) ports.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, refresh_hash, issued_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.RefreshHash, s.IssuedAt)
	return err
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	query := `
		SELECT id, user_id, refresh_hash, issued_at, last_rotated_at
		FROM sessions WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

// ListAll is the degraded fallback when the transport carried no user hint.
// Cost grows with the total session count.
func (r *SessionRepository) ListAll(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT id, user_id, refresh_hash, issued_at, last_rotated_at FROM sessions`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

// ReplaceHash rotates the stored hash in a single conditional update. The
// WHERE clause pins the old hash, so concurrent requests presenting the same
// pre-rotation secret race on one atomic statement: the loser changes zero
// rows and gets domain.ErrInvalidSession.
func (r *SessionRepository) ReplaceHash(ctx context.Context, id uuid.UUID, newHash, oldHash string) error {
	query := `
		UPDATE sessions SET refresh_hash = $2, last_rotated_at = now()
		WHERE id = $1 AND refresh_hash = $3
	`
	res, err := r.db.ExecContext(ctx, query, id, newHash, oldHash)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidSession
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s := &domain.Session{}
		var rotatedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.RefreshHash, &s.IssuedAt, &rotatedAt); err != nil {
			return nil, err
		}
		if rotatedAt.Valid {
			s.LastRotatedAt = &rotatedAt.Time
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
