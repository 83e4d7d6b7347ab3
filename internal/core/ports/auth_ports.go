package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
)

// SessionRepository persists refresh-credential sessions. There is no
// lookup-by-secret: hashes are salted per row, so callers list candidates
// and compare one by one.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	ListAll(ctx context.Context) ([]*domain.Session, error)
	// ReplaceHash swaps the stored hash only if it still equals oldHash.
	// Returns domain.ErrInvalidSession when another request rotated first.
	ReplaceHash(ctx context.Context, id uuid.UUID, newHash, oldHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Credentials is what a successful login or refresh hands to the transport
// layer for cookie delivery. RefreshToken is the full cookie value,
// "<userID>.<secret>"; the user ID prefix scopes the store scan on the next
// refresh.
type Credentials struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*Credentials, error)
	// VerifyAccess validates the signed access token and confirms the user
	// still exists.
	VerifyAccess(ctx context.Context, accessToken string) (uuid.UUID, error)
	// Refresh exchanges a refresh cookie value for fresh credentials,
	// rotating the stored secret.
	Refresh(ctx context.Context, refreshCookie string) (*Credentials, error)
	Logout(ctx context.Context, refreshCookie string) error
}
