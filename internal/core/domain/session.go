package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a user to the bcrypt hash of one issued refresh secret.
// The plaintext secret only ever lives in the client's cookie; because each
// hash carries its own salt there is no equality-indexed lookup, and
// matching a presented secret means comparing against candidate rows one by
// one.
type Session struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	RefreshHash   string     `json:"-"`
	IssuedAt      time.Time  `json:"issued_at"`
	LastRotatedAt *time.Time `json:"last_rotated_at,omitempty"`
}
