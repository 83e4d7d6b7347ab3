// Package token implements the credential codec: signed short-lived access
// tokens, opaque refresh secrets, and the one-way hashing used to store them.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healcome/fitness/internal/core/domain"
)

// bcrypt caps input at 72 bytes; 32 raw bytes keep the hex form under that.
const refreshSecretBytes = 32

// Codec issues and verifies access tokens with a process-wide HMAC secret.
// The secret is fixed at construction and never mutated, so a single Codec
// is safe for concurrent use.
type Codec struct {
	secret    []byte
	accessTTL time.Duration
}

func NewCodec(secret []byte, accessTTL time.Duration) *Codec {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &Codec{secret: secret, accessTTL: accessTTL}
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// IssueAccess signs a stateless access token for the user. Its validity is
// decided entirely by signature and expiry; no store lookup is involved.
func (c *Codec) IssueAccess(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(c.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// VerifyAccess checks signature and expiry and returns the embedded user ID.
// Any structural, signature, or expiry failure yields ErrInvalidAccessToken.
func (c *Codec) VerifyAccess(tokenStr string) (uuid.UUID, error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !t.Valid {
		return uuid.Nil, domain.ErrInvalidAccessToken
	}

	sub, err := t.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, domain.ErrInvalidAccessToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidAccessToken
	}
	return userID, nil
}

// GenerateRefreshSecret returns 256 bits from crypto/rand, hex-encoded for
// cookie transport.
func GenerateRefreshSecret() (string, error) {
	b := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashRefreshSecret hashes a refresh secret with bcrypt. The per-record salt
// means stored hashes cannot be looked up by equality; finding the session a
// secret belongs to requires CompareRefreshSecret against each candidate.
func HashRefreshSecret(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CompareRefreshSecret reports whether secret is the one hash was made from.
func CompareRefreshSecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
