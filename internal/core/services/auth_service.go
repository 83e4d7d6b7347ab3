package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
	"github.com/healcome/fitness/internal/core/token"
)

// storeTimeout bounds every session-store call. A slow or unreachable store
// must deny access, never hang the request or let it through.
const storeTimeout = 5 * time.Second

type AuthService struct {
	userRepo    ports.UserRepository
	sessionRepo ports.SessionRepository
	codec       *token.Codec
}

func NewAuthService(userRepo ports.UserRepository, sessionRepo ports.SessionRepository, codec *token.Codec) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		codec:       codec,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidCredentials)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password too short", domain.ErrInvalidCredentials)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "user",
		PasswordHash: string(hash),
		Tier:         domain.TierFor(0, 0, 0),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login verifies the password and issues one access token and one refresh
// secret. The session row is persisted before either credential leaves this
// method.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Credentials, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	secret, err := token.GenerateRefreshSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	hash, err := token.HashRefreshSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh secret: %w", err)
	}

	session := &domain.Session{
		ID:          uuid.New(),
		UserID:      user.ID,
		RefreshHash: hash,
		IssuedAt:    time.Now(),
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.sessionRepo.Create(storeCtx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	accessToken, err := s.codec.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &ports.Credentials{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshCookieValue(user.ID, secret),
	}, nil
}

// VerifyAccess checks the signed token and confirms the user still exists;
// a deleted account must not pass on a structurally valid token.
func (s *AuthService) VerifyAccess(ctx context.Context, accessToken string) (uuid.UUID, error) {
	userID, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return uuid.Nil, domain.ErrUserNotFound
	}
	return userID, nil
}

// Refresh exchanges a refresh cookie for fresh credentials. The stored hash
// is rotated with a conditional update keyed on the old hash, so of two
// concurrent requests presenting the same secret exactly one wins; the other
// gets domain.ErrInvalidSession.
func (s *AuthService) Refresh(ctx context.Context, refreshCookie string) (*ports.Credentials, error) {
	session, err := s.findMatching(ctx, refreshCookie)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	newSecret, err := token.GenerateRefreshSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	newHash, err := token.HashRefreshSecret(newSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh secret: %w", err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.sessionRepo.ReplaceHash(storeCtx, session.ID, newHash, session.RefreshHash); err != nil {
		if errors.Is(err, domain.ErrInvalidSession) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	accessToken, err := s.codec.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &ports.Credentials{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshCookieValue(user.ID, newSecret),
	}, nil
}

// Logout deletes the session matching the presented refresh cookie. A cookie
// that matches nothing is not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshCookie string) error {
	session, err := s.findMatching(ctx, refreshCookie)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSession) {
			return nil
		}
		return err
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.sessionRepo.Delete(storeCtx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// findMatching locates the session a refresh cookie belongs to. Hashes are
// salted per row, so this is a linear scan with one bcrypt comparison per
// candidate; that cost is the price of never storing an equality-comparable
// secret. The cookie's user-ID prefix keeps the candidate set to one user's
// sessions, and a cookie without a parseable prefix degrades to scanning
// every row.
func (s *AuthService) findMatching(ctx context.Context, refreshCookie string) (*domain.Session, error) {
	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	secret := refreshCookie
	var candidates []*domain.Session
	var err error
	if userID, rest, ok := splitRefreshCookie(refreshCookie); ok {
		secret = rest
		candidates, err = s.sessionRepo.ListByUser(storeCtx, userID)
	} else {
		candidates, err = s.sessionRepo.ListAll(storeCtx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, c := range candidates {
		if token.CompareRefreshSecret(secret, c.RefreshHash) {
			return c, nil
		}
	}
	return nil, domain.ErrInvalidSession
}

func refreshCookieValue(userID uuid.UUID, secret string) string {
	return userID.String() + "." + secret
}

func splitRefreshCookie(value string) (uuid.UUID, string, bool) {
	prefix, rest, found := strings.Cut(value, ".")
	if !found {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(prefix)
	if err != nil {
		return uuid.Nil, "", false
	}
	return userID, rest, true
}
