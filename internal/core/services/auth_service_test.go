package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/token"
)

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *memSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSessionRepo) ListAll(ctx context.Context) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for _, s := range r.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memSessionRepo) ReplaceHash(ctx context.Context, id uuid.UUID, newHash, oldHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.RefreshHash != oldHash {
		return domain.ErrInvalidSession
	}
	now := time.Now()
	s.RefreshHash = newHash
	s.LastRotatedAt = &now
	return nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserRepo, *memSessionRepo) {
	t.Helper()
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	codec := token.NewCodec([]byte("test-secret"), 15*time.Minute)
	return NewAuthService(users, sessions, codec), users, sessions
}

func registerAndLogin(t *testing.T, svc *AuthService) *creds {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "lifter@example.com", "secret123"))
	c, err := svc.Login(ctx, "lifter@example.com", "secret123")
	require.NoError(t, err)
	return &creds{c.UserID, c.AccessToken, c.RefreshToken}
}

type creds struct {
	userID       uuid.UUID
	accessToken  string
	refreshToken string
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "lifter@example.com", "secret123"))
	err := svc.Register(ctx, "lifter@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	err := svc.Register(context.Background(), "lifter@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "lifter@example.com", "secret123"))

	_, err := svc.Login(ctx, "lifter@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginStoresHashedSecretOnly(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	require.Equal(t, 1, sessions.count())
	all, err := sessions.ListAll(context.Background())
	require.NoError(t, err)

	_, secret, ok := splitRefreshCookie(c.refreshToken)
	require.True(t, ok)
	// The plaintext secret must not appear anywhere in the stored record.
	assert.NotEqual(t, secret, all[0].RefreshHash)
	assert.False(t, strings.Contains(all[0].RefreshHash, secret))
	assert.True(t, token.CompareRefreshSecret(secret, all[0].RefreshHash))
}

func TestVerifyAccessRoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	userID, err := svc.VerifyAccess(context.Background(), c.accessToken)
	require.NoError(t, err)
	assert.Equal(t, c.userID, userID)
}

func TestVerifyAccessDeniesDeletedUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	users.delete(c.userID)

	_, err := svc.VerifyAccess(context.Background(), c.accessToken)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRefreshIssuesNewCredentials(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	renewed, err := svc.Refresh(context.Background(), c.refreshToken)
	require.NoError(t, err)
	assert.Equal(t, c.userID, renewed.UserID)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEqual(t, c.refreshToken, renewed.RefreshToken)
	// Rotation replaces the hash in place; no extra rows appear.
	assert.Equal(t, 1, sessions.count())
}

func TestRefreshInvalidatesPreRotationSecret(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, c.refreshToken)
	require.NoError(t, err)

	// Replaying the pre-rotation secret must find nothing.
	_, err = svc.Refresh(ctx, c.refreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestRefreshUnknownSecret(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerAndLogin(t, svc)

	secret, err := token.GenerateRefreshSecret()
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), secret)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestRefreshDeniesDeletedUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	users.delete(c.userID)

	_, err := svc.Refresh(context.Background(), c.refreshToken)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRefreshWithoutUserHintFallsBackToFullScan(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)

	// Strip the user-ID prefix; the secret alone still matches via the
	// degraded full-table scan.
	_, secret, ok := splitRefreshCookie(c.refreshToken)
	require.True(t, ok)

	renewed, err := svc.Refresh(context.Background(), secret)
	require.NoError(t, err)
	assert.Equal(t, c.userID, renewed.UserID)
}

func TestConcurrentRotationSingleWinner(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Refresh(ctx, c.refreshToken)
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidSession)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	c := registerAndLogin(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, c.refreshToken))
	assert.Equal(t, 0, sessions.count())

	// Revocation is final: the secret never matches again.
	_, err := svc.Refresh(ctx, c.refreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	c := registerAndLogin(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, c.refreshToken))
	require.NoError(t, svc.Logout(ctx, c.refreshToken))
	require.NoError(t, svc.Logout(ctx, "not-even-a-cookie"))
}

func TestEachLoginCreatesOwnSession(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "lifter@example.com", "secret123"))

	first, err := svc.Login(ctx, "lifter@example.com", "secret123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "lifter@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, 2, sessions.count())

	// Logging out one device leaves the other session usable.
	require.NoError(t, svc.Logout(ctx, first.RefreshToken))
	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}
