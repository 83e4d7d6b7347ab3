package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healcome/fitness/internal/core/domain"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)
	userID := uuid.New()

	tok, err := codec.IssueAccess(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := codec.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestExpiredAccessTokenNeverVerifies(t *testing.T) {
	// NewCodec normalizes non-positive TTLs, so build one directly to get a
	// token that is already expired at issue time.
	codec := &Codec{secret: []byte("test-secret"), accessTTL: -1 * time.Minute}

	tok, err := codec.IssueAccess(uuid.New())
	require.NoError(t, err)

	_, err = codec.VerifyAccess(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
}

func TestTamperedAccessTokenFails(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	tok, err := codec.IssueAccess(uuid.New())
	require.NoError(t, err)

	_, err = codec.VerifyAccess(tok + "x")
	assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
}

func TestWrongSecretFails(t *testing.T) {
	issuer := NewCodec([]byte("secret-a"), 15*time.Minute)
	verifier := NewCodec([]byte("secret-b"), 15*time.Minute)

	tok, err := issuer.IssueAccess(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
}

func TestGarbageAccessTokenFails(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 15*time.Minute)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.VerifyAccess(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
	}
}

func TestRefreshSecretRoundTrip(t *testing.T) {
	secret, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 2*refreshSecretBytes)

	hash, err := HashRefreshSecret(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, hash)

	assert.True(t, CompareRefreshSecret(secret, hash))
}

func TestRefreshSecretMismatch(t *testing.T) {
	secret, err := GenerateRefreshSecret()
	require.NoError(t, err)
	hash, err := HashRefreshSecret(secret)
	require.NoError(t, err)

	other, err := GenerateRefreshSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
	assert.False(t, CompareRefreshSecret(other, hash))
}

func TestRefreshSecretsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		secret, err := GenerateRefreshSecret()
		require.NoError(t, err)
		require.False(t, seen[secret])
		seen[secret] = true
	}
}
