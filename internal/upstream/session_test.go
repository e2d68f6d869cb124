package upstream

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedToken(t, now.Add(-time.Minute)), now))
}

func TestTokenExpiredLeavesOddTokensToBackend(t *testing.T) {
	now := time.Now()

	// The pre-check only acts on what it can read; the backend is the
	// authority on everything else.
	assert.False(t, TokenExpired("", now))
	assert.False(t, TokenExpired("not-a-jwt", now))

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin-1"})
	s, err := noExp.SignedString([]byte("test-key"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(s, now))
}
