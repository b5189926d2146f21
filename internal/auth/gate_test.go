package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toybox/storefront/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func newGate(t *testing.T, secret string, ttl time.Duration) auth.Gate {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewGate(string(hash), "test-token-secret", ttl)
}

func TestGate(t *testing.T) {
	t.Run("IssueAndVerify", func(t *testing.T) {
		gate := newGate(t, "s3cret", time.Hour)

		token, err := gate.IssueToken("s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.NoError(t, gate.VerifyToken(token))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		gate := newGate(t, "s3cret", time.Hour)

		_, err := gate.IssueToken("nope")
		assert.ErrorIs(t, err, auth.ErrBadCredential)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		gate := newGate(t, "s3cret", time.Hour)
		assert.ErrorIs(t, gate.VerifyToken("not-a-jwt"), auth.ErrInvalidToken)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		gate := newGate(t, "s3cret", -time.Minute)

		token, err := gate.IssueToken("s3cret")
		require.NoError(t, err)

		assert.ErrorIs(t, gate.VerifyToken(token), auth.ErrExpiredToken)
	})

	t.Run("ForeignKeyRejected", func(t *testing.T) {
		gate := newGate(t, "s3cret", time.Hour)
		other := auth.NewGate("", "another-token-secret", time.Hour)

		token, err := gate.IssueToken("s3cret")
		require.NoError(t, err)

		assert.ErrorIs(t, other.VerifyToken(token), auth.ErrInvalidToken)
	})
}
