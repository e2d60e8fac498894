package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.NoError(t, h.Compare(hash, "password123"))
	assert.Error(t, h.Compare(hash, "password124"))
}

func TestSessionsRoundTrip(t *testing.T) {
	s := NewSessions("0123456789abcdef", time.Hour)

	token, err := s.Issue(42, ScopeAdmin)
	require.NoError(t, err)

	id, err := s.Parse(token, ScopeAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestSessionsRejectOtherScope(t *testing.T) {
	s := NewSessions("0123456789abcdef", time.Hour)

	token, err := s.Issue(42, ScopeUser)
	require.NoError(t, err)

	_, err = s.Parse(token, ScopeAdmin)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionsRejectExpiredAndForged(t *testing.T) {
	s := NewSessions("0123456789abcdef", time.Minute)
	issuedAt := time.Now()
	s.now = func() time.Time { return issuedAt }

	token, err := s.Issue(7, ScopeUser)
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = s.Parse(token, ScopeUser)
	assert.ErrorIs(t, err, ErrInvalidSession)

	other := NewSessions("fedcba9876543210", time.Minute)
	_, err = other.Parse(token, ScopeUser)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = s.Parse("not-a-token", ScopeUser)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
