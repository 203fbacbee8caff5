package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginIssuesSessionBoundToken(t *testing.T) {
	a, err := NewAuthenticator("Nachi", "", "secret", time.Hour)
	require.NoError(t, err)

	token, expires, err := a.Login("Nachi", "conn-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	assert.NoError(t, a.Verify(token, "conn-1"))
	assert.ErrorIs(t, a.Verify(token, "conn-2"), ErrInvalidToken)
	assert.ErrorIs(t, a.Verify("", "conn-1"), ErrInvalidToken)
	assert.ErrorIs(t, a.Verify("garbage", "conn-1"), ErrInvalidToken)
}

func TestLoginWrongPassword(t *testing.T) {
	a, err := NewAuthenticator("Nachi", "", "secret", time.Hour)
	require.NoError(t, err)

	_, _, err = a.Login("nachi", "conn-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithPrecomputedHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	a, err := NewAuthenticator("", string(hash), "", time.Hour)
	require.NoError(t, err)

	token, _, err := a.Login("pw", "s")
	require.NoError(t, err)
	assert.NoError(t, a.Verify(token, "s"))
}

func TestTokenExpires(t *testing.T) {
	a, err := NewAuthenticator("pw", "", "secret", time.Minute)
	require.NoError(t, err)
	now := time.Now()
	a.now = func() time.Time { return now }

	token, _, err := a.Login("pw", "s")
	require.NoError(t, err)

	a.now = func() time.Time { return now.Add(2 * time.Minute) }
	assert.ErrorIs(t, a.Verify(token, "s"), ErrInvalidToken)
}

func TestTokenFromAnotherSecretRejected(t *testing.T) {
	a1, err := NewAuthenticator("pw", "", "one", time.Hour)
	require.NoError(t, err)
	a2, err := NewAuthenticator("pw", "", "two", time.Hour)
	require.NoError(t, err)

	token, _, err := a1.Login("pw", "s")
	require.NoError(t, err)
	assert.ErrorIs(t, a2.Verify(token, "s"), ErrInvalidToken)
}

func TestNewAuthenticatorNeedsPassword(t *testing.T) {
	_, err := NewAuthenticator("", "", "", time.Hour)
	assert.Error(t, err)
}
