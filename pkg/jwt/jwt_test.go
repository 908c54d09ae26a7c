package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "better-habit")

	token, expiresAt, err := tm.Generate("habitctl")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "habitctl", claims.Client)
	assert.Equal(t, "habitctl", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour, "better-habit")
	token, _, err := tm.Generate("habitctl")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour, "better-habit").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = NewTokenManager("secret", time.Hour, "someone-else").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong issuer")

	later := NewTokenManager("secret", time.Hour, "better-habit")
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = tm.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
