package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, time.Minute)

	token, exp, err := m.GenerateSessionToken("64f1b2c3d4e5f60718293a4b", "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestEmailTokenCarriesOnlyEmail(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, time.Minute)

	token, _, err := m.GenerateEmailToken("ada@example.com")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour, time.Minute)
	verifier := NewTokenManager("secret-b", time.Hour, time.Minute)

	token, _, err := issuer.GenerateSessionToken("64f1b2c3d4e5f60718293a4b", "ada@example.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute, -time.Minute)

	token, _, err := m.GenerateSessionToken("64f1b2c3d4e5f60718293a4b", "ada@example.com")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, time.Minute)

	_, err := m.ParseToken("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
