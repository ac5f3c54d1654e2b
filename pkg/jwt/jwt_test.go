package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", 900)

	token, err := m.GenerateToken("editor@example.gov", "Eddie", "")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.gov", claims.Email)
	assert.Equal(t, "Eddie", claims.Name)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 900).GenerateToken("a@example.gov", "", "")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 900).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", -60)
	token, err := m.GenerateToken("a@example.gov", "", "")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_MissingEmail(t *testing.T) {
	m := NewManager("test-secret", 900)
	token, err := m.GenerateToken("", "nobody", "")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
