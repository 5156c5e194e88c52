package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	signingKey := []byte("test-signing-key")
	userAgent := "test-agent/1.0"

	tokenString, err := GenerateToken(signingKey, 42, userAgent)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(signingKey, tokenString, userAgent)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
}

func TestParseToken_WrongKey(t *testing.T) {
	tokenString, err := GenerateToken([]byte("key-one"), 42, "agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), tokenString, "agent")
	assert.Error(t, err)
}

func TestParseToken_WrongUserAgent(t *testing.T) {
	signingKey := []byte("test-signing-key")

	tokenString, err := GenerateToken(signingKey, 42, "agent-a")
	require.NoError(t, err)

	_, err = ParseToken(signingKey, tokenString, "agent-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not-a-token", "agent")
	assert.Error(t, err)
}
