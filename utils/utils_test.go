package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("battery staple", hash))
	assert.False(t, CheckPassword("correct horse", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(secret, "editor", time.Hour)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "Bearer "))

	username, err := ParseJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "editor", username)

	username, err = ParseJWT(secret, strings.TrimPrefix(token, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "editor", username)
}

func TestParseJWT_Rejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateJWT(secret, "editor", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(secret, expired)
	assert.Error(t, err)

	valid, err := GenerateJWT(secret, "editor", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT([]byte("other-secret"), valid)
	assert.Error(t, err)

	_, err = ParseJWT(secret, "Bearer garbage")
	assert.Error(t, err)
}
