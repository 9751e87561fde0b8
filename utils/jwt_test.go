package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIDFromToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, time.Minute)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestExtractIDFromToken_Rejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ExtractIDFromToken(expired, secret)
	assert.Error(t, err)

	valid, err := GenerateToken("user-1", secret, time.Minute)
	require.NoError(t, err)
	_, err = ExtractIDFromToken(valid, []byte("other-secret"))
	assert.Error(t, err)

	noSubject, err := GenerateToken("", secret, time.Minute)
	require.NoError(t, err)
	_, err = ExtractIDFromToken(noSubject, secret)
	assert.Error(t, err)
}
