package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewService("test-secret-key", 1)
	userID := uuid.New()

	tokenStr, err := svc.Generate(userID, "reader42")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := svc.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "reader42", claims.Username)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParse_WrongSecret(t *testing.T) {
	svc := NewService("test-secret-key", 1)
	other := NewService("another-secret", 1)

	tokenStr, err := svc.Generate(uuid.New(), "reader42")
	require.NoError(t, err)

	_, err = other.Parse(tokenStr)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	svc := NewService("test-secret-key", 1)

	_, err := svc.Parse("not-a-token")
	assert.Error(t, err)
}
