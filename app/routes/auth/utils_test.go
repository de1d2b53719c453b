package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("9876543210")
	require.NoError(t, err)

	assert.NotEqual(t, "9876543210", hash)
	assert.True(t, CheckPasswordHash("9876543210", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("66f1a2b3c4d5e6f7a8b9c0d1", "NPNI2025-001", "Asha Patel", "team")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "66f1a2b3c4d5e6f7a8b9c0d1", claims.UserID)
	assert.Equal(t, "NPNI2025-001", claims.Email)
	assert.Equal(t, "Asha Patel", claims.Name)
	assert.Equal(t, "team", claims.Role)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT("66f1a2b3c4d5e6f7a8b9c0d1", "NPNI2025-001", "Asha Patel", "team")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}
