// internal/utils/jwt_test.go

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("operator-1", "Director", "test-secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, role, err := ValidateJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, "operator-1", userID)
	assert.Equal(t, "Director", role)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("operator-1", "Admin", "correct-secret", time.Hour)
	assert.NoError(t, err)

	_, _, err = ValidateJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("operator-1", "Admin", "test-secret", -time.Hour)
	assert.NoError(t, err)

	_, _, err = ValidateJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestValidateJWT_Malformed(t *testing.T) {
	_, _, err := ValidateJWT("not-a-jwt", "test-secret")
	assert.Error(t, err)
}
