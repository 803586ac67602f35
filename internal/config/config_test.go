// internal/config/config_test.go

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_STR")
	assert.Equal(t, "fallback", getEnvOrDefault("CONFIG_TEST_STR", "fallback"))

	os.Setenv("CONFIG_TEST_STR", "override")
	defer os.Unsetenv("CONFIG_TEST_STR")
	assert.Equal(t, "override", getEnvOrDefault("CONFIG_TEST_STR", "fallback"))
}

func TestGetIntOrDefault(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_INT")
	assert.Equal(t, 6, getIntOrDefault("CONFIG_TEST_INT", 6))

	os.Setenv("CONFIG_TEST_INT", "12")
	defer os.Unsetenv("CONFIG_TEST_INT")
	assert.Equal(t, 12, getIntOrDefault("CONFIG_TEST_INT", 6))

	os.Setenv("CONFIG_TEST_INT", "not-a-number")
	assert.Equal(t, 6, getIntOrDefault("CONFIG_TEST_INT", 6))
}

func TestGetFloatOrDefault(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_FLOAT")
	assert.Equal(t, 5.0, getFloatOrDefault("CONFIG_TEST_FLOAT", 5.0))

	os.Setenv("CONFIG_TEST_FLOAT", "7.5")
	defer os.Unsetenv("CONFIG_TEST_FLOAT")
	assert.Equal(t, 7.5, getFloatOrDefault("CONFIG_TEST_FLOAT", 5.0))
}

func TestGetBoolOrDefault(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_BOOL")
	assert.True(t, getBoolOrDefault("CONFIG_TEST_BOOL", true))

	os.Setenv("CONFIG_TEST_BOOL", "false")
	defer os.Unsetenv("CONFIG_TEST_BOOL")
	assert.False(t, getBoolOrDefault("CONFIG_TEST_BOOL", true))
}

func TestGetDurationOrDefault(t *testing.T) {
	os.Unsetenv("CONFIG_TEST_DURATION")
	assert.Equal(t, 15*time.Second, getDurationOrDefault("CONFIG_TEST_DURATION", 15*time.Second))

	os.Setenv("CONFIG_TEST_DURATION", "2m")
	defer os.Unsetenv("CONFIG_TEST_DURATION")
	assert.Equal(t, 2*time.Minute, getDurationOrDefault("CONFIG_TEST_DURATION", 15*time.Second))
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.EqualError(t, cfg.Validate(), "MYSQL_DSN is required")

	cfg.Database.MySQL.DSN = "user:pass@tcp(localhost:3306)/db"
	assert.EqualError(t, cfg.Validate(), "MONGO_URI is required")

	cfg.Database.MongoDB.URI = "mongodb://localhost:27017"
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())
}
