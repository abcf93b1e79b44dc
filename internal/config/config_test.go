package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "WORD_LENGTH", "MAX_ATTEMPTS", "SESSION_TTL", "JWT_EXPIRES_HOURS", "ADMIN_KEY_HASH"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5, c.WordLength)
	assert.Equal(t, 6, c.MaxAttempts)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.Equal(t, 24*time.Hour, c.JWTExpires)
	assert.Empty(t, c.AdminKeyHash)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORD_LENGTH", "6")
	t.Setenv("MAX_ATTEMPTS", "8")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("WORDS_ALLOWED_FILE", "/tmp/allowed.txt")
	t.Setenv("APP_ENV", "production")

	c := FromEnv()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 6, c.WordLength)
	assert.Equal(t, 8, c.MaxAttempts)
	assert.Equal(t, 15*time.Minute, c.SessionTTL)
	assert.Equal(t, "/tmp/allowed.txt", c.AllowedFile)
	assert.True(t, c.SecureCookie)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORD_LENGTH", "five")
	t.Setenv("MAX_ATTEMPTS", "-2")
	t.Setenv("SESSION_TTL", "soon")

	c := FromEnv()
	assert.Equal(t, 5, c.WordLength)
	assert.Equal(t, 6, c.MaxAttempts)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}
