package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/urls.json", cfg.StoragePath)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "user@example.com", cfg.AdminEmail)
	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, 1000, cfg.LogBufferSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_PATH", "/tmp/test.json")
	t.Setenv("LOG_BUFFER_SIZE", "50")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/test.json", cfg.StoragePath)
	assert.Equal(t, 50, cfg.LogBufferSize)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 24, cfg.JWTTTL)
}
