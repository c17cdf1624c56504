package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")

	assert.Equal(t, 24*time.Hour, Load().JWTTTL)
}
