package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 5*cfg.RefillInterval, cfg.TTL, "TTL is floored to cover the refill window")
}

func TestLoadRateLimitConfig_BurstOverridesCapacity(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "60")
	t.Setenv("RATE_LIMIT_BURST", "5")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 5, cfg.Capacity)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", " get, head ")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "yes")
	assert.True(t, envBool("X_FLAG", false))
	t.Setenv("X_FLAG", "off")
	assert.False(t, envBool("X_FLAG", true))
	t.Setenv("X_FLAG", "maybe")
	assert.True(t, envBool("X_FLAG", true))
}
