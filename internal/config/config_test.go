package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Storage.TTL)
	assert.Equal(t, time.Hour, cfg.Storage.RoomMaxAge)
	assert.Equal(t, 10*time.Minute, cfg.Storage.CleanupInterval)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.Equal(t, 1, cfg.Game.MinPlayers)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("STORAGE_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("GAME_MIN_PLAYERS", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Game.MinPlayers)
}
