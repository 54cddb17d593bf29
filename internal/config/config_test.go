package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "planner_app", cfg.Database.Name)
	assert.Equal(t, "", cfg.Redis.Address, "memory draft store by default")
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("JWT_EXPIRATION", "90m")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
}
