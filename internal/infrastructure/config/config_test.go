package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "NutriAI", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Cache.PlanTTL)
	assert.Equal(t, 0.4, cfg.Bandit.Alpha)
	assert.Equal(t, 2, cfg.Bandit.MaxPerWeek)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  environment: production
server:
  port: 9000
cache:
  driver: redis
  host: cache.internal
  port: 6380
bandit:
  alpha: 0.8
  max_per_week: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
	assert.Equal(t, 0.8, cfg.Bandit.Alpha)
	assert.Equal(t, 3, cfg.Bandit.MaxPerWeek)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NUTRIAI_SERVER_PORT", "9999")
	t.Setenv("NUTRIAI_CACHE_DRIVER", "redis")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"missing catalog path", func(c *Config) { c.Catalog.Path = "" }},
		{"negative alpha", func(c *Config) { c.Bandit.Alpha = -0.1 }},
		{"zero weekly cap", func(c *Config) { c.Bandit.MaxPerWeek = 0 }},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
