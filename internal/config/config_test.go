package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3001/api", cfg.API.BaseURL)
	require.False(t, cfg.API.UseMockAPI)
	require.Equal(t, 5*time.Minute, cfg.Fetch.CacheTTL.Std())
	require.Equal(t, 3, cfg.Fetch.RetryCount)
	require.Equal(t, 300*time.Millisecond, cfg.Store.DebounceWindow.Std())
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
api:
  base_url: https://api.alumniconnect.example/api
  use_mock_api: true
fetch:
  cache_ttl: 30s
  retry_count: 5
storage:
  driver: redis
  redis_addr: localhost:6379
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("ALUMNI_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.alumniconnect.example/api", cfg.API.BaseURL)
	require.True(t, cfg.API.UseMockAPI)
	require.Equal(t, 30*time.Second, cfg.Fetch.CacheTTL.Std())
	require.Equal(t, 5, cfg.Fetch.RetryCount)
	require.Equal(t, "redis", cfg.Storage.Driver)
	require.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("ALUMNI_CONFIG_PATH", path)
	t.Setenv("ALUMNI_LOG_LEVEL", "error")
	t.Setenv("ALUMNI_RETRY_DELAY", "250ms")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, 250*time.Millisecond, cfg.Fetch.RetryDelay.Std())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  cache_ttl: soon\n"), 0o600))
	t.Setenv("ALUMNI_CONFIG_PATH", path)

	_, err := config.Load()
	require.Error(t, err)
}
