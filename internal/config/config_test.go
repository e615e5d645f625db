package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Zero(t, cfg.APITimeout, "no timeout unless configured")
	assert.Equal(t, 1500*time.Millisecond, cfg.RenderGrace)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, ":memory:", cfg.DBDSN)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.internal:9000")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT", "10")

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.RateLimit)
}

func TestConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "crudadmin.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: \"9090\"\napi_base_url: http://from-file:8000\n"), 0o600))
	t.Setenv("PORT", "7070")

	cfg, err := load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "http://from-file:8000", cfg.APIBaseURL)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRejectsBadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT", "0")
	_, err := load(viper.New(), "")
	assert.Error(t, err)
}

func TestRejectsZeroSessionIdle(t *testing.T) {
	t.Setenv("SESSION_IDLE", "0s")
	_, err := load(viper.New(), "")
	assert.Error(t, err)
}
