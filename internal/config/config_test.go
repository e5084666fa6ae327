package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slm-1056101/raven/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Shield the test from ambient RAVEN_* vars and any local .env file;
	// godotenv never overrides a variable that is already set.
	t.Setenv("RAVEN_API_BASE_URL", "")
	t.Setenv("RAVEN_HTTP_TIMEOUT", "")
	t.Setenv("RAVEN_TOKEN_PATH", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Empty(t, cfg.Token.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RAVEN_API_BASE_URL", "https://api.example.com/")
	t.Setenv("RAVEN_HTTP_TIMEOUT", "30s")
	t.Setenv("RAVEN_TOKEN_PATH", "/tmp/raven-token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/raven-token", cfg.Token.Path)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("RAVEN_HTTP_TIMEOUT", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}
