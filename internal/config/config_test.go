package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanyascan/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "gemini", cfg.Gateway.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gateway.DefaultModel)
	assert.Equal(t, 120*time.Second, cfg.Gateway.Timeout())
	assert.Equal(t, int64(10*1024*1024), cfg.Analysis.MaxDocumentBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SANYASCAN_GATEWAY_PROVIDER", "openai")
	t.Setenv("SANYASCAN_GATEWAY_API_KEY", "sk-test")
	t.Setenv("SANYASCAN_GATEWAY_DEFAULT_MODEL", "gpt-4o")
	t.Setenv("SANYASCAN_GATEWAY_TIMEOUT_SECS", "45")
	t.Setenv("SANYASCAN_CORS_ALLOWED_ORIGINS", "https://sanyascan.example.com, https://www.sanyascan.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Gateway.Provider)
	assert.Equal(t, "sk-test", cfg.Gateway.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Gateway.DefaultModel)
	assert.Equal(t, 45*time.Second, cfg.Gateway.Timeout())
	assert.Equal(t,
		[]string{"https://sanyascan.example.com", "https://www.sanyascan.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestValidate_MissingAPIKeyIsFatal(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestValidate_Passes(t *testing.T) {
	t.Setenv("SANYASCAN_GATEWAY_API_KEY", "sk-test")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
