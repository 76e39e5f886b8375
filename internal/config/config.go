package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Gateway  GatewayConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GatewayConfig holds settings for the LLM model gateway.
type GatewayConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Timeout returns the gateway request timeout, defaulting to 120s.
func (g *GatewayConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// AnalysisConfig holds document analysis settings.
type AnalysisConfig struct {
	MaxDocumentBytes int64 `mapstructure:"max_document_bytes"`
}

// Load reads configuration from environment variables with the SANYASCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SANYASCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// CORS defaults: the demo widget is embedded in the public marketing
	// site, so the analyze endpoint is open by default.
	v.SetDefault("cors.allowed_origins", "*")

	// Gateway defaults
	v.SetDefault("gateway.provider", "gemini")
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.default_model", "gemini-2.5-flash")
	v.SetDefault("gateway.timeout_secs", 120)

	// Analysis defaults
	v.SetDefault("analysis.max_document_bytes", 10*1024*1024)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "SANYASCAN_SERVER_PORT",
		"server.read_timeout":         "SANYASCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "SANYASCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":          "SANYASCAN_SERVER_ENVIRONMENT",
		"cors.allowed_origins":        "SANYASCAN_CORS_ALLOWED_ORIGINS",
		"gateway.provider":            "SANYASCAN_GATEWAY_PROVIDER",
		"gateway.api_key":             "SANYASCAN_GATEWAY_API_KEY",
		"gateway.default_model":       "SANYASCAN_GATEWAY_DEFAULT_MODEL",
		"gateway.timeout_secs":        "SANYASCAN_GATEWAY_TIMEOUT_SECS",
		"analysis.max_document_bytes": "SANYASCAN_ANALYSIS_MAX_DOCUMENT_BYTES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SANYASCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SANYASCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Gateway = GatewayConfig{
		Provider:     v.GetString("gateway.provider"),
		APIKey:       v.GetString("gateway.api_key"),
		DefaultModel: v.GetString("gateway.default_model"),
		TimeoutSecs:  v.GetInt("gateway.timeout_secs"),
	}

	cfg.Analysis = AnalysisConfig{
		MaxDocumentBytes: v.GetInt64("analysis.max_document_bytes"),
	}

	return cfg, nil
}

// Validate checks that required settings are present. The API credential is
// checked once at startup so a misconfigured deploy fails before serving its
// first request, not on the first analysis.
func (c *Config) Validate() error {
	if c.Gateway.Provider == "" {
		return fmt.Errorf("gateway provider is required")
	}
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("gateway API key is not configured (set SANYASCAN_GATEWAY_API_KEY)")
	}
	return nil
}
