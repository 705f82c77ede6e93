package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 0, cfg.API.RetryMax, "core performs no automatic retries")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "", cfg.Cache.RedisAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, uint32(5), cfg.Breaker.ConsecutiveFailures)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  base_url: https://predictor.example.com
  timeout: 5s
server:
  addr: ":9090"
logging:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://predictor.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file:8000\n"), 0o600))

	t.Setenv("API_BASE_URL", "http://env:8000")
	t.Setenv("API_RETRY_MAX", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env:8000", cfg.API.BaseURL)
	assert.Equal(t, 2, cfg.API.RetryMax)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFrom_InvalidBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "ftp://nowhere")

	_, err := LoadFrom("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "api.base_url", envTransformFunc("API_BASE_URL"))
	assert.Equal(t, "logging.level", envTransformFunc("LOG_LEVEL"))
	assert.Equal(t, "", envTransformFunc("HOME"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "no host"},
		{"negative retries", func(c *Config) { c.API.RetryMax = -1 }, "retry_max"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"zero breaker threshold", func(c *Config) { c.Breaker.ConsecutiveFailures = 0 }, "consecutive_failures"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no rate limit", func(c *Config) { c.Server.RateLimit = 0 }, "rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
