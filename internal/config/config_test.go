package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for key, name := range legacyEnv {
		t.Setenv(name, "")
		t.Setenv(EnvPrefix+"_"+envSuffix(key), "")
	}
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "CACHE_SIZE", "CACHE_TTL"} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func envSuffix(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 1024, cfg.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1000, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.DefaultWindow)
	assert.Empty(t, cfg.RateLimit.Whitelist)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	content := `
port: 9090
log_level: debug
log_format: console
cache_size: 16
cache_ttl: 30s
jwt:
  secret: file-secret
  expiration_hours: 2
rate_limit:
  enabled: false
  whitelist: ["10.0.0.1"]
`
	path := filepath.Join(t.TempDir(), "sync-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 2, cfg.JWT.ExpirationHours)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.RateLimit.Whitelist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "sync-engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9090, "log_level": "warn"}`), 0644))

	t.Setenv("SYNC_ENGINE_PORT", "7070")
	t.Setenv("SYNC_ENGINE_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/sync")
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1,10.0.0.2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "postgres://localhost/sync", cfg.DatabaseURL)
	assert.Equal(t, "legacy-secret", cfg.JWT.Secret)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
}

func TestLoad_PrefixedWinsOverLegacy(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("SYNC_ENGINE_PORT", "4000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:      8080,
			LogLevel:  "info",
			LogFormat: "json",
			CacheSize: 10,
			RateLimit: RateLimitConfig{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port too low", mutate: func(c *Config) { c.Port = 0 }, wantErr: "'port'"},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "'port'"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: "'log_level'"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "'log_format'"},
		{name: "negative cache", mutate: func(c *Config) { c.CacheSize = -1 }, wantErr: "'cache_size'"},
		{name: "negative ttl", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: "'cache_ttl'"},
		{
			name:    "jwt hours below one",
			mutate:  func(c *Config) { c.JWT = JWTConfig{Secret: "s", ExpirationHours: 0} },
			wantErr: "JWT_EXPIRATION_HOURS",
		},
		{
			name:   "jwt hours ignored without secret",
			mutate: func(c *Config) { c.JWT = JWTConfig{ExpirationHours: 0} },
		},
		{
			name:    "zero rate window",
			mutate:  func(c *Config) { c.RateLimit.DefaultWindow = 0 },
			wantErr: "'rate_limit.default_window'",
		},
		{
			name: "disabled limiter skips checks",
			mutate: func(c *Config) {
				c.RateLimit = RateLimitConfig{Enabled: false, DefaultWindow: 0}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
