package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when only required vars set", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "token", cfg.DiscordToken)
		assert.Equal(t, "app-id", cfg.DiscordAppID)
		assert.Equal(t, 8082, cfg.HTTPPort, "Should use default port")
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
		assert.Equal(t, 10*time.Second, cfg.APITimeout)
		assert.Equal(t, 3, cfg.APIMaxRetries)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.False(t, cfg.ForceCommandUpdate)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		t.Setenv("HTTP_PORT", "3000")
		t.Setenv("API_URL", "https://api.example.com/")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("API_TIMEOUT", "3s")
		t.Setenv("API_MAX_RETRIES", "1")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_FILE", "/var/log/trainer-bot.log")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DISCORD_FORCE_COMMAND_UPDATE", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.HTTPPort)
		assert.Equal(t, "https://api.example.com", cfg.APIURL, "Trailing slash is trimmed")
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, 3*time.Second, cfg.APITimeout)
		assert.Equal(t, 1, cfg.APIMaxRetries)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "/var/log/trainer-bot.log", cfg.LogFile)
		assert.Equal(t, "prod", cfg.Environment)
		assert.True(t, cfg.ForceCommandUpdate)
	})

	t.Run("returns error when DISCORD_TOKEN is missing", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_APP_ID", "app-id")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "DISCORD_TOKEN")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("returns error when DISCORD_APP_ID is missing", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DISCORD_TOKEN", "token")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DISCORD_APP_ID")
	})

	t.Run("returns error for invalid HTTP_PORT", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("HTTP_PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid HTTP_PORT")
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.NoError(t, cfg.Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("HTTP_PORT", "70000")
		t.Setenv("LOG_FORMAT", "xml")
		t.Setenv("API_URL", "not a url")

		cfg, err := Load()
		require.NoError(t, err, "Load only parses; Validate checks ranges")

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTPPort")
		assert.Contains(t, err.Error(), "LogFormat")
		assert.Contains(t, err.Error(), "APIURL")
	})
}

func TestWarnings(t *testing.T) {
	cfg := &Config{}
	warnings := cfg.Warnings()
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "API_KEY")
	assert.Contains(t, warnings[1], "DATABASE_URL")

	cfg = &Config{APIKey: "real", DatabaseURL: "postgres://localhost/db"}
	assert.Empty(t, cfg.Warnings())
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "app-id")
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"DISCORD_TOKEN", "DISCORD_APP_ID", "DISCORD_FORCE_COMMAND_UPDATE",
		"API_URL", "API_KEY", "API_TIMEOUT", "API_MAX_RETRIES", "HTTP_PORT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"DATABASE_URL", "DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"DRAFT_TTL", "DRAFT_SWEEP_INTERVAL", "DRAFT_CACHE_SIZE",
		"ROSTER_CACHE_SIZE", "ROSTER_CACHE_TTL", "WORKER_COUNT",
	}

	for _, key := range envVars {
		// t.Setenv restores the previous value after the test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
