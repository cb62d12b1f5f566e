package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the bot configuration
type Config struct {
	// Discord
	DiscordToken       string `validate:"required"`
	DiscordAppID       string `validate:"required"`
	ForceCommandUpdate bool

	// Backend REST API
	APIURL        string        `validate:"required,url"`
	APIKey        string
	APITimeout    time.Duration `validate:"gt=0"`
	APIMaxRetries int           `validate:"gte=0,lte=10"`

	// Health and metrics server
	HTTPPort int `validate:"gt=0,lte=65535"`

	// Logging
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogFile     string
	Environment string
	ServiceName string
	Version     string

	// Draft persistence; empty DatabaseURL keeps drafts in memory
	DatabaseURL        string
	DBMaxConns         int           `validate:"gt=0"`
	DBMaxConnIdleTime  time.Duration `validate:"gt=0"`
	DBMaxConnLifetime  time.Duration `validate:"gt=0"`
	DraftTTL           time.Duration `validate:"gt=0"`
	DraftSweepInterval time.Duration `validate:"gt=0"`
	DraftCacheSize     int           `validate:"gt=0"`

	// Roster cache
	RosterCacheSize int           `validate:"gt=0"`
	RosterCacheTTL  time.Duration `validate:"gt=0"`

	// Background jobs
	WorkerCount int `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:       getEnv("DISCORD_APP_ID", ""),
		ForceCommandUpdate: getEnvAsBool("DISCORD_FORCE_COMMAND_UPDATE", false),

		APIURL:        strings.TrimRight(getEnv("API_URL", DefaultAPIURL), "/"),
		APIKey:        getEnv("API_KEY", ""),
		APITimeout:    getEnvAsDuration("API_TIMEOUT", DefaultAPITimeout),
		APIMaxRetries: getEnvAsInt("API_MAX_RETRIES", DefaultAPIMaxRetries),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogFile:     getEnv("LOG_FILE", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBMaxConns:         getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		DraftTTL:           getEnvAsDuration("DRAFT_TTL", DefaultDraftTTL),
		DraftSweepInterval: getEnvAsDuration("DRAFT_SWEEP_INTERVAL", DefaultDraftSweepInterval),
		DraftCacheSize:     getEnvAsInt("DRAFT_CACHE_SIZE", DefaultDraftCacheSize),

		RosterCacheSize: getEnvAsInt("ROSTER_CACHE_SIZE", DefaultRosterCacheSize),
		RosterCacheTTL:  getEnvAsDuration("ROSTER_CACHE_TTL", DefaultRosterCacheTTL),

		WorkerCount: getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
	}

	portStr := getEnv("HTTP_PORT", DefaultHTTPPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT value: %w", err)
	}
	cfg.HTTPPort = port

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable must be set")
	}
	if cfg.DiscordAppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID environment variable must be set")
	}

	return cfg, nil
}

// UsesDatabase reports whether drafts are persisted in Postgres
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
