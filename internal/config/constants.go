package config

import "time"

// Defaults for optional configuration
const (
	DefaultAPIURL        = "http://localhost:8080"
	DefaultAPITimeout    = 10 * time.Second
	DefaultAPIMaxRetries = 3
	DefaultHTTPPort      = "8082"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "trainer-bot"
	DefaultVersion     = "dev"

	DefaultDBMaxConns         = 10
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = 30 * time.Minute
	DefaultDraftTTL           = 24 * time.Hour
	DefaultDraftSweepInterval = 15 * time.Minute
	DefaultDraftCacheSize     = 1000

	DefaultRosterCacheSize = 500
	DefaultRosterCacheTTL  = 5 * time.Minute

	DefaultWorkerCount = 2
)
