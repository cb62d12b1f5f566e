package api

import (
	"errors"
	"time"
)

// Endpoint paths
const (
	PathUserByDiscord     = "/users/discord/%s"
	PathUnclaimedRewards  = "/adventures/discord/rewards/unclaimed/%s"
	PathTrainersByUser    = "/trainers/user/%d"
	PathMonstersByTrainer = "/monsters/trainer/%d"
	PathClaimRewards      = "/adventures/rewards/claim"
	PathHealthz           = "/healthz"
)

// Headers
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderDiscordUserID  = "X-Discord-User-Id"
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderRequestID      = "X-Request-ID"
)

// Retry tuning
const (
	DefaultRetryDelay = 500 * time.Millisecond
	MaxJitter         = 100 * time.Millisecond
	MaxErrorBodyBytes = 64 << 10
)

var (
	ErrMaxRetries        = errors.New("max retries exceeded")
	ErrMalformedResponse = errors.New("malformed API response")
)
