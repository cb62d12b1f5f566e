package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Claim metric names
const (
	MetricNameClaimSessionsStarted = "claim_sessions_started_total"
	MetricNameClaimSessionsActive  = "claim_sessions_active"
	MetricNameClaimSubmissions     = "claim_submissions_total"
	MetricNameClaimSubmitDuration  = "claim_submit_duration_seconds"
	MetricNameAllocationRejections = "allocation_rejections_total"
	MetricNameDraftsExpired        = "claim_drafts_expired_total"
)

// Bot metric names
const (
	MetricNameDiscordCommands = "discord_commands_total"
	MetricNameRosterCache     = "roster_cache_requests_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Claim metric help text
const (
	HelpTextClaimSessionsStarted = "Total number of claim sessions started"
	HelpTextClaimSessionsActive  = "Current number of open claim sessions held in memory"
	HelpTextClaimSubmissions     = "Total number of claim submissions by outcome"
	HelpTextClaimSubmitDuration  = "Claim submission latency in seconds"
	HelpTextAllocationRejections = "Total number of allocation mutations rejected by reason"
	HelpTextDraftsExpired        = "Total number of claim drafts removed by the expiry sweep"
)

// Bot metric help text
const (
	HelpTextDiscordCommands = "Total number of Discord commands handled"
	HelpTextRosterCache     = "Roster cache lookups by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelCommand = "command"
	LabelResult  = "result"
)

// Label values
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	CacheResultHit  = "hit"
	CacheResultMiss = "miss"

	CommandStatusOK    = "ok"
	CommandStatusError = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ClaimLatencyBuckets covers backend claim calls including retries
var ClaimLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
