package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Claim Metrics
var (
	ClaimSessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameClaimSessionsStarted,
			Help: HelpTextClaimSessionsStarted,
		},
	)

	ClaimSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameClaimSessionsActive,
			Help: HelpTextClaimSessionsActive,
		},
	)

	ClaimSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimSubmissions,
			Help: HelpTextClaimSubmissions,
		},
		[]string{LabelOutcome},
	)

	ClaimSubmitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameClaimSubmitDuration,
			Help:    HelpTextClaimSubmitDuration,
			Buckets: ClaimLatencyBuckets,
		},
	)

	AllocationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAllocationRejections,
			Help: HelpTextAllocationRejections,
		},
		[]string{LabelReason},
	)

	DraftsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDraftsExpired,
			Help: HelpTextDraftsExpired,
		},
	)
)

// Bot Metrics
var (
	DiscordCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordCommands,
			Help: HelpTextDiscordCommands,
		},
		[]string{LabelCommand, LabelStatus},
	)

	RosterCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRosterCache,
			Help: HelpTextRosterCache,
		},
		[]string{LabelResult},
	)
)
