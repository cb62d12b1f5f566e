package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// ReadinessTimeout bounds each dependency check made by /readyz
const ReadinessTimeout = 2 * time.Second

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
}

// ReadinessStatus reports each dependency /readyz checked
type ReadinessStatus struct {
	Status   string `json:"status"`
	API      string `json:"api"`
	Database string `json:"database,omitempty"`
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandUnix atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandUnix.Store(time.Now().UnixNano())
}

// HandleHealth reports liveness. It never calls out to dependencies.
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	connected := h.connected != nil && h.connected()

	health := HealthStatus{
		Status:           "ok",
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
	}
	if last := lastCommandUnix.Load(); last != 0 {
		t := time.Unix(0, last).UTC()
		health.LastCommandTime = &t
	}
	if !connected {
		health.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, health)
}

// HandleReady reports whether the backend API, and the draft database when
// configured, are reachable.
func (h *HTTPServer) HandleReady(w http.ResponseWriter, r *http.Request) {
	status := ReadinessStatus{Status: "ok", API: "ok"}
	code := http.StatusOK

	if err := h.check(r.Context(), h.api.Healthz); err != nil {
		slog.Error("Readiness check failed", "dependency", "api", "error", err)
		status.Status, status.API = "unavailable", "unreachable"
		code = http.StatusServiceUnavailable
	}

	if h.db != nil {
		status.Database = "ok"
		if err := h.check(r.Context(), h.db.Ping); err != nil {
			slog.Error("Readiness check failed", "dependency", "database", "error", err)
			status.Status, status.Database = "unavailable", "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, status)
}

func (h *HTTPServer) check(ctx context.Context, probe func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, ReadinessTimeout)
	defer cancel()
	return probe(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write health response", "error", err)
	}
}
