package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "platecheck/internal/log"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status      string    `json:"status"`
	Time        time.Time `json:"time"`
	Database    string    `json:"database"`
	Recognition string    `json:"recognition"`
}

// Health is a readiness handler suitable for infrastructure probes. It pings
// the scan log database and reports whether recognition is configured.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:      "ok",
		Time:        time.Now().UTC(),
		Database:    "disabled",
		Recognition: "disabled",
	}
	if scanner.enabled() {
		resp.Recognition = "enabled"
	}

	code := http.StatusOK
	if scanLog.Enabled() {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		err := scanLog.Ping(ctx)
		cancel()
		if err != nil {
			applog.Error(r.Context(), "database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unavailable"
			code = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		return
	}
	applog.Debug(r.Context(), "health check responded", "status", resp.Status)
}
