package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"explorer/internal/httputil"
)

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a health handler; db may be nil
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck reports {"ok": true} when the store answers a ping
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", "error", err)
			httputil.RespondJSON(w, http.StatusServiceUnavailable, map[string]bool{"ok": false})
			return
		}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
