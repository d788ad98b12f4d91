package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: log}
}

// Healthz reports process liveness without touching dependencies
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Process is alive"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports readiness, which requires a reachable database
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Ready to serve"
// @Failure 503 {object} utils.ErrorResponse "Database unreachable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Readiness ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable,
			"SERVICE_UNAVAILABLE", "Database connection failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "connected",
	})
}
