package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/analytics"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/services"
)

// AnalyticsHandler handles statistics, trend and anomaly requests
type AnalyticsHandler struct {
	service *services.AnalyticsService
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *services.AnalyticsService, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: log}
}

func analyticsWindow(r *http.Request) (time.Time, time.Time) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))
	if hours <= 0 {
		hours = 24
	}
	end := time.Now().UTC()
	return end.Add(-time.Duration(hours) * time.Hour), end
}

// Report returns statistics, trend and anomalies for one series
// @Summary Metric analytics report
// @Description Descriptive statistics, least-squares trend and z-score anomalies over a window
// @Tags Analytics
// @Produce json
// @Param host_id path string true "Host ID"
// @Param metric path string true "Metric name"
// @Param hours query int false "Window in hours (default: 24)"
// @Success 200 {object} utils.SuccessResponse{data=services.MetricReport} "Report"
// @Security BearerAuth
// @Router /analytics/{host_id}/{metric} [get]
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, end := analyticsWindow(r)

	report, err := h.service.GetReport(r.Context(),
		chi.URLParam(r, "host_id"), chi.URLParam(r, "metric"), start, end)
	if err != nil {
		writeServiceError(w, err, "Failed to build analytics report")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, report)
}

// Anomalies returns anomalous samples for one series
// @Summary Metric anomalies
// @Tags Analytics
// @Produce json
// @Param host_id path string true "Host ID"
// @Param metric path string true "Metric name"
// @Param hours query int false "Window in hours (default: 24)"
// @Param sigma query number false "Z-score threshold (default: 2.0)"
// @Success 200 {object} utils.SuccessResponse{data=[]analytics.Anomaly} "Anomalies"
// @Security BearerAuth
// @Router /analytics/{host_id}/{metric}/anomalies [get]
func (h *AnalyticsHandler) Anomalies(w http.ResponseWriter, r *http.Request) {
	start, end := analyticsWindow(r)

	sigma, _ := strconv.ParseFloat(r.URL.Query().Get("sigma"), 64)
	if sigma <= 0 {
		sigma = analytics.DefaultSigma
	}

	anomalies, err := h.service.GetAnomalies(r.Context(),
		chi.URLParam(r, "host_id"), chi.URLParam(r, "metric"), start, end, sigma)
	if err != nil {
		writeServiceError(w, err, "Failed to detect anomalies")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, anomalies)
}

// Health returns the composite health score for a host
// @Summary Host health score
// @Description 0-100 score composed from CPU, memory, temperature and anomaly sub-scores
// @Tags Analytics
// @Produce json
// @Param host_id path string true "Host ID"
// @Param hours query int false "Window in hours (default: 24)"
// @Success 200 {object} utils.SuccessResponse{data=services.HostHealth} "Health"
// @Failure 404 {object} utils.ErrorResponse "No metric history"
// @Security BearerAuth
// @Router /analytics/{host_id}/health [get]
func (h *AnalyticsHandler) Health(w http.ResponseWriter, r *http.Request) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))

	health, err := h.service.GetHostHealth(r.Context(), chi.URLParam(r, "host_id"), hours)
	if err != nil {
		writeServiceError(w, err, "Failed to score host health")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, health)
}
