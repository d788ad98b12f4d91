package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/services"
)

// ForecastHandler handles forecasting requests
type ForecastHandler struct {
	service *services.ForecastService
	logger  *logger.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(service *services.ForecastService, log *logger.Logger) *ForecastHandler {
	return &ForecastHandler{service: service, logger: log}
}

// Forecast projects a metric ahead with confidence bands
// @Summary Metric forecast
// @Description Double-exponential-smoothing forecast over daily averages with 95% confidence bands
// @Tags Forecast
// @Produce json
// @Param host_id path string true "Host ID"
// @Param metric path string true "Metric name"
// @Param history_days query int false "History window in days (default: 30)"
// @Param horizon_days query int false "Forecast horizon in days (default: 7)"
// @Success 200 {object} utils.SuccessResponse{data=services.MetricForecast} "Forecast"
// @Failure 400 {object} utils.ErrorResponse "Not enough history"
// @Security BearerAuth
// @Router /forecast/{host_id}/{metric} [get]
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	historyDays, _ := strconv.Atoi(r.URL.Query().Get("history_days"))
	horizonDays, _ := strconv.Atoi(r.URL.Query().Get("horizon_days"))

	f, err := h.service.ForecastMetric(r.Context(),
		chi.URLParam(r, "host_id"), chi.URLParam(r, "metric"), historyDays, horizonDays)
	if err != nil {
		writeServiceError(w, err, "Failed to forecast metric")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, f)
}

// Capacity projects when a metric crosses a capacity threshold
// @Summary Capacity forecast
// @Description Projects the first crossing of capacity×threshold%% within a 90-day horizon
// @Tags Forecast
// @Produce json
// @Param host_id path string true "Host ID"
// @Param metric path string true "Metric name"
// @Param capacity query number true "Capacity value"
// @Param threshold_percent query number false "Threshold percent of capacity (default: 80)"
// @Param history_days query int false "History window in days (default: 30)"
// @Success 200 {object} utils.SuccessResponse{data=forecast.CapacityReport} "Capacity report"
// @Failure 400 {object} utils.ErrorResponse "Bad parameters or not enough history"
// @Security BearerAuth
// @Router /forecast/{host_id}/{metric}/capacity [get]
func (h *ForecastHandler) Capacity(w http.ResponseWriter, r *http.Request) {
	capacity, err := strconv.ParseFloat(r.URL.Query().Get("capacity"), 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("capacity query parameter is required"))
		return
	}

	thresholdPercent, _ := strconv.ParseFloat(r.URL.Query().Get("threshold_percent"), 64)
	if thresholdPercent == 0 {
		thresholdPercent = 80
	}
	historyDays, _ := strconv.Atoi(r.URL.Query().Get("history_days"))

	report, err := h.service.ForecastCapacity(r.Context(),
		chi.URLParam(r, "host_id"), chi.URLParam(r, "metric"),
		capacity, thresholdPercent, historyDays)
	if err != nil {
		writeServiceError(w, err, "Failed to forecast capacity")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, report)
}
