package handlers

import (
	"net/http"
	"strconv"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/api/middleware"
	"github.com/netpulse/netpulse/internal/domain/alert"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
)

// AlertHandler handles fired alert requests
type AlertHandler struct {
	service   alert.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service alert.Service, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, logger: log, validator: val}
}

// List returns alerts with pagination and filtering
// @Summary List alerts
// @Description Get a paginated list of fired alerts with optional filtering
// @Tags Alerts
// @Produce json
// @Param rule_id query int false "Filter by rule"
// @Param host_id query string false "Filter by host"
// @Param metric_name query string false "Filter by metric name"
// @Param severity query string false "Filter by severity"
// @Param active query bool false "Only unresolved alerts"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.AlertDTO} "List of alerts"
// @Security BearerAuth
// @Router /alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePaginationParams(r)

	ruleID, _ := strconv.ParseInt(r.URL.Query().Get("rule_id"), 10, 64)
	filter := alert.Filter{
		AlertRuleID: ruleID,
		HostID:      r.URL.Query().Get("host_id"),
		MetricName:  r.URL.Query().Get("metric_name"),
		Severity:    r.URL.Query().Get("severity"),
		ActiveOnly:  r.URL.Query().Get("active") == "true",
	}

	alerts, total, err := h.service.List(r.Context(), filter, p.PageSize, p.Offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list alerts")
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = alertDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

// Get returns a single alert by ID
// @Summary Get alert
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertDTO} "Alert"
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Security BearerAuth
// @Router /alerts/{id} [get]
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, alertDTO(a))
}

// Acknowledge marks an alert as acknowledged
// @Summary Acknowledge alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param request body dto.AcknowledgeAlertRequest false "Acknowledger"
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertDTO} "Acknowledged alert"
// @Security BearerAuth
// @Router /alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req dto.AcknowledgeAlertRequest
	// Body is optional; default to the authenticated user's email
	_ = decodeBody(r, &req)
	by := req.AcknowledgedBy
	if by == "" {
		by, _ = middleware.GetUserEmail(r)
	}

	a, err := h.service.Acknowledge(r.Context(), id, by)
	if err != nil {
		writeServiceError(w, err, "Failed to acknowledge alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, alertDTO(a))
}

// Resolve marks an alert as resolved
// @Summary Resolve alert
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertDTO} "Resolved alert"
// @Security BearerAuth
// @Router /alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	a, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to resolve alert")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, alertDTO(a))
}

// GetSummary returns active alert counts per severity
// @Summary Alert summary
// @Tags Alerts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertSummaryDTO} "Summary"
// @Security BearerAuth
// @Router /alerts/summary [get]
func (h *AlertHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to summarize alerts")
		return
	}

	summary := dto.AlertSummaryDTO{
		Critical: counts["critical"],
		Warning:  counts["warning"],
		Info:     counts["info"],
	}
	summary.Total = summary.Critical + summary.Warning + summary.Info

	utils.WriteSuccess(w, http.StatusOK, summary)
}

func alertDTO(a *alert.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:             a.ID,
		AlertRuleID:    a.AlertRuleID,
		HostID:         a.HostID,
		HostName:       a.HostName,
		MetricName:     a.MetricName,
		Value:          a.Value,
		Threshold:      a.Threshold,
		Severity:       a.Severity,
		Message:        a.Message,
		TriggeredAt:    a.TriggeredAt,
		AcknowledgedAt: a.AcknowledgedAt,
		AcknowledgedBy: a.AcknowledgedBy,
		ResolvedAt:     a.ResolvedAt,
	}
}
