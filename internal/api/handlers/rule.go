package handlers

import (
	"net/http"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/domain/rule"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
)

// RuleHandler handles alert rule requests
type RuleHandler struct {
	service   rule.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(service rule.Service, log *logger.Logger, val *validator.Validator) *RuleHandler {
	return &RuleHandler{service: service, logger: log, validator: val}
}

// List returns alert rules with optional filtering
// @Summary List alert rules
// @Description Get alert rules with optional filtering
// @Tags Rules
// @Produce json
// @Param metric_name query string false "Filter by metric name"
// @Param severity query string false "Filter by severity"
// @Param host_id query string false "Filter by host"
// @Param enabled query bool false "Filter by enabled flag"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RuleDTO} "List of rules"
// @Security BearerAuth
// @Router /rules [get]
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := rule.Filter{
		MetricName: r.URL.Query().Get("metric_name"),
		Severity:   r.URL.Query().Get("severity"),
		HostID:     r.URL.Query().Get("host_id"),
	}
	if v := r.URL.Query().Get("enabled"); v != "" {
		enabled := v == "true" || v == "1"
		filter.Enabled = &enabled
	}

	rules, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Failed to list rules")
		return
	}

	dtos := make([]dto.RuleDTO, len(rules))
	for i, ar := range rules {
		dtos[i] = ruleDTO(ar)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single rule by ID
// @Summary Get alert rule
// @Tags Rules
// @Produce json
// @Param id path int true "Rule ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.RuleDTO} "Rule"
// @Failure 404 {object} utils.ErrorResponse "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	ar, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get rule")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ruleDTO(ar))
}

// Create creates a new alert rule
// @Summary Create alert rule
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body dto.CreateRuleRequest true "New rule"
// @Success 201 {object} utils.SuccessResponse{data=dto.RuleDTO} "Created rule"
// @Failure 400 {object} utils.ErrorResponse "Invalid rule"
// @Security BearerAuth
// @Router /rules [post]
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	cooldown := req.CooldownMinutes
	if cooldown == 0 {
		cooldown = 15
	}

	ar := &rule.AlertRule{
		Name:                 req.Name,
		Description:          req.Description,
		RuleType:             req.RuleType,
		MetricName:           req.MetricName,
		Condition:            req.Condition,
		Threshold:            req.Threshold,
		Severity:             req.Severity,
		HostID:               req.HostID,
		NotificationChannels: req.NotificationChannels,
		CooldownMinutes:      cooldown,
		Enabled:              enabled,
	}

	if _, err := h.service.Create(r.Context(), ar); err != nil {
		writeServiceError(w, err, "Failed to create rule")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, ruleDTO(ar))
}

// Update applies changes to a rule
// @Summary Update alert rule
// @Tags Rules
// @Accept json
// @Produce json
// @Param id path int true "Rule ID"
// @Param request body dto.UpdateRuleRequest true "Changes"
// @Success 200 {object} utils.SuccessResponse{data=dto.RuleDTO} "Updated rule"
// @Failure 404 {object} utils.ErrorResponse "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [put]
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRuleRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.MetricName != nil {
		updates["metric_name"] = *req.MetricName
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.Threshold != nil {
		updates["threshold"] = *req.Threshold
	}
	if req.Severity != nil {
		updates["severity"] = *req.Severity
	}
	if req.HostID != nil {
		updates["host_id"] = *req.HostID
	}
	if req.NotificationChannels != nil {
		updates["notification_channels"] = req.NotificationChannels
	}
	if req.CooldownMinutes != nil {
		updates["cooldown_minutes"] = *req.CooldownMinutes
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	ar, err := h.service.Update(r.Context(), id, updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update rule")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ruleDTO(ar))
}

// Delete removes a rule
// @Summary Delete alert rule
// @Tags Rules
// @Param id path int true "Rule ID"
// @Success 200 {object} utils.SuccessResponse "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [delete]
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete rule")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Rule deleted", nil)
}

// Enable enables a rule
// @Summary Enable alert rule
// @Tags Rules
// @Param id path int true "Rule ID"
// @Success 200 {object} utils.SuccessResponse "Enabled"
// @Security BearerAuth
// @Router /rules/{id}/enable [post]
func (h *RuleHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, true)
}

// Disable disables a rule
// @Summary Disable alert rule
// @Tags Rules
// @Param id path int true "Rule ID"
// @Success 200 {object} utils.SuccessResponse "Disabled"
// @Security BearerAuth
// @Router /rules/{id}/disable [post]
func (h *RuleHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, false)
}

func (h *RuleHandler) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var err error
	if enabled {
		err = h.service.Enable(r.Context(), id)
	} else {
		err = h.service.Disable(r.Context(), id)
	}
	if err != nil {
		writeServiceError(w, err, "Failed to toggle rule")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Rule updated", nil)
}

func ruleDTO(ar *rule.AlertRule) dto.RuleDTO {
	channels := ar.NotificationChannels
	if channels == nil {
		channels = []string{}
	}
	return dto.RuleDTO{
		ID:                   ar.ID,
		Name:                 ar.Name,
		Description:          ar.Description,
		RuleType:             ar.RuleType,
		MetricName:           ar.MetricName,
		Condition:            ar.Condition,
		Threshold:            ar.Threshold,
		Severity:             ar.Severity,
		HostID:               ar.HostID,
		NotificationChannels: channels,
		CooldownMinutes:      ar.CooldownMinutes,
		Enabled:              ar.Enabled,
		CreatedAt:            ar.CreatedAt,
		UpdatedAt:            ar.UpdatedAt,
	}
}
