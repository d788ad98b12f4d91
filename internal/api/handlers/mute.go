package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/api/middleware"
	"github.com/netpulse/netpulse/internal/domain/mute"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
)

// MuteHandler handles mute window requests
type MuteHandler struct {
	service   mute.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewMuteHandler creates a new mute handler
func NewMuteHandler(service mute.Service, log *logger.Logger, val *validator.Validator) *MuteHandler {
	return &MuteHandler{service: service, logger: log, validator: val}
}

// List returns all mutes, or the mutes for one rule
// @Summary List mutes
// @Tags Mutes
// @Produce json
// @Param rule_id query int false "Filter by rule"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.MuteDTO} "List of mutes"
// @Security BearerAuth
// @Router /mutes [get]
func (h *MuteHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		mutes []*mute.AlertMute
		err   error
	)

	if v := r.URL.Query().Get("rule_id"); v != "" {
		ruleID, _ := strconv.ParseInt(v, 10, 64)
		mutes, err = h.service.ListForRule(r.Context(), ruleID)
	} else {
		mutes, err = h.service.List(r.Context())
	}
	if err != nil {
		writeServiceError(w, err, "Failed to list mutes")
		return
	}

	dtos := make([]dto.MuteDTO, len(mutes))
	for i, m := range mutes {
		dtos[i] = muteDTO(m)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Create mutes a rule
// @Summary Mute rule
// @Description Suppress notifications for a rule, optionally for one host and until an expiry
// @Tags Mutes
// @Accept json
// @Produce json
// @Param request body dto.CreateMuteRequest true "Mute"
// @Success 201 {object} utils.SuccessResponse{data=dto.MuteDTO} "Created mute"
// @Failure 404 {object} utils.ErrorResponse "Rule not found"
// @Security BearerAuth
// @Router /mutes [post]
func (h *MuteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMuteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	mutedBy, _ := middleware.GetUserEmail(r)
	m, err := h.service.Mute(r.Context(), req.AlertRuleID, req.HostID, mutedBy, req.Reason, req.ExpiresAt)
	if err != nil {
		writeServiceError(w, err, "Failed to mute rule")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, muteDTO(m))
}

// Delete removes a mute (unmute)
// @Summary Unmute
// @Tags Mutes
// @Param id path string true "Mute ID"
// @Success 200 {object} utils.SuccessResponse "Removed"
// @Failure 404 {object} utils.ErrorResponse "Mute not found"
// @Security BearerAuth
// @Router /mutes/{id} [delete]
func (h *MuteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Unmute(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to unmute")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Mute removed", nil)
}

func muteDTO(m *mute.AlertMute) dto.MuteDTO {
	return dto.MuteDTO{
		ID:          m.ID,
		AlertRuleID: m.AlertRuleID,
		HostID:      m.HostID,
		MutedBy:     m.MutedBy,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
	}
}
