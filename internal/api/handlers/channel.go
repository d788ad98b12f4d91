package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/domain/channel"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
	"github.com/netpulse/netpulse/internal/pkg/validator"
)

// ChannelHandler handles notification channel requests
type ChannelHandler struct {
	service   channel.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewChannelHandler creates a new channel handler
func NewChannelHandler(service channel.Service, log *logger.Logger, val *validator.Validator) *ChannelHandler {
	return &ChannelHandler{service: service, logger: log, validator: val}
}

// List returns all notification channels
// @Summary List channels
// @Tags Channels
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ChannelDTO} "List of channels"
// @Security BearerAuth
// @Router /channels [get]
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	channels, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list channels")
		return
	}

	dtos := make([]dto.ChannelDTO, len(channels))
	for i, c := range channels {
		dtos[i] = channelDTO(c)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single channel by ID
// @Summary Get channel
// @Tags Channels
// @Produce json
// @Param id path string true "Channel ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChannelDTO} "Channel"
// @Failure 404 {object} utils.ErrorResponse "Channel not found"
// @Security BearerAuth
// @Router /channels/{id} [get]
func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get channel")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, channelDTO(c))
}

// Create creates a notification channel
// @Summary Create channel
// @Tags Channels
// @Accept json
// @Produce json
// @Param request body dto.CreateChannelRequest true "New channel"
// @Success 201 {object} utils.SuccessResponse{data=dto.ChannelDTO} "Created channel"
// @Failure 400 {object} utils.ErrorResponse "Invalid channel config"
// @Security BearerAuth
// @Router /channels [post]
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateChannelRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), req.Name, req.ChannelType, req.Config)
	if err != nil {
		writeServiceError(w, err, "Failed to create channel")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, channelDTO(c))
}

// Update applies changes to a channel
// @Summary Update channel
// @Tags Channels
// @Accept json
// @Produce json
// @Param id path string true "Channel ID"
// @Param request body dto.UpdateChannelRequest true "Changes"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChannelDTO} "Updated channel"
// @Failure 404 {object} utils.ErrorResponse "Channel not found"
// @Security BearerAuth
// @Router /channels/{id} [put]
func (h *ChannelHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateChannelRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Config != nil {
		updates["config"] = json.RawMessage(req.Config)
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		writeServiceError(w, err, "Failed to update channel")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, channelDTO(c))
}

// Delete removes a channel
// @Summary Delete channel
// @Tags Channels
// @Param id path string true "Channel ID"
// @Success 200 {object} utils.SuccessResponse "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Channel not found"
// @Security BearerAuth
// @Router /channels/{id} [delete]
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to delete channel")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Channel deleted", nil)
}

// Test sends a synthetic alert through the channel
// @Summary Test channel delivery
// @Tags Channels
// @Param id path string true "Channel ID"
// @Success 200 {object} utils.SuccessResponse "Delivered"
// @Failure 400 {object} utils.ErrorResponse "Delivery failed"
// @Failure 404 {object} utils.ErrorResponse "Channel not found"
// @Security BearerAuth
// @Router /channels/{id}/test [post]
func (h *ChannelHandler) Test(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Test(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to test channel")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Test notification sent", nil)
}

func channelDTO(c *channel.NotificationChannel) dto.ChannelDTO {
	return dto.ChannelDTO{
		ID:          c.ID,
		Name:        c.Name,
		ChannelType: c.ChannelType,
		Config:      c.Config,
		Enabled:     c.Enabled,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
