package handlers

import (
	"net/http"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/engine"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// EngineHandler exposes an on-demand evaluation pass
type EngineHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewEngineHandler creates a new engine handler
func NewEngineHandler(eng *engine.Engine, log *logger.Logger) *EngineHandler {
	return &EngineHandler{engine: eng, logger: log}
}

// Evaluate runs one evaluation pass over all enabled rules
// @Summary Evaluate rules now
// @Description Run all enabled rules against the latest samples and return newly fired alerts
// @Tags Engine
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AlertDTO} "Newly fired alerts"
// @Security BearerAuth
// @Router /engine/evaluate [post]
func (h *EngineHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.engine.EvaluateAllRules(r.Context())
	if err != nil {
		writeServiceError(w, err, "Evaluation pass failed")
		return
	}

	dtos := make([]dto.AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = alertDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}
