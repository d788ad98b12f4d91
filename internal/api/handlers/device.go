package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/netpulse/netpulse/internal/api/dto"
	"github.com/netpulse/netpulse/internal/domain/device"
	"github.com/netpulse/netpulse/internal/domain/metric"
	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/logger"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// DeviceHandler handles device inventory and metric requests
type DeviceHandler struct {
	devices device.Repository
	samples metric.Reader
	logger  *logger.Logger
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(devices device.Repository, samples metric.Reader, log *logger.Logger) *DeviceHandler {
	return &DeviceHandler{devices: devices, samples: samples, logger: log}
}

// List returns all known devices
// @Summary List devices
// @Tags Devices
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.DeviceDTO} "List of devices"
// @Security BearerAuth
// @Router /devices [get]
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.devices.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to list devices")
		return
	}

	dtos := make([]dto.DeviceDTO, len(devices))
	for i, d := range devices {
		dtos[i] = deviceDTO(d)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns one device
// @Summary Get device
// @Tags Devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.DeviceDTO} "Device"
// @Failure 404 {object} utils.ErrorResponse "Device not found"
// @Security BearerAuth
// @Router /devices/{id} [get]
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.devices.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get device")
		return
	}
	if d == nil {
		utils.WriteError(w, errors.NotFound("Device"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, deviceDTO(d))
}

// LatestMetrics returns the newest sample per metric for a device
// @Summary Latest device metrics
// @Tags Devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.MetricDTO} "Latest samples"
// @Security BearerAuth
// @Router /devices/{id}/metrics [get]
func (h *DeviceHandler) LatestMetrics(w http.ResponseWriter, r *http.Request) {
	samples, err := h.samples.GetLatest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get latest metrics")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, metricDTOs(samples))
}

// MetricHistory returns raw samples for one device metric
// @Summary Device metric history
// @Tags Devices
// @Produce json
// @Param id path string true "Device ID"
// @Param metric path string true "Metric name"
// @Param hours query int false "Window in hours (default: 24)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.MetricDTO} "Samples, oldest first"
// @Security BearerAuth
// @Router /devices/{id}/metrics/{metric} [get]
func (h *DeviceHandler) MetricHistory(w http.ResponseWriter, r *http.Request) {
	hours, _ := strconv.Atoi(r.URL.Query().Get("hours"))
	if hours <= 0 {
		hours = 24
	}
	end := time.Now().UTC()
	start := end.Add(-time.Duration(hours) * time.Hour)

	samples, err := h.samples.GetByTimeRange(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "metric"), start, end)
	if err != nil {
		writeServiceError(w, err, "Failed to get metric history")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, metricDTOs(samples))
}

func deviceDTO(d *device.Device) dto.DeviceDTO {
	return dto.DeviceDTO{
		ID:       d.ID,
		Name:     d.Name,
		Model:    d.Model,
		Type:     d.Type,
		IP:       d.IP,
		Site:     d.Site,
		State:    d.State,
		Version:  d.Version,
		UptimeS:  d.UptimeS,
		LastSeen: d.LastSeen,
	}
}

func metricDTOs(samples []*metric.Metric) []dto.MetricDTO {
	dtos := make([]dto.MetricDTO, len(samples))
	for i, m := range samples {
		dtos[i] = dto.MetricDTO{
			HostID:     m.HostID,
			MetricName: m.MetricName,
			Value:      m.Value,
			Unit:       m.Unit,
			RecordedAt: m.RecordedAt,
		}
	}
	return dtos
}
