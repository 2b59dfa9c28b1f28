package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/device"
)

// LogsHandler ingests device log batches and serves them back to the
// dashboard.
type LogsHandler struct {
	resolver *device.Resolver
	devices  db.DeviceStore
	logs     db.LogStore
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(resolver *device.Resolver, devices db.DeviceStore, logs db.LogStore) *LogsHandler {
	return &LogsHandler{resolver: resolver, devices: devices, logs: logs}
}

// Ingest handles POST /api/log
// @Summary      Ingest a device log entry
// @Description  Resolves the calling device and stores the log entry. Always responds 200; failures are reported in the status field.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        ID            header    string            false  "Device MAC address"
// @Param        Access-Token  header    string            false  "Device API key"
// @Param        request       body      types.LogRequest  true   "Log entry"
// @Success      200  {object}  types.LogResponse
// @Router       /log [post]
func (h *LogsHandler) Ingest(c *gin.Context) {
	ctx := c.Request.Context()

	dev, _, err := h.resolver.Resolve(ctx, c.GetHeader(headerID), c.GetHeader(headerAccessToken), statusReport(c))
	if err != nil {
		msg := "Device not found. Please register the device first."
		if !errors.Is(err, device.ErrNotRegistered) {
			log.Error().Err(err).Msg("Device resolution failed")
			msg = "Temporary server error. Please retry."
		}
		c.JSON(http.StatusOK, types.LogResponse{
			Status:  "error",
			Message: msg,
		})
		return
	}

	var req types.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusOK, types.LogResponse{
			Status:  "error",
			Message: "Log entry requires a message",
		})
		return
	}

	entry := &db.LogEntry{
		DeviceID:   dev.ID,
		FriendlyID: dev.FriendlyID,
		Level:      req.Level,
		Message:    req.Message,
		LogData:    req.LogData,
	}
	if err := h.logs.Insert(ctx, entry); err != nil {
		// Logging must never interrupt the device; record the failure
		// server-side and acknowledge anyway.
		log.Error().Err(err).Str("friendly_id", dev.FriendlyID).Msg("Failed to store device log")
	}

	c.JSON(http.StatusOK, types.LogResponse{Status: "ok"})
}

// List handles GET /api/devices/:id/logs
// @Summary      List device logs
// @Description  Returns the most recent log entries for a device, newest first
// @Tags         devices
// @Produce      json
// @Param        id     path      string  true   "Device id"
// @Param        limit  query     int     false  "Maximum entries to return"
// @Success      200    {array}   db.LogEntry
// @Failure      404    {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id}/logs [get]
func (h *LogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	dev, err := h.devices.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.logs.ListForDevice(ctx, dev.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}
	if entries == nil {
		entries = []*db.LogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
