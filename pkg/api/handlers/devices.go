package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/device"
)

// DevicesHandler handles device CRUD endpoints
type DevicesHandler struct {
	devices db.DeviceStore
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(devices db.DeviceStore) *DevicesHandler {
	return &DevicesHandler{devices: devices}
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Description  Returns every registered device
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	devices, err := h.devices.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}
	if devices == nil {
		devices = []*device.Device{}
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device details
// @Description  Returns one device by id or friendly id
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device id or friendly id"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	dev, err := h.lookup(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: dev})
}

// UpdateDevice handles PATCH /devices/:id
// @Summary      Update device settings
// @Description  Changes the editable device fields; absent fields are left untouched
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Device id or friendly id"
// @Param        request  body      types.UpdateDeviceRequest  true  "Fields to change"
// @Success      200      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [patch]
func (h *DevicesHandler) UpdateDevice(c *gin.Context) {
	var req types.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	dev, err := h.lookup(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if req.Name != nil {
		dev.Name = *req.Name
	}
	if req.Screen != nil {
		dev.Screen = *req.Screen
	}
	if req.Timezone != nil {
		dev.Timezone = *req.Timezone
	}
	if req.RefreshRate != nil {
		if *req.RefreshRate <= 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "refresh_rate must be positive",
			})
			return
		}
		dev.RefreshRate = *req.RefreshRate
	}

	if err := h.devices.UpdateSettings(c.Request.Context(), dev); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{Device: dev})
}

// RemoveDevice handles DELETE /devices/:id
// @Summary      Remove a device
// @Description  Deletes a device along with its screens and logs
// @Tags         devices
// @Produce      json
// @Param        id   path  string  true  "Device id or friendly id"
// @Success      204  "Device removed"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [delete]
func (h *DevicesHandler) RemoveDevice(c *gin.Context) {
	dev, err := h.lookup(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.devices.Delete(c.Request.Context(), dev.ID); err != nil {
		h.respondError(c, err)
		return
	}

	log.Info().Str("friendly_id", dev.FriendlyID).Msg("Device removed")
	c.Status(http.StatusNoContent)
}

// lookup resolves the path parameter as a device id first, then as a
// friendly id, so dashboard links can use either.
func (h *DevicesHandler) lookup(c *gin.Context) (*device.Device, error) {
	ctx := c.Request.Context()
	id := c.Param("id")

	dev, err := h.devices.Get(ctx, id)
	if errors.Is(err, device.ErrNotFound) {
		return h.devices.GetByFriendlyID(ctx, id)
	}
	return dev, err
}

func (h *DevicesHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, device.ErrNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "database_error",
		Message: err.Error(),
	})
}
