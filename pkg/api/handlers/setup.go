package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/device"
	"github.com/inkhaus/inkhaus/pkg/identity"
)

// SetupHandler registers devices during first boot.
type SetupHandler struct {
	devices db.DeviceStore
	secret  []byte
}

// NewSetupHandler creates a new setup handler. The secret keys API key
// derivation; an empty secret falls back to a random one per key.
func NewSetupHandler(devices db.DeviceStore, secret []byte) *SetupHandler {
	return &SetupHandler{devices: devices, secret: secret}
}

// GetSetup handles GET /api/setup
// @Summary      Setup readiness probe
// @Description  Lets firmware confirm the server is reachable before registering
// @Tags         device
// @Produce      json
// @Success      200  {object}  types.SetupResponse
// @Router       /setup [get]
func (h *SetupHandler) GetSetup(c *gin.Context) {
	c.JSON(http.StatusOK, types.SetupResponse{
		Status:  "ok",
		Message: "Ready for device registration",
	})
}

// PostSetup handles POST /api/setup
// @Summary      Register a device
// @Description  Registers the device identified by the ID header. An existing device is updated; a new one receives its API key, shown only in this response.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        ID       header    string              true   "Device MAC address"
// @Param        request  body      types.SetupRequest  false  "Optional device settings"
// @Success      200      {object}  types.SetupResponse
// @Failure      400      {object}  types.ErrorResponse  "Missing or malformed MAC address"
// @Router       /setup [post]
func (h *SetupHandler) PostSetup(c *gin.Context) {
	ctx := c.Request.Context()

	mac, err := identity.Normalize(c.GetHeader(headerID))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_mac",
			Message: "ID header must carry a valid MAC address",
		})
		return
	}

	var req types.SetupRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	existing, err := h.devices.GetByMAC(ctx, mac)
	switch {
	case err == nil:
		h.update(c, existing, req)
	case errors.Is(err, device.ErrNotFound):
		h.create(c, mac, req)
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
	}
}

func (h *SetupHandler) update(c *gin.Context, dev *device.Device, req types.SetupRequest) {
	if req.FirmwareVersion != "" {
		dev.FirmwareVersion = req.FirmwareVersion
	}
	if req.Screen != "" {
		dev.Screen = req.Screen
	}
	if req.Timezone != "" {
		dev.Timezone = req.Timezone
	}
	if req.DeviceName != "" {
		dev.Name = req.DeviceName
	}

	if err := h.devices.UpdateSettings(c.Request.Context(), dev); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	log.Info().Str("friendly_id", dev.FriendlyID).Msg("Device re-registered")

	// The stored API key is never re-issued; a device that lost it still
	// authenticates by MAC on the next poll.
	c.JSON(http.StatusOK, types.SetupResponse{
		Status: "updated",
		Device: dev,
	})
}

func (h *SetupHandler) create(c *gin.Context, mac string, req types.SetupRequest) {
	dev := &device.Device{
		MACAddress:      mac,
		FriendlyID:      identity.FriendlyID(mac),
		APIKey:          identity.NewAPIKey(mac, h.secret),
		Name:            req.DeviceName,
		Screen:          device.DefaultScreen,
		Timezone:        device.DefaultTimezone,
		RefreshRate:     device.DefaultRefreshRate,
		FirmwareVersion: req.FirmwareVersion,
	}
	if dev.Name == "" {
		dev.Name = "Device " + dev.FriendlyID[len(dev.FriendlyID)-6:]
	}
	if req.Screen != "" {
		dev.Screen = req.Screen
	}
	if req.Timezone != "" {
		dev.Timezone = req.Timezone
	}

	if err := h.devices.Create(c.Request.Context(), dev); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	log.Info().Str("friendly_id", dev.FriendlyID).Str("mac", mac).Msg("Device registered")

	c.JSON(http.StatusOK, types.SetupResponse{
		Status: "created",
		Device: dev,
		APIKey: dev.APIKey,
	})
}
