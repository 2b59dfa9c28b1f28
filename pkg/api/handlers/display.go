package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/device"
)

// DisplayHandler serves the device polling endpoint.
type DisplayHandler struct {
	resolver *device.Resolver
	screens  db.ScreenStore
	baseURL  string
}

// NewDisplayHandler creates a new display handler.
func NewDisplayHandler(resolver *device.Resolver, screens db.ScreenStore, baseURL string) *DisplayHandler {
	return &DisplayHandler{resolver: resolver, screens: screens, baseURL: baseURL}
}

// Display handles GET /api/display
// @Summary      Poll for display content
// @Description  Resolves the calling device from its headers and returns the image URL and refresh interval. Always responds 200; failures are reported in the status field.
// @Tags         device
// @Produce      json
// @Param        ID            header    string  false  "Device MAC address"
// @Param        Access-Token  header    string  false  "Device API key"
// @Success      200  {object}  types.DisplayResponse
// @Router       /display [get]
func (h *DisplayHandler) Display(c *gin.Context) {
	ctx := c.Request.Context()

	dev, method, err := h.resolver.Resolve(ctx, c.GetHeader(headerID), c.GetHeader(headerAccessToken), statusReport(c))
	if err != nil {
		// Device firmware treats non-200 responses as transport failures
		// and retries aggressively, so errors ride in the body. Only an
		// actually unmatched device is told to register; a directory
		// failure must not send operators chasing registration problems.
		msg := "Device not found. Please register the device first."
		if !errors.Is(err, device.ErrNotRegistered) {
			log.Error().Err(err).Msg("Device resolution failed")
			msg = "Temporary server error. Please retry."
		}
		c.JSON(http.StatusOK, types.DisplayResponse{
			Status:  "error",
			Message: msg,
		})
		return
	}

	now := time.Now()
	query := url.Values{}
	query.Set("device_id", dev.ID)

	active, err := h.screens.ActiveForDevice(ctx, dev.ID)
	if err == nil {
		query.Set("screen_id", active.ID)
	}
	// Cache buster: panels poll the same URL forever otherwise.
	query.Set("ts", strconv.FormatInt(now.Unix(), 10))

	log.Debug().
		Str("friendly_id", dev.FriendlyID).
		Str("auth_method", string(method)).
		Msg("Display poll resolved")

	c.JSON(http.StatusOK, types.DisplayResponse{
		Status:      "ok",
		ImageURL:    h.baseURL + "/api/render?" + query.Encode(),
		Filename:    fmt.Sprintf("%s_%d.bmp", dev.FriendlyID, now.Unix()),
		RefreshRate: device.ComputeRefreshRate(dev.Timezone, dev.RefreshRate, now),
	})
}
