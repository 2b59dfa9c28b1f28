package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/render"
	"github.com/inkhaus/inkhaus/pkg/screen"
)

// RenderHandler turns screen definitions into panel-ready bitmaps.
type RenderHandler struct {
	devices db.DeviceStore
	screens db.ScreenStore
	events  render.EventSource
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(devices db.DeviceStore, screens db.ScreenStore, events render.EventSource) *RenderHandler {
	return &RenderHandler{devices: devices, screens: screens, events: events}
}

// Render handles GET /api/render
// @Summary      Render a device's screen
// @Description  Renders the selected screen for a device as a 1-bit BMP, or SVG for browser previews of the week calendar
// @Tags         render
// @Produce      image/bmp
// @Param        device_id  query     string  true   "Device id"
// @Param        screen_id  query     string  false  "Screen id; defaults to the active screen"
// @Param        type       query     string  false  "Screen type override"
// @Success      200  {string}  binary  "Rendered image"
// @Failure      404  {object}  types.ErrorResponse  "Device or screen not found"
// @Failure      500  {object}  types.ErrorResponse  "Render failure"
// @Router       /render [get]
func (h *RenderHandler) Render(c *gin.Context) {
	ctx := c.Request.Context()

	dev, err := h.devices.Get(ctx, c.Query("device_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}

	kind := screen.KindDefault
	var config map[string]any

	if id := c.Query("screen_id"); id != "" {
		scr, err := h.screens.Get(ctx, id)
		if err != nil {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Screen not found",
			})
			return
		}
		kind, config = scr.Type, scr.Config
	} else if scr, err := h.screens.ActiveForDevice(ctx, dev.ID); err == nil {
		kind, config = scr.Type, scr.Config
	}

	if override := c.Query("type"); override != "" {
		kind = screen.Kind(override)
	}

	loc, err := time.LoadLocation(dev.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)

	opts := render.Options{
		Now:        now,
		Location:   loc,
		DeviceName: dev.Name,
		FriendlyID: dev.FriendlyID,
	}
	if kind == screen.KindCalendarWeek {
		start, end := render.WeekBounds(now, loc)
		events, err := h.events.WeekEvents(ctx, start, end)
		if err != nil {
			log.Error().Err(err).Msg("Event source failed, rendering empty week")
		}
		opts.Events = events
	}

	doc, err := render.Build(kind, config, opts)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.wantSVG(c, kind) {
		c.Data(http.StatusOK, "image/svg+xml", []byte(doc.SVG()))
		return
	}

	c.Data(http.StatusOK, "image/bmp", render.EncodeBMP(render.Rasterize(doc)))
}

// wantSVG decides the response format. Panels always get BMP: anything
// carrying the firmware ID header, or explicitly asking for image/bmp.
// Browsers get an inspectable SVG for the week calendar only; every other
// kind ships as the same BMP bytes the panel would receive.
func (h *RenderHandler) wantSVG(c *gin.Context, kind screen.Kind) bool {
	if c.GetHeader(headerID) != "" {
		return false
	}
	if strings.Contains(c.GetHeader("Accept"), "image/bmp") {
		return false
	}
	return kind == screen.KindCalendarWeek && strings.Contains(c.GetHeader("User-Agent"), "Mozilla")
}

func (h *RenderHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, render.ErrRenderFailure) {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "render_failure",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

// YearProgress handles GET /api/bitmap/year-progress.bmp
// @Summary      Year progress bitmap
// @Description  Renders the standalone year-progress dot grid as a 1-bit BMP
// @Tags         render
// @Produce      image/bmp
// @Success      200  {string}  binary  "Rendered image"
// @Router       /bitmap/year-progress.bmp [get]
func (h *RenderHandler) YearProgress(c *gin.Context) {
	doc, err := render.Build(screen.KindYearProgress, nil, render.Options{Now: time.Now().UTC()})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/bmp", render.EncodeBMP(render.Rasterize(doc)))
}

// TestBitmap handles GET /api/test-bmp
// @Summary      Calibration bitmap
// @Description  Returns a striped test pattern for verifying panel orientation and bit packing
// @Tags         render
// @Produce      image/bmp
// @Success      200  {string}  binary  "Test pattern"
// @Router       /test-bmp [get]
func (h *RenderHandler) TestBitmap(c *gin.Context) {
	c.Data(http.StatusOK, "image/bmp", render.EncodeBMP(render.TestPattern()))
}
