package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkhaus/inkhaus/pkg/api/types"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/screen"
)

// ScreensHandler manages the screen definitions attached to a device.
type ScreensHandler struct {
	devices   db.DeviceStore
	screens   db.ScreenStore
	validator *screen.Validator
}

// NewScreensHandler creates a new screens handler.
func NewScreensHandler(devices db.DeviceStore, screens db.ScreenStore, validator *screen.Validator) *ScreensHandler {
	return &ScreensHandler{devices: devices, screens: screens, validator: validator}
}

// ListScreens handles GET /devices/:id/screens
// @Summary      List a device's screens
// @Tags         screens
// @Produce      json
// @Param        id   path      string  true  "Device id"
// @Success      200  {object}  types.ListScreensResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id}/screens [get]
func (h *ScreensHandler) ListScreens(c *gin.Context) {
	ctx := c.Request.Context()

	dev, err := h.devices.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}

	screens, err := h.screens.ListForDevice(ctx, dev.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}
	if screens == nil {
		screens = []*screen.Screen{}
	}

	c.JSON(http.StatusOK, types.ListScreensResponse{
		Screens: screens,
		Count:   len(screens),
	})
}

// CreateScreen handles POST /devices/:id/screens
// @Summary      Create a screen
// @Description  Creates a screen definition for a device; config is validated against the schema for its type
// @Tags         screens
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Device id"
// @Param        request  body      types.CreateScreenRequest  true  "Screen definition"
// @Success      201      {object}  types.ScreenResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid screen type or config"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id}/screens [post]
func (h *ScreensHandler) CreateScreen(c *gin.Context) {
	ctx := c.Request.Context()

	dev, err := h.devices.Get(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}

	var req types.CreateScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "name and type are required",
		})
		return
	}

	if err := h.validator.Validate(req.Type, req.Config); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_config",
			Message: err.Error(),
		})
		return
	}

	scr := &screen.Screen{
		DeviceID: dev.ID,
		Name:     req.Name,
		Type:     req.Type,
		Config:   req.Config,
		IsActive: req.IsActive,
	}
	if err := h.screens.Create(ctx, scr); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, types.ScreenResponse{Screen: scr})
}

// UpdateScreen handles PATCH /screens/:id
// @Summary      Update a screen
// @Description  Changes screen fields; supplied config replaces the stored one and is re-validated
// @Tags         screens
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Screen id"
// @Param        request  body      types.UpdateScreenRequest  true  "Fields to change"
// @Success      200      {object}  types.ScreenResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid screen type or config"
// @Failure      404      {object}  types.ErrorResponse  "Screen not found"
// @Router       /screens/{id} [patch]
func (h *ScreensHandler) UpdateScreen(c *gin.Context) {
	ctx := c.Request.Context()

	scr, err := h.screens.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req types.UpdateScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if req.Name != nil {
		scr.Name = *req.Name
	}
	if req.Type != nil {
		scr.Type = *req.Type
	}
	if req.Config != nil {
		scr.Config = req.Config
	}
	if req.IsActive != nil {
		scr.IsActive = *req.IsActive
	}

	if err := h.validator.Validate(scr.Type, scr.Config); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_config",
			Message: err.Error(),
		})
		return
	}

	if err := h.screens.Update(ctx, scr); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ScreenResponse{Screen: scr})
}

// RemoveScreen handles DELETE /screens/:id
// @Summary      Delete a screen
// @Tags         screens
// @Produce      json
// @Param        id   path  string  true  "Screen id"
// @Success      204  "Screen removed"
// @Failure      404  {object}  types.ErrorResponse  "Screen not found"
// @Router       /screens/{id} [delete]
func (h *ScreensHandler) RemoveScreen(c *gin.Context) {
	if err := h.screens.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScreensHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrScreenNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Screen not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "database_error",
		Message: err.Error(),
	})
}
