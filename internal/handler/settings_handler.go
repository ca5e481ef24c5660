package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

// SettingsHandler serves the settings singleton.
type SettingsHandler struct {
	svc service.SettingsService
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetSettings godoc
// @Summary Get settings, creating the default on first read
// @Tags settings
// @Produce json
// @Success 200 {object} model.Settings
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body model.SettingsPatch true "Settings fields"
// @Success 200 {object} model.Settings
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var patch model.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return bindError()
	}

	settings, err := h.svc.Update(c.Request().Context(), patch)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, settings)
}
