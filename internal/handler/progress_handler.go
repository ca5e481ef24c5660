package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

// ProgressHandler serves lecture progress.
type ProgressHandler struct {
	svc service.ProgressService
}

// NewProgressHandler creates a progress handler.
func NewProgressHandler(svc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// GetProgress godoc
// @Summary Progress of one user keyed by lecture id
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]model.ProgressEntry
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress/{userId} [get]
func (h *ProgressHandler) GetProgress(c echo.Context) error {
	entries, err := h.svc.GetForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// SaveProgress godoc
// @Summary Create or update progress for one lecture
// @Tags progress
// @Accept json
// @Produce json
// @Param request body model.ProgressInput true "Progress"
// @Success 200 {object} model.Progress
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress [post]
func (h *ProgressHandler) SaveProgress(c echo.Context) error {
	var in model.ProgressInput
	if err := c.Bind(&in); err != nil {
		return bindError()
	}
	if err := c.Validate(&in); err != nil {
		return validationError(err)
	}

	p, err := h.svc.Save(c.Request().Context(), in)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, p)
}
