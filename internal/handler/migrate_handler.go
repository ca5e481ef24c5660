package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

// MigrateHandler handles the legacy data import endpoint.
type MigrateHandler struct {
	svc service.MigrationService
}

// NewMigrateHandler creates a new migrate handler.
func NewMigrateHandler(svc service.MigrationService) *MigrateHandler {
	return &MigrateHandler{svc: svc}
}

// MigrateResponse represents the migration response.
type MigrateResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Summary *model.MigrationSummary `json:"summary"`
}

// Migrate godoc
// @Summary Merge a legacy client export into the store
// @Description Upserts settings, users by email, progress by (user, lecture) and notes by (lecture, email, date). Progress for legacy users that cannot be resolved is skipped.
// @Tags migrate
// @Accept json
// @Produce json
// @Param request body model.MigrationPayload true "Legacy export"
// @Success 200 {object} MigrateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /migrate [post]
func (h *MigrateHandler) Migrate(c echo.Context) error {
	var payload model.MigrationPayload
	if err := c.Bind(&payload); err != nil {
		return bindError()
	}

	summary, err := h.svc.Migrate(c.Request().Context(), payload)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MigrateResponse{
		Success: true,
		Message: "Migration completed",
		Summary: summary,
	})
}
