package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler bundles the user administration handlers.
type AdminHandler struct {
	svc service.AdminService
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers godoc
// @Summary List learners with their progress
// @Tags admin
// @Produce json
// @Success 200 {array} model.UserView
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	views, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, views)
}

// DeleteUser godoc
// @Summary Delete a user with their progress and notes
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User and their data deleted"})
}

// ExportUsers godoc
// @Summary Download learner progress as a spreadsheet
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/export [get]
func (h *AdminHandler) ExportUsers(c echo.Context) error {
	data, err := h.svc.ExportProgress(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="progress.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
