package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

// NoteHandler serves shared lecture notes.
type NoteHandler struct {
	svc service.NoteService
}

// NewNoteHandler creates a note handler.
func NewNoteHandler(svc service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// ListNotes godoc
// @Summary List shared notes, newest first
// @Tags notes
// @Produce json
// @Success 200 {array} model.SharedNote
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	notes, err := h.svc.List(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Share a note on a lecture
// @Tags notes
// @Accept json
// @Produce json
// @Param request body model.NoteInput true "Note"
// @Success 201 {object} model.SharedNote
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var in model.NoteInput
	if err := c.Bind(&in); err != nil {
		return bindError()
	}
	if err := c.Validate(&in); err != nil {
		return validationError(err)
	}

	note, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// DeleteNote godoc
// @Summary Delete a shared note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Note deleted"})
}
