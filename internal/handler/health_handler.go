package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health godoc
// @Summary Liveness probe that pings the store
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.String(http.StatusOK, "ok")
}
