package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/errors"
)

// errorResponse turns a service error into the {message} response body.
func errorResponse(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindError reports a body that could not be decoded.
func bindError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "invalid request body"})
}

// validationError reports a missing required field. These surface as 500
// with the validator's text, as schema failures always have.
func validationError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Message: err.Error()})
}
