package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("Email already exists")
	// ErrInvalidCredentials is returned when email and password do not match a user.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidLectureID is returned when a lecture key is not a positive integer.
	ErrInvalidLectureID = errors.New("invalid lecture id")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised is a
// 500 carrying the raw error text.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusBadRequest, ErrEmailExists.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
