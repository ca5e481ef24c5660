package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest represents a profile update. Omitted fields are left as they are.
type ProfileRequest struct {
	ID     string  `json:"id" validate:"required"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// UserResponse wraps the user returned by the auth endpoints.
type UserResponse struct {
	User model.AuthUser `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, UserResponse{User: user.ToAuthUser()})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user.ToAuthUser()})
}

// UpdateProfile godoc
// @Summary Update name and avatar
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	update := model.ProfileUpdate{Name: req.Name, Avatar: req.Avatar}
	user, err := h.authService.UpdateProfile(c.Request().Context(), req.ID, update)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user.ToAuthUser()})
}
