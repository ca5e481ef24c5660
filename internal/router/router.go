package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lecturetrack/internal/config"
	"lecturetrack/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Progress *handler.ProgressHandler
	Notes    *handler.NoteHandler
	Settings *handler.SettingsHandler
	Migrate  *handler.MigrateHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, logger zerolog.Logger, h Handlers) {
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.PUT("/auth/profile", h.Auth.UpdateProfile)

	api.GET("/progress/:userId", h.Progress.GetProgress)
	api.POST("/progress", h.Progress.SaveProgress)

	api.GET("/notes", h.Notes.ListNotes)
	api.POST("/notes", h.Notes.CreateNote)
	api.DELETE("/notes/:id", h.Notes.DeleteNote)

	api.GET("/settings", h.Settings.GetSettings)
	api.PUT("/settings", h.Settings.UpdateSettings)

	api.POST("/migrate", h.Migrate.Migrate)

	admin := api.Group("/admin")
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/users/export", h.Admin.ExportUsers)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
