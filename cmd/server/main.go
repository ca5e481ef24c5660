package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "lecturetrack/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"lecturetrack/internal/cache"
	"lecturetrack/internal/config"
	"lecturetrack/internal/db"
	"lecturetrack/internal/handler"
	"lecturetrack/internal/logger"
	"lecturetrack/internal/router"
	"lecturetrack/internal/service"
)

// @title Lecture Progress API
// @version 1.0
// @description Course progress tracking: accounts, per-lecture progress, shared notes, settings and legacy data migration.
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store init")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Error().Err(err).Msg("store close")
		}
	}()
	log.Info().Str("driver", cfg.StoreDriver).Msg("connected to store")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, serving from store only")
	}

	// Initialize services
	authService := service.NewAuthService(repos.Users, log)
	progressService := service.NewProgressService(repos.Progress, cacheClient, log)
	noteService := service.NewNoteService(repos.Notes)
	settingsService := service.NewSettingsService(repos.Settings, cacheClient)
	migrationService := service.NewMigrationService(repos, cacheClient, log)
	adminService := service.NewAdminService(repos, cacheClient, log)

	// A failed admin seed is logged and the server still starts.
	created, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("seed admin user")
	case created:
		log.Info().Str("email", cfg.AdminEmail).Msg("admin user seeded")
	default:
		log.Info().Str("email", cfg.AdminEmail).Msg("admin user already exists")
	}

	e := echo.New()
	router.Register(e, cfg, log, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Progress: handler.NewProgressHandler(progressService),
		Notes:    handler.NewNoteHandler(noteService),
		Settings: handler.NewSettingsHandler(settingsService),
		Migrate:  handler.NewMigrateHandler(migrationService),
		Admin:    handler.NewAdminHandler(adminService),
		Health:   handler.NewHealthHandler(repos),
	})

	log.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
