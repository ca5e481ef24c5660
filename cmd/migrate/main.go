package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"lecturetrack/internal/cache"
	"lecturetrack/internal/config"
	"lecturetrack/internal/db"
	"lecturetrack/internal/logger"
	"lecturetrack/internal/model"
	"lecturetrack/internal/service"
)

const fetchTimeout = 30 * time.Second

func main() {
	file := flag.String("file", "", "path to a legacy export JSON file")
	url := flag.String("url", "", "URL serving a legacy export JSON document")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	if (*file == "") == (*url == "") {
		log.Fatal().Msg("exactly one of -file or -url is required")
	}

	if err := run(context.Background(), cfg, log, *file, *url); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, file, url string) error {
	payload, err := loadPayload(ctx, file, url)
	if err != nil {
		return fmt.Errorf("load payload: %w", err)
	}
	log.Info().
		Int("users", len(payload.Users)).
		Int("progress_users", len(payload.Progress)).
		Int("notes", len(payload.Notes)).
		Bool("settings", payload.Settings != nil).
		Msg("payload loaded")

	repos, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Error().Err(err).Msg("store close")
		}
	}()

	// Invalidates cached settings and progress of a running server.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()

	summary, err := service.NewMigrationService(repos, cacheClient, log).Migrate(ctx, *payload)
	if err != nil {
		return fmt.Errorf("earlier steps were kept: %w", err)
	}
	logSummary(log, summary)
	return nil
}

func loadPayload(ctx context.Context, file, url string) (*model.MigrationPayload, error) {
	var (
		body []byte
		err  error
	)
	if file != "" {
		body, err = os.ReadFile(file)
	} else {
		body, err = fetchPayload(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	var payload model.MigrationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &payload, nil
}

// fetchPayload downloads the export from url.
func fetchPayload(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("export URL returned status " + resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func logSummary(log zerolog.Logger, s *model.MigrationSummary) {
	log.Info().
		Bool("settings_applied", s.SettingsApplied).
		Int("users_upserted", s.UsersUpserted).
		Int("users_skipped", s.UsersSkipped).
		Int("progress_upserted", s.ProgressUpserted).
		Int("progress_users_skipped", s.ProgressUsersSkipped).
		Int("notes_upserted", s.NotesUpserted).
		Msg("migration completed")
}
