package service

import (
	"context"
	"fmt"

	"lecturetrack/internal/cache"
	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// SettingsService reads and writes the settings singleton.
type SettingsService interface {
	// Get returns the settings, creating the default document on first read.
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache *cache.Client
}

// NewSettingsService builds a SettingsService with repository and cache.
func NewSettingsService(repo repository.SettingsRepository, cache *cache.Client) SettingsService {
	return &settingsService{repo: repo, cache: cache}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	var cached model.Settings
	if s.cache.GetJSON(ctx, cache.SettingsKey(), &cached) {
		return &cached, nil
	}

	settings, err := s.repo.FindOrCreate(ctx, model.Settings{TotalLectures: model.DefaultTotalLectures})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.cache.SetJSON(ctx, cache.SettingsKey(), settings)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	settings, err := s.repo.Upsert(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.SettingsKey())
	return settings, nil
}
