package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lecturetrack/internal/model"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository builds a GORM-backed repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindOrCreate(ctx context.Context, defaults model.Settings) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = defaults
			return tx.Create(&settings).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = model.Settings{TotalLectures: model.DefaultTotalLectures}
			if patch.TotalLectures != nil {
				settings.TotalLectures = *patch.TotalLectures
			}
			return tx.Create(&settings).Error
		}
		if err != nil {
			return err
		}
		if patch.TotalLectures == nil {
			return nil
		}
		settings.TotalLectures = *patch.TotalLectures
		return tx.Model(&settings).Update("total_lectures", settings.TotalLectures).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
