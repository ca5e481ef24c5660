package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lecturetrack/internal/model"
)

// NewSQLRepositories builds the GORM-backed repositories for MySQL or PostgreSQL.
func NewSQLRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Progress: NewProgressRepository(db),
		Notes:    NewSharedNoteRepository(db),
		Settings: NewSettingsRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// AutoMigrate creates or updates the relational schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Progress{},
		&model.SharedNote{},
		&model.Settings{},
	)
}

// gormErr maps GORM sentinels onto repository errors. The connection must be
// opened with TranslateError for duplicate keys to be recognised.
func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}
