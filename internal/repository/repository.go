package repository

import (
	"context"
	"errors"

	"lecturetrack/internal/model"
)

var (
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	// UpsertByEmail creates the user when no account has this email, otherwise
	// overwrites the patched fields. New users default to role "user" and now.
	UpsertByEmail(ctx context.Context, email string, patch model.UserPatch) error
	Delete(ctx context.Context, id string) error
}

// ProgressRepository defines lecture progress persistence operations.
type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Progress, error)
	List(ctx context.Context) ([]model.Progress, error)
	// Upsert relies on the store's unique (userId, lectureId) index, so
	// concurrent writers converge on one record.
	Upsert(ctx context.Context, userID string, lectureID int, update model.ProgressUpdate) (*model.Progress, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// SharedNoteRepository defines shared note persistence operations.
type SharedNoteRepository interface {
	Create(ctx context.Context, note *model.SharedNote) error
	ListByDateDesc(ctx context.Context) ([]model.SharedNote, error)
	Delete(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	// UpsertByNaturalKey matches on (lectureNumber, email, date). Two notes by
	// one author on one lecture at the same instant are the same note.
	UpsertByNaturalKey(ctx context.Context, note *model.SharedNote) error
}

// SettingsRepository persists the settings singleton.
type SettingsRepository interface {
	FindOrCreate(ctx context.Context, defaults model.Settings) (*model.Settings, error)
	Upsert(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error)
}

// Repositories bundles one backend's implementations.
type Repositories struct {
	Users    UserRepository
	Progress ProgressRepository
	Notes    SharedNoteRepository
	Settings SettingsRepository

	ping func(ctx context.Context) error
}

// Ping checks the backing store connection.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}
