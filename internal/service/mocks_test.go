package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpsertByEmail(ctx context.Context, email string, patch model.UserPatch) error {
	args := m.Called(ctx, email, patch)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProgressRepository is a mock implementation of ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Progress), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context) ([]model.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Progress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, userID string, lectureID int, update model.ProgressUpdate) (*model.Progress, error) {
	args := m.Called(ctx, userID, lectureID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Progress), args.Error(1)
}

func (m *MockProgressRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSharedNoteRepository is a mock implementation of SharedNoteRepository.
type MockSharedNoteRepository struct {
	mock.Mock
}

func (m *MockSharedNoteRepository) Create(ctx context.Context, note *model.SharedNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockSharedNoteRepository) ListByDateDesc(ctx context.Context) ([]model.SharedNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedNote), args.Error(1)
}

func (m *MockSharedNoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSharedNoteRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSharedNoteRepository) UpsertByNaturalKey(ctx context.Context, note *model.SharedNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindOrCreate(ctx context.Context, defaults model.Settings) (*model.Settings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type mockRepos struct {
	users    *MockUserRepository
	progress *MockProgressRepository
	notes    *MockSharedNoteRepository
	settings *MockSettingsRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:    new(MockUserRepository),
		progress: new(MockProgressRepository),
		notes:    new(MockSharedNoteRepository),
		settings: new(MockSettingsRepository),
	}
}

func (m *mockRepos) repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:    m.users,
		Progress: m.progress,
		Notes:    m.notes,
		Settings: m.settings,
	}
}

func (m *mockRepos) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.progress.AssertExpectations(t)
	m.notes.AssertExpectations(t)
	m.settings.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
