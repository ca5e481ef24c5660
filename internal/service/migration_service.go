package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"lecturetrack/internal/cache"
	apperrors "lecturetrack/internal/errors"
	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// MigrationService merges a legacy client-side export into the store.
type MigrationService interface {
	// Migrate runs settings, users, identity resolution, progress and notes in
	// that order. The first storage error aborts the remaining steps and
	// earlier writes stay in place.
	Migrate(ctx context.Context, payload model.MigrationPayload) (*model.MigrationSummary, error)
}

type migrationService struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	notes    repository.SharedNoteRepository
	settings repository.SettingsRepository
	cache    *cache.Client
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMigrationService builds a MigrationService over one backend's repositories.
func NewMigrationService(repos *repository.Repositories, cache *cache.Client, logger zerolog.Logger) MigrationService {
	return &migrationService{
		users:    repos.Users,
		progress: repos.Progress,
		notes:    repos.Notes,
		settings: repos.Settings,
		cache:    cache,
		logger:   logger.With().Str("component", "migration").Logger(),
		now:      time.Now,
	}
}

func (s *migrationService) Migrate(ctx context.Context, payload model.MigrationPayload) (*model.MigrationSummary, error) {
	summary := &model.MigrationSummary{}

	if payload.Settings != nil {
		if _, err := s.settings.Upsert(ctx, *payload.Settings); err != nil {
			return nil, fmt.Errorf("migrate settings: %w", err)
		}
		_ = s.cache.Delete(ctx, cache.SettingsKey())
		summary.SettingsApplied = true
	}

	if err := s.migrateUsers(ctx, payload.Users, summary); err != nil {
		return nil, err
	}

	// Users must be re-read after the upserts so new accounts resolve.
	stored, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	index := BuildEmailIndex(stored)

	if err := s.migrateProgress(ctx, payload, index, summary); err != nil {
		return nil, err
	}

	if err := s.migrateNotes(ctx, payload.Notes, summary); err != nil {
		return nil, err
	}

	s.logger.Info().
		Bool("settings", summary.SettingsApplied).
		Int("users", summary.UsersUpserted).
		Int("users_skipped", summary.UsersSkipped).
		Int("progress", summary.ProgressUpserted).
		Int("progress_users_skipped", summary.ProgressUsersSkipped).
		Int("notes", summary.NotesUpserted).
		Msg("migration completed")
	return summary, nil
}

func (s *migrationService) migrateUsers(ctx context.Context, users []model.LegacyUser, summary *model.MigrationSummary) error {
	for _, u := range users {
		if u.Email == "" {
			s.logger.Debug().Str("legacy_id", string(u.ID)).Msg("skipping legacy user without email")
			summary.UsersSkipped++
			continue
		}
		if err := s.users.UpsertByEmail(ctx, u.Email, u.Patch()); err != nil {
			return fmt.Errorf("migrate user %s: %w", u.Email, err)
		}
		summary.UsersUpserted++
	}
	return nil
}

func (s *migrationService) migrateProgress(ctx context.Context, payload model.MigrationPayload, index map[string]string, summary *model.MigrationSummary) error {
	if len(payload.Progress) == 0 {
		return nil
	}
	emails := legacyEmails(payload.Users)

	legacyIDs := make([]string, 0, len(payload.Progress))
	for id := range payload.Progress {
		legacyIDs = append(legacyIDs, id)
	}
	sort.Strings(legacyIDs)

	for _, legacyID := range legacyIDs {
		userID, ok := resolveLegacyUser(emails, index, model.LegacyID(legacyID))
		if !ok {
			s.logger.Debug().Str("legacy_id", legacyID).Msg("skipping progress for unresolved legacy user")
			summary.ProgressUsersSkipped++
			continue
		}

		lectures := payload.Progress[legacyID]
		lectureIDs, err := sortedLectureIDs(lectures)
		if err != nil {
			return fmt.Errorf("migrate progress for %s: %w", legacyID, err)
		}
		for _, lecture := range lectureIDs {
			data := lectures[lecture.key]
			if _, err := s.progress.Upsert(ctx, userID, lecture.id, data.Update()); err != nil {
				return fmt.Errorf("migrate progress for %s lecture %d: %w", legacyID, lecture.id, err)
			}
			summary.ProgressUpserted++
		}
		_ = s.cache.Delete(ctx, cache.ProgressKey(userID))
	}
	return nil
}

func (s *migrationService) migrateNotes(ctx context.Context, notes []model.NoteInput, summary *model.MigrationSummary) error {
	for i, in := range notes {
		note := in.ToNote(s.now())
		if err := s.notes.UpsertByNaturalKey(ctx, &note); err != nil {
			return fmt.Errorf("migrate note %d: %w", i, err)
		}
		summary.NotesUpserted++
	}
	return nil
}

// resolveLegacyUser follows legacy id -> email -> store id. Any missing link
// leaves the user unresolved.
func resolveLegacyUser(emails map[model.LegacyID]string, index map[string]string, legacyID model.LegacyID) (string, bool) {
	email, ok := emails[legacyID]
	if !ok || email == "" {
		return "", false
	}
	userID, ok := index[email]
	return userID, ok && userID != ""
}

type lectureKey struct {
	key string
	id  int
}

func sortedLectureIDs(lectures map[string]model.LegacyProgress) ([]lectureKey, error) {
	keys := make([]lectureKey, 0, len(lectures))
	for k := range lectures {
		id, err := strconv.Atoi(k)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidLectureID, k)
		}
		keys = append(keys, lectureKey{key: k, id: id})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].id < keys[j].id })
	return keys, nil
}
