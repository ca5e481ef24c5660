package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"lecturetrack/internal/cache"
	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

const exportSheet = "Progress"

var exportHeader = []interface{}{"Name", "Email", "Created At", "Completed Lectures", "Total Lectures", "Percent"}

// AdminService backs the administrative user views.
type AdminService interface {
	// ListUsers returns every "user"-role account with its progress keyed by lecture id.
	ListUsers(ctx context.Context) ([]model.UserView, error)
	// DeleteUser removes the user, their progress and the notes under their
	// email, in that order. The steps are independent writes; an error part
	// way leaves the earlier deletes in place.
	DeleteUser(ctx context.Context, id string) error
	// ExportProgress renders ListUsers as an xlsx workbook.
	ExportProgress(ctx context.Context) ([]byte, error)
}

type adminService struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	notes    repository.SharedNoteRepository
	settings repository.SettingsRepository
	cache    *cache.Client
	logger   zerolog.Logger
}

// NewAdminService builds an AdminService over one backend's repositories.
func NewAdminService(repos *repository.Repositories, cache *cache.Client, logger zerolog.Logger) AdminService {
	return &adminService{
		users:    repos.Users,
		progress: repos.Progress,
		notes:    repos.Notes,
		settings: repos.Settings,
		cache:    cache,
		logger:   logger.With().Str("component", "admin").Logger(),
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.UserView, error) {
	users, err := s.users.ListByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	records, err := s.progress.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return buildUserViews(users, records), nil
}

// buildUserViews groups progress by user id once and attaches each group.
func buildUserViews(users []model.User, records []model.Progress) []model.UserView {
	byUser := make(map[string]map[int]model.Progress)
	for _, p := range records {
		group, ok := byUser[p.UserID]
		if !ok {
			group = make(map[int]model.Progress)
			byUser[p.UserID] = group
		}
		group[p.LectureID] = p
	}

	views := make([]model.UserView, 0, len(users))
	for _, u := range users {
		progress := byUser[u.ID]
		if progress == nil {
			progress = map[int]model.Progress{}
		}
		views = append(views, model.UserView{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			Avatar:    u.Avatar,
			CreatedAt: u.CreatedAt,
			Progress:  progress,
		})
	}
	return views
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	// The email is captured first; it cannot be read back once the user is gone.
	var email string
	user, err := s.users.FindByID(ctx, id)
	switch {
	case err == nil:
		email = user.Email
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	removed, err := s.progress.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.ProgressKey(id))

	var notesRemoved int64
	if email != "" {
		if notesRemoved, err = s.notes.DeleteByEmail(ctx, email); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
	}

	s.logger.Info().
		Str("user_id", id).
		Int64("progress_removed", removed).
		Int64("notes_removed", notesRemoved).
		Msg("user deleted")
	return nil
}

func (s *adminService) ExportProgress(ctx context.Context) ([]byte, error) {
	views, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.FindOrCreate(ctx, model.Settings{TotalLectures: model.DefaultTotalLectures})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, v := range views {
		completed := completedLectures(v.Progress)
		row := []interface{}{
			v.Name,
			v.Email,
			v.CreatedAt.UTC().Format(time.RFC3339),
			completed,
			settings.TotalLectures,
			percentOf(completed, settings.TotalLectures),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func completedLectures(progress map[int]model.Progress) int {
	n := 0
	for _, p := range progress {
		if p.CompletedAt != nil {
			n++
		}
	}
	return n
}

// percentOf rounds to one decimal place. A zero total reports 0.
func percentOf(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)*1000/float64(total)) / 10
}
