package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"lecturetrack/internal/cache"
	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// ProgressService reads and writes per-lecture progress.
type ProgressService interface {
	// GetForUser returns the user's progress keyed by lecture id.
	GetForUser(ctx context.Context, userID string) (map[int]model.ProgressEntry, error)
	Save(ctx context.Context, in model.ProgressInput) (*model.Progress, error)
}

// progressRecheckDelay is how long after a save the cached map is dropped a
// second time, clearing a value written by a read that overlapped the save.
const progressRecheckDelay = time.Second

type progressService struct {
	repo         repository.ProgressRepository
	cache        *cache.Client
	logger       zerolog.Logger
	recheckDelay time.Duration
}

// NewProgressService builds a ProgressService with repository and cache.
func NewProgressService(repo repository.ProgressRepository, cache *cache.Client, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:         repo,
		cache:        cache,
		logger:       logger.With().Str("component", "progress").Logger(),
		recheckDelay: progressRecheckDelay,
	}
}

func (s *progressService) GetForUser(ctx context.Context, userID string) (map[int]model.ProgressEntry, error) {
	key := cache.ProgressKey(userID)

	var cached map[int]model.ProgressEntry
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	entries := make(map[int]model.ProgressEntry, len(records))
	for _, p := range records {
		entries[p.LectureID] = p.Entry()
	}

	s.cache.SetJSON(ctx, key, entries)
	return entries, nil
}

func (s *progressService) Save(ctx context.Context, in model.ProgressInput) (*model.Progress, error) {
	p, err := s.repo.Upsert(ctx, in.UserID, int(in.LectureID), in.Update())
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}
	s.invalidate(ctx, in.UserID)

	s.logger.Debug().Str("user_id", in.UserID).Int("lecture_id", int(in.LectureID)).Msg("progress saved")
	return p, nil
}

// invalidate drops the user's cached map now and once more after recheckDelay.
func (s *progressService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	key := cache.ProgressKey(userID)
	_ = s.cache.Delete(ctx, key)
	time.AfterFunc(s.recheckDelay, func() {
		_ = s.cache.Delete(context.Background(), key)
	})
}
