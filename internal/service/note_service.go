package service

import (
	"context"
	"fmt"
	"time"

	"lecturetrack/internal/model"
	"lecturetrack/internal/repository"
)

// NoteService manages shared lecture notes.
type NoteService interface {
	List(ctx context.Context) ([]model.SharedNote, error)
	Create(ctx context.Context, in model.NoteInput) (*model.SharedNote, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	repo repository.SharedNoteRepository
	now  func() time.Time
}

// NewNoteService builds a NoteService.
func NewNoteService(repo repository.SharedNoteRepository) NoteService {
	return &noteService{repo: repo, now: time.Now}
}

// List returns every note, newest first.
func (s *noteService) List(ctx context.Context) ([]model.SharedNote, error) {
	notes, err := s.repo.ListByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, in model.NoteInput) (*model.SharedNote, error) {
	note := in.ToNote(s.now())
	if err := s.repo.Create(ctx, &note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// Delete removes a note. Deleting an unknown id is not an error.
func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
