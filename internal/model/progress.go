package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress is a user's state for one lecture. (UserID, LectureID) is unique.
type Progress struct {
	ID          string     `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID      string     `json:"userId" gorm:"size:64;not null;uniqueIndex:idx_progress_user_lecture"`
	LectureID   int        `json:"lectureId" gorm:"not null;uniqueIndex:idx_progress_user_lecture"`
	CompletedAt *time.Time `json:"completedAt"`
	Note        string     `json:"note" gorm:"not null"`
	HasNotes    bool       `json:"hasNotes" gorm:"not null"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Entry drops the identifying fields.
func (p Progress) Entry() ProgressEntry {
	return ProgressEntry{
		CompletedAt: p.CompletedAt,
		Note:        p.Note,
		HasNotes:    p.HasNotes,
	}
}

// ProgressEntry is the per-lecture value of a user's progress map.
type ProgressEntry struct {
	CompletedAt *time.Time `json:"completedAt"`
	Note        string     `json:"note"`
	HasNotes    bool       `json:"hasNotes"`
}

// ProgressUpdate is written by an upsert on (userId, lectureId). CompletedAt is
// always written, nil clearing completion. Note and HasNotes are written only
// when set; a new record defaults them to "" and false.
type ProgressUpdate struct {
	CompletedAt *time.Time
	Note        *string
	HasNotes    *bool
}

// ProgressInput is the body of POST /api/progress.
type ProgressInput struct {
	UserID      string        `json:"userId" validate:"required"`
	LectureID   LectureNumber `json:"lectureId" validate:"required,gt=0" swaggertype:"integer"`
	CompletedAt *Timestamp    `json:"completedAt" swaggertype:"string"`
	Note        *string       `json:"note"`
	HasNotes    *bool         `json:"hasNotes"`
}

// Update converts the body into a store update.
func (in ProgressInput) Update() ProgressUpdate {
	return ProgressUpdate{
		CompletedAt: in.CompletedAt.TimePtr(),
		Note:        in.Note,
		HasNotes:    in.HasNotes,
	}
}
