package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharedNote is a note or attachment reference posted against a lecture.
// Email points loosely at the author; it is not enforced as a reference.
type SharedNote struct {
	ID            string    `json:"_id" gorm:"type:char(36);primaryKey"`
	LectureNumber int       `json:"lectureNumber" gorm:"not null;index"`
	TextContent   string    `json:"textContent,omitempty"`
	FileRef       string    `json:"fileRef,omitempty"`
	FileType      string    `json:"fileType,omitempty" gorm:"size:255"`
	FileName      string    `json:"fileName,omitempty" gorm:"size:255"`
	UploadedBy    string    `json:"uploadedBy" gorm:"size:255;not null"`
	Email         string    `json:"email" gorm:"size:255;not null;index"`
	Date          time.Time `json:"date" gorm:"not null;index"`
}

// BeforeCreate sets UUID before creating the record.
func (n *SharedNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NoteInput is the body of POST /api/notes and one element of a migration's notes.
type NoteInput struct {
	LectureNumber *LectureNumber `json:"lectureNumber" validate:"required" swaggertype:"integer"`
	TextContent   string         `json:"textContent"`
	FileRef       string         `json:"fileRef"`
	FileType      string         `json:"fileType"`
	FileName      string         `json:"fileName"`
	UploadedBy    string         `json:"uploadedBy" validate:"required"`
	Email         string         `json:"email" validate:"required"`
	Date          *Timestamp     `json:"date" swaggertype:"string"`
}

// ToNote builds a note, dating it now when the input carries no date.
func (in NoteInput) ToNote(now time.Time) SharedNote {
	date := now.UTC()
	if t := in.Date.TimePtr(); t != nil {
		date = *t
	}
	return SharedNote{
		LectureNumber: in.LectureNumber.Int(),
		TextContent:   in.TextContent,
		FileRef:       in.FileRef,
		FileType:      in.FileType,
		FileName:      in.FileName,
		UploadedBy:    in.UploadedBy,
		Email:         in.Email,
		Date:          date,
	}
}
