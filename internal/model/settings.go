package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTotalLectures is used when no settings document exists yet.
const DefaultTotalLectures = 200

// Settings is the global singleton configuration of the course.
type Settings struct {
	ID            string `json:"_id" gorm:"type:char(36);primaryKey"`
	TotalLectures int    `json:"totalLectures" gorm:"not null"`
}

// TableName keeps the singleton table name stable across dialects.
func (Settings) TableName() string { return "settings" }

// BeforeCreate sets UUID before creating the record.
func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	TotalLectures *int `json:"totalLectures"`
}
