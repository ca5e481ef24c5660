package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a learner or administrator account. Email is the natural key.
type User struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255"` // stored and compared verbatim
	Role      string    `json:"role" gorm:"size:20;not null;default:'user';index"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserPatch carries the fields written by an upsert-by-email. Nil fields are
// left untouched on update and take their defaults on insert.
type UserPatch struct {
	Name      *string
	Password  *string
	Role      *string
	Avatar    *string
	CreatedAt *time.Time
}

// ProfileUpdate is the subset of user fields a user may change themselves.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// AuthUser is the user shape returned by the auth endpoints.
type AuthUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// ToAuthUser projects a stored user onto the auth response shape.
func (u *User) ToAuthUser() AuthUser {
	return AuthUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

// UserView is a user with their progress keyed by lecture id, as listed for admins.
type UserView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Avatar    string           `json:"avatar,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Progress  map[int]Progress `json:"progress"`
}
