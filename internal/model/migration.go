package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LegacyID is a client-side identifier from before the server existed. Older
// clients wrote numbers, newer ones strings; both decode to the same text.
type LegacyID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *LegacyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LegacyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("legacy id must be a string or number: %w", err)
	}
	*id = LegacyID(n.String())
	return nil
}

// LegacyUser is a user record exported from client-local storage.
type LegacyUser struct {
	ID        LegacyID   `json:"id"`
	Name      *string    `json:"name"`
	Email     string     `json:"email"`
	Password  *string    `json:"password"`
	Role      *string    `json:"role"`
	Avatar    *string    `json:"avatar"`
	CreatedAt *Timestamp `json:"createdAt" swaggertype:"string"`
}

// Patch returns the fields an upsert-by-email writes for this record.
func (u LegacyUser) Patch() UserPatch {
	return UserPatch{
		Name:      u.Name,
		Password:  u.Password,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.TimePtr(),
	}
}

// LegacyProgress is one lecture's state in a legacy progress export.
type LegacyProgress struct {
	CompletedAt *Timestamp `json:"completedAt" swaggertype:"string"`
	Note        *string    `json:"note"`
	HasNotes    *bool      `json:"hasNotes"`
}

// Update converts the legacy record into a store update.
func (p LegacyProgress) Update() ProgressUpdate {
	return ProgressUpdate{
		CompletedAt: p.CompletedAt.TimePtr(),
		Note:        p.Note,
		HasNotes:    p.HasNotes,
	}
}

// MigrationPayload is the bulk legacy export merged by POST /api/migrate.
// Progress is keyed by legacy user id, then by lecture id.
type MigrationPayload struct {
	Users    []LegacyUser                         `json:"users"`
	Progress map[string]map[string]LegacyProgress `json:"progress"`
	Notes    []NoteInput                          `json:"notes"`
	Settings *SettingsPatch                       `json:"settings"`
}

// MigrationSummary counts what a migration wrote.
type MigrationSummary struct {
	SettingsApplied      bool `json:"settingsApplied"`
	UsersUpserted        int  `json:"usersUpserted"`
	UsersSkipped         int  `json:"usersSkipped"`
	ProgressUsersSkipped int  `json:"progressUsersSkipped"`
	ProgressUpserted     int  `json:"progressUpserted"`
	NotesUpserted        int  `json:"notesUpserted"`
}
