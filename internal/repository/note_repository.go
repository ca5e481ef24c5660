package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lecturetrack/internal/model"
)

type sharedNoteRepository struct {
	db *gorm.DB
}

// NewSharedNoteRepository builds a GORM-backed repository.
func NewSharedNoteRepository(db *gorm.DB) SharedNoteRepository {
	return &sharedNoteRepository{db: db}
}

func (r *sharedNoteRepository) Create(ctx context.Context, note *model.SharedNote) error {
	return gormErr(r.db.WithContext(ctx).Create(note).Error)
}

func (r *sharedNoteRepository) ListByDateDesc(ctx context.Context) ([]model.SharedNote, error) {
	var notes []model.SharedNote
	order := clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}
	if err := r.db.WithContext(ctx).Order(order).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *sharedNoteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SharedNote{}).Error
}

func (r *sharedNoteRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.SharedNote{})
	return res.RowsAffected, res.Error
}

func (r *sharedNoteRepository) UpsertByNaturalKey(ctx context.Context, note *model.SharedNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := map[string]interface{}{
			"lecture_number": note.LectureNumber,
			"email":          note.Email,
			"date":           note.Date,
		}

		var existing model.SharedNote
		err := tx.Where(key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gormErr(tx.Create(note).Error)
		}
		if err != nil {
			return err
		}

		note.ID = existing.ID
		return tx.Model(&existing).Updates(noteUpdateValues(note)).Error
	})
}

func noteUpdateValues(note *model.SharedNote) map[string]interface{} {
	values := map[string]interface{}{"uploaded_by": note.UploadedBy}
	optional := map[string]string{
		"text_content": note.TextContent,
		"file_ref":     note.FileRef,
		"file_type":    note.FileType,
		"file_name":    note.FileName,
	}
	for column, value := range optional {
		if value != "" {
			values[column] = value
		}
	}
	return values
}
