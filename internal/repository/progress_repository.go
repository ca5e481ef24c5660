package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lecturetrack/internal/model"
)

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository builds a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	var records []model.Progress
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepository) List(ctx context.Context) ([]model.Progress, error) {
	var records []model.Progress
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepository) Upsert(ctx context.Context, userID string, lectureID int, update model.ProgressUpdate) (*model.Progress, error) {
	row, columns := progressUpsertRow(userID, lectureID, update)

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lecture_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}
	db := r.db.WithContext(ctx)
	if err := db.Clauses(conflict).Create(&row).Error; err != nil {
		return nil, gormErr(err)
	}

	var stored model.Progress
	if err := db.Where("user_id = ? AND lecture_id = ?", userID, lectureID).First(&stored).Error; err != nil {
		return nil, gormErr(err)
	}
	return &stored, nil
}

func (r *progressRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Progress{})
	return res.RowsAffected, res.Error
}

// progressUpsertRow mirrors the document upsert: completed_at is always
// overwritten, note and has_notes only when given.
func progressUpsertRow(userID string, lectureID int, update model.ProgressUpdate) (model.Progress, []string) {
	row := model.Progress{UserID: userID, LectureID: lectureID, CompletedAt: update.CompletedAt}
	columns := []string{"completed_at"}

	if update.Note != nil {
		row.Note = *update.Note
		columns = append(columns, "note")
	}
	if update.HasNotes != nil {
		row.HasNotes = *update.HasNotes
		columns = append(columns, "has_notes")
	}
	return row, columns
}
