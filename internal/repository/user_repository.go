package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lecturetrack/internal/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return gormErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *userRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ? AND password = ?", email, password).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Avatar != nil {
		values["avatar"] = *update.Avatar
	}
	if len(values) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return nil, gormErr(err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) UpsertByEmail(ctx context.Context, email string, patch model.UserPatch) error {
	user, columns := userUpsertRow(email, patch, time.Now().UTC())

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "email"}}}
	if len(columns) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(columns)
	}
	return gormErr(r.db.WithContext(ctx).Clauses(conflict).Create(&user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}

// userUpsertRow returns the row to insert and the columns an existing row
// takes from it.
func userUpsertRow(email string, patch model.UserPatch, now time.Time) (model.User, []string) {
	user := model.User{Email: email, Role: model.RoleUser, CreatedAt: now}
	var columns []string

	if patch.Name != nil {
		user.Name = *patch.Name
		columns = append(columns, "name")
	}
	if patch.Password != nil {
		user.Password = *patch.Password
		columns = append(columns, "password")
	}
	if patch.Role != nil {
		user.Role = *patch.Role
		columns = append(columns, "role")
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
		columns = append(columns, "avatar")
	}
	if patch.CreatedAt != nil {
		user.CreatedAt = *patch.CreatedAt
		columns = append(columns, "created_at")
	}
	return user, columns
}
