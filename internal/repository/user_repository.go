package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tomlord1122/todolist/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user %s: %w", id, err)
	}
	return &user, nil
}

// Upsert inserts the user or, if the id already exists, overwrites the profile
// columns and updated_at in the same statement. created_at of an existing row
// is kept; user is reloaded so the caller sees the stored values.
func (r *gormUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}

	stored, err := r.Get(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("reload user %s: %w", user.ID, err)
	}
	*user = *stored
	return nil
}
