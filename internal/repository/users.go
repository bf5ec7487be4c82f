package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/prometheus"
)

type userRepository struct {
	db *gorm.DB
}

const userNotFound = "Usuário não encontrado"

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("user_create")()
	return translate(r.db.WithContext(ctx).Create(user).Error, "create user", userNotFound)
}

func (r *userRepository) Get(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_get")()
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "get user", userNotFound)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user_get_by_email")()
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "get user by email", userNotFound)
	}
	return &user, nil
}

func (r *userRepository) ListByStatus(ctx context.Context, status model.UserStatus) ([]*model.User, error) {
	defer prometheus.TrackDBOperation("user_list")()
	var users []*model.User
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, translate(err, "list users", userNotFound)
	}
	return users, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status model.UserStatus) error {
	defer prometheus.TrackDBOperation("user_update_status")()
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update user status", userNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update user status", userNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	defer prometheus.TrackDBOperation("user_delete")()
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.User{}).Error
	return translate(err, "delete users", userNotFound)
}
