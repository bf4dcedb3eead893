package repository

import (
	"time"

	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) MarkConfirmed(username string) error {
	return r.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("confirmed", true).
		Error
}

func (r *UserRepository) UpdatePassword(username, hashed string) error {
	return r.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("password", hashed).
		Error
}

func (r *UserRepository) UpdateLastLogin(username string) error {
	return r.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("last_login", time.Now()).
		Error
}
