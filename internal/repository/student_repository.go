package repository

import (
	"time"

	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) FindAll() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Order("name ASC").Find(&students).Error
	return students, err
}

func (r *StudentRepository) FindByName(name string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("name = ?", name).First(&student).Error
	return &student, err
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

// UpdateFields 只更新显式给出的字段，姓名作为主键不可变
func (r *StudentRepository) UpdateFields(name string, fields map[string]interface{}) (*model.Student, error) {
	fields["updated_at"] = time.Now()
	if err := r.DB.Model(&model.Student{}).Where("name = ?", name).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByName(name)
}

func (r *StudentRepository) SetHasAccount(name string, hasAccount bool) error {
	return r.DB.Model(&model.Student{}).
		Where("name = ?", name).
		Update("has_account", hasAccount).
		Error
}
