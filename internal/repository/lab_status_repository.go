package repository

import (
	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LabStatusRepository struct {
	DB *gorm.DB
}

func NewLabStatusRepository(db *gorm.DB) *LabStatusRepository {
	return &LabStatusRepository{DB: db}
}

func (r *LabStatusRepository) Get(studentID, labID string) (*model.LabStatus, error) {
	var status model.LabStatus
	err := r.DB.Where("student_id = ? AND lab_id = ?", studentID, labID).First(&status).Error
	return &status, err
}

// Put 整条替换状态记录
func (r *LabStatusRepository) Put(status *model.LabStatus) error {
	return r.DB.Save(status).Error
}

// FindByLab 按 lab_id 二级索引取某实验的全部学生状态记录
func (r *LabStatusRepository) FindByLab(labID string) ([]model.LabStatus, error) {
	var statuses []model.LabStatus
	err := r.DB.Where("lab_id = ?", labID).Find(&statuses).Error
	return statuses, err
}

func (r *LabStatusRepository) UpdateFields(studentID, labID string, fields map[string]interface{}) (*model.LabStatus, error) {
	err := r.DB.Model(&model.LabStatus{}).
		Where("student_id = ? AND lab_id = ?", studentID, labID).
		Updates(fields).
		Error
	if err != nil {
		return nil, err
	}
	return r.Get(studentID, labID)
}

func (r *LabStatusRepository) CountCompleted(studentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LabStatus{}).
		Where("student_id = ? AND completed = ?", studentID, true).
		Count(&count).
		Error
	return count, err
}
