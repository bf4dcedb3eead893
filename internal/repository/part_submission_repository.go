package repository

import (
	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type PartSubmissionRepository struct {
	DB *gorm.DB
}

func NewPartSubmissionRepository(db *gorm.DB) *PartSubmissionRepository {
	return &PartSubmissionRepository{DB: db}
}

func (r *PartSubmissionRepository) Create(submission *model.PartSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *PartSubmissionRepository) FindByID(submissionID string) (*model.PartSubmission, error) {
	var submission model.PartSubmission
	err := r.DB.Where("submission_id = ?", submissionID).First(&submission).Error
	return &submission, err
}

func (r *PartSubmissionRepository) List(filter SubmissionFilter) ([]model.PartSubmission, error) {
	q := r.DB.Model(&model.PartSubmission{})
	if filter.LabID != "" {
		q = q.Where("lab_id = ?", filter.LabID)
	}
	if filter.PartID != "" {
		q = q.Where("part_id = ?", filter.PartID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StudentID != "" {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	var submissions []model.PartSubmission
	err := q.Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// FindPending 待审核队列，最早提交的排在最前
func (r *PartSubmissionRepository) FindPending() ([]model.PartSubmission, error) {
	var submissions []model.PartSubmission
	err := r.DB.Where("status = ?", model.SubmissionPending).
		Order("submitted_at ASC").
		Find(&submissions).
		Error
	return submissions, err
}

func (r *PartSubmissionRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.PartSubmission{}).Count(&count).Error
	return count, err
}

func (r *PartSubmissionRepository) UpdateReview(submissionID string, fields map[string]interface{}) (*model.PartSubmission, error) {
	err := r.DB.Model(&model.PartSubmission{}).
		Where("submission_id = ?", submissionID).
		Updates(fields).
		Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(submissionID)
}
