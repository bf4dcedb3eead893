package repository

import (
	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

// SubmissionFilter 过滤条件按 AND 组合，零值字段忽略
type SubmissionFilter struct {
	LabID     string
	PartID    string
	Status    string
	StudentID string
}

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(submissionID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("submission_id = ?", submissionID).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) List(filter SubmissionFilter) ([]model.Submission, error) {
	q := r.DB.Model(&model.Submission{})
	if filter.LabID != "" {
		q = q.Where("lab_id = ?", filter.LabID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StudentID != "" {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	var submissions []model.Submission
	err := q.Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByStudentAndLab(studentID, labID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ? AND lab_id = ?", studentID, labID).
		Order("submitted_at DESC").
		Find(&submissions).
		Error
	return submissions, err
}

func (r *SubmissionRepository) UpdateReview(submissionID string, fields map[string]interface{}) (*model.Submission, error) {
	err := r.DB.Model(&model.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(fields).
		Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(submissionID)
}
