package repository

import (
	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LabProgressRepository struct {
	DB *gorm.DB
}

func NewLabProgressRepository(db *gorm.DB) *LabProgressRepository {
	return &LabProgressRepository{DB: db}
}

func (r *LabProgressRepository) Get(studentID, progressID string) (*model.LabProgress, error) {
	var progress model.LabProgress
	err := r.DB.Where("student_id = ? AND progress_id = ?", studentID, progressID).First(&progress).Error
	return &progress, err
}

// Put 整条替换进度记录，不做部分更新
func (r *LabProgressRepository) Put(progress *model.LabProgress) error {
	return r.DB.Save(progress).Error
}

// FindByLabPrefix 按排序键前缀 {labId}# 范围查询某实验的全部子部分进度
func (r *LabProgressRepository) FindByLabPrefix(studentID, labID string) ([]model.LabProgress, error) {
	var parts []model.LabProgress
	err := r.DB.Where("student_id = ? AND progress_id LIKE ?", studentID, labID+"#%").
		Order("progress_id ASC").
		Find(&parts).
		Error
	return parts, err
}

// UpdateReview 审核后的进度回写；记录不存在时返回 ErrRecordNotFound 供调用方记录日志
func (r *LabProgressRepository) UpdateReview(studentID, progressID string, fields map[string]interface{}) error {
	res := r.DB.Model(&model.LabProgress{}).
		Where("student_id = ? AND progress_id = ?", studentID, progressID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
