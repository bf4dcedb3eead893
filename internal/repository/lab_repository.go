package repository

import (
	"time"

	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LabRepository struct {
	DB *gorm.DB
}

func NewLabRepository(db *gorm.DB) *LabRepository {
	return &LabRepository{DB: db}
}

// FindAll 按 order 升序返回全部实验
func (r *LabRepository) FindAll() ([]model.Lab, error) {
	var labs []model.Lab
	err := r.DB.Order("`order` ASC").Find(&labs).Error
	return labs, err
}

func (r *LabRepository) FindByID(labID string) (*model.Lab, error) {
	var lab model.Lab
	err := r.DB.Where("lab_id = ?", labID).First(&lab).Error
	return &lab, err
}

// Save 整条替换实验记录
func (r *LabRepository) Save(lab *model.Lab) error {
	return r.DB.Save(lab).Error
}

func (r *LabRepository) SetLocked(labID string, locked bool) error {
	return r.DB.Model(&model.Lab{}).
		Where("lab_id = ?", labID).
		Updates(map[string]interface{}{
			"locked":     locked,
			"updated_at": time.Now(),
		}).
		Error
}
