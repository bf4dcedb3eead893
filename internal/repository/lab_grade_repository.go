package repository

import (
	"lab_platform_backend/internal/model"

	"gorm.io/gorm"
)

type LabGradeRepository struct {
	DB *gorm.DB
}

func NewLabGradeRepository(db *gorm.DB) *LabGradeRepository {
	return &LabGradeRepository{DB: db}
}

func (r *LabGradeRepository) Get(studentID, labID string) (*model.LabGrade, error) {
	var grade model.LabGrade
	err := r.DB.Where("student_id = ? AND lab_id = ?", studentID, labID).First(&grade).Error
	return &grade, err
}

// Put 成绩整条替换
func (r *LabGradeRepository) Put(grade *model.LabGrade) error {
	return r.DB.Save(grade).Error
}
