package model

import "time"

// swagger:model LabGrade
type LabGrade struct {
	StudentID string    `gorm:"primaryKey;size:100" json:"studentId"`
	LabID     string    `gorm:"primaryKey;size:64" json:"labId"`
	Grade     *string   `gorm:"size:32" json:"grade"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LabGrade) TableName() string {
	return "lab_grades"
}
