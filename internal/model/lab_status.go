package model

import "time"

const (
	LabStatusLocked   = "locked"
	LabStatusUnlocked = "unlocked"
)

// LabStatus 学生-实验维度的状态记录，首次解锁或提交时惰性创建
// swagger:model LabStatus
type LabStatus struct {
	StudentID        string    `gorm:"primaryKey;size:100" json:"studentId"`
	LabID            string    `gorm:"primaryKey;size:64;index" json:"labId"`
	Status           string    `gorm:"size:16;default:'locked'" json:"status"`
	Completed        bool      `gorm:"default:false" json:"completed"`
	SubmissionStatus string    `gorm:"size:16" json:"submissionStatus,omitempty"`
	SubmissionID     string    `gorm:"size:128" json:"submissionId,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (LabStatus) TableName() string {
	return "lab_statuses"
}
