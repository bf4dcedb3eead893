package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartSubmission 实验子部分的验收提交；自助验收 fileKey 为空且自动批准
// swagger:model PartSubmission
type PartSubmission struct {
	SubmissionID  string     `gorm:"primaryKey;size:64" json:"submissionId"`
	LabID         string     `gorm:"size:64;index:idx_part_submissions_lab_part" json:"labId"`
	PartID        string     `gorm:"size:64;index:idx_part_submissions_lab_part" json:"partId"`
	StudentID     string     `gorm:"size:100;index" json:"studentId"`
	UserID        string     `gorm:"size:100" json:"userId"`
	Username      string     `gorm:"size:100" json:"username"`
	FileKey       string     `gorm:"size:512" json:"fileKey"`
	FileURL       string     `gorm:"size:2048" json:"videoUrl,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Status        string     `gorm:"size:16;default:'pending';index" json:"status"`
	Feedback      string     `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	QueuePosition int        `gorm:"default:0" json:"queuePosition"`
}

func (PartSubmission) TableName() string {
	return "part_submissions"
}

func (p *PartSubmission) BeforeCreate(tx *gorm.DB) error {
	if p.SubmissionID == "" {
		p.SubmissionID = uuid.New().String()
	}
	return nil
}
