package model

import "time"

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// ReviewedBySystem 自助验收自动批准时的审核人标识
const ReviewedBySystem = "system"

// ValidReviewStatus 审核接口允许的状态取值
func ValidReviewStatus(status string) bool {
	switch status {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// Submission 整个实验的文件提交，submissionId = {studentId}-{labId}-{unixMillis}
// swagger:model Submission
type Submission struct {
	SubmissionID string     `gorm:"primaryKey;size:128" json:"submissionId"`
	LabID        string     `gorm:"size:64;index" json:"labId"`
	StudentID    string     `gorm:"size:100;index" json:"studentId"`
	UserID       string     `gorm:"size:100" json:"userId"`
	FileKey      string     `gorm:"size:512" json:"fileKey"`
	Notes        string     `gorm:"type:text" json:"notes"`
	Status       string     `gorm:"size:16;default:'pending';index" json:"status"`
	Feedback     string     `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	ReviewedBy   string     `gorm:"size:100" json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
