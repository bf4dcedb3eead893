package model

import "time"

const (
	CheckoffVideo   = "video"
	CheckoffSelf    = "self"
	CheckoffPending = "pending"
)

// LabProgress 实验子部分完成记录，progressId = labId#partId，写入始终整条替换
// swagger:model LabProgress
type LabProgress struct {
	StudentID        string    `gorm:"primaryKey;size:100" json:"studentId"`
	ProgressID       string    `gorm:"primaryKey;size:128" json:"progressId"`
	LabID            string    `gorm:"size:64" json:"labId"`
	PartID           string    `gorm:"size:64" json:"partId"`
	SubmissionID     string    `gorm:"size:128" json:"submissionId,omitempty"`
	CheckoffType     string    `gorm:"size:16;default:'pending'" json:"checkoffType"`
	Completed        bool      `gorm:"default:false" json:"completed"`
	SubmissionStatus string    `gorm:"size:16" json:"submissionStatus,omitempty"`
	Feedback         string    `gorm:"type:text" json:"feedback,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (LabProgress) TableName() string {
	return "lab_progresses"
}

// ProgressKey 组装 LabProgress 的排序键
func ProgressKey(labID, partID string) string {
	return labID + "#" + partID
}
