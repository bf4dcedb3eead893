package model

import "time"

// swagger:model Student
type Student struct {
	Name       string    `gorm:"primaryKey;size:100" json:"name"`
	Section    string    `gorm:"size:32;index;not null" json:"section"`
	HasAccount bool      `gorm:"default:false" json:"hasAccount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Student) TableName() string {
	return "students"
}
