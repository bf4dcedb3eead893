package model

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
)

// User 平台账号，注册后需邮箱验证码确认才能登录
// swagger:model User
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:16;default:'student'" json:"role"`
	StudentID string    `gorm:"size:100;index" json:"studentId,omitempty"`
	Confirmed bool      `gorm:"default:false" json:"confirmed"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
