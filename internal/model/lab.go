package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BootstrapLabID 历史数据兼容：未设置 locked 字段的实验中，仅该实验默认解锁
const BootstrapLabID = "lab1"

// ImportUnlockedLabID 内容导入时新实验的默认解锁规则，与 BootstrapLabID 不一致，刻意保留
const ImportUnlockedLabID = "lab0"

// ContentBlock 实验内容块（文本/图片/代码等）
type ContentBlock struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Caption  string `json:"caption,omitempty"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
}

// LabSection 实验章节，Content 兼容结构化块数组与旧版字符串
type LabSection struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Order   int             `json:"order"`
	Content json.RawMessage `json:"content"`
}

type LabResource struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

type StructuredContent struct {
	Sections  []LabSection  `json:"sections"`
	Resources []LabResource `json:"resources,omitempty"`
}

func (sc *StructuredContent) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported structured content type %T", value)
	}
	return json.Unmarshal(data, sc)
}

func (sc StructuredContent) Value() (driver.Value, error) {
	return json.Marshal(sc)
}

// swagger:model Lab
type Lab struct {
	LabID             string             `gorm:"primaryKey;size:64" json:"labId"`
	Title             string             `gorm:"size:255;not null" json:"title"`
	Description       string             `gorm:"type:text" json:"description"`
	Content           string             `gorm:"type:text" json:"content,omitempty"`
	StructuredContent *StructuredContent `gorm:"type:json" json:"structuredContent,omitempty"`
	Order             int                `gorm:"index" json:"order"`
	Locked            *bool              `json:"locked,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func (Lab) TableName() string {
	return "labs"
}

// EffectiveLocked 解析锁定状态：显式字段优先，否则按兜底实验ID判断
func (l *Lab) EffectiveLocked() bool {
	if l.Locked != nil {
		return *l.Locked
	}
	return l.LabID != BootstrapLabID
}
