package util

import "time"

// 预签名URL有效期：上传5分钟，查看1小时，提交记录内嵌7天
const (
	UploadURLExpiry   = 5 * time.Minute
	ViewURLExpiry     = time.Hour
	EmbeddedURLExpiry = 7 * 24 * time.Hour
)
