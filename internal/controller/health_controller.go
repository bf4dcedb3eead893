package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check godoc
// @Summary 健康检查
// @Description 探测服务与数据库连接
// @Tags 系统
// @Produce  json
// @Success 200 {object} map[string]string "ok"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
