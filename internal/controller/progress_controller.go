package controller

import (
	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	RosterService *service.RosterService
}

func NewProgressController(rosterService *service.RosterService) *ProgressController {
	return &ProgressController{RosterService: rosterService}
}

// List godoc
// @Summary 全班进度
// @Description 全部学生逐实验的状态、成绩与分部进度
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.StudentProgressView} "全班进度"
// @Router /progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	views, err := c.RosterService.Progress()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Get godoc
// @Summary 单个学生进度
// @Description 逐实验明细，额外带整实验提交记录
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   name path string true "学生姓名"
// @Success 200 {object} util.Response{data=service.StudentProgressView} "学生进度"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /progress/{name} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	view, err := c.RosterService.ProgressFor(ctx.Param("name"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Update godoc
// @Summary 进度修正
// @Description 按字段白名单写入状态、成绩或分部进度，返回落库清单
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   name path string true "学生姓名"
// @Param   body body service.UpdateProgressRequest true "修正内容"
// @Success 200 {object} util.Response "落库清单"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /progress/{name} [put]
func (c *ProgressController) Update(ctx *gin.Context) {
	var req service.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	applied, err := c.RosterService.UpdateProgress(ctx.Param("name"), &req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"updated": applied})
}
