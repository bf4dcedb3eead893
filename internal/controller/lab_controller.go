package controller

import (
	"errors"
	"net/http"

	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LabController struct {
	LabService *service.LabService
}

func NewLabController(labService *service.LabService) *LabController {
	return &LabController{LabService: labService}
}

// List godoc
// @Summary 实验列表
// @Description 按 order 升序返回全部实验，学生视图带本人完成标记
// @Tags 实验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.LabView} "实验列表"
// @Router /labs [get]
func (c *LabController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	labs, err := c.LabService.List(claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, labs)
}

// lockedResponse 锁定实验的 403 应答带实验号与锁定标记
func lockedResponse(ctx *gin.Context, labID string) {
	ctx.JSON(http.StatusForbidden, util.Response{
		Code:    http.StatusForbidden,
		Message: util.ErrLabLocked.Error(),
		Data:    gin.H{"labId": labID, "locked": true},
	})
}

// Get godoc
// @Summary 实验详情
// @Description 取单个实验；学生访问锁定实验返回403
// @Tags 实验
// @Produce  json
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Success 200 {object} util.Response{data=service.LabView} "实验详情"
// @Failure 403 {object} util.Response "实验已锁定"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /labs/{labId} [get]
func (c *LabController) Get(ctx *gin.Context) {
	labID := ctx.Param("labId")
	claims := util.GetUserFromContext(ctx)
	lab, err := c.LabService.Get(labID, claims.IsStaff())
	if err != nil {
		if errors.Is(err, util.ErrLabLocked) {
			lockedResponse(ctx, labID)
			return
		}
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lab)
}

// Head godoc
// @Summary 实验可达性探测
// @Description 只返回状态码：200 可访问，403 锁定，404 不存在
// @Tags 实验
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Success 200 "可访问"
// @Router /labs/{labId} [head]
func (c *LabController) Head(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.LabService.CheckAccess(ctx.Param("labId"), claims.IsStaff())
	switch {
	case err == nil:
		ctx.Status(http.StatusOK)
	case errors.Is(err, util.ErrLabLocked):
		ctx.Status(http.StatusForbidden)
	case errors.Is(err, util.ErrLabNotFound):
		ctx.Status(http.StatusNotFound)
	default:
		ctx.Status(http.StatusInternalServerError)
	}
}

// Update godoc
// @Summary 更新实验内容
// @Description 替换实验内容，labId、创建时间与锁定状态保持不变
// @Tags 实验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Param   body body service.UpdateContentRequest true "实验内容"
// @Success 200 {object} util.Response{data=service.LabView} "更新后的实验"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /labs/{labId} [put]
func (c *LabController) Update(ctx *gin.Context) {
	var req service.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Title == "" || req.Description == "" {
		util.BadRequest(ctx, "title and description are required")
		return
	}
	lab, err := c.LabService.UpdateContent(ctx.Param("labId"), &req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lab)
}

// Lock godoc
// @Summary 锁定实验
// @Description 锁定实验并级联同步全部学生状态记录
// @Tags 实验
// @Produce  json
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Success 200 {object} util.Response{data=service.CascadeResult} "级联结果"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /labs/{labId}/lock [post]
func (c *LabController) Lock(ctx *gin.Context) {
	c.setLocked(ctx, true)
}

// Unlock godoc
// @Summary 解锁实验
// @Description 解锁实验并级联同步全部学生状态记录
// @Tags 实验
// @Produce  json
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Success 200 {object} util.Response{data=service.CascadeResult} "级联结果"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /labs/{labId}/unlock [post]
func (c *LabController) Unlock(ctx *gin.Context) {
	c.setLocked(ctx, false)
}

func (c *LabController) setLocked(ctx *gin.Context, locked bool) {
	result, err := c.LabService.SetLocked(ctx.Param("labId"), locked)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Submit godoc
// @Summary 整实验提交
// @Description 创建整实验提交并回写学生状态记录
// @Tags 实验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   labId path string true "实验号"
// @Param   body body service.SubmitRequest true "提交内容"
// @Success 201 {object} util.Response{data=model.Submission} "创建成功"
// @Failure 403 {object} util.Response "实验已锁定"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /labs/{labId}/submit [post]
func (c *LabController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.FileKey == "" {
		util.BadRequest(ctx, "fileKey is required")
		return
	}

	labID := ctx.Param("labId")
	claims := util.GetUserFromContext(ctx)
	submission, err := c.LabService.Submit(labID, claims, &req)
	if err != nil {
		if errors.Is(err, util.ErrLabLocked) {
			lockedResponse(ctx, labID)
			return
		}
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}
