package controller

import (
	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// List godoc
// @Summary 整实验提交列表
// @Description 教学人员可组合过滤，学生只能查本人
// @Tags 整实验提交
// @Produce  json
// @Security BearerAuth
// @Param   labId query string false "实验号"
// @Param   status query string false "状态"
// @Param   studentId query string false "学生"
// @Success 200 {object} util.Response{data=[]model.Submission} "提交列表"
// @Router /submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.SubmissionService.List(filterFromQuery(ctx), claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// Get godoc
// @Summary 整实验提交详情
// @Description 带文件的提交附1小时有效的播放地址，学生只能取本人
// @Tags 整实验提交
// @Produce  json
// @Security BearerAuth
// @Param   submissionId path string true "提交号"
// @Success 200 {object} util.Response{data=service.SubmissionView} "提交详情"
// @Failure 403 {object} util.Response "只能查看本人提交"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /submissions/{submissionId} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submission, err := c.SubmissionService.Get(ctx.Request.Context(), ctx.Param("submissionId"), claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// Review godoc
// @Summary 审核整实验提交
// @Description 教学人员变更提交状态并回写学生状态记录
// @Tags 整实验提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   submissionId path string true "提交号"
// @Param   body body service.ReviewRequest true "审核结论"
// @Success 200 {object} util.Response{data=model.Submission} "更新后的提交"
// @Failure 400 {object} util.Response "状态取值非法"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /submissions/{submissionId} [put]
func (c *SubmissionController) Review(ctx *gin.Context) {
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.SubmissionService.Review(ctx.Param("submissionId"), &req, claims.Username)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
