package controller

import (
	"lab_platform_backend/internal/repository"
	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PartSubmissionController struct {
	PartService *service.PartSubmissionService
}

func NewPartSubmissionController(partService *service.PartSubmissionService) *PartSubmissionController {
	return &PartSubmissionController{PartService: partService}
}

// PresignRequest 上传授权请求
type PresignRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	LabID    string `json:"labId" binding:"required"`
	PartID   string `json:"partId" binding:"required"`
}

// Presign godoc
// @Summary 获取上传授权
// @Description 生成5分钟有效的直传地址与对象键
// @Tags 分部提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PresignRequest true "文件信息"
// @Success 200 {object} util.Response{data=service.PresignedUploadResult} "上传授权"
// @Router /part-submissions/presigned-url [post]
func (c *PartSubmissionController) Presign(ctx *gin.Context) {
	var req PresignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	result, err := c.PartService.PresignUpload(ctx.Request.Context(), req.LabID, req.PartID, req.FileName, req.FileType, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Create godoc
// @Summary 创建视频提交
// @Description 登记已上传的视频并回写分部进度记录
// @Tags 分部提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateRequest true "提交内容"
// @Success 201 {object} util.Response{data=model.PartSubmission} "创建成功"
// @Failure 404 {object} util.Response "学生未建档"
// @Router /part-submissions [post]
func (c *PartSubmissionController) Create(ctx *gin.Context) {
	var req service.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.PartService.Create(ctx.Request.Context(), &req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

// SelfCheckoff godoc
// @Summary 自评打卡
// @Description 无文件提交，直接通过，审核人记 system
// @Tags 分部提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SelfCheckoffRequest true "打卡内容"
// @Success 201 {object} util.Response{data=model.PartSubmission} "创建成功"
// @Router /part-submissions/self-checkoff [post]
func (c *PartSubmissionController) SelfCheckoff(ctx *gin.Context) {
	var req service.SelfCheckoffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.PartService.SelfCheckoff(&req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

func filterFromQuery(ctx *gin.Context) repository.SubmissionFilter {
	return repository.SubmissionFilter{
		LabID:     ctx.Query("labId"),
		PartID:    ctx.Query("partId"),
		Status:    ctx.Query("status"),
		StudentID: ctx.Query("studentId"),
	}
}

// List godoc
// @Summary 分部提交列表
// @Description 教学人员可按实验、分部、状态、学生组合过滤，学生只能查本人
// @Tags 分部提交
// @Produce  json
// @Security BearerAuth
// @Param   labId query string false "实验号"
// @Param   partId query string false "分部号"
// @Param   status query string false "状态"
// @Param   studentId query string false "学生"
// @Success 200 {object} util.Response{data=[]model.PartSubmission} "提交列表"
// @Router /part-submissions [get]
func (c *PartSubmissionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.PartService.List(filterFromQuery(ctx), claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// Queue godoc
// @Summary 待审核队列
// @Description 待审核提交按提交时间升序，附全量与待审计数
// @Tags 分部提交
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.QueueResult} "队列"
// @Router /part-submissions/queue [get]
func (c *PartSubmissionController) Queue(ctx *gin.Context) {
	result, err := c.PartService.Queue(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Get godoc
// @Summary 分部提交详情
// @Description 取单条提交并附1小时有效的播放地址，学生只能取本人
// @Tags 分部提交
// @Produce  json
// @Security BearerAuth
// @Param   submissionId path string true "提交号"
// @Success 200 {object} util.Response{data=model.PartSubmission} "提交详情"
// @Failure 403 {object} util.Response "只能查看本人提交"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /part-submissions/{submissionId} [get]
func (c *PartSubmissionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submission, err := c.PartService.Get(ctx.Request.Context(), ctx.Param("submissionId"), claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// Review godoc
// @Summary 审核分部提交
// @Description 教学人员变更提交状态并回写进度记录
// @Tags 分部提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   submissionId path string true "提交号"
// @Param   body body service.ReviewRequest true "审核结论"
// @Success 200 {object} util.Response{data=model.PartSubmission} "更新后的提交"
// @Failure 400 {object} util.Response "状态取值非法"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /part-submissions/{submissionId} [put]
func (c *PartSubmissionController) Review(ctx *gin.Context) {
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.PartService.Review(ctx.Param("submissionId"), &req, claims.Username)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}
