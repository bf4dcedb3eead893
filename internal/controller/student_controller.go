package controller

import (
	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	RosterService *service.RosterService
}

func NewStudentController(rosterService *service.RosterService) *StudentController {
	return &StudentController{RosterService: rosterService}
}

// List godoc
// @Summary 花名册
// @Description 全部学生及完成度概览
// @Tags 学生
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.StudentView} "学生列表"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.RosterService.ListStudents()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// Get godoc
// @Summary 学生详情
// @Description 单个学生的逐实验进度明细
// @Tags 学生
// @Produce  json
// @Security BearerAuth
// @Param   name path string true "学生姓名"
// @Success 200 {object} util.Response{data=service.StudentProgressView} "学生详情"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{name} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	student, err := c.RosterService.GetStudent(ctx.Param("name"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// CreateStudentRequest 建档请求
type CreateStudentRequest struct {
	Name    string `json:"name" binding:"required"`
	Section string `json:"section" binding:"required"`
}

// Create godoc
// @Summary 学生建档
// @Description 新增学生，重名冲突
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateStudentRequest true "姓名与班级"
// @Success 201 {object} util.Response{data=model.Student} "创建成功"
// @Failure 409 {object} util.Response "学生已存在"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	student, err := c.RosterService.CreateStudent(req.Name, req.Section)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// Update godoc
// @Summary 学生编辑
// @Description 只允许更新班级与开户标记
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   name path string true "学生姓名"
// @Param   body body service.UpdateStudentRequest true "可更新字段"
// @Success 200 {object} util.Response{data=model.Student} "更新后的学生"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /students/{name} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	var req service.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	student, err := c.RosterService.UpdateStudent(ctx.Param("name"), &req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, student)
}
