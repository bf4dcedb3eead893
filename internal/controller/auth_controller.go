package controller

import (
	"lab_platform_backend/internal/model"
	"lab_platform_backend/internal/service"
	"lab_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=student staff"`
	StudentID string `json:"studentId"`
}

// Register godoc
// @Summary 注册新用户
// @Description 创建未确认账号并发送邮箱验证码，邮箱域名需在白名单内
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "注册信息"
// @Success 200 {object} util.Response "注册成功，等待确认"
// @Failure 400 {object} util.Response "参数错误或邮箱域名不允许"
// @Failure 409 {object} util.Response "用户名或邮箱已存在"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AuthService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password,
		req.StudentID, model.UserRole(req.Role))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"username": req.Username, "confirmed": false})
}

// ConfirmRequest 账号确认请求
type ConfirmRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// Confirm godoc
// @Summary 确认账号
// @Description 校验邮箱验证码并激活账号，同步点名册开户标记
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body ConfirmRequest true "用户名与验证码"
// @Success 200 {object} util.Response "确认成功"
// @Failure 400 {object} util.Response "验证码无效或已确认"
// @Router /auth/confirm [post]
func (c *AuthController) Confirm(ctx *gin.Context) {
	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AuthService.Confirm(ctx.Request.Context(), req.Username, req.Code); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"username": req.Username, "confirmed": true})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 密码登录，返回访问令牌与刷新令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭证"
// @Success 200 {object} util.Response{data=service.TokenPair} "登录成功"
// @Failure 401 {object} util.Response "凭证错误或账号未确认"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tokens, err := c.AuthService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tokens)
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh godoc
// @Summary 刷新访问令牌
// @Description 用刷新令牌换取新令牌，旧刷新令牌作废
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RefreshRequest true "刷新令牌"
// @Success 200 {object} util.Response{data=service.TokenPair} "刷新成功"
// @Failure 401 {object} util.Response "刷新令牌无效或过期"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tokens, err := c.AuthService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tokens)
}

// UsernameRequest 只带用户名的请求
type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// ForgotPassword godoc
// @Summary 忘记密码
// @Description 发送重置密码验证码；账号不存在时同样返回成功
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body UsernameRequest true "用户名"
// @Success 200 {object} util.Response "已发送"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req UsernameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AuthService.ForgotPassword(ctx.Request.Context(), req.Username); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"delivered": true})
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ConfirmForgotPassword godoc
// @Summary 重置密码
// @Description 校验验证码并设置新密码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body ResetPasswordRequest true "用户名、验证码与新密码"
// @Success 200 {object} util.Response "重置成功"
// @Failure 400 {object} util.Response "验证码无效或过期"
// @Router /auth/confirm-forgot-password [post]
func (c *AuthController) ConfirmForgotPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AuthService.ResetPassword(ctx.Request.Context(), req.Username, req.Code, req.NewPassword); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"username": req.Username})
}

// ResendVerification godoc
// @Summary 重发确认验证码
// @Description 为未确认账号重新发送邮箱验证码
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body UsernameRequest true "用户名"
// @Success 200 {object} util.Response "已发送"
// @Failure 400 {object} util.Response "账号不存在或已确认"
// @Router /auth/resend-verification [post]
func (c *AuthController) ResendVerification(ctx *gin.Context) {
	var req UsernameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AuthService.ResendConfirmation(ctx.Request.Context(), req.Username); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"delivered": true})
}
