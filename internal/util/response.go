package util

import (
	"errors"
	"net/http"

	"lab_platform_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

// HandleServiceError 按错误分类映射状态码，未识别的错误按500返回并带上原始信息
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLabNotFound),
		errors.Is(err, ErrStudentNotFound),
		errors.Is(err, ErrSubmissionNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrStudentExists),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrLabLocked),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrStaffOnly):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserNotConfirmed),
		errors.Is(err, ErrInvalidRefresh):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrEmailDomain),
		errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrAlreadyConfirmed),
		errors.Is(err, ErrUserNotFound):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		logger.Log.Error("Internal server error", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error())
	}
}
