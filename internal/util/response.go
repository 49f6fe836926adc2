package util

import (
	"errors"
	"microhabits_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RequestIDKey gin 上下文中请求 ID 的键
const RequestIDKey = "request_id"

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

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String(RequestIDKey, c.GetString(RequestIDKey)),
	)
	InternalServerError(c)
}

// HandleError 将业务错误映射为 HTTP 状态码：不存在 404，冲突与非法文件 400，其余 500
func HandleError(c *gin.Context, err error) {
	switch {
	case IsNotFound(err):
		NotFound(c, err.Error())
	case IsConflict(err):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidFileType):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
