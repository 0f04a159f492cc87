package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion 响应结构版本，随 X-API-Version 头返回
const APIVersion = "1"

// MessageResponse 只携带消息的响应（错误响应与 {"message":"OK"}）
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse 创建成功后返回新记录 ID
type IDResponse struct {
	ID uint `json:"id"`
}

// Success 返回成功响应
func Success(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// OK 返回 {"message":"OK"}
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "OK"})
}

// Error 返回错误响应并中止后续处理
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, MessageResponse{Message: message})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "请求参数无效"
	}
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未登录"
	}
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, http.StatusNotFound, message)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器内部错误"
	}
	Error(c, http.StatusInternalServerError, message)
}

// BadGateway 返回502错误（上游对象存储失败）
func BadGateway(c *gin.Context, message string) {
	if message == "" {
		message = "上游服务异常"
	}
	Error(c, http.StatusBadGateway, message)
}

// ServiceUnavailable 返回503错误
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "服务暂不可用"
	}
	Error(c, http.StatusServiceUnavailable, message)
}
