package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey 请求 ID 在 gin.Context 中的键，由 RequestIDMiddleware 写入
const RequestIDKey = "requestID"

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`                // 业务码
	Message   string      `json:"message"`             // 提示信息
	Data      interface{} `json:"data"`                // 数据
	RequestID string      `json:"requestId,omitempty"` // 仅错误响应携带，便于排查
}

func write(c *gin.Context, httpCode, code int, msg string, data interface{}) {
	resp := Response{Code: code, Message: msg, Data: data}
	if code != CodeSuccess {
		resp.RequestID = c.GetString(RequestIDKey)
	}
	c.JSON(httpCode, resp)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, CodeSuccess, "success", data)
}

// Created 创建成功响应 (HTTP 201)
func Created(c *gin.Context, msg string, data interface{}) {
	write(c, http.StatusCreated, CodeSuccess, msg, data)
}

// Message 成功响应，自定义提示信息
func Message(c *gin.Context, msg string, data interface{}) {
	write(c, http.StatusOK, CodeSuccess, msg, data)
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	write(c, httpCode, errCode, msg, nil)
}

// Fail 业务失败响应 (HTTP 200, 业务码非 0)
func Fail(c *gin.Context, errCode int, msg string) {
	write(c, http.StatusOK, errCode, msg, nil)
}
